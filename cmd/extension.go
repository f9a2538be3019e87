package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

// RunExtension attempts to find and execute an external dash-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "dash-" + subcommand

	// Look for the external command in PATH
	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		debugf("External command %q not found in PATH: %v", externalCmdName, err)
		return false, 0
	}

	// Found external command, execute it
	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	// Pass the global flags as environment variables
	cmd.Env = append(os.Environ(), extensionEnv(LoadConfig())...)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		// If it's not an ExitError or we can't get the status, report a generic error
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1 // Indicate that an attempt was made, but it failed
	}

	return true, 0 // External command executed successfully with exit code 0
}

// extensionEnv returns the configuration as environment variables.
func extensionEnv(c Config) []string {
	dir := c.StateDir
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	} else {
		log.Printf("cannot resolve %q: %v", dir, err)
	}
	return []string{
		EnvState + "=" + dir,
		EnvStore + "=" + c.Backend,
		EnvVerbose + "=" + strconv.FormatBool(c.Verbose),
	}
}
