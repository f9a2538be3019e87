// Package cmd implements the CLI application to manage the investment dashboard.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/dashboard"
	"github.com/etnz/dashboard/agent"
	"github.com/etnz/dashboard/renderer"
	"github.com/etnz/dashboard/store"
	"github.com/google/subcommands"
)

// Environment variables providing the defaults of the global flags. They can
// be set in a .env file.
const (
	EnvState   = "DASH_STATE"
	EnvStore   = "DASH_STORE"
	EnvVerbose = "DASH_VERBOSE"
)

// DefaultStateDir is where the dashboard is kept when nothing else is configured.
const DefaultStateDir = ".dashboard"

// Commands lists all the dash subcommands, and their group.
var Commands = []struct {
	subcommands.Command
	Group string
}{
	{&overviewCmd{}, "reports"},
	{&reviewCmd{}, "reports"},
	{&positionsCmd{}, "positions"},
	{&addCmd{}, "positions"},
	{&editCmd{}, "positions"},
	{&rmCmd{}, "positions"},
	{&importCmd{}, "positions"},
	{&targetsCmd{}, "settings"},
	{&runwayCmd{}, "settings"},
	{&backupCmd{}, "data"},
	{&restoreCmd{}, "data"},
	{&wipeCmd{}, "data"},
	{&queryCmd{}, "data"},
	{&topicCmd{}, "help"},
	{&assistCmd{}, "help"},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	stateDir = flag.String("state", "", "Path to the dashboard folder. Defaults to $"+EnvState+" or "+DefaultStateDir)
	backend  = flag.String("store", "", "Storage backend: file or bolt. Defaults to $"+EnvStore+" or file")
	plain    = flag.Bool("plain", false, "Print raw markdown instead of rendering it for the terminal")
	Verbose  = flag.Bool("verbose", false, "Log debug information. Defaults to $"+EnvVerbose)
)

// Config is the resolved global configuration.
type Config struct {
	StateDir string
	Backend  string
	Verbose  bool
}

// LoadConfig resolves the global configuration: a flag wins over its
// environment variable, which wins over the default.
func LoadConfig() Config {
	c := Config{
		StateDir: firstNonEmpty(*stateDir, os.Getenv(EnvState), DefaultStateDir),
		Backend:  firstNonEmpty(*backend, os.Getenv(EnvStore), store.BackendFile),
		Verbose:  *Verbose,
	}
	if !c.Verbose {
		c.Verbose, _ = strconv.ParseBool(os.Getenv(EnvVerbose))
	}
	return c
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// debugf logs only in verbose mode.
func debugf(format string, args ...any) {
	if LoadConfig().Verbose {
		log.Printf(format, args...)
	}
}

// openSession opens the configured store. The returned close function must
// be called once done.
func openSession() (*dashboard.Session, func() error, error) {
	c := LoadConfig()
	agent.Verbose = c.Verbose
	st, err := store.Open(c.Backend, c.StateDir)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open the dashboard in %q: %w", c.StateDir, err)
	}
	debugf("opened %s store in %q", c.Backend, c.StateDir)
	return dashboard.NewSession(st), st.Close, nil
}

// loadState opens the dashboard, reads it and closes it.
func loadState(ctx context.Context) (*dashboard.State, error) {
	s, closeStore, err := openSession()
	if err != nil {
		return nil, err
	}
	defer closeStore()
	return s.Load(ctx)
}

// run opens the dashboard, applies cmd and prints the change.
func run(ctx context.Context, cmd dashboard.Command) (*dashboard.State, subcommands.ExitStatus) {
	s, closeStore, err := openSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	defer closeStore()

	state, change, err := s.Do(ctx, cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	fmt.Printf("Saved: %s\n", change)
	return state, subcommands.ExitSuccess
}

// today is the reference date of reports.
func today() dashboard.Date { return dashboard.NewDate(renderer.Now().Date()) }

// parseDay parses a -d flag, empty means today.
func parseDay(s string) (dashboard.Date, error) {
	if strings.TrimSpace(s) == "" {
		return today(), nil
	}
	return dashboard.ParseDate(s)
}

// printMarkdown prints md rendered for the terminal, or raw with -plain.
func printMarkdown(md string) {
	if *plain {
		fmt.Print(md)
		return
	}
	out, err := glamour.Render(md, "auto")
	if err != nil {
		debugf("cannot render markdown: %v", err)
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
