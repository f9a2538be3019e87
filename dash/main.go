// Command dash is a personal investment dashboard for the terminal.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/dashboard/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional, real environment variables win over it.
	_ = godotenv.Load()

	// Exits when invoked by the shell for completion.
	cmd.Completion().Complete("dash")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	known := map[string]bool{"help": true, "flags": true, "commands": true}
	for _, c := range cmd.Commands {
		commander.Register(c.Command, c.Group)
		known[c.Name()] = true
	}

	flag.Parse()

	if flag.NArg() > 0 && !known[flag.Arg(0)] {
		if found, code := cmd.RunExtension(flag.Arg(0), flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}
