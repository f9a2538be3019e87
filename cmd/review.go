package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/dashboard"
	"github.com/etnz/dashboard/renderer"
	"github.com/google/subcommands"
)

type overviewCmd struct {
	date string
}

func (*overviewCmd) Name() string     { return "overview" }
func (*overviewCmd) Synopsis() string { return "show total value, allocation, runway and maturities" }
func (*overviewCmd) Usage() string {
	return `dash overview [-d <date>]

  Show the dashboard overview: total value, allocation per sleeve against
  targets, liquidity runway and maturities of the next 120 days.
`
}

func (c *overviewCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Reference date (YYYY-MM-DD) for maturities. Defaults to today.")
}

func (c *overviewCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	s, err := loadState(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.OverviewMarkdown(s.Overview(on), on))
	return subcommands.ExitSuccess
}

// reviewCmd holds the flags for the 'review' subcommand.
type reviewCmd struct {
	date   string
	output string
	asJSON bool
}

func (*reviewCmd) Name() string     { return "review" }
func (*reviewCmd) Synopsis() string { return "generate the monthly investment review" }
func (*reviewCmd) Usage() string {
	return `dash review [-d <date>] [-o <file.md>] [-json]

  Generate the monthly review checklist: allocation drift, runway,
  upcoming maturities and the suggested actions.

  With -o the markdown is written to a file, ready to be kept in a journal.
`
}

func (c *reviewCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date of the review (YYYY-MM-DD). Defaults to today.")
	f.StringVar(&c.output, "o", "", "Write the review to this file instead of printing it.")
	f.BoolVar(&c.asJSON, "json", false, "Print the review data as JSON.")
}

func (c *reviewCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	s, err := loadState(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	o := s.Overview(on)
	review := renderer.NewReview(o, dashboard.Actions(o), on)

	if c.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(review); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	md := renderer.RenderReview(review)
	if c.output != "" {
		if err := os.WriteFile(c.output, []byte(md), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Review written to %s\n", c.output)
		return subcommands.ExitSuccess
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}
