package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/dashboard"
	"github.com/etnz/dashboard/renderer"
	"github.com/google/subcommands"
)

type importCmd struct {
	mode   string
	rows   int
	dryRun bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import positions or cash balances from a CSV file" }
func (*importCmd) Usage() string {
	return `dash import [-mode positions|balances] [-dry-run [-n <rows>]] <file.csv>

  Import a spreadsheet export. The first row is the header, see 'dash topic import'
  for the accepted column names.

  In positions mode, a row updates the position with the same name and issuer,
  or adds a new one. In balances mode, a row updates the cash account with the
  same name, or adds a new one.

  Use '-' to read the CSV from the standard input.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.mode, "mode", string(dashboard.ModePositions), "Import mode: positions or balances")
	f.IntVar(&c.rows, "n", renderer.PreviewRows, "Number of rows shown in the preview")
	f.BoolVar(&c.dryRun, "dry-run", false, "Only preview the file, do not import it")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: import requires exactly one CSV file")
		return subcommands.ExitUsageError
	}
	mode, err := dashboard.ParseImportMode(c.mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	text, err := readInput(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	batch, err := dashboard.ReadImportBatch(text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	debugf("read %d rows with headers %v", batch.Len(), batch.Headers)

	if c.dryRun {
		printMarkdown(renderer.ImportPreviewMarkdown(batch, c.rows))
		return subcommands.ExitSuccess
	}

	_, status := run(ctx, func(s *dashboard.State) (dashboard.Change, error) {
		return s.CommitImport(batch, mode)
	})
	return status
}

// readInput reads a whole file, or the standard input for "-".
func readInput(name string) (string, error) {
	if name == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
