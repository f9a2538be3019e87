package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/dashboard"
	"github.com/etnz/dashboard/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type positionsCmd struct {
	query  string
	sleeve string
	typ    string
}

func (*positionsCmd) Name() string     { return "positions" }
func (*positionsCmd) Synopsis() string { return "list positions, or show one" }
func (*positionsCmd) Usage() string {
	return `dash positions [-q <text>] [-sleeve <name>] [-type <type>] [<id>]

  List positions, largest value first. The text query is searched in the
  name, issuer, tags and notes.

  With an id (or a unique id prefix) show the details of that position.
`
}

func (c *positionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.query, "q", "", "Search text")
	f.StringVar(&c.sleeve, "sleeve", "", "Only list positions of this sleeve")
	f.StringVar(&c.typ, "type", "", "Only list positions of this type")
}

func (c *positionsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := loadState(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if f.NArg() > 0 {
		id, err := s.ResolveID(f.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		p, _ := s.Position(id)
		printMarkdown(renderer.PositionMarkdown(p))
		return subcommands.ExitSuccess
	}

	filter := dashboard.PositionFilter{
		Query:  c.query,
		Sleeve: strings.TrimSpace(c.sleeve),
	}
	if filter.Sleeve != "" {
		filter.Sleeve = dashboard.CoerceSleeve(filter.Sleeve, s.Sleeves)
	}
	if strings.TrimSpace(c.typ) != "" {
		filter.Type = dashboard.CoerceType(c.typ)
	}
	printMarkdown(renderer.PositionsMarkdown(dashboard.FilterPositions(s.Positions, filter)))
	return subcommands.ExitSuccess
}

// positionFlags are the fields of a position that can be given on the command line.
type positionFlags struct {
	name     string
	sleeve   string
	typ      string
	issuer   string
	value    string
	cost     string
	currency string
	maturity string
	rate     string
	tags     string
	notes    string
}

func (pf *positionFlags) register(f *flag.FlagSet) {
	f.StringVar(&pf.name, "name", "", "Name of the position")
	f.StringVar(&pf.sleeve, "sleeve", "", "Sleeve of the position, Core Growth when empty")
	f.StringVar(&pf.typ, "type", "", "Type: Cash, Term Deposit, Managed Fund, ETF, Shares, Crypto, Private or Other")
	f.StringVar(&pf.issuer, "issuer", "", "Bank, fund manager or platform")
	f.StringVar(&pf.value, "value", "", "Current value in NZD")
	f.StringVar(&pf.cost, "cost", "", "Cost basis in NZD, empty when unknown")
	f.StringVar(&pf.currency, "currency", "", "Currency of the holding, informational (NZD)")
	f.StringVar(&pf.maturity, "maturity", "", "Maturity date (YYYY-MM-DD), empty when it does not mature")
	f.StringVar(&pf.rate, "rate", "", "Expected annual rate in percent, empty when unknown")
	f.StringVar(&pf.tags, "tags", "", "Comma separated list of tags")
	f.StringVar(&pf.notes, "notes", "", "Free notes")
}

// apply copies the flags that were set on the command line into p.
func (pf *positionFlags) apply(f *flag.FlagSet, p *dashboard.Position, sleeves []dashboard.Sleeve) error {
	var err error
	f.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}
		switch fl.Name {
		case "name":
			p.Name = pf.name
		case "sleeve":
			p.Sleeve = dashboard.CoerceSleeve(pf.sleeve, sleeves)
		case "type":
			p.Type = dashboard.CoerceType(pf.typ)
		case "issuer":
			p.Issuer = pf.issuer
		case "value":
			var v decimal.NullDecimal
			if v, err = parseAmount("value", pf.value); err == nil {
				p.ValueNZD = v.Decimal
			}
		case "cost":
			p.CostNZD, err = parseAmount("cost", pf.cost)
		case "currency":
			p.Currency = pf.currency
		case "maturity":
			p.MaturityDate, err = dashboard.ParseDate(pf.maturity)
		case "rate":
			p.ExpectedRate, err = parseAmount("rate", pf.rate)
		case "tags":
			p.Tags = dashboard.SplitTags(pf.tags)
		case "notes":
			p.Notes = pf.notes
		}
	})
	return err
}

// parseAmount parses an optional decimal flag, empty is null.
func parseAmount(name, s string) (decimal.NullDecimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("invalid %s %q: %w", name, s, err)
	}
	return decimal.NewNullDecimal(d), nil
}

type addCmd struct {
	positionFlags
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a position" }
func (*addCmd) Usage() string {
	return `dash add -name <name> [-sleeve <sleeve>] [-type <type>] [-value <nzd>] ...

  Add a new position. Only the name is required.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) { c.register(f) }

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var added dashboard.Position
	state, status := run(ctx, func(s *dashboard.State) (dashboard.Change, error) {
		p := dashboard.Position{Sleeve: dashboard.CoerceSleeve("", s.Sleeves)}
		if err := c.apply(f, &p, s.Sleeves); err != nil {
			return dashboard.Change{}, err
		}
		var (
			change dashboard.Change
			err    error
		)
		added, change, err = s.AddPosition(p)
		return change, err
	})
	if state != nil {
		printMarkdown(renderer.PositionMarkdown(added))
	}
	return status
}

type editCmd struct {
	positionFlags
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "edit a position" }
func (*editCmd) Usage() string {
	return `dash edit [-name <name>] [-value <nzd>] ... <id>

  Edit the position with the given id, or unique id prefix. Only the fields
  given on the command line are changed. An empty value clears the field.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) { c.register(f) }

func (c *editCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: edit requires exactly one position id")
		return subcommands.ExitUsageError
	}
	var edited dashboard.Position
	state, status := run(ctx, func(s *dashboard.State) (dashboard.Change, error) {
		id, err := s.ResolveID(f.Arg(0))
		if err != nil {
			return dashboard.Change{}, err
		}
		edited, _ = s.Position(id)
		if err := c.apply(f, &edited, s.Sleeves); err != nil {
			return dashboard.Change{}, err
		}
		return s.UpdatePosition(edited)
	})
	if state != nil {
		edited, _ = state.Position(edited.ID)
		printMarkdown(renderer.PositionMarkdown(edited))
	}
	return status
}

type rmCmd struct{}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "delete positions" }
func (*rmCmd) Usage() string {
	return `dash rm <id>...

  Delete the positions with the given ids, or unique id prefixes.
`
}

func (*rmCmd) SetFlags(f *flag.FlagSet) {}

func (*rmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: rm requires at least one position id")
		return subcommands.ExitUsageError
	}
	_, status := run(ctx, func(s *dashboard.State) (dashboard.Change, error) {
		var total dashboard.Change
		for _, ref := range f.Args() {
			id, err := s.ResolveID(ref)
			if err != nil {
				return dashboard.Change{}, err
			}
			c, err := s.DeletePosition(id)
			if err != nil {
				return dashboard.Change{}, err
			}
			total.Deleted += c.Deleted
		}
		return total, nil
	})
	return status
}
