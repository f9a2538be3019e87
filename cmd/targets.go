package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/dashboard"
	"github.com/etnz/dashboard/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type targetsCmd struct {
	merge bool
	reset bool
}

func (*targetsCmd) Name() string     { return "targets" }
func (*targetsCmd) Synopsis() string { return "show or set the sleeve targets" }
func (*targetsCmd) Usage() string {
	return `dash targets [-reset] [-add] [<Sleeve>=<pct>...]

  Without arguments, show the sleeves and their target allocation.

  With arguments, replace the sleeves by the given ones, in order. Targets must
  sum to 100%. With -add, the given sleeves update or extend the current ones
  instead.

  Example:

    dash targets Liquidity=20 Defensive=30 "Core Growth=40" Opportunistic/Private=10
`
}

func (c *targetsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.merge, "add", false, "Update or extend the current sleeves instead of replacing them")
	f.BoolVar(&c.reset, "reset", false, "Restore the default sleeves")
}

func (c *targetsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.reset && f.NArg() > 0 {
		fmt.Fprintln(os.Stderr, "Error: -reset takes no argument")
		return subcommands.ExitUsageError
	}

	if !c.reset && f.NArg() == 0 {
		s, err := loadState(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.TargetsMarkdown(s.Sleeves))
		return subcommands.ExitSuccess
	}

	given, err := parseTargets(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	state, status := run(ctx, func(s *dashboard.State) (dashboard.Change, error) {
		if c.reset {
			return s.ResetTargets(), nil
		}
		if c.merge {
			return s.SaveTargets(mergeTargets(s.Sleeves, given))
		}
		return s.SaveTargets(given)
	})
	if state != nil {
		printMarkdown(renderer.TargetsMarkdown(state.Sleeves))
	}
	return status
}

// parseTargets parses "Name=pct" arguments. The percent sign is optional.
func parseTargets(args []string) ([]dashboard.Sleeve, error) {
	sleeves := make([]dashboard.Sleeve, 0, len(args))
	for _, arg := range args {
		i := strings.LastIndex(arg, "=")
		if i < 0 {
			return nil, fmt.Errorf("invalid target %q, want <Sleeve>=<pct>", arg)
		}
		name := strings.TrimSpace(arg[:i])
		value := strings.TrimSuffix(strings.TrimSpace(arg[i+1:]), "%")
		pct, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid target %q: %w", arg, err)
		}
		sleeves = append(sleeves, dashboard.Sleeve{Name: name, Target: dashboard.Percent(pct)})
	}
	return sleeves, nil
}

// mergeTargets updates current with given, matching names case-insensitively.
// New names are appended.
func mergeTargets(current, given []dashboard.Sleeve) []dashboard.Sleeve {
	res := append([]dashboard.Sleeve(nil), current...)
	for _, g := range given {
		found := false
		for i := range res {
			if strings.EqualFold(res[i].Name, g.Name) {
				res[i].Target = g.Target
				found = true
				break
			}
		}
		if !found {
			res = append(res, g)
		}
	}
	return res
}

type runwayCmd struct {
	burn   string
	sleeve string
	clear  bool
}

func (*runwayCmd) Name() string     { return "runway" }
func (*runwayCmd) Synopsis() string { return "show or set the liquidity runway settings" }
func (*runwayCmd) Usage() string {
	return `dash runway [-burn <nzd>] [-sleeve <sleeve>] [-clear]

  Without flags, show the runway: how many months of spending the runway
  sleeve covers at the configured monthly burn.
`
}

func (c *runwayCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.burn, "burn", "", "Monthly spending in NZD")
	f.StringVar(&c.sleeve, "sleeve", "", "Sleeve holding the liquidity, Liquidity by default")
	f.BoolVar(&c.clear, "clear", false, "Remove the monthly burn")
}

func (c *runwayCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	set := false
	f.Visit(func(*flag.Flag) { set = true })

	var state *dashboard.State
	if !set {
		var err error
		if state, err = loadState(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	} else {
		burn, err := parseAmount("burn", c.burn)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		if burn.Valid && burn.Decimal.LessThan(decimal.Zero) {
			fmt.Fprintln(os.Stderr, "Error: burn must be positive")
			return subcommands.ExitUsageError
		}
		var status subcommands.ExitStatus
		state, status = run(ctx, func(s *dashboard.State) (dashboard.Change, error) {
			r := s.Runway
			if c.clear {
				r.MonthlyBurnNZD = decimal.NullDecimal{}
			}
			if c.burn != "" {
				r.MonthlyBurnNZD = burn
			}
			if c.sleeve != "" {
				r.SleeveName = dashboard.CoerceSleeve(c.sleeve, s.Sleeves)
			}
			return s.SetRunway(r), nil
		})
		if state == nil {
			return status
		}
	}

	o := state.Overview(today())
	printMarkdown(renderer.RunwayMarkdown(o))
	return subcommands.ExitSuccess
}
