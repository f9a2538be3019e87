package cmd

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/dashboard"
	"github.com/google/subcommands"
)

// useTempDashboard points the global flags to a fresh dashboard folder.
func useTempDashboard(t *testing.T, backendName string) string {
	t.Helper()
	dir := t.TempDir()
	oldDir, oldBackend, oldPlain := *stateDir, *backend, *plain
	*stateDir, *backend, *plain = dir, backendName, true
	t.Cleanup(func() { *stateDir, *backend, *plain = oldDir, oldBackend, oldPlain })
	return dir
}

// execute runs a subcommand with its command line arguments.
func execute(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("%s %q: %v", c.Name(), args, err)
	}
	return c.Execute(context.Background(), f)
}

func TestLoadConfig(t *testing.T) {
	useTempDashboard(t, "")
	*stateDir = ""

	t.Setenv(EnvState, "")
	t.Setenv(EnvStore, "")
	t.Setenv(EnvVerbose, "")
	got := LoadConfig()
	if got.StateDir != DefaultStateDir || got.Backend != "file" || got.Verbose {
		t.Errorf("LoadConfig() = %+v, want the defaults", got)
	}

	t.Setenv(EnvState, "from-env")
	t.Setenv(EnvStore, "bolt")
	t.Setenv(EnvVerbose, "true")
	got = LoadConfig()
	if got.StateDir != "from-env" || got.Backend != "bolt" || !got.Verbose {
		t.Errorf("LoadConfig() = %+v, want the environment values", got)
	}

	*stateDir = "from-flag"
	if got := LoadConfig().StateDir; got != "from-flag" {
		t.Errorf("LoadConfig().StateDir = %q, want the flag value", got)
	}
}

func TestParseTargets(t *testing.T) {
	got, err := parseTargets([]string{"Liquidity=20", "Core Growth = 70%", "a=b=10"})
	if err != nil {
		t.Fatalf("parseTargets() error: %v", err)
	}
	want := []dashboard.Sleeve{{Name: "Liquidity", Target: 20}, {Name: "Core Growth", Target: 70}, {Name: "a=b", Target: 10}}
	if len(got) != len(want) {
		t.Fatalf("parseTargets() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("parseTargets()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	for _, bad := range []string{"Liquidity", "Liquidity=ten"} {
		if _, err := parseTargets([]string{bad}); err == nil {
			t.Errorf("parseTargets(%q) succeeded, want an error", bad)
		}
	}
}

func TestMergeTargets(t *testing.T) {
	current := []dashboard.Sleeve{{Name: "Liquidity", Target: 50}, {Name: "Growth", Target: 50}}
	got := mergeTargets(current, []dashboard.Sleeve{{Name: "growth", Target: 40}, {Name: "Gold", Target: 10}})
	want := []dashboard.Sleeve{{Name: "Liquidity", Target: 50}, {Name: "Growth", Target: 40}, {Name: "Gold", Target: 10}}
	if len(got) != len(want) {
		t.Fatalf("mergeTargets() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("mergeTargets()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if current[1].Target != 50 {
		t.Errorf("mergeTargets modified its input: %v", current)
	}
}

func TestPositionFlags(t *testing.T) {
	var pf positionFlags
	f := flag.NewFlagSet("edit", flag.ContinueOnError)
	pf.register(f)
	if err := f.Parse([]string{"-value", "1500.50", "-cost", "", "-type", "term deposit", "-sleeve", "liquidity", "-tags", "td, bank,"}); err != nil {
		t.Fatal(err)
	}

	p := dashboard.Position{Name: "Kept", CostNZD: dashboard.ParseNumber("100"), Notes: "kept"}
	if err := pf.apply(f, &p, dashboard.DefaultSleeves()); err != nil {
		t.Fatalf("apply() error: %v", err)
	}
	if p.Name != "Kept" || p.Notes != "kept" {
		t.Errorf("apply() changed fields not on the command line: %+v", p)
	}
	if got, want := p.ValueNZD.String(), "1500.5"; got != want {
		t.Errorf("value = %s, want %s", got, want)
	}
	if p.CostNZD.Valid {
		t.Errorf("cost = %v, want null", p.CostNZD)
	}
	if p.Type != dashboard.TypeTermDeposit || p.Sleeve != dashboard.LiquiditySleeve {
		t.Errorf("type, sleeve = %q, %q", p.Type, p.Sleeve)
	}
	if len(p.Tags) != 2 || p.Tags[0] != "td" || p.Tags[1] != "bank" {
		t.Errorf("tags = %q", p.Tags)
	}

	f = flag.NewFlagSet("edit", flag.ContinueOnError)
	pf.register(f)
	if err := f.Parse([]string{"-maturity", "31/12/2025"}); err != nil {
		t.Fatal(err)
	}
	if err := pf.apply(f, &p, nil); err == nil {
		t.Error("apply(-maturity 31/12/2025) succeeded, want an error")
	}
}

func TestCommands(t *testing.T) {
	for _, backendName := range []string{"file", "bolt"} {
		t.Run(backendName, func(t *testing.T) {
			dir := useTempDashboard(t, backendName)
			ctx := context.Background()

			if got := execute(t, &addCmd{}, "-name", "Kiwi TD", "-sleeve", "Defensive", "-type", "Term Deposit", "-value", "20000", "-maturity", "2025-03-01"); got != subcommands.ExitSuccess {
				t.Fatalf("add = %v", got)
			}
			if got := execute(t, &addCmd{}, "-value", "1"); got != subcommands.ExitFailure {
				t.Errorf("add without a name = %v, want a failure", got)
			}

			csv := filepath.Join(dir, "balances.csv")
			if err := os.WriteFile(csv, []byte("Account,Balance\nEveryday,\"$1,200.50\"\n"), 0o644); err != nil {
				t.Fatal(err)
			}
			if got := execute(t, &importCmd{}, "-mode", "balances", csv); got != subcommands.ExitSuccess {
				t.Fatalf("import = %v", got)
			}

			s, err := loadState(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if got, want := len(s.Positions), 3; got != want {
				t.Fatalf("got %d positions, want %d: %+v", got, want, s.Positions)
			}
			td := dashboard.FilterPositions(s.Positions, dashboard.PositionFilter{Query: "kiwi"})[0]

			if got := execute(t, &editCmd{}, "-value", "21000", td.ID[:8]); got != subcommands.ExitSuccess {
				t.Fatalf("edit = %v", got)
			}
			if got := execute(t, &targetsCmd{}, "Liquidity=50", "Growth=40"); got != subcommands.ExitFailure {
				t.Errorf("targets summing to 90 = %v, want a failure", got)
			}
			if got := execute(t, &runwayCmd{}, "-burn", "2000"); got != subcommands.ExitSuccess {
				t.Fatalf("runway = %v", got)
			}

			backup := filepath.Join(dir, "backup.json")
			if got := execute(t, &backupCmd{}, "-o", backup); got != subcommands.ExitSuccess {
				t.Fatalf("backup = %v", got)
			}
			if got := execute(t, &rmCmd{}, td.ID); got != subcommands.ExitSuccess {
				t.Fatalf("rm = %v", got)
			}
			if got := execute(t, &wipeCmd{}); got != subcommands.ExitUsageError {
				t.Errorf("wipe without -yes = %v, want a usage error", got)
			}
			if got := execute(t, &wipeCmd{}, "-yes"); got != subcommands.ExitSuccess {
				t.Fatalf("wipe = %v", got)
			}
			if got := execute(t, &restoreCmd{}, backup); got != subcommands.ExitSuccess {
				t.Fatalf("restore = %v", got)
			}

			s, err = loadState(ctx)
			if err != nil {
				t.Fatal(err)
			}
			p, ok := s.Position(td.ID)
			if !ok {
				t.Fatalf("position %s not restored: %+v", td.ID, s.Positions)
			}
			if got, want := p.ValueNZD.String(), "21000"; got != want {
				t.Errorf("restored value = %s, want %s", got, want)
			}
			if got, want := s.Runway.Burn().String(), "2000"; got != want {
				t.Errorf("restored burn = %s, want %s", got, want)
			}

			for _, c := range []subcommands.Command{&overviewCmd{}, &reviewCmd{}, &positionsCmd{}, &targetsCmd{}} {
				if got := execute(t, c); got != subcommands.ExitSuccess {
					t.Errorf("%s = %v", c.Name(), got)
				}
			}
			if got := execute(t, &queryCmd{}, "$.positions[0].name"); got != subcommands.ExitSuccess {
				t.Errorf("query = %v", got)
			}
		})
	}
}

func TestCompletion(t *testing.T) {
	c := Completion()
	for _, sub := range Commands {
		if _, ok := c.Sub[sub.Name()]; !ok {
			t.Errorf("no completion for %q", sub.Name())
		}
	}
	if _, ok := c.Sub["import"].Flags["mode"]; !ok {
		t.Error("no completion for import -mode")
	}
}
