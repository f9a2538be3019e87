package dashboard

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCalculate_Allocation(t *testing.T) {
	positions := []Position{
		pos("Savings", LiquiditySleeve, 10000),
		pos("World ETF", CoreGrowthSleeve, 30000),
	}
	o := Calculate(positions, twoSleeves, DefaultRunway(), NewDate(2025, 1, 1))

	if got, want := o.Total, NZD(40000); !got.Equal(want) {
		t.Errorf("Total = %v, want %v", got, want)
	}
	tests := []struct {
		sleeve string
		actual Percent
		drift  Percent
	}{
		{LiquiditySleeve, 25, 0},
		{CoreGrowthSleeve, 75, 40},
	}
	for _, tt := range tests {
		if got := o.ActualPct[tt.sleeve]; !got.Equal(tt.actual) {
			t.Errorf("ActualPct[%q] = %v, want %v", tt.sleeve, got, tt.actual)
		}
		if got := o.Drift[tt.sleeve]; !got.Equal(tt.drift) {
			t.Errorf("Drift[%q] = %v, want %v", tt.sleeve, got, tt.drift)
		}
	}
	if o.MaxDriftSleeve != CoreGrowthSleeve || !o.MaxDrift.Equal(40) {
		t.Errorf("max drift = %q %v, want %q 40", o.MaxDriftSleeve, o.MaxDrift, CoreGrowthSleeve)
	}
	if o.PositionCount != 2 {
		t.Errorf("PositionCount = %d, want 2", o.PositionCount)
	}
}

// TestCalculate_UnknownSleeve checks that sleeve values always sum to the total.
func TestCalculate_UnknownSleeve(t *testing.T) {
	positions := []Position{
		pos("Savings", LiquiditySleeve, 1000),
		pos("Art", "Collectibles", 500),
		pos("Wine", "Collectibles", 250.5),
		pos("Bitcoin", "Speculative", 100),
	}
	o := Calculate(positions, twoSleeves, DefaultRunway(), NewDate(2025, 1, 1))

	sum := NZD(0)
	for _, k := range o.Keys {
		sum = sum.Add(o.BySleeve[k])
	}
	if !sum.Equal(o.Total) {
		t.Errorf("sum of sleeves = %v, want %v", sum, o.Total)
	}

	wantKeys := []string{LiquiditySleeve, CoreGrowthSleeve, "Collectibles", "Speculative"}
	if len(o.Keys) != len(wantKeys) {
		t.Fatalf("Keys = %v, want %v", o.Keys, wantKeys)
	}
	for i := range wantKeys {
		if o.Keys[i] != wantKeys[i] {
			t.Errorf("Keys[%d] = %q, want %q", i, o.Keys[i], wantKeys[i])
		}
	}
	if got := o.Value(CoreGrowthSleeve); !got.IsZero() {
		t.Errorf("declared empty sleeve value = %v, want 0", got)
	}
	if _, ok := o.Drift["Collectibles"]; ok {
		t.Errorf("Drift has an entry for an unknown sleeve")
	}
}

func TestCalculate_ZeroTotal(t *testing.T) {
	o := Calculate(nil, DefaultSleeves(), DefaultRunway(), NewDate(2025, 1, 1))
	if !o.Total.IsZero() {
		t.Errorf("Total = %v, want 0", o.Total)
	}
	for _, s := range DefaultSleeves() {
		if got := o.ActualPct[s.Name]; got != 0 {
			t.Errorf("ActualPct[%q] = %v, want 0", s.Name, got)
		}
		if got, want := o.Drift[s.Name], -s.Target; !got.Equal(want) {
			t.Errorf("Drift[%q] = %v, want %v", s.Name, got, want)
		}
	}
}

func TestCalculate_Runway(t *testing.T) {
	positions := []Position{pos("Savings", LiquiditySleeve, 10000), pos("Fund", CoreGrowthSleeve, 5000)}
	tests := []struct {
		name string
		burn decimal.NullDecimal
		want decimal.NullDecimal
	}{
		{"burn 2000", dec(2000), dec(5)},
		{"burn 0", dec(0), decimal.NullDecimal{}},
		{"no burn", decimal.NullDecimal{}, decimal.NullDecimal{}},
		{"negative burn", dec(-100), decimal.NullDecimal{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runway := RunwayConfig{MonthlyBurnNZD: tt.burn, SleeveName: LiquiditySleeve}
			o := Calculate(positions, twoSleeves, runway, NewDate(2025, 1, 1))
			got := o.RunwayMonths
			if got.Valid != tt.want.Valid || (got.Valid && !got.Decimal.Equal(tt.want.Decimal)) {
				t.Errorf("RunwayMonths = %v, want %v", got, tt.want)
			}
			if !o.RunwayValue.Equal(NZD(10000)) {
				t.Errorf("RunwayValue = %v, want 10000", o.RunwayValue)
			}
		})
	}
}

func TestCalculate_RunwayUnknownSleeve(t *testing.T) {
	runway := RunwayConfig{MonthlyBurnNZD: dec(1000), SleeveName: "Mattress"}
	o := Calculate([]Position{pos("Savings", LiquiditySleeve, 10000)}, twoSleeves, runway, NewDate(2025, 1, 1))
	if !o.RunwayValue.IsZero() {
		t.Errorf("RunwayValue = %v, want 0", o.RunwayValue)
	}
	if !o.RunwayMonths.Valid || !o.RunwayMonths.Decimal.IsZero() {
		t.Errorf("RunwayMonths = %v, want 0", o.RunwayMonths)
	}
}

func TestCalculate_Upcoming(t *testing.T) {
	today := NewDate(2025, 3, 1)
	td := pos("Term deposit", LiquiditySleeve, 5000)
	td.MaturityDate = today.Add(10)
	far := pos("Bond", CoreGrowthSleeve, 5000)
	far.MaturityDate = today.Add(200)
	overdue := pos("Old TD", LiquiditySleeve, 1000)
	overdue.MaturityDate = today.Add(-3)
	edge := pos("Edge", LiquiditySleeve, 1000)
	edge.MaturityDate = today.Add(UpcomingHorizon)
	none := pos("Savings", LiquiditySleeve, 1000)

	o := Calculate([]Position{td, far, overdue, edge, none}, twoSleeves, DefaultRunway(), today)

	want := []struct {
		name string
		days int
	}{
		{"Old TD", -3},
		{"Term deposit", 10},
		{"Edge", UpcomingHorizon},
	}
	if len(o.Upcoming) != len(want) {
		t.Fatalf("len(Upcoming) = %d, want %d", len(o.Upcoming), len(want))
	}
	for i, w := range want {
		if got := o.Upcoming[i]; got.Name != w.name || got.Days != w.days {
			t.Errorf("Upcoming[%d] = %q in %d days, want %q in %d days", i, got.Name, got.Days, w.name, w.days)
		}
	}
}

func TestCalculate_MaxDriftTie(t *testing.T) {
	sleeves := []Sleeve{{Name: "A", Target: 60}, {Name: "B", Target: 40}}
	positions := []Position{pos("a", "A", 50), pos("b", "B", 50)}
	o := Calculate(positions, sleeves, DefaultRunway(), NewDate(2025, 1, 1))
	if o.MaxDriftSleeve != "A" {
		t.Errorf("MaxDriftSleeve = %q, want %q", o.MaxDriftSleeve, "A")
	}

	o = Calculate(nil, nil, DefaultRunway(), NewDate(2025, 1, 1))
	if o.MaxDriftSleeve != "" {
		t.Errorf("MaxDriftSleeve = %q, want none", o.MaxDriftSleeve)
	}
}

func TestDriftBand(t *testing.T) {
	tests := []struct {
		drift Percent
		want  Band
	}{
		{0, BandOK},
		{-2, BandOK},
		{2.5, BandWatch},
		{-6, BandWatch},
		{6.1, BandAct},
		{-40, BandAct},
	}
	for _, tt := range tests {
		if got := DriftBand(tt.drift); got != tt.want {
			t.Errorf("DriftBand(%v) = %v, want %v", tt.drift, got, tt.want)
		}
	}
}
