package dashboard

import (
	"sort"

	"github.com/shopspring/decimal"
)

// UpcomingHorizon is how many days ahead maturities are surfaced. Overdue
// maturities have no lower bound.
const UpcomingHorizon = 120

// Maturity is a position with a maturity date, and the number of days until it.
type Maturity struct {
	Position
	Days int // negative when overdue
}

// Overview is the result of the portfolio calculation.
type Overview struct {
	Sleeves []Sleeve     // declared sleeves, in order
	Runway  RunwayConfig // as configured

	Total     Money
	Keys      []string // declared sleeves first, then unknown sleeve names in order of appearance
	BySleeve  map[string]Money
	ActualPct map[string]Percent
	Drift     map[string]Percent // declared sleeves only

	RunwayValue  Money
	RunwayMonths decimal.NullDecimal // null when no positive burn is configured

	Upcoming []Maturity // most urgent first

	MaxDriftSleeve string // "" when every drift is zero
	MaxDrift       Percent

	PositionCount int
	CashAccounts  int
}

// Calculate computes the overview of positions against the sleeve targets.
//
// It is a pure function: today is the reference date for maturities.
func Calculate(positions []Position, sleeves []Sleeve, runway RunwayConfig, today Date) *Overview {
	o := &Overview{
		Sleeves:       sleeves,
		Runway:        runway,
		Total:         NZD(0),
		BySleeve:      make(map[string]Money, len(sleeves)),
		ActualPct:     make(map[string]Percent, len(sleeves)),
		Drift:         make(map[string]Percent, len(sleeves)),
		PositionCount: len(positions),
	}

	for _, s := range sleeves {
		if _, exists := o.BySleeve[s.Name]; !exists {
			o.Keys = append(o.Keys, s.Name)
		}
		o.BySleeve[s.Name] = NZD(0)
	}
	for _, p := range positions {
		o.Total = o.Total.Add(p.Value())
		if _, exists := o.BySleeve[p.Sleeve]; !exists {
			o.Keys = append(o.Keys, p.Sleeve)
			o.BySleeve[p.Sleeve] = NZD(0)
		}
		o.BySleeve[p.Sleeve] = o.BySleeve[p.Sleeve].Add(p.Value())
		if p.Type == TypeCash {
			o.CashAccounts++
		}
	}

	for _, k := range o.Keys {
		if o.Total.IsZero() {
			o.ActualPct[k] = 0
			continue
		}
		pct := o.BySleeve[k].DivMoney(o.Total).Mul(decimal.NewFromInt(100))
		o.ActualPct[k] = Percent(pct.InexactFloat64())
	}

	for _, s := range sleeves {
		o.Drift[s.Name] = o.ActualPct[s.Name] - s.Target
	}

	o.RunwayValue = o.Value(runway.Sleeve())
	if burn := runway.Burn(); burn.IsPositive() {
		o.RunwayMonths = decimal.NewNullDecimal(o.RunwayValue.Decimal().Div(burn))
	}

	for _, p := range positions {
		if p.MaturityDate.IsZero() {
			continue
		}
		days := p.MaturityDate.DaysSince(today)
		if days > UpcomingHorizon {
			continue
		}
		o.Upcoming = append(o.Upcoming, Maturity{Position: p, Days: days})
	}
	sort.SliceStable(o.Upcoming, func(i, j int) bool { return o.Upcoming[i].Days < o.Upcoming[j].Days })

	for _, s := range sleeves {
		// strictly greater: earlier sleeves win ties.
		if d := o.Drift[s.Name].Abs(); d > o.MaxDrift {
			o.MaxDrift = d
			o.MaxDriftSleeve = s.Name
		}
	}
	return o
}

// Value returns the aggregated value of a sleeve, zero for an unknown one.
func (o *Overview) Value(sleeve string) Money {
	if v, ok := o.BySleeve[sleeve]; ok {
		return v
	}
	return NZD(0)
}

// Target returns the target of a declared sleeve.
func (o *Overview) Target(sleeve string) (Percent, bool) {
	for _, s := range o.Sleeves {
		if s.Name == sleeve {
			return s.Target, true
		}
	}
	return 0, false
}

// Band classifies a drift magnitude.
type Band int

const (
	BandOK    Band = iota // within 2 points of the target
	BandWatch             // within 6 points
	BandAct               // beyond 6 points
)

// DriftBand returns the band a drift falls in.
func DriftBand(d Percent) Band {
	switch a := d.Abs(); {
	case a <= 2:
		return BandOK
	case a <= 6:
		return BandWatch
	default:
		return BandAct
	}
}

func (b Band) String() string {
	switch b {
	case BandOK:
		return "ok"
	case BandWatch:
		return "watch"
	default:
		return "rebalance"
	}
}
