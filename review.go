package dashboard

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Thresholds used to flag actions in the monthly review.
const (
	RebalanceThreshold Percent = 6  // absolute drift, in points
	RunwayWarningMonths        = 6  // runway below this many months is flagged
	MaturityWarningDays        = 30 // maturities within this many days are flagged
	maxMaturityActions         = 5  // only the most urgent maturities are considered
)

// NoActions is the single action of a review that flagged nothing.
const NoActions = "No urgent actions flagged from current data."

// Actions returns the list of actions suggested by an overview. Rules are
// applied in a fixed order: rebalancing, runway, maturities. The list is never
// empty.
func Actions(o *Overview) []string {
	var actions []string

	for _, s := range o.Sleeves {
		d := o.Drift[s.Name]
		if d.Abs() >= RebalanceThreshold {
			actions = append(actions, fmt.Sprintf("Rebalance: %s is %s vs target.", s.Name, d.SignedString()))
		}
	}

	switch {
	case o.Runway.HasBurn() && o.RunwayMonths.Valid:
		if o.RunwayMonths.Decimal.LessThan(decimal.NewFromInt(RunwayWarningMonths)) {
			actions = append(actions, fmt.Sprintf("Liquidity runway is %s months: consider topping up the %s sleeve.",
				o.RunwayMonths.Decimal.StringFixed(1), o.Runway.Sleeve()))
		}
	case !o.Runway.HasBurn():
		actions = append(actions, "Set your monthly burn (dash runway -burn <amount>) to calculate liquidity runway.")
	}

	upcoming := o.Upcoming
	if len(upcoming) > maxMaturityActions {
		upcoming = upcoming[:maxMaturityActions]
	}
	for _, m := range upcoming {
		if m.Days <= MaturityWarningDays {
			actions = append(actions, fmt.Sprintf("Maturity: %s (%s) on %s.", m.Name, m.Value(), m.MaturityDate))
		}
	}

	if len(actions) == 0 {
		actions = append(actions, NoActions)
	}
	return actions
}
