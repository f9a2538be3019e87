package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/dashboard"
	"github.com/shopspring/decimal"
)

// longRunway is the runway above which the exact number of months is not shown.
var longRunway = decimal.NewFromInt(24)

// RunwayMonths returns the runway for the review: "24+ months", "5.0 months", or "-".
func RunwayMonths(o *dashboard.Overview) string {
	if !o.RunwayMonths.Valid {
		return "-"
	}
	if o.RunwayMonths.Decimal.GreaterThanOrEqual(longRunway) {
		return "24+ months"
	}
	return o.RunwayMonths.Decimal.StringFixed(1) + " months"
}

// RunwayLabel returns the short runway label: "Set burn", "24+ mo" or "5.0 mo".
func RunwayLabel(o *dashboard.Overview) string {
	if !o.RunwayMonths.Valid {
		return "Set burn"
	}
	if o.RunwayMonths.Decimal.GreaterThanOrEqual(longRunway) {
		return "24+ mo"
	}
	return o.RunwayMonths.Decimal.StringFixed(1) + " mo"
}

// When returns how far a maturity is: "Overdue (3d)", "Today" or "In 10d".
func When(days int) string {
	switch {
	case days < 0:
		return fmt.Sprintf("Overdue (%dd)", -days)
	case days == 0:
		return "Today"
	default:
		return fmt.Sprintf("In %dd", days)
	}
}

// Rate returns the expected rate label, "" when unknown or zero.
func Rate(rate decimal.NullDecimal) string {
	if !rate.Valid || rate.Decimal.IsZero() {
		return ""
	}
	return fmt.Sprintf("rate %s%% p.a.", rate.Decimal.StringFixed(2))
}

// cell escapes a value for a markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
