package dashboard

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// RunwayConfig tells how to compute the liquidity runway.
type RunwayConfig struct {
	MonthlyBurnNZD decimal.NullDecimal // null disables the runway
	SleeveName     string              // the sleeve whose value is the liquidity pool
}

// DefaultRunway returns a runway without burn, on the Liquidity sleeve.
func DefaultRunway() RunwayConfig { return RunwayConfig{SleeveName: LiquiditySleeve} }

// Sleeve returns the configured runway sleeve, Liquidity when unset.
func (r RunwayConfig) Sleeve() string {
	if strings.TrimSpace(r.SleeveName) == "" {
		return LiquiditySleeve
	}
	return r.SleeveName
}

// Burn returns the monthly burn, zero when unset.
func (r RunwayConfig) Burn() decimal.Decimal {
	if !r.MonthlyBurnNZD.Valid {
		return decimal.Zero
	}
	return r.MonthlyBurnNZD.Decimal
}

// HasBurn reports whether a non-zero monthly burn is configured.
func (r RunwayConfig) HasBurn() bool { return !r.Burn().IsZero() }

func (r RunwayConfig) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.NullNumber("monthlyBurnNZD", r.MonthlyBurnNZD)
	w.Append("sleeveName", r.SleeveName)
	return w.MarshalJSON()
}

func (r *RunwayConfig) UnmarshalJSON(b []byte) error {
	var raw struct {
		MonthlyBurnNZD json.RawMessage `json:"monthlyBurnNZD"`
		SleeveName     json.RawMessage `json:"sleeveName"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*r = RunwayConfig{
		MonthlyBurnNZD: numberFromJSON(raw.MonthlyBurnNZD),
		SleeveName:     stringFromJSON(raw.SleeveName),
	}
	return nil
}
