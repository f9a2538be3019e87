package dashboard

import (
	"encoding/json"
	"fmt"
	"math"
)

// Percent is a percentage, 100 means the whole.
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	return math.Abs(float64(p-q)) < precision
}

// Abs returns the magnitude of p.
func (p Percent) Abs() Percent { return Percent(math.Abs(float64(p))) }

func (p Percent) String() string {
	return fmt.Sprintf("%.1f%%", float64(p))
}

// SignedString always shows the sign, including for zero.
func (p Percent) SignedString() string {
	if p >= 0 {
		return fmt.Sprintf("+%.1f%%", math.Abs(float64(p)))
	}
	return fmt.Sprintf("%.1f%%", float64(p))
}

// UnmarshalJSON accepts a JSON number, a numeric string or null (as 0).
func (p *Percent) UnmarshalJSON(b []byte) error {
	n := numberFromJSON(b)
	if !n.Valid {
		*p = 0
		return nil
	}
	*p = Percent(n.Decimal.InexactFloat64())
	return nil
}

func (p Percent) MarshalJSON() ([]byte, error) { return json.Marshal(float64(p)) }
