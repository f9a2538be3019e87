package dashboard

import (
	"fmt"
	"math"
	"strings"
)

// Sleeve is an allocation bucket. Its name is its identity.
type Sleeve struct {
	Name   string  `json:"name"`
	Target Percent `json:"target"`
}

// Sleeve names used as fallbacks.
const (
	LiquiditySleeve  = "Liquidity"
	CoreGrowthSleeve = "Core Growth"
)

// DefaultSleeves returns the starter allocation.
func DefaultSleeves() []Sleeve {
	return []Sleeve{
		{Name: LiquiditySleeve, Target: 25},
		{Name: "Defensive", Target: 30},
		{Name: CoreGrowthSleeve, Target: 35},
		{Name: "Opportunistic/Private", Target: 10},
	}
}

// targetTolerance is how far from 100% the sum of targets may be.
const targetTolerance = 0.01

// SumTargets returns the sum of all targets.
func SumTargets(sleeves []Sleeve) Percent {
	var sum Percent
	for _, s := range sleeves {
		sum += s.Target
	}
	return sum
}

// ValidateTargets checks that sleeve names are unique and not empty, and that
// targets sum to 100%.
func ValidateTargets(sleeves []Sleeve) error {
	seen := make(map[string]struct{}, len(sleeves))
	for _, s := range sleeves {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return fmt.Errorf("%w: empty sleeve name", ErrInvalidTargets)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: duplicated sleeve %q", ErrInvalidTargets, name)
		}
		seen[name] = struct{}{}
	}
	if sum := SumTargets(sleeves); math.Abs(float64(sum)-100) > targetTolerance {
		return fmt.Errorf("%w: targets must sum to 100%%, current sum: %s", ErrInvalidTargets, sum)
	}
	return nil
}

// CoerceSleeve returns the declared sleeve matching name case-insensitively.
// An unknown name is kept as is, an empty one defaults to Core Growth.
func CoerceSleeve(name string, sleeves []Sleeve) string {
	n := strings.TrimSpace(name)
	for _, s := range sleeves {
		if strings.EqualFold(s.Name, n) {
			return s.Name
		}
	}
	if n == "" {
		return CoreGrowthSleeve
	}
	return n
}
