package dashboard

import "github.com/shopspring/decimal"

// pos is a helper for test to create a position from const.
func pos(name, sleeve string, value float64) Position {
	return Position{
		ID:       NewID(),
		Name:     name,
		Sleeve:   sleeve,
		Type:     TypeOther,
		ValueNZD: decimal.NewFromFloat(value),
		Currency: BaseCurrency,
		Tags:     []string{},
	}
}

// dec is a helper for test to create a nullable decimal from const.
func dec(v float64) decimal.NullDecimal { return decimal.NewNullDecimal(decimal.NewFromFloat(v)) }

// twoSleeves are the sleeves of the Liquidity / Core Growth scenario.
var twoSleeves = []Sleeve{{Name: LiquiditySleeve, Target: 25}, {Name: CoreGrowthSleeve, Target: 35}}
