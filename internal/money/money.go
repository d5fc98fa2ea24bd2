package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid money amount")

// Round2 rounds to 2 decimal places, half up. Every monetary figure in
// the system passes through here before being stored or displayed.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Parse converts an operator-entered amount ("3675", "3675.00") into a
// non-negative 2dp decimal.
func Parse(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, ErrInvalidAmount
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if d.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}

	return Round2(d), nil
}

// PercentRate converts a percentage figure (5 means 5%) to a multiplier.
func PercentRate(percent decimal.Decimal) decimal.Decimal {
	return percent.Div(decimal.NewFromInt(100))
}
