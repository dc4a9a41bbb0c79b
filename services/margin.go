package services

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ProjectPrice converts a cost to a client sell price using the divisor
// model: price = cost / (1 - margin). Margin is the fraction of the sell
// price that is profit, so the divisor form is the only one that satisfies
// margin == (price - cost) / price exactly.
//
// A margin outside [0, 1) is rejected rather than clamped; clamping would
// mask a budgeting mistake. At margin == 1 the divisor is undefined.
func ProjectPrice(cost, margin decimal.Decimal) (decimal.Decimal, error) {
	if err := ValidateMargin(margin); err != nil {
		return decimal.Zero, err
	}
	return cost.Div(decimal.NewFromInt(1).Sub(margin)), nil
}

// MarginDollars returns the profit implied by the divisor model for the
// given cost: cost * margin / (1 - margin). It holds that
// cost + MarginDollars(cost, m) == ProjectPrice(cost, m).
func MarginDollars(cost, margin decimal.Decimal) (decimal.Decimal, error) {
	price, err := ProjectPrice(cost, margin)
	if err != nil {
		return decimal.Zero, err
	}
	return price.Sub(cost), nil
}

// ValidateMargin checks that margin is a fraction in [0, 1).
func ValidateMargin(margin decimal.Decimal) error {
	if margin.IsNegative() || margin.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("margin must be a fraction in [0, 1), got %s", margin)
	}
	return nil
}
