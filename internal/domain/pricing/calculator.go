package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/apperror"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/types"
)

// Line is one basket position for pricing purposes.
type Line struct {
	Quantity  types.Quantity
	UnitPrice types.Money
}

var (
	two        = decimal.NewFromInt(2)
	three      = decimal.NewFromInt(3)
	oneHundred = decimal.NewFromInt(100)
)

// Subtotal returns the undiscounted sum of quantity * unit price over all lines.
func Subtotal(lines []Line) types.Money {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Quantity.Decimal().Mul(l.UnitPrice))
	}
	return sum
}

// ComputeTotal calculates the payable total for a basket under a promotion
// policy. The function is pure: same inputs always produce the same total.
//
// Rules:
//   - empty basket totals zero regardless of policy
//   - percentage discounts outside [0, 100] are clamped, not rejected
//   - the result is rounded to 2 decimal places and never negative
func ComputeTotal(lines []Line, policy Policy, percent types.Money) (types.Money, error) {
	if !policy.Valid() {
		return decimal.Zero, apperror.NewValidation("unknown promotion policy").
			WithDetail("policy", string(policy))
	}

	if len(lines) == 0 {
		return decimal.Zero.Round(2), nil
	}

	var total decimal.Decimal
	switch policy {
	case PolicyNone:
		total = Subtotal(lines)
	case PolicyTwoForOne:
		total = Subtotal(lines).Div(two)
	case PolicyThreeForOne:
		total = Subtotal(lines).Div(three)
	case PolicyThreeForTwo:
		total = Subtotal(lines).Mul(two).Div(three)
	case PolicyPercentage:
		total = Subtotal(lines).Mul(oneHundred.Sub(clampPercent(percent))).Div(oneHundred)
	case PolicyTwoForOneLines:
		total = perLineTotal(lines, two)
	case PolicyThreeForOneLines:
		total = perLineTotal(lines, three)
	}

	total = total.Round(2)
	if total.IsNegative() {
		total = decimal.Zero.Round(2)
	}
	return total, nil
}

// perLineTotal charges ceil(quantity/n) units per line at the line's unit price.
func perLineTotal(lines []Line, n decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		payable := l.Quantity.Decimal().Div(n).Ceil()
		sum = sum.Add(payable.Mul(l.UnitPrice))
	}
	return sum
}

func clampPercent(p types.Money) decimal.Decimal {
	if p.IsNegative() {
		return decimal.Zero
	}
	if p.GreaterThan(oneHundred) {
		return oneHundred
	}
	return p
}
