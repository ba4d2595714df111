// Package pricing implements promotion policies and basket total calculation.
package pricing

import (
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/apperror"
)

// Policy identifies a promotion applied to a sale basket.
//
// Basket policies discount the basket subtotal as a whole. Line policies
// charge for ceil(quantity/N) units on each line, which matters when
// quantities are not multiples of N.
type Policy string

const (
	PolicyNone        Policy = "none"
	PolicyTwoForOne   Policy = "two_for_one"
	PolicyThreeForOne Policy = "three_for_one"
	PolicyThreeForTwo Policy = "three_for_two"
	PolicyPercentage  Policy = "percentage"

	PolicyTwoForOneLines   Policy = "two_for_one_lines"
	PolicyThreeForOneLines Policy = "three_for_one_lines"
)

var knownPolicies = map[Policy]struct{}{
	PolicyNone:             {},
	PolicyTwoForOne:        {},
	PolicyThreeForOne:      {},
	PolicyThreeForTwo:      {},
	PolicyPercentage:       {},
	PolicyTwoForOneLines:   {},
	PolicyThreeForOneLines: {},
}

// ParsePolicy validates a policy tag. The enum is closed: unknown tags are
// rejected, they never fall back to "none". An empty string means no promotion.
func ParsePolicy(s string) (Policy, error) {
	if s == "" {
		return PolicyNone, nil
	}
	p := Policy(s)
	if !p.Valid() {
		return "", apperror.NewValidation("unknown promotion policy").
			WithDetail("policy", s)
	}
	return p, nil
}

// Valid reports whether the policy is a member of the closed enum.
func (p Policy) Valid() bool {
	_, ok := knownPolicies[p]
	return ok
}

// IsPerLine reports whether the policy applies per basket line rather than
// to the subtotal.
func (p Policy) IsPerLine() bool {
	return p == PolicyTwoForOneLines || p == PolicyThreeForOneLines
}

// String implements fmt.Stringer.
func (p Policy) String() string {
	return string(p)
}
