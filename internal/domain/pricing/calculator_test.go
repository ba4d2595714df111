package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/types"
)

func line(qty float64, price string) Line {
	return Line{
		Quantity:  types.NewQuantityFromFloat64(qty),
		UnitPrice: types.MustMoney(price),
	}
}

// basket40 has a subtotal of exactly 40.
func basket40() []Line {
	return []Line{
		line(2, "10"), // 20
		line(4, "5"),  // 20
	}
}

func TestComputeTotal_BasketPolicies(t *testing.T) {
	tests := []struct {
		name    string
		policy  Policy
		percent string
		want    string
	}{
		{"none keeps subtotal", PolicyNone, "0", "40"},
		{"two for one halves", PolicyTwoForOne, "0", "20"},
		{"three for one pays a third", PolicyThreeForOne, "0", "13.33"},
		{"three for two pays two thirds", PolicyThreeForTwo, "0", "26.67"},
		{"percentage 25", PolicyPercentage, "25", "30"},
		{"percentage 100 is free", PolicyPercentage, "100", "0"},
		{"percentage above 100 clamps", PolicyPercentage, "150", "0"},
		{"negative percentage clamps to none", PolicyPercentage, "-10", "40"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeTotal(basket40(), tt.policy, types.MustMoney(tt.percent))
			require.NoError(t, err)
			require.True(t, got.Equal(types.MustMoney(tt.want)),
				"policy %s: want %s, got %s", tt.policy, tt.want, got)
		})
	}
}

func TestComputeTotal_PerLinePolicies(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
		lines  []Line
		want   string
	}{
		{
			// 3 units at 10: pay ceil(3/2)=2 -> 20
			"two for one lines odd quantity",
			PolicyTwoForOneLines,
			[]Line{line(3, "10")},
			"20",
		},
		{
			// 4 units at 10: pay 2 -> 20
			"two for one lines even quantity",
			PolicyTwoForOneLines,
			[]Line{line(4, "10")},
			"20",
		},
		{
			// 5 units at 6: pay ceil(5/3)=2 -> 12
			"three for one lines",
			PolicyThreeForOneLines,
			[]Line{line(5, "6")},
			"12",
		},
		{
			// Per-line, not per-basket: 1+1 units on two lines pay full price.
			"single units across lines get no discount",
			PolicyTwoForOneLines,
			[]Line{line(1, "10"), line(1, "10")},
			"20",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeTotal(tt.lines, tt.policy, decimal.Zero)
			require.NoError(t, err)
			require.True(t, got.Equal(types.MustMoney(tt.want)),
				"want %s, got %s", tt.want, got)
		})
	}
}

func TestComputeTotal_EmptyBasket(t *testing.T) {
	for p := range knownPolicies {
		got, err := ComputeTotal(nil, p, types.MustMoney("50"))
		require.NoError(t, err)
		require.True(t, got.IsZero(), "policy %s: empty basket must total zero, got %s", p, got)
	}
}

func TestComputeTotal_UnknownPolicyRejected(t *testing.T) {
	_, err := ComputeTotal(basket40(), Policy("happy_hour"), decimal.Zero)
	require.Error(t, err)

	_, err = ParsePolicy("happy_hour")
	require.Error(t, err)

	p, err := ParsePolicy("")
	require.NoError(t, err)
	require.Equal(t, PolicyNone, p)
}

func TestComputeTotal_NeverExceedsSubtotal(t *testing.T) {
	lines := []Line{
		line(3, "19.99"),
		line(1, "0.01"),
		line(7, "2.50"),
	}
	subtotal := Subtotal(lines).Round(2)

	for p := range knownPolicies {
		got, err := ComputeTotal(lines, p, types.MustMoney("30"))
		require.NoError(t, err)
		require.False(t, got.IsNegative(), "policy %s produced negative total", p)
		require.True(t, got.LessThanOrEqual(subtotal),
			"policy %s: total %s exceeds subtotal %s", p, got, subtotal)
	}
}

func TestComputeTotal_PercentageMonotonic(t *testing.T) {
	lines := basket40()
	prev := types.MustMoney("41") // above any possible total

	for pct := 0; pct <= 100; pct += 5 {
		got, err := ComputeTotal(lines, PolicyPercentage, decimal.NewFromInt(int64(pct)))
		require.NoError(t, err)
		require.True(t, got.LessThanOrEqual(prev),
			"total must not increase as discount grows: %d%% -> %s, prev %s", pct, got, prev)
		prev = got
	}
}

func TestComputeTotal_Idempotent(t *testing.T) {
	lines := []Line{line(3, "13.37"), line(2, "0.99")}

	first, err := ComputeTotal(lines, PolicyThreeForTwo, decimal.Zero)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := ComputeTotal(lines, PolicyThreeForTwo, decimal.Zero)
		require.NoError(t, err)
		require.True(t, first.Equal(again), "recomputation changed total: %s vs %s", first, again)
	}
}
