package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQuantity_Conversions(t *testing.T) {
	q := NewQuantityFromFloat64(2.5)
	require.Equal(t, int64(25000), q.Int64Scaled())
	require.Equal(t, 2.5, q.Float64())
	require.Equal(t, "2.5000", q.String())
	require.True(t, q.Decimal().Equal(MustMoney("2.5")))
}

func TestQuantity_Signs(t *testing.T) {
	require.True(t, Quantity(0).IsZero())
	require.True(t, NewQuantityFromFloat64(1).IsPositive())
	require.True(t, NewQuantityFromFloat64(-1).IsNegative())
	require.Equal(t, NewQuantityFromFloat64(3), NewQuantityFromFloat64(-3).Neg())
	require.Equal(t, NewQuantityFromFloat64(3), NewQuantityFromFloat64(-3).Abs())
	require.Equal(t, "-1.2500", NewQuantityFromFloat64(-1.25).String())
}

func TestQuantity_JSONRoundTrip(t *testing.T) {
	q := NewQuantityFromFloat64(12.75)

	data, err := json.Marshal(q)
	require.NoError(t, err)
	require.Equal(t, "12.7500", string(data), "quantities marshal as plain numbers")

	var back Quantity
	require.NoError(t, json.Unmarshal(data, &back))
	require.Equal(t, q, back)
}

func TestQuantity_UnmarshalForms(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Quantity
	}{
		{"integer", `3`, NewQuantityFromFloat64(3)},
		{"decimal", `0.5`, NewQuantityFromFloat64(0.5)},
		{"string form", `"7.25"`, NewQuantityFromFloat64(7.25)},
		{"negative", `-2.5`, NewQuantityFromFloat64(-2.5)},
		{"null reads as zero", `null`, 0},
		{"extra digits truncate", `1.00009`, Quantity(10000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q Quantity
			require.NoError(t, json.Unmarshal([]byte(tt.input), &q))
			require.Equal(t, tt.want, q)
		})
	}
}

func TestQuantity_UnmarshalRejectsGarbage(t *testing.T) {
	var q Quantity
	require.Error(t, json.Unmarshal([]byte(`"abc"`), &q))
}
