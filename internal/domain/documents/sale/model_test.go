package sale

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/entity"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/id"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/types"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain/pricing"
)

func validSale() *Sale {
	doc := NewSale(id.New(), id.New(), ChannelStore)
	doc.AddLine(id.New(), qty(2), types.MustMoney("10"))
	return doc
}

func TestSale_AddLineNumbersAndAmounts(t *testing.T) {
	doc := NewSale(id.New(), id.New(), ChannelStore)
	doc.AddLine(id.New(), qty(2), types.MustMoney("10.50"))
	doc.AddLine(id.New(), qty(0.5), types.MustMoney("7"))

	require.Equal(t, 1, doc.Lines[0].LineNo)
	require.Equal(t, 2, doc.Lines[1].LineNo)
	require.True(t, doc.Lines[0].Amount.Equal(types.MustMoney("21")))
	require.True(t, doc.Lines[1].Amount.Equal(types.MustMoney("3.50")))
	require.True(t, doc.Subtotal.Equal(types.MustMoney("24.50")))
}

func TestSale_RecalculateTotalsAppliesPolicy(t *testing.T) {
	doc := NewSale(id.New(), id.New(), ChannelOnline)
	doc.AddLine(id.New(), qty(2), types.MustMoney("50"))

	doc.PromotionPolicy = pricing.PolicyPercentage
	doc.DiscountPercent = types.MustMoney("10")
	doc.RecalculateTotals()

	require.True(t, doc.Subtotal.Equal(types.MustMoney("100")))
	require.True(t, doc.Total.Equal(types.MustMoney("90")))
}

func TestSale_RecalculateTotalsInvalidPolicyKeepsSubtotal(t *testing.T) {
	doc := validSale()
	doc.PromotionPolicy = "happy_hour"
	doc.RecalculateTotals()

	// The invalid policy is rejected later by Validate; until then the
	// document must not become cheaper than the subtotal.
	require.True(t, doc.Total.Equal(doc.Subtotal))
}

func TestSale_Validate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid document passes", func(t *testing.T) {
		require.NoError(t, validSale().Validate(ctx))
	})

	t.Run("missing lead", func(t *testing.T) {
		doc := validSale()
		doc.LeadID = id.Nil()
		require.Error(t, doc.Validate(ctx))
	})

	t.Run("missing warehouse", func(t *testing.T) {
		doc := validSale()
		doc.WarehouseID = id.Nil()
		require.Error(t, doc.Validate(ctx))
	})

	t.Run("bad number format", func(t *testing.T) {
		doc := validSale()
		doc.Number = "br-001"
		require.Error(t, doc.Validate(ctx))
	})

	t.Run("well-formed number passes", func(t *testing.T) {
		doc := validSale()
		doc.Number = "BR0042"
		require.NoError(t, doc.Validate(ctx))
	})

	t.Run("no lines", func(t *testing.T) {
		doc := NewSale(id.New(), id.New(), ChannelStore)
		require.Error(t, doc.Validate(ctx))
	})

	t.Run("fractional quantity below one", func(t *testing.T) {
		doc := NewSale(id.New(), id.New(), ChannelStore)
		doc.AddLine(id.New(), qty(0.5), types.MustMoney("10"))
		require.Error(t, doc.Validate(ctx))
	})

	t.Run("negative price", func(t *testing.T) {
		doc := NewSale(id.New(), id.New(), ChannelStore)
		doc.AddLine(id.New(), qty(1), types.MustMoney("-1"))
		require.Error(t, doc.Validate(ctx))
	})

	t.Run("zero price is allowed", func(t *testing.T) {
		doc := NewSale(id.New(), id.New(), ChannelStore)
		doc.AddLine(id.New(), qty(1), types.Zero())
		require.NoError(t, doc.Validate(ctx))
	})
}

func TestSale_GenerateMovements(t *testing.T) {
	ctx := context.Background()

	doc := NewSale(id.New(), id.New(), ChannelMarketplace)
	productA := id.New()
	productB := id.New()
	doc.AddLine(productA, qty(2), types.MustMoney("10"))
	doc.AddLine(productB, qty(3), types.MustMoney("5"))

	set, err := doc.GenerateMovements(ctx)
	require.NoError(t, err)
	require.Len(t, set.Stock, 2)

	for _, m := range set.Stock {
		require.Equal(t, entity.RecordTypeExpense, m.RecordType, "sales consume stock")
		require.Equal(t, doc.ID, m.RecorderID)
		require.Equal(t, "Sale", m.RecorderType)
		require.Equal(t, doc.PostedVersion+1, m.RecorderVersion)
		require.Equal(t, doc.WarehouseID, m.WarehouseID)
	}

	require.Equal(t, productA, set.Stock[0].ProductID)
	require.Equal(t, qty(2), set.Stock[0].Quantity)
	require.Equal(t, productB, set.Stock[1].ProductID)
	require.Equal(t, qty(3), set.Stock[1].Quantity)
}
