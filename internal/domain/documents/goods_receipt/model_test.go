package goods_receipt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/entity"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/id"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/types"
)

func qty(v float64) types.Quantity { return types.NewQuantityFromFloat64(v) }

func TestGoodsReceipt_Totals(t *testing.T) {
	doc := NewGoodsReceipt(id.New())
	doc.AddLine(id.New(), qty(10), types.MustMoney("4.50"))
	doc.AddLine(id.New(), qty(2.5), types.MustMoney("8"))

	require.Equal(t, qty(12.5), doc.TotalQuantity)
	require.True(t, doc.TotalAmount.Equal(types.MustMoney("65")))
	require.Equal(t, 1, doc.Lines[0].LineNo)
	require.Equal(t, 2, doc.Lines[1].LineNo)
}

func TestGoodsReceipt_Validate(t *testing.T) {
	ctx := context.Background()

	valid := func() *GoodsReceipt {
		doc := NewGoodsReceipt(id.New())
		doc.AddLine(id.New(), qty(1), types.MustMoney("10"))
		return doc
	}

	t.Run("valid document passes", func(t *testing.T) {
		require.NoError(t, valid().Validate(ctx))
	})

	t.Run("missing warehouse", func(t *testing.T) {
		doc := valid()
		doc.WarehouseID = id.Nil()
		require.Error(t, doc.Validate(ctx))
	})

	t.Run("no lines", func(t *testing.T) {
		doc := NewGoodsReceipt(id.New())
		require.Error(t, doc.Validate(ctx))
	})

	t.Run("fractional quantity is allowed", func(t *testing.T) {
		doc := NewGoodsReceipt(id.New())
		doc.AddLine(id.New(), qty(0.25), types.MustMoney("10"))
		require.NoError(t, doc.Validate(ctx))
	})

	t.Run("zero quantity rejected", func(t *testing.T) {
		doc := NewGoodsReceipt(id.New())
		doc.AddLine(id.New(), 0, types.MustMoney("10"))
		require.Error(t, doc.Validate(ctx))
	})

	t.Run("negative cost rejected", func(t *testing.T) {
		doc := NewGoodsReceipt(id.New())
		doc.AddLine(id.New(), qty(1), types.MustMoney("-5"))
		require.Error(t, doc.Validate(ctx))
	})
}

func TestGoodsReceipt_GenerateMovements(t *testing.T) {
	ctx := context.Background()

	doc := NewGoodsReceipt(id.New())
	product := id.New()
	doc.AddLine(product, qty(20), types.MustMoney("3"))

	set, err := doc.GenerateMovements(ctx)
	require.NoError(t, err)
	require.Len(t, set.Stock, 1)

	m := set.Stock[0]
	require.Equal(t, entity.RecordTypeReceipt, m.RecordType, "receipts replenish stock")
	require.Equal(t, doc.ID, m.RecorderID)
	require.Equal(t, "GoodsReceipt", m.RecorderType)
	require.Equal(t, doc.WarehouseID, m.WarehouseID)
	require.Equal(t, product, m.ProductID)
	require.Equal(t, qty(20), m.Quantity)
}
