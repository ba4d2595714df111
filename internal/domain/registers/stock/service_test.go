package stock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/apperror"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/entity"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/id"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/types"
)

// fakeRepo is an in-memory stock repository for unit tests.
// Balances are derived from recorded movements, like the real triggers do.
type fakeRepo struct {
	movements []entity.StockMovement
	lockCalls int
}

type balanceKey struct {
	warehouseID id.ID
	productID   id.ID
}

func (f *fakeRepo) balances() map[balanceKey]types.Quantity {
	out := make(map[balanceKey]types.Quantity)
	for _, m := range f.movements {
		out[balanceKey{m.WarehouseID, m.ProductID}] += m.SignedQuantity()
	}
	return out
}

func (f *fakeRepo) CreateMovements(ctx context.Context, movements []entity.StockMovement) error {
	f.movements = append(f.movements, movements...)
	return nil
}

func (f *fakeRepo) DeleteMovementsByRecorder(ctx context.Context, recorderID id.ID, beforeVersion int) error {
	kept := f.movements[:0]
	for _, m := range f.movements {
		if m.RecorderID == recorderID && m.RecorderVersion < beforeVersion {
			continue
		}
		kept = append(kept, m)
	}
	f.movements = kept
	return nil
}

func (f *fakeRepo) GetMovementsByRecorder(ctx context.Context, recorderID id.ID) ([]entity.StockMovement, error) {
	var out []entity.StockMovement
	for _, m := range f.movements {
		if m.RecorderID == recorderID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetBalance(ctx context.Context, warehouseID, productID id.ID) (entity.StockBalance, error) {
	return entity.StockBalance{
		WarehouseID: warehouseID,
		ProductID:   productID,
		Quantity:    f.balances()[balanceKey{warehouseID, productID}],
	}, nil
}

func (f *fakeRepo) GetBalanceForUpdate(ctx context.Context, warehouseID, productID id.ID) (entity.StockBalance, error) {
	f.lockCalls++
	return f.GetBalance(ctx, warehouseID, productID)
}

func (f *fakeRepo) GetBalancesByWarehouse(ctx context.Context, warehouseID id.ID, filter BalanceFilter) ([]entity.StockBalance, error) {
	var out []entity.StockBalance
	for k, qty := range f.balances() {
		if k.warehouseID != warehouseID {
			continue
		}
		if filter.ExcludeZero && qty.IsZero() {
			continue
		}
		out = append(out, entity.StockBalance{WarehouseID: k.warehouseID, ProductID: k.productID, Quantity: qty})
	}
	return out, nil
}

func (f *fakeRepo) GetBalancesByProduct(ctx context.Context, productID id.ID) ([]entity.StockBalance, error) {
	var out []entity.StockBalance
	for k, qty := range f.balances() {
		if k.productID != productID {
			continue
		}
		out = append(out, entity.StockBalance{WarehouseID: k.warehouseID, ProductID: k.productID, Quantity: qty})
	}
	return out, nil
}

func (f *fakeRepo) GetMovementHistory(ctx context.Context, productID id.ID, filter MovementFilter) ([]entity.StockMovement, error) {
	return nil, nil
}

func (f *fakeRepo) GetTurnover(ctx context.Context, filter TurnoverFilter) (Turnover, error) {
	return Turnover{}, nil
}

var _ Repository = (*fakeRepo)(nil)

func qty(v float64) types.Quantity { return types.NewQuantityFromFloat64(v) }

func now() time.Time { return time.Now().UTC() }

func TestCheckAndReserveStock(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}
	svc := NewService(repo)

	warehouse := id.New()
	pens := id.New()
	paper := id.New()

	require.NoError(t, svc.RecordMovements(ctx, []entity.StockMovement{
		entity.NewStockMovement(id.New(), "GoodsReceipt", 1, now(), entity.RecordTypeReceipt, warehouse, pens, qty(10)),
		entity.NewStockMovement(id.New(), "GoodsReceipt", 1, now(), entity.RecordTypeReceipt, warehouse, paper, qty(3)),
	}))

	t.Run("sufficient stock passes", func(t *testing.T) {
		err := svc.CheckAndReserveStock(ctx, []StockReservation{
			{WarehouseID: warehouse, ProductID: pens, RequiredQty: qty(10)},
			{WarehouseID: warehouse, ProductID: paper, RequiredQty: qty(3)},
		})
		require.NoError(t, err)
	})

	t.Run("shortage fails with insufficient stock code", func(t *testing.T) {
		err := svc.CheckAndReserveStock(ctx, []StockReservation{
			{WarehouseID: warehouse, ProductID: paper, RequiredQty: qty(4)},
		})
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		require.Equal(t, apperror.CodeInsufficientStock, appErr.Code)
		require.Equal(t, 4.0, appErr.Details["requested"])
		require.Equal(t, 3.0, appErr.Details["available"])
	})

	t.Run("first shortage short-circuits", func(t *testing.T) {
		repo.lockCalls = 0
		err := svc.CheckAndReserveStock(ctx, []StockReservation{
			{WarehouseID: warehouse, ProductID: paper, RequiredQty: qty(100)},
			{WarehouseID: warehouse, ProductID: pens, RequiredQty: qty(1)},
		})
		require.Error(t, err)
		require.Equal(t, 1, repo.lockCalls)
	})

	t.Run("unknown product reads as zero balance", func(t *testing.T) {
		err := svc.CheckAndReserveStock(ctx, []StockReservation{
			{WarehouseID: warehouse, ProductID: id.New(), RequiredQty: qty(1)},
		})
		require.Error(t, err)
		appErr, _ := apperror.AsAppError(err)
		require.Equal(t, apperror.CodeInsufficientStock, appErr.Code)
	})
}

func TestCheckBasket_ReportsEveryLine(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}
	svc := NewService(repo)

	warehouse := id.New()
	pens := id.New()
	paper := id.New()
	staplers := id.New()

	require.NoError(t, svc.RecordMovements(ctx, []entity.StockMovement{
		entity.NewStockMovement(id.New(), "GoodsReceipt", 1, now(), entity.RecordTypeReceipt, warehouse, pens, qty(10)),
		entity.NewStockMovement(id.New(), "GoodsReceipt", 1, now(), entity.RecordTypeReceipt, warehouse, paper, qty(2)),
	}))

	results, allAvailable, err := svc.CheckBasket(ctx, warehouse, []StockReservation{
		{ProductID: pens, RequiredQty: qty(5)},
		{ProductID: paper, RequiredQty: qty(5)},
		{ProductID: staplers, RequiredQty: qty(1)},
	})
	require.NoError(t, err)
	require.False(t, allAvailable)
	require.Len(t, results, 3, "advisory check must not short-circuit")

	require.True(t, results[0].Available)
	require.Equal(t, qty(10), results[0].AvailableQty)

	require.False(t, results[1].Available)
	require.Equal(t, qty(2), results[1].AvailableQty)

	require.False(t, results[2].Available)
	require.True(t, results[2].AvailableQty.IsZero())

	// No locks are taken on the advisory path.
	require.Equal(t, 0, repo.lockCalls)
}

func TestCheckBasket_AllAvailable(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}
	svc := NewService(repo)

	warehouse := id.New()
	pens := id.New()

	require.NoError(t, svc.RecordMovements(ctx, []entity.StockMovement{
		entity.NewStockMovement(id.New(), "GoodsReceipt", 1, now(), entity.RecordTypeReceipt, warehouse, pens, qty(10)),
	}))

	results, allAvailable, err := svc.CheckBasket(ctx, warehouse, []StockReservation{
		{ProductID: pens, RequiredQty: qty(10)},
	})
	require.NoError(t, err)
	require.True(t, allAvailable)
	require.Len(t, results, 1)
	require.True(t, results[0].Available)
}

func TestRecordMovements_Validation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&fakeRepo{})

	t.Run("empty set is a no-op", func(t *testing.T) {
		require.NoError(t, svc.RecordMovements(ctx, nil))
	})

	t.Run("zero quantity rejected", func(t *testing.T) {
		m := entity.NewStockMovement(id.New(), "Sale", 1, now(), entity.RecordTypeExpense, id.New(), id.New(), 0)
		err := svc.RecordMovements(ctx, []entity.StockMovement{m})
		require.Error(t, err)
	})

	t.Run("missing recorder rejected", func(t *testing.T) {
		m := entity.NewStockMovement(id.Nil(), "Sale", 1, now(), entity.RecordTypeExpense, id.New(), id.New(), qty(1))
		err := svc.RecordMovements(ctx, []entity.StockMovement{m})
		require.Error(t, err)
	})
}

func TestGetProductAvailability_SumsAcrossWarehouses(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&fakeRepo{})

	main := id.New()
	store := id.New()
	pens := id.New()

	require.NoError(t, svc.RecordMovements(ctx, []entity.StockMovement{
		entity.NewStockMovement(id.New(), "GoodsReceipt", 1, now(), entity.RecordTypeReceipt, main, pens, qty(7)),
		entity.NewStockMovement(id.New(), "GoodsReceipt", 1, now(), entity.RecordTypeReceipt, store, pens, qty(3)),
		entity.NewStockMovement(id.New(), "Sale", 1, now(), entity.RecordTypeExpense, store, pens, qty(2)),
	}))

	total, err := svc.GetProductAvailability(ctx, pens)
	require.NoError(t, err)
	require.Equal(t, qty(8), total)
}
