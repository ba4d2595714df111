package posting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/apperror"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/entity"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/id"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/types"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain/registers/stock"
)

// passthroughTx runs the callback directly. Rollback semantics are covered by
// the real TxManager; engine tests only care about call ordering.
type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// memStockRepo keeps movements in memory and derives balances from them.
type memStockRepo struct {
	movements []entity.StockMovement
}

func (r *memStockRepo) balance(warehouseID, productID id.ID) types.Quantity {
	var total types.Quantity
	for _, m := range r.movements {
		if m.WarehouseID == warehouseID && m.ProductID == productID {
			total += m.SignedQuantity()
		}
	}
	return total
}

func (r *memStockRepo) CreateMovements(ctx context.Context, movements []entity.StockMovement) error {
	r.movements = append(r.movements, movements...)
	return nil
}

func (r *memStockRepo) DeleteMovementsByRecorder(ctx context.Context, recorderID id.ID, beforeVersion int) error {
	kept := r.movements[:0]
	for _, m := range r.movements {
		if m.RecorderID == recorderID && m.RecorderVersion < beforeVersion {
			continue
		}
		kept = append(kept, m)
	}
	r.movements = kept
	return nil
}

func (r *memStockRepo) GetMovementsByRecorder(ctx context.Context, recorderID id.ID) ([]entity.StockMovement, error) {
	var out []entity.StockMovement
	for _, m := range r.movements {
		if m.RecorderID == recorderID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memStockRepo) GetBalance(ctx context.Context, warehouseID, productID id.ID) (entity.StockBalance, error) {
	return entity.StockBalance{WarehouseID: warehouseID, ProductID: productID, Quantity: r.balance(warehouseID, productID)}, nil
}

func (r *memStockRepo) GetBalanceForUpdate(ctx context.Context, warehouseID, productID id.ID) (entity.StockBalance, error) {
	return r.GetBalance(ctx, warehouseID, productID)
}

func (r *memStockRepo) GetBalancesByWarehouse(ctx context.Context, warehouseID id.ID, filter stock.BalanceFilter) ([]entity.StockBalance, error) {
	return nil, nil
}

func (r *memStockRepo) GetBalancesByProduct(ctx context.Context, productID id.ID) ([]entity.StockBalance, error) {
	return nil, nil
}

func (r *memStockRepo) GetMovementHistory(ctx context.Context, productID id.ID, filter stock.MovementFilter) ([]entity.StockMovement, error) {
	return nil, nil
}

func (r *memStockRepo) GetTurnover(ctx context.Context, filter stock.TurnoverFilter) (stock.Turnover, error) {
	return stock.Turnover{}, nil
}

var _ stock.Repository = (*memStockRepo)(nil)

// testDoc is a minimal Postable with configurable movements.
type testDoc struct {
	entity.Document
	warehouseID id.ID
	expenses    map[id.ID]types.Quantity
	receipts    map[id.ID]types.Quantity
}

func newTestDoc(warehouseID id.ID) *testDoc {
	return &testDoc{
		Document:    entity.NewDocument(),
		warehouseID: warehouseID,
		expenses:    make(map[id.ID]types.Quantity),
		receipts:    make(map[id.ID]types.Quantity),
	}
}

func (d *testDoc) GetDocumentType() string { return "TestDoc" }

func (d *testDoc) GenerateMovements(ctx context.Context) (*MovementSet, error) {
	set := NewMovementSet()
	version := d.PostedVersion + 1
	for productID, quantity := range d.receipts {
		set.AddStock(entity.NewStockMovement(
			d.ID, d.GetDocumentType(), version, d.Date,
			entity.RecordTypeReceipt, d.warehouseID, productID, quantity,
		))
	}
	for productID, quantity := range d.expenses {
		set.AddStock(entity.NewStockMovement(
			d.ID, d.GetDocumentType(), version, d.Date,
			entity.RecordTypeExpense, d.warehouseID, productID, quantity,
		))
	}
	return set, nil
}

var _ Postable = (*testDoc)(nil)

func qty(v float64) types.Quantity { return types.NewQuantityFromFloat64(v) }

func newEngine(repo *memStockRepo) *Engine {
	return NewEngine(stock.NewService(repo), passthroughTx{})
}

func seedStock(t *testing.T, repo *memStockRepo, warehouseID, productID id.ID, quantity types.Quantity) {
	t.Helper()
	repo.movements = append(repo.movements, entity.NewStockMovement(
		id.New(), "GoodsReceipt", 1, time.Now().UTC(),
		entity.RecordTypeReceipt, warehouseID, productID, quantity,
	))
}

func TestEngine_PostReceipt(t *testing.T) {
	ctx := context.Background()
	repo := &memStockRepo{}
	engine := newEngine(repo)

	warehouse := id.New()
	product := id.New()

	doc := newTestDoc(warehouse)
	doc.receipts[product] = qty(5)

	saved := false
	err := engine.Post(ctx, doc, func(ctx context.Context) error {
		saved = true
		return nil
	})
	require.NoError(t, err)
	require.True(t, saved)
	require.True(t, doc.IsPosted())
	require.Equal(t, 1, doc.GetPostedVersion())
	require.Equal(t, qty(5), repo.balance(warehouse, product))
}

func TestEngine_PostExpenseInsufficientStock(t *testing.T) {
	ctx := context.Background()
	repo := &memStockRepo{}
	engine := newEngine(repo)

	warehouse := id.New()
	product := id.New()
	seedStock(t, repo, warehouse, product, qty(3))

	doc := newTestDoc(warehouse)
	doc.expenses[product] = qty(5)

	saved := false
	err := engine.Post(ctx, doc, func(ctx context.Context) error {
		saved = true
		return nil
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	require.Equal(t, apperror.CodeInsufficientStock, appErr.Code)

	// Nothing from the failed posting may stick.
	require.False(t, saved)
	require.False(t, doc.IsPosted())
	require.Equal(t, 0, doc.GetPostedVersion())
	require.Equal(t, qty(3), repo.balance(warehouse, product))
}

func TestEngine_PostExpenseExactBalance(t *testing.T) {
	ctx := context.Background()
	repo := &memStockRepo{}
	engine := newEngine(repo)

	warehouse := id.New()
	product := id.New()
	seedStock(t, repo, warehouse, product, qty(5))

	doc := newTestDoc(warehouse)
	doc.expenses[product] = qty(5)

	err := engine.Post(ctx, doc, func(ctx context.Context) error { return nil })
	require.NoError(t, err)
	require.True(t, repo.balance(warehouse, product).IsZero())
}

func TestEngine_RepostReplacesStaleMovements(t *testing.T) {
	ctx := context.Background()
	repo := &memStockRepo{}
	engine := newEngine(repo)

	warehouse := id.New()
	product := id.New()
	seedStock(t, repo, warehouse, product, qty(10))

	doc := newTestDoc(warehouse)
	doc.expenses[product] = qty(8)
	require.NoError(t, engine.Post(ctx, doc, func(ctx context.Context) error { return nil }))
	require.Equal(t, qty(2), repo.balance(warehouse, product))

	// Re-post with a smaller quantity. The old expense of 8 must not count
	// against the check, so 6 out of 10 is available again.
	doc.expenses[product] = qty(6)
	require.NoError(t, engine.Post(ctx, doc, func(ctx context.Context) error { return nil }))
	require.Equal(t, qty(4), repo.balance(warehouse, product))
	require.Equal(t, 2, doc.GetPostedVersion())

	movements, err := repo.GetMovementsByRecorder(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, movements, 1, "stale iteration must be deleted")
	require.Equal(t, 2, movements[0].RecorderVersion)
}

func TestEngine_PostEmptyMovementsRejected(t *testing.T) {
	ctx := context.Background()
	engine := newEngine(&memStockRepo{})

	doc := newTestDoc(id.New())

	err := engine.Post(ctx, doc, func(ctx context.Context) error { return nil })
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	require.Equal(t, apperror.CodeBusinessRule, appErr.Code)
}

func TestEngine_Unpost(t *testing.T) {
	ctx := context.Background()
	repo := &memStockRepo{}
	engine := newEngine(repo)

	warehouse := id.New()
	product := id.New()
	seedStock(t, repo, warehouse, product, qty(10))

	doc := newTestDoc(warehouse)
	doc.expenses[product] = qty(4)
	require.NoError(t, engine.Post(ctx, doc, func(ctx context.Context) error { return nil }))
	require.Equal(t, qty(6), repo.balance(warehouse, product))

	require.NoError(t, engine.Unpost(ctx, doc, func(ctx context.Context) error { return nil }))
	require.False(t, doc.IsPosted())
	require.Equal(t, qty(10), repo.balance(warehouse, product))

	movements, err := repo.GetMovementsByRecorder(ctx, doc.ID)
	require.NoError(t, err)
	require.Empty(t, movements)
}

func TestEngine_UnpostDraftRejected(t *testing.T) {
	ctx := context.Background()
	engine := newEngine(&memStockRepo{})

	doc := newTestDoc(id.New())
	err := engine.Unpost(ctx, doc, func(ctx context.Context) error { return nil })
	require.Error(t, err)
}

func TestExpenseReservations_AggregatesByDimension(t *testing.T) {
	warehouse := id.New()
	product := id.New()
	other := id.New()
	recorder := id.New()

	set := NewMovementSet()
	period := time.Now().UTC()
	set.AddStock(entity.NewStockMovement(recorder, "TestDoc", 1, period, entity.RecordTypeExpense, warehouse, product, qty(2)))
	set.AddStock(entity.NewStockMovement(recorder, "TestDoc", 1, period, entity.RecordTypeExpense, warehouse, product, qty(3)))
	set.AddStock(entity.NewStockMovement(recorder, "TestDoc", 1, period, entity.RecordTypeExpense, warehouse, other, qty(1)))
	set.AddStock(entity.NewStockMovement(recorder, "TestDoc", 1, period, entity.RecordTypeReceipt, warehouse, product, qty(100)))

	reservations := expenseReservations(set)
	require.Len(t, reservations, 2)
	require.Equal(t, qty(5), reservations[0].RequiredQty, "same product lines must merge")
	require.Equal(t, qty(1), reservations[1].RequiredQty)
}
