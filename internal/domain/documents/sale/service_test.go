package sale

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/apperror"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/entity"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/id"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/types"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain/posting"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain/registers/stock"
	"github.com/Timbal-Mexico/barocerp-sub000/pkg/numerator"
)

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// memSaleRepo stores sale headers and lines in memory.
type memSaleRepo struct {
	docs  map[id.ID]Sale
	lines map[id.ID][]SaleLine
}

func newMemSaleRepo() *memSaleRepo {
	return &memSaleRepo{
		docs:  make(map[id.ID]Sale),
		lines: make(map[id.ID][]SaleLine),
	}
}

func (r *memSaleRepo) Create(ctx context.Context, doc *Sale) error {
	r.docs[doc.ID] = *doc
	return nil
}

func (r *memSaleRepo) GetByID(ctx context.Context, docID id.ID) (*Sale, error) {
	doc, ok := r.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("sale", docID.String())
	}
	out := doc
	return &out, nil
}

func (r *memSaleRepo) GetByNumber(ctx context.Context, number string) (*Sale, error) {
	for _, doc := range r.docs {
		if doc.Number == number {
			out := doc
			return &out, nil
		}
	}
	return nil, apperror.NewNotFound("sale", number)
}

func (r *memSaleRepo) Update(ctx context.Context, doc *Sale) error {
	if _, ok := r.docs[doc.ID]; !ok {
		return apperror.NewNotFound("sale", doc.ID.String())
	}
	doc.Version++
	r.docs[doc.ID] = *doc
	return nil
}

func (r *memSaleRepo) Delete(ctx context.Context, docID id.ID) error {
	doc, ok := r.docs[docID]
	if !ok {
		return apperror.NewNotFound("sale", docID.String())
	}
	doc.DeletionMark = true
	r.docs[docID] = doc
	return nil
}

func (r *memSaleRepo) GetLines(ctx context.Context, docID id.ID) ([]SaleLine, error) {
	return r.lines[docID], nil
}

func (r *memSaleRepo) SaveLines(ctx context.Context, docID id.ID, lines []SaleLine) error {
	r.lines[docID] = append([]SaleLine(nil), lines...)
	return nil
}

func (r *memSaleRepo) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Sale], error) {
	result := domain.ListResult[*Sale]{Limit: filter.Limit, Offset: filter.Offset}
	for docID := range r.docs {
		doc := r.docs[docID]
		result.Items = append(result.Items, &doc)
	}
	result.TotalCount = int64(len(result.Items))
	return result, nil
}

func (r *memSaleRepo) GetForUpdate(ctx context.Context, docID id.ID) (*Sale, error) {
	return r.GetByID(ctx, docID)
}

var _ Repository = (*memSaleRepo)(nil)

// memStockRepo implements stock.Repository over recorded movements.
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

// testEnv wires a sale service against in-memory repositories.
type testEnv struct {
	repo      *memSaleRepo
	stockRepo *memStockRepo
	service   *Service
}

func newTestEnv() *testEnv {
	repo := newMemSaleRepo()
	stockRepo := &memStockRepo{}
	engine := posting.NewEngine(stock.NewService(stockRepo), passthroughTx{})

	seq := 0
	gen := &numerator.MockGenerator{
		GetNextNumberFunc: func(ctx context.Context, cfg numerator.Config, opts *numerator.Options, period time.Time) (string, error) {
			seq++
			return fmt.Sprintf("BR%04d", seq), nil
		},
	}

	return &testEnv{
		repo:      repo,
		stockRepo: stockRepo,
		service:   NewService(repo, engine, gen, passthroughTx{}),
	}
}

func (e *testEnv) seedStock(warehouseID, productID id.ID, quantity types.Quantity) {
	e.stockRepo.movements = append(e.stockRepo.movements, entity.NewStockMovement(
		id.New(), "GoodsReceipt", 1, time.Now().UTC(),
		entity.RecordTypeReceipt, warehouseID, productID, quantity,
	))
}

func qty(v float64) types.Quantity { return types.NewQuantityFromFloat64(v) }

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	doc := NewSale(id.New(), id.New(), ChannelStore)
	doc.AddLine(id.New(), qty(2), types.MustMoney("10"))

	require.NoError(t, env.service.Create(ctx, doc))
	require.Equal(t, "BR0001", doc.Number)
	require.False(t, doc.Posted, "create must leave the document a draft")

	saved, err := env.service.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, saved.Lines, 1)
	require.True(t, saved.Total.Equal(types.MustMoney("20")))
	require.Empty(t, env.stockRepo.movements, "drafts write no movements")
}

func TestService_CreateRecomputesClientTotals(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	doc := NewSale(id.New(), id.New(), ChannelOnline)
	doc.AddLine(id.New(), qty(4), types.MustMoney("25"))
	doc.PromotionPolicy = "two_for_one"

	// A tampered total must not survive the save.
	doc.Total = types.MustMoney("1")

	require.NoError(t, env.service.Create(ctx, doc))
	require.True(t, doc.Subtotal.Equal(types.MustMoney("100")))
	require.True(t, doc.Total.Equal(types.MustMoney("50")))
}

func TestService_CreateKeepsExplicitNumber(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	doc := NewSale(id.New(), id.New(), ChannelStore)
	doc.AddLine(id.New(), qty(1), types.MustMoney("5"))
	doc.Number = "BR9999"

	require.NoError(t, env.service.Create(ctx, doc))
	require.Equal(t, "BR9999", doc.Number)
}

func TestService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	t.Run("no lines", func(t *testing.T) {
		doc := NewSale(id.New(), id.New(), ChannelStore)
		require.Error(t, env.service.Create(ctx, doc))
		require.Empty(t, env.repo.docs)
	})

	t.Run("unknown channel", func(t *testing.T) {
		doc := NewSale(id.New(), id.New(), Channel("carrier-pigeon"))
		doc.AddLine(id.New(), qty(1), types.MustMoney("5"))
		require.Error(t, env.service.Create(ctx, doc))
	})

	t.Run("unknown promotion policy", func(t *testing.T) {
		doc := NewSale(id.New(), id.New(), ChannelStore)
		doc.AddLine(id.New(), qty(1), types.MustMoney("5"))
		doc.PromotionPolicy = "happy_hour"
		require.Error(t, env.service.Create(ctx, doc))
	})
}

func TestService_PostAndSave(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	warehouse := id.New()
	product := id.New()
	env.seedStock(warehouse, product, qty(10))

	doc := NewSale(id.New(), warehouse, ChannelStore)
	doc.AddLine(product, qty(4), types.MustMoney("10"))

	require.NoError(t, env.service.PostAndSave(ctx, doc))
	require.True(t, doc.Posted)
	require.Equal(t, "BR0001", doc.Number)

	require.Equal(t, qty(6), env.stockRepo.balance(warehouse, product))

	saved, err := env.service.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	require.True(t, saved.Posted)
	require.Len(t, saved.Lines, 1)
}

func TestService_PostAndSaveInsufficientStockLeavesNothing(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	warehouse := id.New()
	product := id.New()
	env.seedStock(warehouse, product, qty(2))

	doc := NewSale(id.New(), warehouse, ChannelStore)
	doc.AddLine(product, qty(5), types.MustMoney("10"))

	err := env.service.PostAndSave(ctx, doc)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	require.Equal(t, apperror.CodeInsufficientStock, appErr.Code)

	// The stock check runs before the header is written, so a rejected
	// commit leaves no orphaned draft behind.
	require.Empty(t, env.repo.docs)
	require.Equal(t, qty(2), env.stockRepo.balance(warehouse, product))
}

func TestService_PostDraft(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	warehouse := id.New()
	product := id.New()
	env.seedStock(warehouse, product, qty(10))

	doc := NewSale(id.New(), warehouse, ChannelPhone)
	doc.AddLine(product, qty(3), types.MustMoney("7"))
	require.NoError(t, env.service.Create(ctx, doc))

	require.NoError(t, env.service.Post(ctx, doc.ID))
	require.Equal(t, qty(7), env.stockRepo.balance(warehouse, product))

	saved, err := env.service.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	require.True(t, saved.Posted)
	require.Equal(t, 1, saved.PostedVersion)
}

func TestService_UnpostRestoresBalance(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	warehouse := id.New()
	product := id.New()
	env.seedStock(warehouse, product, qty(10))

	doc := NewSale(id.New(), warehouse, ChannelStore)
	doc.AddLine(product, qty(4), types.MustMoney("10"))
	require.NoError(t, env.service.PostAndSave(ctx, doc))
	require.Equal(t, qty(6), env.stockRepo.balance(warehouse, product))

	require.NoError(t, env.service.Unpost(ctx, doc.ID))
	require.Equal(t, qty(10), env.stockRepo.balance(warehouse, product))

	saved, err := env.service.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	require.False(t, saved.Posted)
}

func TestService_UpdatePostedRechecksStock(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	warehouse := id.New()
	product := id.New()
	env.seedStock(warehouse, product, qty(10))

	doc := NewSale(id.New(), warehouse, ChannelStore)
	doc.AddLine(product, qty(8), types.MustMoney("10"))
	require.NoError(t, env.service.PostAndSave(ctx, doc))

	// Growing the sold quantity beyond stock must fail even though the
	// document is already posted.
	doc.Lines[0].Quantity = qty(11)
	err := env.service.Update(ctx, doc)
	require.Error(t, err)
	appErr, _ := apperror.AsAppError(err)
	require.Equal(t, apperror.CodeInsufficientStock, appErr.Code)

	// Shrinking it succeeds: stale movements do not count against the check.
	doc.Lines[0].Quantity = qty(10)
	require.NoError(t, env.service.Update(ctx, doc))
	require.True(t, env.stockRepo.balance(warehouse, product).IsZero())
}

func TestService_DeletePostedRejected(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	warehouse := id.New()
	product := id.New()
	env.seedStock(warehouse, product, qty(10))

	doc := NewSale(id.New(), warehouse, ChannelStore)
	doc.AddLine(product, qty(1), types.MustMoney("10"))
	require.NoError(t, env.service.PostAndSave(ctx, doc))

	err := env.service.Delete(ctx, doc.ID)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	require.Equal(t, apperror.CodeDocumentPosted, appErr.Code)
}

func TestService_DeleteDraft(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	doc := NewSale(id.New(), id.New(), ChannelStore)
	doc.AddLine(id.New(), qty(1), types.MustMoney("10"))
	require.NoError(t, env.service.Create(ctx, doc))

	require.NoError(t, env.service.Delete(ctx, doc.ID))
	require.True(t, env.repo.docs[doc.ID].DeletionMark)
}
