package posting

import (
	"context"
	"fmt"

	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/apperror"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/entity"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/id"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/tx"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/types"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain/registers/stock"
	"github.com/Timbal-Mexico/barocerp-sub000/pkg/logger"
)

// Postable is implemented by documents that record register movements.
// entity.Document provides defaults for everything except GetDocumentType
// and GenerateMovements.
type Postable interface {
	GetID() id.ID
	GetDocumentType() string
	GetPostedVersion() int
	IsPosted() bool
	CanPost(ctx context.Context) error
	MarkPosted()
	MarkUnposted()
	GenerateMovements(ctx context.Context) (*MovementSet, error)
}

// Engine posts and unposts documents against the registers.
type Engine struct {
	stock     *stock.Service
	txManager tx.Manager
}

// NewEngine creates a posting engine.
func NewEngine(stockService *stock.Service, txManager tx.Manager) *Engine {
	return &Engine{
		stock:     stockService,
		txManager: txManager,
	}
}

// Post records document movements in one transaction:
// stale movements from earlier iterations are removed first (restoring
// balances), expense lines are stock-checked under row locks, then the new
// movements are recorded and the document saved via updateDoc. Any failure
// rolls back everything, so a document is never half-posted.
func (e *Engine) Post(ctx context.Context, doc Postable, updateDoc func(ctx context.Context) error) error {
	if err := doc.CanPost(ctx); err != nil {
		return err
	}

	movements, err := doc.GenerateMovements(ctx)
	if err != nil {
		return fmt.Errorf("generate movements: %w", err)
	}
	if movements.IsEmpty() {
		return apperror.NewBusinessRule(
			apperror.CodeBusinessRule,
			"document produces no movements",
		).WithDetail("document_id", doc.GetID().String())
	}

	newVersion := doc.GetPostedVersion() + 1

	err = e.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		// Remove movements of earlier iterations before checking stock, so a
		// re-post does not count the document's own expenses against it.
		if err := e.stock.ReverseMovements(ctx, doc.GetID(), newVersion); err != nil {
			return err
		}

		if err := e.stock.CheckAndReserveStock(ctx, expenseReservations(movements)); err != nil {
			return err
		}

		if err := e.stock.RecordMovements(ctx, movements.Stock); err != nil {
			return err
		}

		doc.MarkPosted()
		return updateDoc(ctx)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "document posted",
		"document_id", doc.GetID().String(),
		"document_type", doc.GetDocumentType(),
		"posted_version", doc.GetPostedVersion(),
	)
	return nil
}

// Unpost removes document movements and clears the posted flag.
func (e *Engine) Unpost(ctx context.Context, doc Postable, updateDoc func(ctx context.Context) error) error {
	if !doc.IsPosted() {
		return apperror.NewBusinessRule(
			apperror.CodeBusinessRule,
			"document is not posted",
		).WithDetail("document_id", doc.GetID().String())
	}

	err := e.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		// Delete everything up to and including the current iteration.
		if err := e.stock.ReverseMovements(ctx, doc.GetID(), doc.GetPostedVersion()+1); err != nil {
			return err
		}

		doc.MarkUnposted()
		return updateDoc(ctx)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "document unposted",
		"document_id", doc.GetID().String(),
		"document_type", doc.GetDocumentType(),
	)
	return nil
}

// expenseReservations aggregates expense movements per warehouse+product so
// each balance row is locked once.
func expenseReservations(movements *MovementSet) []stock.StockReservation {
	type dim struct {
		warehouseID id.ID
		productID   id.ID
	}

	totals := make(map[dim]types.Quantity)
	order := make([]dim, 0)

	for _, m := range movements.Stock {
		if m.RecordType != entity.RecordTypeExpense {
			continue
		}
		d := dim{m.WarehouseID, m.ProductID}
		if _, seen := totals[d]; !seen {
			order = append(order, d)
		}
		totals[d] += m.Quantity
	}

	reservations := make([]stock.StockReservation, 0, len(order))
	for _, d := range order {
		reservations = append(reservations, stock.StockReservation{
			WarehouseID: d.warehouseID,
			ProductID:   d.productID,
			RequiredQty: totals[d],
		})
	}
	return reservations
}
