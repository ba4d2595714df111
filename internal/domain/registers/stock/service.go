// Package stock provides the stock accumulation register service.
package stock

import (
	"context"
	"fmt"

	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/apperror"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/entity"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/id"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/types"
	"github.com/Timbal-Mexico/barocerp-sub000/pkg/logger"
)

// Service provides business operations for the stock register.
// Transactions are managed by the caller (posting engine or document service).
type Service struct {
	repo Repository
}

// NewService creates a new stock register service.
func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
	}
}

// RecordMovements records stock movements from a document posting.
// This is called during document posting within a transaction.
func (s *Service) RecordMovements(ctx context.Context, movements []entity.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}

	// Validate movements
	for i, m := range movements {
		if !m.Quantity.IsPositive() {
			return apperror.NewValidation(fmt.Sprintf("movement %d: quantity must be positive", i))
		}
		if id.IsNil(m.RecorderID) {
			return apperror.NewValidation(fmt.Sprintf("movement %d: recorder_id is required", i))
		}
	}

	// Create movements (the repository applies balance deltas in the same tx)
	if err := s.repo.CreateMovements(ctx, movements); err != nil {
		return fmt.Errorf("create movements: %w", err)
	}

	logger.Info(ctx, "recorded stock movements",
		"count", len(movements),
		"recorder_id", movements[0].RecorderID,
	)

	return nil
}

// ReverseMovements removes movements for a document (used during unposting).
func (s *Service) ReverseMovements(ctx context.Context, recorderID id.ID, beforeVersion int) error {
	if err := s.repo.DeleteMovementsByRecorder(ctx, recorderID, beforeVersion); err != nil {
		return fmt.Errorf("delete movements: %w", err)
	}

	logger.Info(ctx, "reversed stock movements",
		"recorder_id", recorderID,
		"before_version", beforeVersion,
	)

	return nil
}

// StockReservation represents a stock check request.
type StockReservation struct {
	WarehouseID id.ID
	ProductID   id.ID
	RequiredQty types.Quantity
}

// CheckAndReserveStock validates stock availability with pessimistic locking.
// Must be called within a transaction before creating expense movements.
// The first insufficient line short-circuits the check.
func (s *Service) CheckAndReserveStock(ctx context.Context, items []StockReservation) error {
	for _, item := range items {
		balance, err := s.repo.GetBalanceForUpdate(ctx, item.WarehouseID, item.ProductID)
		if err != nil {
			return fmt.Errorf("get balance for %s: %w", item.ProductID, err)
		}

		if balance.Quantity < item.RequiredQty {
			return apperror.NewInsufficientStock(
				item.ProductID.String(),
				item.RequiredQty.Float64(),
				balance.Quantity.Float64(),
			)
		}
	}

	return nil
}

// LineAvailability reports availability for one prospective basket line.
type LineAvailability struct {
	ProductID    id.ID          `json:"productId"`
	RequestedQty types.Quantity `json:"requestedQty"`
	AvailableQty types.Quantity `json:"availableQty"`
	Available    bool           `json:"available"`
}

// CheckBasket is the advisory (no locks) variant of the stock check: it
// evaluates every line and reports per-line availability instead of failing
// on the first shortage. The result can go stale immediately; committing a
// sale re-checks under row locks.
func (s *Service) CheckBasket(ctx context.Context, warehouseID id.ID, items []StockReservation) ([]LineAvailability, bool, error) {
	results := make([]LineAvailability, 0, len(items))
	allAvailable := true

	for _, item := range items {
		balance, err := s.repo.GetBalance(ctx, warehouseID, item.ProductID)
		if err != nil {
			return nil, false, fmt.Errorf("get balance for %s: %w", item.ProductID, err)
		}

		ok := balance.Quantity >= item.RequiredQty
		if !ok {
			allAvailable = false
		}
		results = append(results, LineAvailability{
			ProductID:    item.ProductID,
			RequestedQty: item.RequiredQty,
			AvailableQty: balance.Quantity,
			Available:    ok,
		})
	}

	return results, allAvailable, nil
}

// GetProductAvailability returns available quantity across warehouses.
func (s *Service) GetProductAvailability(ctx context.Context, productID id.ID) (types.Quantity, error) {
	balances, err := s.repo.GetBalancesByProduct(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("get balances: %w", err)
	}

	var total types.Quantity
	for _, b := range balances {
		total += b.Quantity
	}

	return total, nil
}

// GetWarehouseStock returns all products with stock in a warehouse.
func (s *Service) GetWarehouseStock(ctx context.Context, warehouseID id.ID) ([]entity.StockBalance, error) {
	return s.repo.GetBalancesByWarehouse(ctx, warehouseID, BalanceFilter{
		ExcludeZero: true,
	})
}

// GetStockReport generates a turnover report for the period.
func (s *Service) GetStockReport(ctx context.Context, filter TurnoverFilter) (Turnover, error) {
	return s.repo.GetTurnover(ctx, filter)
}
