// Package stock provides the stock accumulation register.
package stock

import (
	"context"
	"time"

	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/entity"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/id"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/types"
)

// Repository defines operations for the stock register.
type Repository interface {
	// Movement operations

	// CreateMovements batch inserts movements (used during posting)
	CreateMovements(ctx context.Context, movements []entity.StockMovement) error

	// DeleteMovementsByRecorder removes all movements for a document version
	// Used during unposting or re-posting
	DeleteMovementsByRecorder(ctx context.Context, recorderID id.ID, beforeVersion int) error

	// GetMovementsByRecorder retrieves all movements for a document
	GetMovementsByRecorder(ctx context.Context, recorderID id.ID) ([]entity.StockMovement, error)

	// Balance operations

	// GetBalance returns current balance for warehouse+product.
	// A missing balance row reads as zero quantity, not an error.
	GetBalance(ctx context.Context, warehouseID, productID id.ID) (entity.StockBalance, error)

	// GetBalanceForUpdate returns balance with row lock for stock control
	GetBalanceForUpdate(ctx context.Context, warehouseID, productID id.ID) (entity.StockBalance, error)

	// GetBalancesByWarehouse returns balances for a warehouse
	GetBalancesByWarehouse(ctx context.Context, warehouseID id.ID, filter BalanceFilter) ([]entity.StockBalance, error)

	// GetBalancesByProduct returns balances across all warehouses for a product
	GetBalancesByProduct(ctx context.Context, productID id.ID) ([]entity.StockBalance, error)

	// Reporting

	// GetMovementHistory returns movement history for a product
	GetMovementHistory(ctx context.Context, productID id.ID, filter MovementFilter) ([]entity.StockMovement, error)

	// GetTurnover calculates receipt and expense totals for period
	GetTurnover(ctx context.Context, filter TurnoverFilter) (Turnover, error)
}

// BalanceFilter for filtering balance queries.
type BalanceFilter struct {
	ProductIDs  []id.ID
	ExcludeZero bool
	MinQuantity *types.Quantity
	MaxQuantity *types.Quantity
}

// MovementFilter for filtering movement history.
type MovementFilter struct {
	WarehouseID *id.ID
	RecordType  *entity.RecordType
	FromDate    *time.Time
	ToDate      *time.Time
	Limit       int
	Offset      int
}

// TurnoverFilter for turnover reports.
type TurnoverFilter struct {
	WarehouseID *id.ID
	ProductID   *id.ID
	FromDate    time.Time
	ToDate      time.Time
}

// Turnover represents receipt/expense totals.
type Turnover struct {
	WarehouseID    id.ID          `json:"warehouseId,omitempty"`
	ProductID      id.ID          `json:"productId,omitempty"`
	OpeningBalance types.Quantity `json:"openingBalance"`
	Receipt        types.Quantity `json:"receipt"`
	Expense        types.Quantity `json:"expense"`
	ClosingBalance types.Quantity `json:"closingBalance"`
}
