package dto

import (
	"time"

	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/entity"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/id"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/types"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain/registers/stock"
)

// --- Availability check ---

// StockCheckRequest asks whether a prospective basket can be fulfilled.
type StockCheckRequest struct {
	WarehouseID string                  `json:"warehouseId" binding:"required"`
	Lines       []StockCheckLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// StockCheckLineRequest is one prospective basket line.
type StockCheckLineRequest struct {
	ProductID string         `json:"productId" binding:"required"`
	Quantity  types.Quantity `json:"quantity"`
}

// StockCheckLineResponse reports availability for one line.
type StockCheckLineResponse struct {
	ProductID    string         `json:"productId"`
	RequestedQty types.Quantity `json:"requestedQty"`
	AvailableQty types.Quantity `json:"availableQty"`
	Available    bool           `json:"available"`
}

// StockCheckResponse is the advisory availability report. The result can go
// stale immediately; committing a sale re-checks under row locks.
type StockCheckResponse struct {
	Available bool                     `json:"available"`
	Lines     []StockCheckLineResponse `json:"lines"`
}

// FromLineAvailability converts domain availability lines to the response.
func FromLineAvailability(lines []stock.LineAvailability, allAvailable bool) StockCheckResponse {
	resp := StockCheckResponse{
		Available: allAvailable,
		Lines:     make([]StockCheckLineResponse, len(lines)),
	}
	for i, l := range lines {
		resp.Lines[i] = StockCheckLineResponse{
			ProductID:    l.ProductID.String(),
			RequestedQty: l.RequestedQty,
			AvailableQty: l.AvailableQty,
			Available:    l.Available,
		}
	}
	return resp
}

// --- Register DTOs ---

// StockBalanceResponse represents stock balance in API responses.
type StockBalanceResponse struct {
	WarehouseID    string         `json:"warehouseId"`
	ProductID      string         `json:"productId"`
	Quantity       types.Quantity `json:"quantity"`
	LastMovementAt *time.Time     `json:"lastMovementAt,omitempty"`
}

// FromStockBalance converts entity to response DTO.
func FromStockBalance(b entity.StockBalance) StockBalanceResponse {
	// Zero-value time becomes null in JSON instead of "0001-01-01".
	var lastMovement *time.Time
	if !b.LastMovementAt.IsZero() {
		val := b.LastMovementAt
		lastMovement = &val
	}

	return StockBalanceResponse{
		WarehouseID:    b.WarehouseID.String(),
		ProductID:      b.ProductID.String(),
		Quantity:       b.Quantity,
		LastMovementAt: lastMovement,
	}
}

// StockMovementResponse represents stock movement in API responses.
type StockMovementResponse struct {
	LineID          string         `json:"lineId"`
	RecorderID      string         `json:"recorderId"`
	RecorderType    string         `json:"recorderType"`
	RecorderVersion int            `json:"recorderVersion"`
	Period          time.Time      `json:"period"`
	RecordType      string         `json:"recordType"`
	WarehouseID     string         `json:"warehouseId"`
	ProductID       string         `json:"productId"`
	Quantity        types.Quantity `json:"quantity"`
	CreatedAt       time.Time      `json:"createdAt"`
}

// FromStockMovement converts entity to response DTO.
func FromStockMovement(m entity.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		LineID:          m.LineID.String(),
		RecorderID:      m.RecorderID.String(),
		RecorderType:    m.RecorderType,
		RecorderVersion: m.RecorderVersion,
		Period:          m.Period,
		RecordType:      string(m.RecordType),
		WarehouseID:     m.WarehouseID.String(),
		ProductID:       m.ProductID.String(),
		Quantity:        m.Quantity,
		CreatedAt:       m.CreatedAt,
	}
}

// StockTurnoverResponse represents stock turnover report.
type StockTurnoverResponse struct {
	WarehouseID    string         `json:"warehouseId,omitempty"`
	ProductID      string         `json:"productId,omitempty"`
	OpeningBalance types.Quantity `json:"openingBalance"`
	Receipt        types.Quantity `json:"receipt"`
	Expense        types.Quantity `json:"expense"`
	ClosingBalance types.Quantity `json:"closingBalance"`
}

// FromStockTurnover converts domain turnover to response DTO.
func FromStockTurnover(t stock.Turnover) StockTurnoverResponse {
	resp := StockTurnoverResponse{
		OpeningBalance: t.OpeningBalance,
		Receipt:        t.Receipt,
		Expense:        t.Expense,
		ClosingBalance: t.ClosingBalance,
	}
	if !id.IsNil(t.WarehouseID) {
		resp.WarehouseID = t.WarehouseID.String()
	}
	if !id.IsNil(t.ProductID) {
		resp.ProductID = t.ProductID.String()
	}
	return resp
}

// StockBalanceListResponse represents a list of stock balances.
type StockBalanceListResponse struct {
	Items []StockBalanceResponse `json:"items"`
}

// StockMovementListResponse represents a list of stock movements.
type StockMovementListResponse struct {
	Items      []StockMovementResponse `json:"items"`
	TotalCount int                     `json:"totalCount,omitempty"`
}
