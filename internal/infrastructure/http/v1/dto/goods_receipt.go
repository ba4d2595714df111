package dto

import (
	"time"

	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/id"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/types"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain/documents/goods_receipt"
)

// --- Request DTOs ---

// CreateGoodsReceiptRequest represents a request to create a goods receipt.
type CreateGoodsReceiptRequest struct {
	Number          string                    `json:"number,omitempty"`
	Date            time.Time                 `json:"date"`
	WarehouseID     string                    `json:"warehouseId" binding:"required"`
	SupplierName    string                    `json:"supplierName,omitempty"`
	Comment         string                    `json:"comment,omitempty"`
	Lines           []GoodsReceiptLineRequest `json:"lines" binding:"required,min=1,dive"`
	PostImmediately bool                      `json:"postImmediately,omitempty"`
}

// GoodsReceiptLineRequest represents a line in create/update request.
type GoodsReceiptLineRequest struct {
	ProductID string         `json:"productId" binding:"required"`
	Quantity  types.Quantity `json:"quantity"`
	UnitCost  types.Money    `json:"unitCost"`
}

// ToEntity converts request to domain entity.
func (r *CreateGoodsReceiptRequest) ToEntity() *goods_receipt.GoodsReceipt {
	warehouseID, _ := id.Parse(r.WarehouseID)

	doc := goods_receipt.NewGoodsReceipt(warehouseID)
	doc.Number = r.Number
	doc.SupplierName = r.SupplierName
	doc.Comment = r.Comment

	if !r.Date.IsZero() {
		doc.Date = r.Date
	}

	for _, line := range r.Lines {
		productID, _ := id.Parse(line.ProductID)
		doc.AddLine(productID, line.Quantity, line.UnitCost)
	}

	return doc
}

// UpdateGoodsReceiptRequest represents a request to update a goods receipt.
type UpdateGoodsReceiptRequest struct {
	Number       *string                   `json:"number,omitempty"`
	Date         *time.Time                `json:"date,omitempty"`
	WarehouseID  *string                   `json:"warehouseId,omitempty"`
	SupplierName *string                   `json:"supplierName,omitempty"`
	Comment      *string                   `json:"comment,omitempty"`
	Lines        []GoodsReceiptLineRequest `json:"lines,omitempty"`
}

// ApplyTo applies updates to an existing entity.
func (r *UpdateGoodsReceiptRequest) ApplyTo(doc *goods_receipt.GoodsReceipt) {
	if r.Number != nil {
		doc.Number = *r.Number
	}
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.WarehouseID != nil {
		warehouseID, _ := id.Parse(*r.WarehouseID)
		doc.WarehouseID = warehouseID
	}
	if r.SupplierName != nil {
		doc.SupplierName = *r.SupplierName
	}
	if r.Comment != nil {
		doc.Comment = *r.Comment
	}

	// If lines are provided, rebuild them
	if r.Lines != nil {
		doc.Lines = make([]goods_receipt.GoodsReceiptLine, 0, len(r.Lines))
		for _, line := range r.Lines {
			productID, _ := id.Parse(line.ProductID)
			doc.AddLine(productID, line.Quantity, line.UnitCost)
		}
	}
}

// --- Response DTOs ---

// GoodsReceiptResponse represents a goods receipt in API responses.
type GoodsReceiptResponse struct {
	ID            string                     `json:"id"`
	Number        string                     `json:"number"`
	Date          time.Time                  `json:"date"`
	Posted        bool                       `json:"posted"`
	PostedVersion int                        `json:"postedVersion,omitempty"`
	WarehouseID   string                     `json:"warehouseId"`
	SupplierName  string                     `json:"supplierName,omitempty"`
	TotalQuantity types.Quantity             `json:"totalQuantity"`
	TotalAmount   types.Money                `json:"totalAmount"`
	Comment       string                     `json:"comment,omitempty"`
	Lines         []GoodsReceiptLineResponse `json:"lines,omitempty"`
	DeletionMark  bool                       `json:"deletionMark,omitempty"`
	Version       int                        `json:"version"`
	CreatedAt     time.Time                  `json:"createdAt"`
	UpdatedAt     time.Time                  `json:"updatedAt"`
}

// GoodsReceiptLineResponse represents a line in API responses.
type GoodsReceiptLineResponse struct {
	LineID    string         `json:"lineId"`
	LineNo    int            `json:"lineNo"`
	ProductID string         `json:"productId"`
	Quantity  types.Quantity `json:"quantity"`
	UnitCost  types.Money    `json:"unitCost"`
	Amount    types.Money    `json:"amount"`
}

// FromGoodsReceipt converts domain entity to response DTO.
func FromGoodsReceipt(doc *goods_receipt.GoodsReceipt) *GoodsReceiptResponse {
	resp := &GoodsReceiptResponse{
		ID:            doc.ID.String(),
		Number:        doc.Number,
		Date:          doc.Date,
		Posted:        doc.Posted,
		PostedVersion: doc.PostedVersion,
		WarehouseID:   doc.WarehouseID.String(),
		SupplierName:  doc.SupplierName,
		TotalQuantity: doc.TotalQuantity,
		TotalAmount:   doc.TotalAmount,
		Comment:       doc.Comment,
		DeletionMark:  doc.DeletionMark,
		Version:       doc.Version,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}

	resp.Lines = make([]GoodsReceiptLineResponse, len(doc.Lines))
	for i, line := range doc.Lines {
		resp.Lines[i] = GoodsReceiptLineResponse{
			LineID:    line.LineID.String(),
			LineNo:    line.LineNo,
			ProductID: line.ProductID.String(),
			Quantity:  line.Quantity,
			UnitCost:  line.UnitCost,
			Amount:    line.Amount,
		}
	}

	return resp
}
