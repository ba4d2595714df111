package dto

import (
	"time"

	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/id"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/types"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain/documents/sale"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain/pricing"
)

// --- Request DTOs ---

// CreateSaleRequest represents a request to create a sale.
type CreateSaleRequest struct {
	Number          string            `json:"number,omitempty"`
	Date            time.Time         `json:"date"`
	LeadID          string            `json:"leadId" binding:"required"`
	WarehouseID     string            `json:"warehouseId" binding:"required"`
	Channel         sale.Channel      `json:"channel" binding:"required"`
	PromotionPolicy string            `json:"promotionPolicy,omitempty"`
	DiscountPercent types.Money       `json:"discountPercent"`
	Comment         string            `json:"comment,omitempty"`
	Lines           []SaleLineRequest `json:"lines" binding:"required,min=1,dive"`
	PostImmediately bool              `json:"postImmediately,omitempty"`
}

// SaleLineRequest represents a line in create/update request.
type SaleLineRequest struct {
	ProductID string         `json:"productId" binding:"required"`
	Quantity  types.Quantity `json:"quantity"`
	UnitPrice types.Money    `json:"unitPrice"`
}

// ToEntity converts request to domain entity.
// Malformed IDs parse to nil and are rejected by domain validation.
func (r *CreateSaleRequest) ToEntity() *sale.Sale {
	leadID, _ := id.Parse(r.LeadID)
	warehouseID, _ := id.Parse(r.WarehouseID)

	doc := sale.NewSale(leadID, warehouseID, r.Channel)
	doc.Number = r.Number
	doc.Comment = r.Comment
	doc.DiscountPercent = r.DiscountPercent

	if !r.Date.IsZero() {
		doc.Date = r.Date
	}

	if r.PromotionPolicy != "" {
		doc.PromotionPolicy = pricing.Policy(r.PromotionPolicy)
	}

	for _, line := range r.Lines {
		productID, _ := id.Parse(line.ProductID)
		doc.AddLine(productID, line.Quantity, line.UnitPrice)
	}

	return doc
}

// UpdateSaleRequest represents a request to update a sale.
type UpdateSaleRequest struct {
	Number          *string           `json:"number,omitempty"`
	Date            *time.Time        `json:"date,omitempty"`
	LeadID          *string           `json:"leadId,omitempty"`
	WarehouseID     *string           `json:"warehouseId,omitempty"`
	Channel         *sale.Channel     `json:"channel,omitempty"`
	PromotionPolicy *string           `json:"promotionPolicy,omitempty"`
	DiscountPercent *types.Money      `json:"discountPercent,omitempty"`
	Comment         *string           `json:"comment,omitempty"`
	Lines           []SaleLineRequest `json:"lines,omitempty"`
}

// ApplyTo applies updates to an existing entity.
func (r *UpdateSaleRequest) ApplyTo(doc *sale.Sale) {
	if r.Number != nil {
		doc.Number = *r.Number
	}
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.LeadID != nil {
		leadID, _ := id.Parse(*r.LeadID)
		doc.LeadID = leadID
	}
	if r.WarehouseID != nil {
		warehouseID, _ := id.Parse(*r.WarehouseID)
		doc.WarehouseID = warehouseID
	}
	if r.Channel != nil {
		doc.Channel = *r.Channel
	}
	if r.PromotionPolicy != nil {
		doc.PromotionPolicy = pricing.Policy(*r.PromotionPolicy)
	}
	if r.DiscountPercent != nil {
		doc.DiscountPercent = *r.DiscountPercent
	}
	if r.Comment != nil {
		doc.Comment = *r.Comment
	}

	// If lines are provided, rebuild them
	if r.Lines != nil {
		doc.Lines = make([]sale.SaleLine, 0, len(r.Lines))
		for _, line := range r.Lines {
			productID, _ := id.Parse(line.ProductID)
			doc.AddLine(productID, line.Quantity, line.UnitPrice)
		}
	}

	doc.RecalculateTotals()
}

// --- Response DTOs ---

// SaleResponse represents a sale in API responses.
type SaleResponse struct {
	ID              string             `json:"id"`
	Number          string             `json:"number"`
	Date            time.Time          `json:"date"`
	Posted          bool               `json:"posted"`
	PostedVersion   int                `json:"postedVersion,omitempty"`
	LeadID          string             `json:"leadId"`
	WarehouseID     string             `json:"warehouseId"`
	Channel         sale.Channel       `json:"channel"`
	PromotionPolicy string             `json:"promotionPolicy"`
	DiscountPercent types.Money        `json:"discountPercent"`
	Subtotal        types.Money        `json:"subtotal"`
	Total           types.Money        `json:"total"`
	Comment         string             `json:"comment,omitempty"`
	Lines           []SaleLineResponse `json:"lines,omitempty"`
	DeletionMark    bool               `json:"deletionMark,omitempty"`
	Version         int                `json:"version"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

// SaleLineResponse represents a line in API responses.
type SaleLineResponse struct {
	LineID    string         `json:"lineId"`
	LineNo    int            `json:"lineNo"`
	ProductID string         `json:"productId"`
	Quantity  types.Quantity `json:"quantity"`
	UnitPrice types.Money    `json:"unitPrice"`
	Amount    types.Money    `json:"amount"`
}

// FromSale converts domain entity to response DTO.
func FromSale(doc *sale.Sale) *SaleResponse {
	resp := &SaleResponse{
		ID:              doc.ID.String(),
		Number:          doc.Number,
		Date:            doc.Date,
		Posted:          doc.Posted,
		PostedVersion:   doc.PostedVersion,
		LeadID:          doc.LeadID.String(),
		WarehouseID:     doc.WarehouseID.String(),
		Channel:         doc.Channel,
		PromotionPolicy: string(doc.PromotionPolicy),
		DiscountPercent: doc.DiscountPercent,
		Subtotal:        doc.Subtotal,
		Total:           doc.Total,
		Comment:         doc.Comment,
		DeletionMark:    doc.DeletionMark,
		Version:         doc.Version,
		CreatedAt:       doc.CreatedAt,
		UpdatedAt:       doc.UpdatedAt,
	}

	resp.Lines = make([]SaleLineResponse, len(doc.Lines))
	for i, line := range doc.Lines {
		resp.Lines[i] = SaleLineResponse{
			LineID:    line.LineID.String(),
			LineNo:    line.LineNo,
			ProductID: line.ProductID.String(),
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Amount:    line.Amount,
		}
	}

	return resp
}
