// Package product provides the Product catalog.
// Products are the sellable items tracked in stock and priced on sales.
package product

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/apperror"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/entity"
)

// ProductType defines the type of item.
type ProductType string

const (
	TypeGoods   ProductType = "goods"
	TypeService ProductType = "service"
)

// Product represents a sellable item.
type Product struct {
	entity.Catalog

	// Type defines item category. Services are never stock-checked.
	Type ProductType `db:"type" json:"type"`

	// SKU is the stock keeping unit (unique when set)
	SKU *string `db:"sku" json:"sku,omitempty"`

	// Barcode is the item barcode (EAN-13, etc.)
	Barcode *string `db:"barcode" json:"barcode,omitempty"`

	// UnitPrice is the default selling price per unit
	UnitPrice decimal.Decimal `db:"unit_price" json:"unitPrice"`

	// IsActive indicates if the product can be sold
	IsActive bool `db:"is_active" json:"isActive"`

	// Description is a detailed description
	Description *string `db:"description" json:"description,omitempty"`

	// ImageURL is the item image URL
	ImageURL *string `db:"image_url" json:"imageUrl,omitempty"`
}

// NewProduct creates a new Product with required fields.
func NewProduct(code, name string, productType ProductType) *Product {
	return &Product{
		Catalog:   entity.NewCatalog(code, name),
		Type:      productType,
		UnitPrice: decimal.Zero,
		IsActive:  true,
	}
}

// Validate implements entity.Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	// Base catalog validation
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !isValidProductType(p.Type) {
		return apperror.NewValidation("invalid product type").
			WithDetail("field", "type").
			WithDetail("value", string(p.Type))
	}

	if p.UnitPrice.IsNegative() {
		return apperror.NewValidation("unit price cannot be negative").
			WithDetail("field", "unitPrice")
	}

	return nil
}

// IsPhysical returns true if item has physical presence (not a service).
func (p *Product) IsPhysical() bool {
	return p.Type != TypeService
}

// --- Validation Helpers ---

func isValidProductType(t ProductType) bool {
	switch t {
	case TypeGoods, TypeService:
		return true
	}
	return false
}
