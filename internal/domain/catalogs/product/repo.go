package product

import (
	"context"

	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain"
)

// Repository defines the interface for Product persistence.
type Repository interface {
	domain.CatalogRepository[*Product]

	// FindBySKU retrieves a product by SKU.
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// FindByBarcode retrieves a product by barcode.
	FindByBarcode(ctx context.Context, barcode string) (*Product, error)
}
