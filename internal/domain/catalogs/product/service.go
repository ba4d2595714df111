package product

import (
	"context"
	"fmt"
	"time"

	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/apperror"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/id"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/tx"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain"
	"github.com/Timbal-Mexico/barocerp-sub000/pkg/numerator"
)

// Service provides business logic for the Product catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Product]
	repo      Repository
	numerator numerator.Generator
}

// NewService creates a new Product service.
func NewService(
	repo Repository,
	txManager tx.Manager,
	numerator numerator.Generator,
) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Product]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  numerator,
		EntityName: "product",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      numerator,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.prepareForUpdate)

	return svc
}

// prepareForCreate handles code generation and uniqueness checks.
func (s *Service) prepareForCreate(ctx context.Context, item *Product) error {
	// Generate code if not provided
	if item.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("PR"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		item.Code = code
	}

	return s.checkUniqueness(ctx, item)
}

// prepareForUpdate handles uniqueness checks.
func (s *Service) prepareForUpdate(ctx context.Context, item *Product) error {
	return s.checkUniqueness(ctx, item)
}

func (s *Service) checkUniqueness(ctx context.Context, item *Product) error {
	if item.SKU != nil && *item.SKU != "" {
		if exists, _ := s.checkSKUExists(ctx, *item.SKU, item.ID); exists {
			return apperror.NewConflict("product with this SKU already exists").
				WithDetail("sku", item.SKU)
		}
	}

	if item.Barcode != nil && *item.Barcode != "" {
		if exists, _ := s.checkBarcodeExists(ctx, *item.Barcode, item.ID); exists {
			return apperror.NewConflict("product with this barcode already exists").
				WithDetail("barcode", item.Barcode)
		}
	}

	return nil
}

// --- Entity-specific methods ---

// FindBySKU retrieves a product by SKU.
func (s *Service) FindBySKU(ctx context.Context, sku string) (*Product, error) {
	return s.repo.FindBySKU(ctx, sku)
}

// FindByBarcode retrieves a product by barcode.
func (s *Service) FindByBarcode(ctx context.Context, barcode string) (*Product, error) {
	return s.repo.FindByBarcode(ctx, barcode)
}

// checkSKUExists checks if SKU is already used.
func (s *Service) checkSKUExists(ctx context.Context, sku string, excludeID id.ID) (bool, error) {
	existing, err := s.repo.FindBySKU(ctx, sku)
	if err != nil {
		return false, nil
	}
	return existing.ID != excludeID, nil
}

// checkBarcodeExists checks if barcode is already used.
func (s *Service) checkBarcodeExists(ctx context.Context, barcode string, excludeID id.ID) (bool, error) {
	existing, err := s.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		return false, nil
	}
	return existing.ID != excludeID, nil
}
