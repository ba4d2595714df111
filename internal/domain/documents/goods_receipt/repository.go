package goods_receipt

import (
	"context"
	"time"

	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/id"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain"
)

// Repository defines operations for goods receipt documents.
type Repository interface {
	Create(ctx context.Context, doc *GoodsReceipt) error
	GetByID(ctx context.Context, docID id.ID) (*GoodsReceipt, error)
	GetByNumber(ctx context.Context, number string) (*GoodsReceipt, error)
	Update(ctx context.Context, doc *GoodsReceipt) error
	Delete(ctx context.Context, docID id.ID) error

	GetLines(ctx context.Context, docID id.ID) ([]GoodsReceiptLine, error)
	SaveLines(ctx context.Context, docID id.ID, lines []GoodsReceiptLine) error

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*GoodsReceipt], error)
	GetForUpdate(ctx context.Context, docID id.ID) (*GoodsReceipt, error)
}

// ListFilter for filtering goods receipts.
type ListFilter struct {
	domain.ListFilter

	WarehouseID *id.ID
	Posted      *bool
	DateFrom    *time.Time
	DateTo      *time.Time
}
