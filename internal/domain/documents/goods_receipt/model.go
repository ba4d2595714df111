// Package goods_receipt provides the GoodsReceipt document.
// Records incoming goods into warehouses so stock can be replenished.
package goods_receipt

import (
	"context"

	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/apperror"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/entity"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/id"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/types"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain/posting"
)

// GoodsReceipt represents a goods receipt document.
type GoodsReceipt struct {
	entity.Document

	// Warehouse receiving the goods
	WarehouseID id.ID `db:"warehouse_id" json:"warehouseId"`

	// SupplierName is a free-form supplier reference
	SupplierName string `db:"supplier_name" json:"supplierName,omitempty"`

	// Totals (calculated from lines)
	TotalQuantity types.Quantity `db:"total_quantity" json:"totalQuantity"`
	TotalAmount   types.Money    `db:"total_amount" json:"totalAmount"`

	// Table part: received goods
	Lines []GoodsReceiptLine `db:"-" json:"lines"`
}

// GoodsReceiptLine represents a line in the goods receipt.
type GoodsReceiptLine struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID id.ID          `db:"product_id" json:"productId"`
	Quantity  types.Quantity `db:"quantity" json:"quantity"`
	UnitCost  types.Money    `db:"unit_cost" json:"unitCost"`
	Amount    types.Money    `db:"amount" json:"amount"`
}

// NewGoodsReceipt creates a new goods receipt document.
func NewGoodsReceipt(warehouseID id.ID) *GoodsReceipt {
	return &GoodsReceipt{
		Document:    entity.NewDocument(),
		WarehouseID: warehouseID,
		TotalAmount: types.Zero(),
		Lines:       make([]GoodsReceiptLine, 0),
	}
}

// AddLine adds a line to the goods receipt and recalculates totals.
func (g *GoodsReceipt) AddLine(productID id.ID, quantity types.Quantity, unitCost types.Money) {
	line := GoodsReceiptLine{
		LineID:    id.New(),
		LineNo:    len(g.Lines) + 1,
		ProductID: productID,
		Quantity:  quantity,
		UnitCost:  unitCost,
		Amount:    quantity.Decimal().Mul(unitCost).Round(2),
	}

	g.Lines = append(g.Lines, line)
	g.recalculateTotals()
}

func (g *GoodsReceipt) recalculateTotals() {
	g.TotalQuantity = types.Quantity(0)
	g.TotalAmount = types.Zero()

	for _, line := range g.Lines {
		g.TotalQuantity += line.Quantity
		g.TotalAmount = g.TotalAmount.Add(line.Amount)
	}
}

// Validate implements entity.Validatable.
func (g *GoodsReceipt) Validate(ctx context.Context) error {
	if err := g.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(g.WarehouseID) {
		return apperror.NewValidation("warehouse is required").
			WithDetail("field", "warehouseId")
	}

	if len(g.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	for i, line := range g.Lines {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.Quantity <= 0 {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.UnitCost.IsNegative() {
			return apperror.NewValidation("unit cost cannot be negative").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}

// --- Postable interface implementation ---

func (g *GoodsReceipt) GetDocumentType() string { return "GoodsReceipt" }

// GenerateMovements creates register movements for this document.
// GoodsReceipt creates RECEIPT movements (increases stock).
func (g *GoodsReceipt) GenerateMovements(ctx context.Context) (*posting.MovementSet, error) {
	movements := posting.NewMovementSet()
	newVersion := g.PostedVersion + 1

	for _, line := range g.Lines {
		stockMovement := entity.NewStockMovement(
			g.ID,
			g.GetDocumentType(),
			newVersion,
			g.Date,
			entity.RecordTypeReceipt,
			g.WarehouseID,
			line.ProductID,
			line.Quantity,
		)

		movements.AddStock(stockMovement)
	}

	return movements, nil
}

var _ posting.Postable = (*GoodsReceipt)(nil)
