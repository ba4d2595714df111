// Package sale provides the Sale document.
// A sale records a priced basket sold to a lead from a warehouse. Posting a
// sale writes expense movements to the stock register.
package sale

import (
	"context"
	"regexp"

	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/apperror"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/entity"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/id"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/types"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain/posting"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain/pricing"
)

// numberRE validates sale numbers: uppercase letters followed by digits (BR0001).
var numberRE = regexp.MustCompile(`^[A-Z]+\d+$`)

// Channel defines how the sale was made.
type Channel string

const (
	ChannelStore       Channel = "store"
	ChannelOnline      Channel = "online"
	ChannelPhone       Channel = "phone"
	ChannelMarketplace Channel = "marketplace"
)

// Sale represents a sale document.
type Sale struct {
	entity.Document

	// LeadID is the buyer (CRM lead)
	LeadID id.ID `db:"lead_id" json:"leadId"`

	// WarehouseID is the warehouse goods are sold from
	WarehouseID id.ID `db:"warehouse_id" json:"warehouseId"`

	// Channel is the sales channel
	Channel Channel `db:"channel" json:"channel"`

	// PromotionPolicy applied to the basket
	PromotionPolicy pricing.Policy `db:"promotion_policy" json:"promotionPolicy"`

	// DiscountPercent for the percentage policy (ignored by other policies)
	DiscountPercent types.Money `db:"discount_percent" json:"discountPercent"`

	// Totals, always recomputed from lines and policy
	Subtotal types.Money `db:"subtotal" json:"subtotal"`
	Total    types.Money `db:"total" json:"total"`

	// Table part: sold goods
	Lines []SaleLine `db:"-" json:"lines"`
}

// SaleLine represents a line in the sale.
type SaleLine struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID id.ID          `db:"product_id" json:"productId"`
	Quantity  types.Quantity `db:"quantity" json:"quantity"`
	UnitPrice types.Money    `db:"unit_price" json:"unitPrice"`
	Amount    types.Money    `db:"amount" json:"amount"`
}

// NewSale creates a new sale document.
func NewSale(leadID, warehouseID id.ID, channel Channel) *Sale {
	return &Sale{
		Document:        entity.NewDocument(),
		LeadID:          leadID,
		WarehouseID:     warehouseID,
		Channel:         channel,
		PromotionPolicy: pricing.PolicyNone,
		DiscountPercent: types.Zero(),
		Lines:           make([]SaleLine, 0),
	}
}

// AddLine adds a line to the sale and recalculates totals.
func (s *Sale) AddLine(productID id.ID, quantity types.Quantity, unitPrice types.Money) {
	line := SaleLine{
		LineID:    id.New(),
		LineNo:    len(s.Lines) + 1,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Amount:    quantity.Decimal().Mul(unitPrice).Round(2),
	}

	s.Lines = append(s.Lines, line)
	s.RecalculateTotals()
}

// RecalculateTotals recomputes subtotal and total from lines and policy.
// Client-supplied totals are never trusted; this runs before every save.
func (s *Sale) RecalculateTotals() {
	priceLines := make([]pricing.Line, len(s.Lines))
	for i, l := range s.Lines {
		priceLines[i] = pricing.Line{Quantity: l.Quantity, UnitPrice: l.UnitPrice}
	}

	s.Subtotal = pricing.Subtotal(priceLines).Round(2)

	total, err := pricing.ComputeTotal(priceLines, s.PromotionPolicy, s.DiscountPercent)
	if err != nil {
		// Invalid policy is caught in Validate; keep the undiscounted amount
		// so the document is never cheaper than it should be.
		total = s.Subtotal
	}
	s.Total = total
}

// Validate implements entity.Validatable.
func (s *Sale) Validate(ctx context.Context) error {
	if err := s.Document.Validate(ctx); err != nil {
		return err
	}

	if s.Number != "" && !numberRE.MatchString(s.Number) {
		return apperror.NewValidation("sale number must be uppercase letters followed by digits").
			WithDetail("field", "number").
			WithDetail("value", s.Number)
	}

	if id.IsNil(s.LeadID) {
		return apperror.NewValidation("lead is required").
			WithDetail("field", "leadId")
	}

	if id.IsNil(s.WarehouseID) {
		return apperror.NewValidation("warehouse is required").
			WithDetail("field", "warehouseId")
	}

	if !isValidChannel(s.Channel) {
		return apperror.NewValidation("invalid sales channel").
			WithDetail("field", "channel").
			WithDetail("value", string(s.Channel))
	}

	if !s.PromotionPolicy.Valid() {
		return apperror.NewValidation("unknown promotion policy").
			WithDetail("field", "promotionPolicy").
			WithDetail("value", string(s.PromotionPolicy))
	}

	if len(s.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	for i, line := range s.Lines {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.Quantity < types.Quantity(types.QuantityScale) {
			return apperror.NewValidation("quantity must be at least 1").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.UnitPrice.IsNegative() {
			return apperror.NewValidation("unit price cannot be negative").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}

// --- Postable interface implementation ---
// GetID, GetPostedVersion, IsPosted, CanPost, MarkPosted, MarkUnposted are inherited from entity.Document

func (s *Sale) GetDocumentType() string { return "Sale" }

// GenerateMovements creates register movements for this document.
// Sale creates EXPENSE movements (reduces stock).
func (s *Sale) GenerateMovements(ctx context.Context) (*posting.MovementSet, error) {
	movements := posting.NewMovementSet()
	newVersion := s.PostedVersion + 1

	for _, line := range s.Lines {
		stockMovement := entity.NewStockMovement(
			s.ID,
			s.GetDocumentType(),
			newVersion,
			s.Date,
			entity.RecordTypeExpense,
			s.WarehouseID,
			line.ProductID,
			line.Quantity,
		)

		movements.AddStock(stockMovement)
	}

	return movements, nil
}

func isValidChannel(c Channel) bool {
	switch c {
	case ChannelStore, ChannelOnline, ChannelPhone, ChannelMarketplace:
		return true
	}
	return false
}

var _ posting.Postable = (*Sale)(nil)
