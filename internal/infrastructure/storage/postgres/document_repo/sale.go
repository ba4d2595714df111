package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/id"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain/documents/sale"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/infrastructure/storage/postgres"
)

const (
	salesTable     = "doc_sales"
	saleLinesTable = "doc_sale_lines"
)

// SaleRepo implements sale.Repository.
type SaleRepo struct {
	*BaseDocumentRepo[*sale.Sale]
	audit *postgres.AuditService
}

// NewSaleRepo creates a new sale repository. A nil audit service disables
// audit logging (unit tests).
func NewSaleRepo(txm *postgres.TxManager, audit *postgres.AuditService) *SaleRepo {
	return &SaleRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txm,
			salesTable,
			postgres.ExtractDBColumns[sale.Sale](),
			func() *sale.Sale { return &sale.Sale{} },
		),
		audit: audit,
	}
}

const saleEntityType = "Sale"

func (r *SaleRepo) Create(ctx context.Context, doc *sale.Sale) error {
	if err := r.BaseDocumentRepo.Create(ctx, doc); err != nil {
		return err
	}
	return logDocumentChange(ctx, r.audit, saleEntityType, doc.ID, nil, postgres.StructToMap(doc))
}

func (r *SaleRepo) Update(ctx context.Context, doc *sale.Sale) error {
	var oldData map[string]any
	if r.audit != nil {
		old, err := r.BaseDocumentRepo.GetByID(ctx, doc.ID)
		if err != nil {
			return err
		}
		oldData = postgres.StructToMap(old)
	}

	if err := r.BaseDocumentRepo.Update(ctx, doc); err != nil {
		return err
	}
	return logDocumentChange(ctx, r.audit, saleEntityType, doc.ID, oldData, postgres.StructToMap(doc))
}

func (r *SaleRepo) Delete(ctx context.Context, docID id.ID) error {
	if err := r.BaseDocumentRepo.Delete(ctx, docID); err != nil {
		return err
	}
	if r.audit == nil {
		return nil
	}
	return r.audit.LogChange(ctx, saleEntityType, docID, postgres.AuditActionDelete, map[string]any{
		"deletion_mark": map[string]any{"old": false, "new": true},
	})
}

func (r *SaleRepo) GetLines(ctx context.Context, docID id.ID) ([]sale.SaleLine, error) {
	q := r.Builder().
		Select("line_id", "line_no", "product_id", "quantity", "unit_price", "amount").
		From(saleLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []sale.SaleLine
	if err := pgxscan.Select(ctx, r.Querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

func (r *SaleRepo) SaveLines(ctx context.Context, docID id.ID, lines []sale.SaleLine) error {
	querier := r.Querier(ctx)

	deleteSQL := "DELETE FROM " + saleLinesTable + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete existing lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(saleLinesTable).
		Columns("line_id", "document_id", "line_no", "product_id", "quantity", "unit_price", "amount")

	for _, line := range lines {
		q = q.Values(
			line.LineID, docID, line.LineNo, line.ProductID,
			line.Quantity, line.UnitPrice, line.Amount,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert lines: %w", err)
	}

	return nil
}

func (r *SaleRepo) List(ctx context.Context, filter sale.ListFilter) (domain.ListResult[*sale.Sale], error) {
	result := domain.ListResult[*sale.Sale]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect()

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	if filter.LeadID != nil {
		q = q.Where(squirrel.Eq{"lead_id": *filter.LeadID})
	}

	if filter.WarehouseID != nil {
		q = q.Where(squirrel.Eq{"warehouse_id": *filter.WarehouseID})
	}

	if filter.Channel != nil {
		q = q.Where(squirrel.Eq{"channel": *filter.Channel})
	}

	if filter.Posted != nil {
		q = q.Where(squirrel.Eq{"posted": *filter.Posted})
	}

	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}

	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}

	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"number": "%" + filter.Search + "%"})
	}

	return r.finishList(ctx, q, filter.ListFilter, result)
}
