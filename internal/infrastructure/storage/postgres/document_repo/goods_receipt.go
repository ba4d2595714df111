package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/id"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain/documents/goods_receipt"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/infrastructure/storage/postgres"
)

const (
	goodsReceiptsTable     = "doc_goods_receipts"
	goodsReceiptLinesTable = "doc_goods_receipt_lines"
)

// GoodsReceiptRepo implements goods_receipt.Repository.
type GoodsReceiptRepo struct {
	*BaseDocumentRepo[*goods_receipt.GoodsReceipt]
	audit *postgres.AuditService
}

// NewGoodsReceiptRepo creates a new goods receipt repository. A nil audit
// service disables audit logging (unit tests).
func NewGoodsReceiptRepo(txm *postgres.TxManager, audit *postgres.AuditService) *GoodsReceiptRepo {
	return &GoodsReceiptRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txm,
			goodsReceiptsTable,
			postgres.ExtractDBColumns[goods_receipt.GoodsReceipt](),
			func() *goods_receipt.GoodsReceipt { return &goods_receipt.GoodsReceipt{} },
		),
		audit: audit,
	}
}

const goodsReceiptEntityType = "GoodsReceipt"

func (r *GoodsReceiptRepo) Create(ctx context.Context, doc *goods_receipt.GoodsReceipt) error {
	if err := r.BaseDocumentRepo.Create(ctx, doc); err != nil {
		return err
	}
	return logDocumentChange(ctx, r.audit, goodsReceiptEntityType, doc.ID, nil, postgres.StructToMap(doc))
}

func (r *GoodsReceiptRepo) Update(ctx context.Context, doc *goods_receipt.GoodsReceipt) error {
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
	return logDocumentChange(ctx, r.audit, goodsReceiptEntityType, doc.ID, oldData, postgres.StructToMap(doc))
}

func (r *GoodsReceiptRepo) Delete(ctx context.Context, docID id.ID) error {
	if err := r.BaseDocumentRepo.Delete(ctx, docID); err != nil {
		return err
	}
	if r.audit == nil {
		return nil
	}
	return r.audit.LogChange(ctx, goodsReceiptEntityType, docID, postgres.AuditActionDelete, map[string]any{
		"deletion_mark": map[string]any{"old": false, "new": true},
	})
}

func (r *GoodsReceiptRepo) GetLines(ctx context.Context, docID id.ID) ([]goods_receipt.GoodsReceiptLine, error) {
	q := r.Builder().
		Select("line_id", "line_no", "product_id", "quantity", "unit_cost", "amount").
		From(goodsReceiptLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []goods_receipt.GoodsReceiptLine
	if err := pgxscan.Select(ctx, r.Querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

func (r *GoodsReceiptRepo) SaveLines(ctx context.Context, docID id.ID, lines []goods_receipt.GoodsReceiptLine) error {
	querier := r.Querier(ctx)

	deleteSQL := "DELETE FROM " + goodsReceiptLinesTable + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete existing lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(goodsReceiptLinesTable).
		Columns("line_id", "document_id", "line_no", "product_id", "quantity", "unit_cost", "amount")

	for _, line := range lines {
		q = q.Values(
			line.LineID, docID, line.LineNo, line.ProductID,
			line.Quantity, line.UnitCost, line.Amount,
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

func (r *GoodsReceiptRepo) List(ctx context.Context, filter goods_receipt.ListFilter) (domain.ListResult[*goods_receipt.GoodsReceipt], error) {
	result := domain.ListResult[*goods_receipt.GoodsReceipt]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect()

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	if filter.WarehouseID != nil {
		q = q.Where(squirrel.Eq{"warehouse_id": *filter.WarehouseID})
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
		q = q.Where(squirrel.Or{
			squirrel.ILike{"number": "%" + filter.Search + "%"},
			squirrel.ILike{"supplier_name": "%" + filter.Search + "%"},
		})
	}

	return r.finishList(ctx, q, filter.ListFilter, result)
}
