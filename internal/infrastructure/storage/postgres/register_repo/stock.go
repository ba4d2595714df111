// Package register_repo provides PostgreSQL implementations for register repositories.
package register_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/entity"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/id"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/types"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain/registers/stock"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/infrastructure/storage/postgres"
)

const (
	stockMovementsTable = "reg_stock_movements"
	stockBalancesTable  = "reg_stock_balances"
)

// StockRepo implements stock.Repository.
// Balances are maintained alongside movements: every insert or delete of
// movements applies the matching delta to reg_stock_balances in the same
// transaction, so balance rows never drift from the movement log.
type StockRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewStockRepo creates a new stock register repository.
func NewStockRepo(txm *postgres.TxManager) *StockRepo {
	return &StockRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateMovements batch inserts movements and applies balance deltas.
func (r *StockRepo) CreateMovements(ctx context.Context, movements []entity.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}

	columns := []string{
		"line_id", "recorder_id", "recorder_type", "recorder_version",
		"period", "record_type",
		"warehouse_id", "product_id", "quantity", "created_at",
	}

	// Fast path: COPY when inside a transaction.
	if tx := r.txm.GetTx(ctx); tx != nil {
		inserter := postgres.NewBatchInserter(r.txm)
		rows := make([][]any, 0, len(movements))
		for _, m := range movements {
			rows = append(rows, []any{
				m.LineID, m.RecorderID, m.RecorderType, m.RecorderVersion,
				m.Period, m.RecordType,
				m.WarehouseID, m.ProductID, m.Quantity, m.CreatedAt,
			})
		}
		if _, err := inserter.CopyFromSlice(ctx, stockMovementsTable, columns, rows); err != nil {
			return fmt.Errorf("copy movements: %w", err)
		}
		return r.applyMovementDeltas(ctx, movements, 1)
	}

	// Fallback: non-transactional insert (slower). Prefer calling CreateMovements within tx.
	q := r.builder.Insert(stockMovementsTable).Columns(columns...)

	for _, m := range movements {
		q = q.Values(
			m.LineID, m.RecorderID, m.RecorderType, m.RecorderVersion,
			m.Period, m.RecordType,
			m.WarehouseID, m.ProductID, m.Quantity, m.CreatedAt,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert movements: %w", err)
	}

	return r.applyMovementDeltas(ctx, movements, 1)
}

// DeleteMovementsByRecorder removes movements below the given version and
// rolls their effect out of the balance table.
func (r *StockRepo) DeleteMovementsByRecorder(ctx context.Context, recorderID id.ID, beforeVersion int) error {
	sql := `
		DELETE FROM reg_stock_movements
		WHERE recorder_id = $1 AND recorder_version < $2
		RETURNING warehouse_id, product_id, record_type, quantity, period
	`

	querier := r.txm.GetQuerier(ctx)
	rows, err := querier.Query(ctx, sql, recorderID, beforeVersion)
	if err != nil {
		return fmt.Errorf("delete movements: %w", err)
	}
	defer rows.Close()

	var removed []entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.WarehouseID, &m.ProductID, &m.RecordType, &m.Quantity, &m.Period); err != nil {
			return fmt.Errorf("scan removed movement: %w", err)
		}
		removed = append(removed, m)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("delete movements: %w", err)
	}
	rows.Close()

	return r.applyMovementDeltas(ctx, removed, -1)
}

// applyMovementDeltas upserts balance rows. sign is +1 when movements are
// recorded and -1 when they are reversed.
func (r *StockRepo) applyMovementDeltas(ctx context.Context, movements []entity.StockMovement, sign int64) error {
	if len(movements) == 0 {
		return nil
	}

	type key struct {
		warehouseID id.ID
		productID   id.ID
	}

	deltas := make(map[key]int64, len(movements))
	order := make([]key, 0, len(movements))
	for _, m := range movements {
		k := key{m.WarehouseID, m.ProductID}
		if _, seen := deltas[k]; !seen {
			order = append(order, k)
		}
		deltas[k] += sign * int64(m.SignedQuantity())
	}

	sql := `
		INSERT INTO reg_stock_balances (warehouse_id, product_id, quantity, last_movement_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (warehouse_id, product_id)
		DO UPDATE SET
			quantity = reg_stock_balances.quantity + EXCLUDED.quantity,
			last_movement_at = NOW(),
			updated_at = NOW()
	`

	querier := r.txm.GetQuerier(ctx)
	for _, k := range order {
		if _, err := querier.Exec(ctx, sql, k.warehouseID, k.productID, deltas[k]); err != nil {
			return fmt.Errorf("apply balance delta: %w", err)
		}
	}

	return nil
}

// GetMovementsByRecorder retrieves movements for a document.
func (r *StockRepo) GetMovementsByRecorder(ctx context.Context, recorderID id.ID) ([]entity.StockMovement, error) {
	q := r.builder.Select(
		"line_id", "recorder_id", "recorder_type", "recorder_version",
		"period", "record_type",
		"warehouse_id", "product_id", "quantity", "created_at",
	).From(stockMovementsTable).
		Where(squirrel.Eq{"recorder_id": recorderID}).
		OrderBy("created_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var movements []entity.StockMovement
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &movements, sql, args...); err != nil {
		return nil, fmt.Errorf("select movements: %w", err)
	}

	return movements, nil
}

// GetBalance returns current balance for warehouse+product.
// A missing balance row reads as zero quantity.
func (r *StockRepo) GetBalance(ctx context.Context, warehouseID, productID id.ID) (entity.StockBalance, error) {
	var balance entity.StockBalance

	q := r.builder.Select(
		"warehouse_id", "product_id",
		"quantity", "last_movement_at", "updated_at",
	).From(stockBalancesTable).
		Where(squirrel.Eq{
			"warehouse_id": warehouseID,
			"product_id":   productID,
		}).Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return balance, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &balance, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity.StockBalance{
				WarehouseID: warehouseID,
				ProductID:   productID,
				Quantity:    0,
			}, nil
		}
		return balance, fmt.Errorf("get balance: %w", err)
	}

	return balance, nil
}

// GetBalanceForUpdate returns balance with pessimistic lock.
func (r *StockRepo) GetBalanceForUpdate(ctx context.Context, warehouseID, productID id.ID) (entity.StockBalance, error) {
	var balance entity.StockBalance

	sql := `
		SELECT warehouse_id, product_id, quantity, last_movement_at, updated_at
		FROM reg_stock_balances
		WHERE warehouse_id = $1 AND product_id = $2
		FOR UPDATE
	`

	err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &balance, sql, warehouseID, productID)
	if err != nil {
		if pgxscan.NotFound(err) {
			return entity.StockBalance{
				WarehouseID: warehouseID,
				ProductID:   productID,
				Quantity:    0,
			}, nil
		}
		return balance, fmt.Errorf("get balance for update: %w", err)
	}

	return balance, nil
}

// GetBalancesByWarehouse returns balances for a warehouse.
func (r *StockRepo) GetBalancesByWarehouse(ctx context.Context, warehouseID id.ID, filter stock.BalanceFilter) ([]entity.StockBalance, error) {
	q := r.builder.Select(
		"warehouse_id", "product_id",
		"quantity", "last_movement_at", "updated_at",
	).From(stockBalancesTable).
		Where(squirrel.Eq{"warehouse_id": warehouseID})

	if filter.ExcludeZero {
		q = q.Where(squirrel.NotEq{"quantity": int64(0)})
	}

	if len(filter.ProductIDs) > 0 {
		q = q.Where(squirrel.Eq{"product_id": filter.ProductIDs})
	}

	if filter.MinQuantity != nil {
		q = q.Where(squirrel.GtOrEq{"quantity": filter.MinQuantity.Int64Scaled()})
	}

	if filter.MaxQuantity != nil {
		q = q.Where(squirrel.LtOrEq{"quantity": filter.MaxQuantity.Int64Scaled()})
	}

	q = q.OrderBy("product_id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var balances []entity.StockBalance
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &balances, sql, args...); err != nil {
		return nil, fmt.Errorf("select balances: %w", err)
	}

	return balances, nil
}

// GetBalancesByProduct returns balances for a product across warehouses.
func (r *StockRepo) GetBalancesByProduct(ctx context.Context, productID id.ID) ([]entity.StockBalance, error) {
	q := r.builder.Select(
		"warehouse_id", "product_id",
		"quantity", "last_movement_at", "updated_at",
	).From(stockBalancesTable).
		Where(squirrel.Eq{"product_id": productID}).
		Where(squirrel.NotEq{"quantity": int64(0)}).
		OrderBy("warehouse_id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var balances []entity.StockBalance
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &balances, sql, args...); err != nil {
		return nil, fmt.Errorf("select balances: %w", err)
	}

	return balances, nil
}

// GetMovementHistory returns movement history for a product.
func (r *StockRepo) GetMovementHistory(ctx context.Context, productID id.ID, filter stock.MovementFilter) ([]entity.StockMovement, error) {
	q := r.builder.Select(
		"line_id", "recorder_id", "recorder_type", "recorder_version",
		"period", "record_type",
		"warehouse_id", "product_id", "quantity", "created_at",
	).From(stockMovementsTable).
		Where(squirrel.Eq{"product_id": productID})

	if filter.WarehouseID != nil {
		q = q.Where(squirrel.Eq{"warehouse_id": *filter.WarehouseID})
	}

	if filter.RecordType != nil {
		q = q.Where(squirrel.Eq{"record_type": *filter.RecordType})
	}

	if filter.FromDate != nil {
		q = q.Where(squirrel.GtOrEq{"period": *filter.FromDate})
	}

	if filter.ToDate != nil {
		q = q.Where(squirrel.LtOrEq{"period": *filter.ToDate})
	}

	q = q.OrderBy("period DESC", "created_at DESC")

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var movements []entity.StockMovement
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &movements, sql, args...); err != nil {
		return nil, fmt.Errorf("select history: %w", err)
	}

	return movements, nil
}

// GetTurnover calculates turnover for period.
func (r *StockRepo) GetTurnover(ctx context.Context, filter stock.TurnoverFilter) (stock.Turnover, error) {
	var result stock.Turnover

	args := []any{filter.FromDate, filter.ToDate}
	baseConditions := "period >= $1 AND period < $2"
	argIndex := 3

	if filter.WarehouseID != nil {
		baseConditions += fmt.Sprintf(" AND warehouse_id = $%d", argIndex)
		args = append(args, *filter.WarehouseID)
		result.WarehouseID = *filter.WarehouseID
		argIndex++
	}

	if filter.ProductID != nil {
		baseConditions += fmt.Sprintf(" AND product_id = $%d", argIndex)
		args = append(args, *filter.ProductID)
		result.ProductID = *filter.ProductID
		argIndex++
	}

	sql := fmt.Sprintf(`
		SELECT
			COALESCE(SUM(CASE WHEN record_type = 'receipt' THEN quantity ELSE 0 END), 0) as receipt,
			COALESCE(SUM(CASE WHEN record_type = 'expense' THEN quantity ELSE 0 END), 0) as expense
		FROM reg_stock_movements
		WHERE %s
	`, baseConditions)

	querier := r.txm.GetQuerier(ctx)
	var receiptScaled, expenseScaled int64
	err := querier.QueryRow(ctx, sql, args...).Scan(&receiptScaled, &expenseScaled)
	if err != nil && err != pgx.ErrNoRows {
		return result, fmt.Errorf("calculate turnover: %w", err)
	}
	result.Receipt = types.NewQuantityFromInt64Scaled(receiptScaled)
	result.Expense = types.NewQuantityFromInt64Scaled(expenseScaled)

	// Opening balance: everything before the period start
	openingArgs := []any{filter.FromDate}
	openingConditions := "period < $1"
	argIndex = 2

	if filter.WarehouseID != nil {
		openingConditions += fmt.Sprintf(" AND warehouse_id = $%d", argIndex)
		openingArgs = append(openingArgs, *filter.WarehouseID)
		argIndex++
	}

	if filter.ProductID != nil {
		openingConditions += fmt.Sprintf(" AND product_id = $%d", argIndex)
		openingArgs = append(openingArgs, *filter.ProductID)
	}

	openingSQL := fmt.Sprintf(`
		SELECT COALESCE(
			SUM(CASE WHEN record_type = 'receipt' THEN quantity ELSE -quantity END),
			0
		)
		FROM reg_stock_movements
		WHERE %s
	`, openingConditions)

	var openingScaled int64
	err = querier.QueryRow(ctx, openingSQL, openingArgs...).Scan(&openingScaled)
	if err != nil && err != pgx.ErrNoRows {
		return result, fmt.Errorf("calculate opening balance: %w", err)
	}
	result.OpeningBalance = types.NewQuantityFromInt64Scaled(openingScaled)

	result.ClosingBalance = result.OpeningBalance + result.Receipt - result.Expense

	return result, nil
}

// Ensure interface compliance.
var _ stock.Repository = (*StockRepo)(nil)
