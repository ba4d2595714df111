// Package report_repo provides PostgreSQL implementations for report repositories.
package report_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain/reports"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository.
// All aggregations count posted, non-deleted sales only.
type ReportRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txm *postgres.TxManager) *ReportRepo {
	return &ReportRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *ReportRepo) periodConditions(period reports.Period) (string, []any) {
	conditions := ""
	var args []any
	argIndex := 1

	if !period.From.IsZero() {
		conditions += fmt.Sprintf(" AND date >= $%d", argIndex)
		args = append(args, period.From)
		argIndex++
	}
	if !period.To.IsZero() {
		conditions += fmt.Sprintf(" AND date < $%d", argIndex)
		args = append(args, period.To)
	}

	return conditions, args
}

// SalesByChannel groups posted sale totals by channel.
func (r *ReportRepo) SalesByChannel(ctx context.Context, period reports.Period) ([]reports.ChannelTotal, error) {
	conditions, args := r.periodConditions(period)

	query := fmt.Sprintf(`
		SELECT
			channel,
			COUNT(*) as count,
			COALESCE(SUM(total), 0) as total
		FROM doc_sales
		WHERE posted = true AND deletion_mark = false%s
		GROUP BY channel
		ORDER BY total DESC
	`, conditions)

	var items []reports.ChannelTotal
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, query, args...); err != nil {
		return nil, fmt.Errorf("sales by channel: %w", err)
	}

	return items, nil
}

// SalesByMonth groups posted sale totals by calendar month.
func (r *ReportRepo) SalesByMonth(ctx context.Context, period reports.Period) ([]reports.MonthlyTotal, error) {
	conditions, args := r.periodConditions(period)

	query := fmt.Sprintf(`
		SELECT
			to_char(date_trunc('month', date), 'YYYY-MM') as month,
			COUNT(*) as count,
			COALESCE(SUM(total), 0) as total
		FROM doc_sales
		WHERE posted = true AND deletion_mark = false%s
		GROUP BY date_trunc('month', date)
		ORDER BY date_trunc('month', date)
	`, conditions)

	var items []reports.MonthlyTotal
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, query, args...); err != nil {
		return nil, fmt.Errorf("sales by month: %w", err)
	}

	return items, nil
}

// GetSummary returns the headline numbers for the period.
func (r *ReportRepo) GetSummary(ctx context.Context, period reports.Period) (*reports.Summary, error) {
	conditions, args := r.periodConditions(period)

	salesQuery := fmt.Sprintf(`
		SELECT COUNT(*), COALESCE(SUM(total), 0)
		FROM doc_sales
		WHERE posted = true AND deletion_mark = false%s
	`, conditions)

	summary := &reports.Summary{}
	querier := r.txm.GetQuerier(ctx)

	if err := querier.QueryRow(ctx, salesQuery, args...).Scan(&summary.SalesCount, &summary.Revenue); err != nil {
		return nil, fmt.Errorf("sales summary: %w", err)
	}

	leadsQuery := `
		SELECT
			COUNT(*) FILTER (WHERE status IN ('new', 'contacted', 'qualified')) as open_leads,
			COUNT(*) FILTER (WHERE status = 'won') as won_leads
		FROM cat_leads
		WHERE deletion_mark = false
	`

	if err := querier.QueryRow(ctx, leadsQuery).Scan(&summary.OpenLeads, &summary.WonLeads); err != nil {
		return nil, fmt.Errorf("leads summary: %w", err)
	}

	return summary, nil
}

// Ensure interface compliance
var _ reports.Repository = (*ReportRepo)(nil)
