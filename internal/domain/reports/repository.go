package reports

import "context"

// Repository defines aggregation queries over posted sales and leads.
// Only posted, non-deleted sales count towards totals.
type Repository interface {
	// SalesByChannel groups posted sale totals by channel.
	SalesByChannel(ctx context.Context, period Period) ([]ChannelTotal, error)

	// SalesByMonth groups posted sale totals by calendar month.
	SalesByMonth(ctx context.Context, period Period) ([]MonthlyTotal, error)

	// GetSummary returns the headline numbers for the period.
	GetSummary(ctx context.Context, period Period) (*Summary, error)
}
