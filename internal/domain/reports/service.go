package reports

import (
	"context"

	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/apperror"
)

// Service provides sales reporting operations.
type Service struct {
	repo Repository
}

// NewService creates a new reports service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func validatePeriod(period Period) error {
	if !period.From.IsZero() && !period.To.IsZero() && period.To.Before(period.From) {
		return apperror.NewValidation("period end is before period start").
			WithDetail("from", period.From).
			WithDetail("to", period.To)
	}
	return nil
}

// SalesByChannel returns posted sale totals grouped by channel.
func (s *Service) SalesByChannel(ctx context.Context, period Period) ([]ChannelTotal, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}
	return s.repo.SalesByChannel(ctx, period)
}

// SalesByMonth returns posted sale totals grouped by calendar month.
func (s *Service) SalesByMonth(ctx context.Context, period Period) ([]MonthlyTotal, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}
	return s.repo.SalesByMonth(ctx, period)
}

// GetSummary returns the dashboard headline numbers.
func (s *Service) GetSummary(ctx context.Context, period Period) (*Summary, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}
	return s.repo.GetSummary(ctx, period)
}
