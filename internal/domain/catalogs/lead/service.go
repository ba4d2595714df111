package lead

import (
	"context"
	"fmt"
	"time"

	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/id"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/tx"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain"
	"github.com/Timbal-Mexico/barocerp-sub000/pkg/logger"
	"github.com/Timbal-Mexico/barocerp-sub000/pkg/numerator"
)

// Service provides business logic for the Lead catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Lead]
	repo      Repository
	numerator numerator.Generator
}

// NewService creates a new Lead service.
func NewService(
	repo Repository,
	txManager tx.Manager,
	numerator numerator.Generator,
) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Lead]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  numerator,
		EntityName: "lead",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      numerator,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)

	return svc
}

// prepareForCreate handles code generation and initial status.
func (s *Service) prepareForCreate(ctx context.Context, l *Lead) error {
	if l.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("LD"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		l.Code = code
	}

	if l.Status == "" {
		l.Status = StatusNew
	}

	return nil
}

// --- Entity-specific methods ---

// UpdateStatus moves a lead through the pipeline with transition checks.
func (s *Service) UpdateStatus(ctx context.Context, leadID id.ID, next Status) (*Lead, error) {
	l, err := s.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}

	from := l.Status
	if err := l.TransitionTo(next); err != nil {
		return nil, err
	}

	if err := s.Update(ctx, l); err != nil {
		return nil, err
	}

	logger.Info(ctx, "lead status changed",
		"lead_id", leadID.String(),
		"from", string(from),
		"to", string(next),
	)
	return l, nil
}

// Assign sets the responsible sales agent.
func (s *Service) Assign(ctx context.Context, leadID, userID id.ID) (*Lead, error) {
	l, err := s.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}

	l.AssignedTo = &userID
	if err := s.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// FindByStatus retrieves leads in a pipeline stage.
func (s *Service) FindByStatus(ctx context.Context, status Status, filter domain.ListFilter) (domain.ListResult[*Lead], error) {
	return s.repo.FindByStatus(ctx, status, filter)
}

// FindByAssignee retrieves leads assigned to an agent.
func (s *Service) FindByAssignee(ctx context.Context, userID id.ID, filter domain.ListFilter) (domain.ListResult[*Lead], error) {
	return s.repo.FindByAssignee(ctx, userID, filter)
}
