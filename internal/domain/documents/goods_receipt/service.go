package goods_receipt

import (
	"context"
	"fmt"
	"time"

	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/id"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/tx"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain/posting"
	"github.com/Timbal-Mexico/barocerp-sub000/pkg/logger"
	"github.com/Timbal-Mexico/barocerp-sub000/pkg/numerator"
)

// Service provides business operations for goods receipt documents.
type Service struct {
	repo          Repository
	postingEngine *posting.Engine
	numerator     numerator.Generator
	txManager     tx.Manager
}

// NewService creates a new goods receipt service.
func NewService(
	repo Repository,
	postingEngine *posting.Engine,
	numerator numerator.Generator,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:          repo,
		postingEngine: postingEngine,
		numerator:     numerator,
		txManager:     txManager,
	}
}

func (s *Service) assignNumber(ctx context.Context, doc *GoodsReceipt) error {
	if doc.Number != "" {
		return nil
	}
	number, err := s.numerator.GetNextNumber(ctx, NumberConfig(), &numerator.Options{Strategy: NumeratorStrategy}, time.Now())
	if err != nil {
		return fmt.Errorf("generate number: %w", err)
	}
	doc.Number = number
	return nil
}

// Create saves a goods receipt as a draft without posting movements.
func (s *Service) Create(ctx context.Context, doc *GoodsReceipt) error {
	doc.recalculateTotals()

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	if err := s.assignNumber(ctx, doc); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}
		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "goods receipt created", "id", doc.ID, "number", doc.Number)
	return nil
}

// GetByID retrieves a goods receipt with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*GoodsReceipt, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines

	return doc, nil
}

// Update saves changes to a goods receipt. A posted receipt is re-posted in
// the same transaction so the register always reflects the current lines.
func (s *Service) Update(ctx context.Context, doc *GoodsReceipt) error {
	doc.recalculateTotals()

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	saveDoc := func(ctx context.Context) error {
		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}
		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	}

	if doc.Posted {
		return s.postingEngine.Post(ctx, doc, saveDoc)
	}

	return s.txManager.RunInTransaction(ctx, saveDoc)
}

// Delete soft-deletes a goods receipt. Posted receipts must be unposted first.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	if doc.Posted {
		return doc.CanModify()
	}

	return s.repo.Delete(ctx, docID)
}

// Post records receipt movements to the stock register.
func (s *Service) Post(ctx context.Context, docID id.ID) error {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	updateDoc := func(ctx context.Context) error {
		return s.repo.Update(ctx, doc)
	}

	return s.postingEngine.Post(ctx, doc, updateDoc)
}

// Unpost reverses receipt movements.
func (s *Service) Unpost(ctx context.Context, docID id.ID) error {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	updateDoc := func(ctx context.Context) error {
		return s.repo.Update(ctx, doc)
	}

	return s.postingEngine.Unpost(ctx, doc, updateDoc)
}

// PostAndSave saves and posts a goods receipt in one transaction.
func (s *Service) PostAndSave(ctx context.Context, doc *GoodsReceipt) error {
	doc.recalculateTotals()

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	if err := s.assignNumber(ctx, doc); err != nil {
		return err
	}

	saveDoc := func(ctx context.Context) error {
		if doc.Version == 1 {
			if err := s.repo.Create(ctx, doc); err != nil {
				return err
			}
			return s.repo.SaveLines(ctx, doc.ID, doc.Lines)
		}
		if err := s.repo.Update(ctx, doc); err != nil {
			return err
		}
		return s.repo.SaveLines(ctx, doc.ID, doc.Lines)
	}

	return s.postingEngine.Post(ctx, doc, saveDoc)
}

// List retrieves goods receipts with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*GoodsReceipt], error) {
	return s.repo.List(ctx, filter)
}
