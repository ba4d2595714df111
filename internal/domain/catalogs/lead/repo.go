package lead

import (
	"context"

	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/id"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain"
)

// Repository defines the interface for Lead persistence.
type Repository interface {
	domain.CatalogRepository[*Lead]

	// FindByStatus retrieves leads in a pipeline stage.
	FindByStatus(ctx context.Context, status Status, filter domain.ListFilter) (domain.ListResult[*Lead], error)

	// FindByAssignee retrieves leads assigned to an agent.
	FindByAssignee(ctx context.Context, userID id.ID, filter domain.ListFilter) (domain.ListResult[*Lead], error)
}
