package catalog_repo

import (
	"context"

	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/id"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain/catalogs/lead"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain/filter"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/infrastructure/storage/postgres"
)

const leadTable = "cat_leads"

// LeadRepo implements lead.Repository.
type LeadRepo struct {
	*BaseCatalogRepo[*lead.Lead]
}

// NewLeadRepo creates a new lead repository.
func NewLeadRepo(txm *postgres.TxManager) *LeadRepo {
	return &LeadRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			leadTable,
			postgres.ExtractDBColumns[lead.Lead](),
			func() *lead.Lead { return &lead.Lead{} },
		),
	}
}

// FindByStatus retrieves leads in a pipeline stage.
func (r *LeadRepo) FindByStatus(ctx context.Context, status lead.Status, listFilter domain.ListFilter) (domain.ListResult[*lead.Lead], error) {
	listFilter.AdvancedFilters = append(listFilter.AdvancedFilters, filter.Item{
		Field:    "status",
		Operator: filter.Equal,
		Value:    string(status),
	})
	return r.List(ctx, listFilter)
}

// FindByAssignee retrieves leads assigned to an agent.
func (r *LeadRepo) FindByAssignee(ctx context.Context, userID id.ID, listFilter domain.ListFilter) (domain.ListResult[*lead.Lead], error) {
	listFilter.AdvancedFilters = append(listFilter.AdvancedFilters, filter.Item{
		Field:    "assigned_to",
		Operator: filter.Equal,
		Value:    userID,
	})
	return r.List(ctx, listFilter)
}
