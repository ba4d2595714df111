package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/apperror"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/id"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain/catalogs/lead"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/infrastructure/http/v1/dto"
)

// LeadHandler handles HTTP requests for leads. CRUD comes from the generic
// catalog handler, pipeline transitions and assignment are lead-specific.
type LeadHandler struct {
	*CatalogHandler[*lead.Lead, dto.CreateLeadRequest, dto.UpdateLeadRequest]
	service *lead.Service
}

// NewLeadHandler creates a new lead handler.
func NewLeadHandler(base *BaseHandler, service *lead.Service) *LeadHandler {
	config := CatalogHandlerConfig[*lead.Lead, dto.CreateLeadRequest, dto.UpdateLeadRequest]{
		Service:    service.CatalogService,
		EntityName: "lead",

		MapCreateDTO: func(req dto.CreateLeadRequest) *lead.Lead {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateLeadRequest, existing *lead.Lead) *lead.Lead {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *lead.Lead) any {
			return dto.FromLead(entity)
		},
	}

	return &LeadHandler{
		CatalogHandler: NewCatalogHandler(base, config),
		service:        service,
	}
}

// UpdateStatus handles POST /catalogs/leads/:id/status - pipeline transition.
func (h *LeadHandler) UpdateStatus(c *gin.Context) {
	ctx := c.Request.Context()

	leadID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateLeadStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	updated, err := h.service.UpdateStatus(ctx, leadID, req.Status)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromLead(updated))
}

// Assign handles POST /catalogs/leads/:id/assign - set responsible agent.
func (h *LeadHandler) Assign(c *gin.Context) {
	ctx := c.Request.Context()

	leadID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.AssignLeadRequest
	if !h.BindJSON(c, &req) {
		return
	}

	userID, err := id.Parse(req.UserID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid user id"))
		return
	}

	updated, err := h.service.Assign(ctx, leadID, userID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromLead(updated))
}

// ListByStatus handles GET /catalogs/leads/by-status/:status - pipeline column view.
func (h *LeadHandler) ListByStatus(c *gin.Context) {
	ctx := c.Request.Context()

	status := lead.Status(c.Param("status"))

	filter := domain.DefaultListFilter()
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)

	result, err := h.service.FindByStatus(ctx, status, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, item := range result.Items {
		items[i] = dto.FromLead(item)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
