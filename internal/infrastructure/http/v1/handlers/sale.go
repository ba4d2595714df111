package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/apperror"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/id"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain/documents/sale"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/infrastructure/http/v1/dto"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/infrastructure/storage/postgres"
)

// SaleHandler handles HTTP requests for sale documents.
type SaleHandler struct {
	*BaseDocumentHandler[*sale.Sale, dto.CreateSaleRequest, dto.UpdateSaleRequest]
	service *sale.Service
	audit   *postgres.AuditService
}

// NewSaleHandler creates a new sale handler.
func NewSaleHandler(base *BaseHandler, service *sale.Service, audit *postgres.AuditService) *SaleHandler {
	cfg := BaseDocumentHandlerConfig[*sale.Sale, dto.CreateSaleRequest, dto.UpdateSaleRequest]{
		Service:    service,
		EntityName: "sale",
		MapCreateDTO: func(req dto.CreateSaleRequest) *sale.Sale {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateSaleRequest, existing *sale.Sale) *sale.Sale {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(doc *sale.Sale) any {
			return dto.FromSale(doc)
		},
		IsPostImmediately: func(req dto.CreateSaleRequest) bool {
			return req.PostImmediately
		},
	}

	return &SaleHandler{
		BaseDocumentHandler: NewBaseDocumentHandler(base, cfg),
		service:             service,
		audit:               audit,
	}
}

// History handles GET /documents/sales/:id/history - audit trail for a sale.
func (h *SaleHandler) History(c *gin.Context) {
	ctx := c.Request.Context()

	saleID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id").WithDetail("id", c.Param("id")))
		return
	}

	if h.audit == nil {
		h.Error(c, apperror.NewNotFound("audit history", saleID.String()))
		return
	}

	limit := h.ParseIntQuery(c, "limit", 50)

	entries, err := h.audit.GetEntityHistory(ctx, "Sale", saleID, limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.AuditEntryResponse, len(entries))
	for i, e := range entries {
		items[i] = dto.FromAuditEntry(e)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// List handles GET /documents/sales - list with filtering.
func (h *SaleHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := sale.ListFilter{
		ListFilter: domain.DefaultListFilter(),
	}
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.Query("orderBy") // empty falls back to date DESC in the repo
	filter.IncludeDeleted = c.Query("includeDeleted") == "true"

	if leadID := c.Query("leadId"); leadID != "" {
		if parsed, err := id.Parse(leadID); err == nil {
			filter.LeadID = &parsed
		}
	}

	if warehouseID := c.Query("warehouseId"); warehouseID != "" {
		if parsed, err := id.Parse(warehouseID); err == nil {
			filter.WarehouseID = &parsed
		}
	}

	if channel := c.Query("channel"); channel != "" {
		val := sale.Channel(channel)
		filter.Channel = &val
	}

	if posted := c.Query("posted"); posted != "" {
		val := posted == "true"
		filter.Posted = &val
	}

	if dateFrom := c.Query("dateFrom"); dateFrom != "" {
		if parsed, err := time.Parse(time.RFC3339, dateFrom); err == nil {
			filter.DateFrom = &parsed
		}
	}

	if dateTo := c.Query("dateTo"); dateTo != "" {
		if parsed, err := time.Parse(time.RFC3339, dateTo); err == nil {
			filter.DateTo = &parsed
		}
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, doc := range result.Items {
		items[i] = dto.FromSale(doc)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
