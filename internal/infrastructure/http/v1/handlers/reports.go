package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/apperror"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain/reports"
)

// ReportsHandler handles HTTP requests for sales reports.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// parsePeriod reads optional from/to query params. Empty values leave the
// corresponding bound open.
func (h *ReportsHandler) parsePeriod(c *gin.Context) (reports.Period, bool) {
	var period reports.Period

	if fromStr := c.Query("from"); fromStr != "" {
		parsed, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid from format, expected RFC3339"))
			return period, false
		}
		period.From = parsed
	}

	if toStr := c.Query("to"); toStr != "" {
		parsed, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid to format, expected RFC3339"))
			return period, false
		}
		period.To = parsed
	}

	return period, true
}

// SalesByChannel handles GET /reports/sales-by-channel
func (h *ReportsHandler) SalesByChannel(c *gin.Context) {
	ctx := c.Request.Context()

	period, ok := h.parsePeriod(c)
	if !ok {
		return
	}

	totals, err := h.service.SalesByChannel(ctx, period)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": totals})
}

// SalesByMonth handles GET /reports/sales-by-month
func (h *ReportsHandler) SalesByMonth(c *gin.Context) {
	ctx := c.Request.Context()

	period, ok := h.parsePeriod(c)
	if !ok {
		return
	}

	totals, err := h.service.SalesByMonth(ctx, period)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": totals})
}

// GetSummary handles GET /reports/summary
func (h *ReportsHandler) GetSummary(c *gin.Context) {
	ctx := c.Request.Context()

	period, ok := h.parsePeriod(c)
	if !ok {
		return
	}

	summary, err := h.service.GetSummary(ctx, period)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// RegisterRoutes registers report routes.
func (h *ReportsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/sales-by-channel", h.SalesByChannel)
	rg.GET("/sales-by-month", h.SalesByMonth)
	rg.GET("/summary", h.GetSummary)
}
