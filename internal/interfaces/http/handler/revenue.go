package handler

import (
	"github.com/gin-gonic/gin"

	reportapp "github.com/peeves/backend/internal/application/report"
	"github.com/peeves/backend/internal/interfaces/http/middleware"
)

// RevenueHandler exposes the admin revenue dashboard
type RevenueHandler struct {
	BaseHandler
	revenueService *reportapp.RevenueService
}

// NewRevenueHandler creates a new RevenueHandler
func NewRevenueHandler(revenueService *reportapp.RevenueService) *RevenueHandler {
	return &RevenueHandler{revenueService: revenueService}
}

// RegisterRoutes registers the revenue route
func (h *RevenueHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin/revenue", middleware.RequireAdmin())
	{
		admin.GET("", h.Aggregate)
	}
}

// Aggregate returns revenue totals and the daily series for the requested
// window, either a rolling range or a calendar year/month
func (h *RevenueHandler) Aggregate(c *gin.Context) {
	var query reportapp.RevenueQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.revenueService.Aggregate(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
