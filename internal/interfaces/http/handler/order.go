package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	orderingapp "github.com/peeves/backend/internal/application/ordering"
	"github.com/peeves/backend/internal/infrastructure/telemetry"
	"github.com/peeves/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles order history for customers and order management
// for admins
type OrderHandler struct {
	BaseHandler
	orderService *orderingapp.OrderService
	metrics      *telemetry.StorefrontMetrics
}

// NewOrderHandler creates a new OrderHandler. Metrics may be nil.
func NewOrderHandler(orderService *orderingapp.OrderService, metrics *telemetry.StorefrontMetrics) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		metrics:      metrics,
	}
}

// RegisterRoutes registers customer and admin order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.GET("", h.ListMine)
		orders.GET("/:id", h.GetMine)
	}

	admin := rg.Group("/admin/orders", middleware.RequireAdmin())
	{
		admin.GET("", h.List)
		admin.GET("/:id", h.Get)
		admin.PATCH("/:id/status", h.UpdateStatus)
	}
}

// ListMine returns the authenticated user's orders, newest first
func (h *OrderHandler) ListMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orders, err := h.orderService.ListMine(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orders)
}

// GetMine returns one of the authenticated user's orders
func (h *OrderHandler) GetMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.GetForUser(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// List returns a page of all orders with optional status filtering
func (h *OrderHandler) List(c *gin.Context) {
	var query orderingapp.ListOrdersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.orderService.List(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, page)
}

// Get returns any order by ID
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// UpdateStatus moves an order to another fulfilment status. Transitions
// are reversible so a mis-click can be undone.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req orderingapp.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.StatusChanges.Add(c.Request.Context(), 1,
			metric.WithAttributes(telemetry.AttrOrderStatus.String(order.Status)))
	}

	h.Success(c, order)
}
