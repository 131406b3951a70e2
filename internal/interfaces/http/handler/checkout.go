package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric"

	checkoutapp "github.com/peeves/backend/internal/application/checkout"
	"github.com/peeves/backend/internal/infrastructure/telemetry"
)

// CheckoutHandler converts the cart into a paid order
type CheckoutHandler struct {
	BaseHandler
	checkoutService *checkoutapp.CheckoutService
	metrics         *telemetry.StorefrontMetrics
}

// NewCheckoutHandler creates a new CheckoutHandler. Metrics may be nil.
func NewCheckoutHandler(checkoutService *checkoutapp.CheckoutService, metrics *telemetry.StorefrontMetrics) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		metrics:         metrics,
	}
}

// RegisterRoutes registers the checkout route
func (h *CheckoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/checkout", h.Checkout)
}

// Checkout validates payment details, creates the order and clears the cart
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req checkoutapp.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.checkoutService.Checkout(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if h.metrics != nil {
		ctx := c.Request.Context()
		h.metrics.OrdersPlaced.Add(ctx, 1,
			metric.WithAttributes(telemetry.AttrOrderStatus.String(resp.Status)))
		if amount, err := strconv.ParseFloat(resp.Amount, 64); err == nil {
			h.metrics.CheckoutAmount.Record(ctx, amount)
		}
	}

	h.Created(c, resp)
}
