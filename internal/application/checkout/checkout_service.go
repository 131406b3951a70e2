package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peeves/backend/internal/domain/cart"
	"github.com/peeves/backend/internal/domain/ordering"
	"github.com/peeves/backend/internal/domain/shared"
)

// CheckoutRequest submits the cart for (simulated) payment
type CheckoutRequest struct {
	PaymentMethod string       `json:"payment_method" binding:"required,oneof=card applepay paypal"`
	Card          *CardDetails `json:"card"`
}

// CheckoutResponse reports the order created for a successful checkout
type CheckoutResponse struct {
	OrderID       string `json:"order_id"`
	Status        string `json:"status"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	PaymentMethod string `json:"payment_method"`
	ItemCount     int    `json:"item_count"`
}

// CheckoutService turns a cart into a paid order.
// Stock is not decremented here; the stock editor is the only writer of
// size quantities.
type CheckoutService struct {
	cartStore      cart.Store
	orderRepo      ordering.OrderRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
	now            func() time.Time
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(cartStore cart.Store, orderRepo ordering.OrderRepository, logger *zap.Logger) *CheckoutService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutService{
		cartStore: cartStore,
		orderRepo: orderRepo,
		logger:    logger,
		now:       time.Now,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *CheckoutService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Checkout validates payment, snapshots the cart into an order marked paid
// and clears the cart. There is no idempotency key: submitting twice
// creates two orders.
func (s *CheckoutService) Checkout(ctx context.Context, userID uuid.UUID, req CheckoutRequest) (*CheckoutResponse, error) {
	method := ordering.PaymentMethod(req.PaymentMethod)
	if err := ValidatePayment(method, req.Card, s.now()); err != nil {
		return nil, err
	}

	c, err := s.cartStore.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, shared.ErrEmptyCart
	}

	items := make(ordering.OrderItems, len(c.Items))
	for i, line := range c.Items {
		items[i] = ordering.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Size:      line.Size,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		}
	}

	totals := c.ComputeTotals()
	order, err := ordering.NewOrder(userID, items, totals.Total, "EUR", method)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	if err := s.cartStore.Delete(ctx, userID); err != nil {
		// The order exists; a stale cart is recoverable by the user.
		s.logger.Warn("failed to clear cart after checkout",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}

	s.publishEvents(ctx, order)
	s.logger.Info("checkout completed",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("amount", order.Amount.StringFixed(2)),
		zap.String("payment_method", string(method)),
	)

	return &CheckoutResponse{
		OrderID:       order.ID.String(),
		Status:        string(order.Status),
		Amount:        order.Amount.StringFixed(2),
		Currency:      order.Currency,
		PaymentMethod: string(order.PaymentMethod),
		ItemCount:     order.Items.TotalQuantity(),
	}, nil
}

func (s *CheckoutService) publishEvents(ctx context.Context, order *ordering.Order) {
	if s.eventPublisher == nil {
		return
	}
	events := order.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish order events", zap.Error(err))
	}
	order.ClearDomainEvents()
}
