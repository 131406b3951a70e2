package ordering

import (
	"github.com/peeves/backend/internal/domain/shared"
)

// Event types for the ordering domain
const (
	EventTypeOrderPlaced        = "ordering.order.placed"
	EventTypeOrderStatusChanged = "ordering.order.status_changed"
)

const aggregateTypeOrder = "Order"

// OrderPlacedEvent is raised when checkout creates an order
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	UserID        string `json:"user_id"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	ItemCount     int    `json:"item_count"`
	PaymentMethod string `json:"payment_method"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(o *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, aggregateTypeOrder, o.ID),
		UserID:          o.UserID.String(),
		Amount:          o.Amount.String(),
		Currency:        o.Currency,
		ItemCount:       o.Items.TotalQuantity(),
		PaymentMethod:   string(o.PaymentMethod),
	}
}

// OrderStatusChangedEvent is raised on every admin status transition
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	From string `json:"from"`
	To   string `json:"to"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(o *Order, previous OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, aggregateTypeOrder, o.ID),
		From:            string(previous),
		To:              string(o.Status),
	}
}
