package ordering

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/peeves/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the fulfillment state of an order.
// Values are free-form on read so legacy records with unknown statuses
// are surfaced as stored.
type OrderStatus string

const (
	OrderStatusPaid     OrderStatus = "paid"
	OrderStatusPrepared OrderStatus = "prepared"
	OrderStatusShipped  OrderStatus = "shipped"
)

// KnownStatuses lists the statuses an admin may set.
var KnownStatuses = []OrderStatus{OrderStatusPaid, OrderStatusPrepared, OrderStatusShipped}

// IsKnownStatus reports whether s is a status an admin may set
func IsKnownStatus(s OrderStatus) bool {
	for _, known := range KnownStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// PaymentMethod identifies how an order was paid.
type PaymentMethod string

const (
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodApplePay PaymentMethod = "applepay"
	PaymentMethodPayPal   PaymentMethod = "paypal"
)

// IsValidPaymentMethod reports whether m is an accepted payment method
func IsValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodCard, PaymentMethodApplePay, PaymentMethodPayPal:
		return true
	}
	return false
}

// OrderItem is a snapshot of a purchased line at checkout time.
// Product data copied here stays stable even if the catalog changes later.
type OrderItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Size      string          `json:"size,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderItems is the jsonb-stored list of line snapshots.
type OrderItems []OrderItem

// Value implements driver.Valuer for GORM
func (items OrderItems) Value() (driver.Value, error) {
	data, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for GORM
func (items *OrderItems) Scan(value interface{}) error {
	if value == nil {
		*items = OrderItems{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported order items column type %T", value)
	}
	return json.Unmarshal(data, items)
}

// TotalQuantity returns the number of units across all lines
func (items OrderItems) TotalQuantity() int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

// Order is the aggregate root for a placed order.
type Order struct {
	shared.BaseAggregateRoot
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Items         OrderItems      `gorm:"type:jsonb;not null;default:'[]'"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Currency      string          `gorm:"type:varchar(3);not null;default:'EUR'"`
	Status        OrderStatus     `gorm:"type:varchar(30);not null;index"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a paid order from checkout line snapshots
func NewOrder(userID uuid.UUID, items OrderItems, amount decimal.Decimal, currency string, method PaymentMethod) (*Order, error) {
	if len(items) == 0 {
		return nil, shared.ErrEmptyCart
	}
	if !IsValidPaymentMethod(method) {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unsupported payment method")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Order amount cannot be negative")
	}
	if currency == "" {
		currency = "EUR"
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Items:             items,
		Amount:            amount,
		Currency:          currency,
		Status:            OrderStatusPaid,
		PaymentMethod:     method,
	}

	order.AddDomainEvent(NewOrderPlacedEvent(order))

	return order, nil
}

// SetStatus moves the order to the given status. Any known status may be
// set regardless of the current one, so an admin can walk the order back.
// Setting the current status again is a no-op.
func (o *Order) SetStatus(status OrderStatus) (changed bool, err error) {
	if !IsKnownStatus(status) {
		return false, shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}
	if o.Status == status {
		return false, nil
	}

	previous := o.Status
	o.Status = status
	o.Touch()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, previous))

	return true, nil
}
