package ordering

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peeves/backend/internal/domain/shared"
)

func testItems() OrderItems {
	return OrderItems{
		{ProductID: uuid.New(), Name: "Air Force 1", Size: "44", Quantity: 2, UnitPrice: decimal.RequireFromString("99.99")},
		{ProductID: uuid.New(), Name: "Blazer Mid", Size: "42.5", Quantity: 1, UnitPrice: decimal.RequireFromString("79.99")},
	}
}

func TestNewOrder(t *testing.T) {
	userID := uuid.New()

	t.Run("should create paid order", func(t *testing.T) {
		order, err := NewOrder(userID, testItems(), decimal.RequireFromString("279.97"), "EUR", PaymentMethodCard)

		require.NoError(t, err)
		assert.Equal(t, OrderStatusPaid, order.Status)
		assert.Equal(t, 3, order.Items.TotalQuantity())
		assert.Len(t, order.GetDomainEvents(), 1)
	})

	t.Run("should reject empty item list", func(t *testing.T) {
		_, err := NewOrder(userID, nil, decimal.Zero, "EUR", PaymentMethodCard)
		assert.ErrorIs(t, err, shared.ErrEmptyCart)
	})

	t.Run("should reject unknown payment method", func(t *testing.T) {
		_, err := NewOrder(userID, testItems(), decimal.NewFromInt(10), "EUR", PaymentMethod("bitcoin"))
		assert.Error(t, err)
	})

	t.Run("should default currency", func(t *testing.T) {
		order, err := NewOrder(userID, testItems(), decimal.NewFromInt(10), "", PaymentMethodPayPal)
		require.NoError(t, err)
		assert.Equal(t, "EUR", order.Currency)
	})
}

func TestOrderSetStatus(t *testing.T) {
	newOrder := func(t *testing.T) *Order {
		order, err := NewOrder(uuid.New(), testItems(), decimal.NewFromInt(100), "EUR", PaymentMethodCard)
		require.NoError(t, err)
		order.ClearDomainEvents()
		return order
	}

	t.Run("should advance through the workflow", func(t *testing.T) {
		order := newOrder(t)

		changed, err := order.SetStatus(OrderStatusPrepared)
		require.NoError(t, err)
		assert.True(t, changed)

		changed, err = order.SetStatus(OrderStatusShipped)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, OrderStatusShipped, order.Status)
	})

	t.Run("should allow walking the status back", func(t *testing.T) {
		order := newOrder(t)

		_, err := order.SetStatus(OrderStatusShipped)
		require.NoError(t, err)

		changed, err := order.SetStatus(OrderStatusPaid)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, OrderStatusPaid, order.Status)
	})

	t.Run("should be a no-op for the current status", func(t *testing.T) {
		order := newOrder(t)
		version := order.GetVersion()

		changed, err := order.SetStatus(OrderStatusPaid)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, version, order.GetVersion())
		assert.Empty(t, order.GetDomainEvents())
	})

	t.Run("should reject unknown statuses", func(t *testing.T) {
		order := newOrder(t)
		_, err := order.SetStatus(OrderStatus("lost"))
		assert.Error(t, err)
	})
}
