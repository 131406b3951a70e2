package ordering

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/peeves/backend/internal/domain/ordering"
	"github.com/peeves/backend/internal/domain/shared"
)

// MockOrderRepository is a mock implementation of ordering.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]ordering.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ordering.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) FindForRevenue(ctx context.Context, query ordering.RevenueQuery) ([]ordering.Order, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) DistinctYears(ctx context.Context) ([]int, error) {
	args := m.Called(ctx)
	return args.Get(0).([]int), args.Error(1)
}

func testOrder(t *testing.T, userID uuid.UUID, createdAt time.Time) ordering.Order {
	t.Helper()
	order, err := ordering.NewOrder(userID, ordering.OrderItems{
		{ProductID: uuid.New(), Name: "Dunk Low", Quantity: 1, UnitPrice: decimal.NewFromInt(100)},
	}, decimal.NewFromInt(100), "EUR", ordering.PaymentMethodCard)
	require.NoError(t, err)
	order.CreatedAt = createdAt
	order.ClearDomainEvents()
	return *order
}

func TestOrderServiceListMine(t *testing.T) {
	userID := uuid.New()

	t.Run("should return orders from the ordered query", func(t *testing.T) {
		repo := new(MockOrderRepository)
		service := NewOrderService(repo, nil)

		repo.On("FindByUser", mock.Anything, userID).Return([]ordering.Order{
			testOrder(t, userID, time.Now()),
		}, nil)

		orders, err := service.ListMine(context.Background(), userID)

		require.NoError(t, err)
		assert.Len(t, orders, 1)
		repo.AssertNotCalled(t, "FindAll")
	})

	t.Run("should fall back to unordered scan and sort in memory", func(t *testing.T) {
		repo := new(MockOrderRepository)
		service := NewOrderService(repo, nil)

		old := testOrder(t, userID, time.Now().Add(-48*time.Hour))
		recent := testOrder(t, userID, time.Now())

		repo.On("FindByUser", mock.Anything, userID).Return(nil, assert.AnError)
		repo.On("FindAll", mock.Anything, mock.Anything).Return([]ordering.Order{old, recent}, nil)

		orders, err := service.ListMine(context.Background(), userID)

		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.True(t, orders[0].CreatedAt.After(orders[1].CreatedAt))
	})
}

func TestOrderServiceUpdateStatus(t *testing.T) {
	t.Run("should save on real transition", func(t *testing.T) {
		repo := new(MockOrderRepository)
		service := NewOrderService(repo, nil)

		order := testOrder(t, uuid.New(), time.Now())
		repo.On("FindByID", mock.Anything, order.ID).Return(&order, nil)
		repo.On("Save", mock.Anything, &order).Return(nil)

		resp, err := service.UpdateStatus(context.Background(), order.ID, UpdateStatusRequest{Status: "shipped"})

		require.NoError(t, err)
		assert.Equal(t, "shipped", resp.Status)
		repo.AssertCalled(t, "Save", mock.Anything, &order)
	})

	t.Run("should not save when status is unchanged", func(t *testing.T) {
		repo := new(MockOrderRepository)
		service := NewOrderService(repo, nil)

		order := testOrder(t, uuid.New(), time.Now())
		repo.On("FindByID", mock.Anything, order.ID).Return(&order, nil)

		resp, err := service.UpdateStatus(context.Background(), order.ID, UpdateStatusRequest{Status: "paid"})

		require.NoError(t, err)
		assert.Equal(t, "paid", resp.Status)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("should allow reversing a transition", func(t *testing.T) {
		repo := new(MockOrderRepository)
		service := NewOrderService(repo, nil)

		order := testOrder(t, uuid.New(), time.Now())
		_, err := order.SetStatus(ordering.OrderStatusShipped)
		require.NoError(t, err)
		order.ClearDomainEvents()

		repo.On("FindByID", mock.Anything, order.ID).Return(&order, nil)
		repo.On("Save", mock.Anything, &order).Return(nil)

		resp, err := service.UpdateStatus(context.Background(), order.ID, UpdateStatusRequest{Status: "prepared"})

		require.NoError(t, err)
		assert.Equal(t, "prepared", resp.Status)
	})
}

func TestOrderServiceGetForUser(t *testing.T) {
	repo := new(MockOrderRepository)
	service := NewOrderService(repo, nil)

	owner := uuid.New()
	order := testOrder(t, owner, time.Now())
	repo.On("FindByID", mock.Anything, order.ID).Return(&order, nil)

	_, err := service.GetForUser(context.Background(), uuid.New(), order.ID)
	assert.ErrorIs(t, err, shared.ErrForbidden)

	resp, err := service.GetForUser(context.Background(), owner, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID.String(), resp.ID)
}
