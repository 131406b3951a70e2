package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/peeves/backend/internal/domain/cart"
	"github.com/peeves/backend/internal/domain/catalog"
	"github.com/peeves/backend/internal/domain/shared"
)

// MockStore is a mock implementation of cart.Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Get(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockStore) Put(ctx context.Context, c *cart.Cart) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockStore) Delete(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) SaveBatch(ctx context.Context, products []*catalog.Product) error {
	args := m.Called(ctx, products)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func saleProduct(t *testing.T) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct("Air Max 97", "Silver Bullet")
	require.NoError(t, err)
	require.NoError(t, p.SetPrices(decPtr("80.00"), decPtr("100.00")))
	p.ReplaceSizes(catalog.SizeChart{"44": {Quantity: 5}})
	return p
}

func TestCartServiceAddItem(t *testing.T) {
	userID := uuid.New()

	t.Run("should snapshot sale price and original", func(t *testing.T) {
		store := new(MockStore)
		repo := new(MockProductRepository)
		service := NewCartService(store, repo, nil)

		product := saleProduct(t)
		repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		store.On("Get", mock.Anything, userID).Return(cart.New(userID), nil)
		store.On("Put", mock.Anything, mock.AnythingOfType("*cart.Cart")).Return(nil)

		resp, err := service.AddItem(context.Background(), userID, AddItemRequest{
			ProductID: product.ID,
			Size:      "44",
			Quantity:  2,
		})

		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "80.00", resp.Items[0].UnitPrice)
		assert.Equal(t, "100.00", resp.Items[0].OriginalPrice)
		assert.Equal(t, "160.00", resp.Total)
		assert.Equal(t, "200.00", resp.OriginalTotal)
		assert.Equal(t, "40.00", resp.Savings)
		assert.Equal(t, int64(20), resp.DiscountPercent)
	})

	t.Run("should reject unknown size", func(t *testing.T) {
		store := new(MockStore)
		repo := new(MockProductRepository)
		service := NewCartService(store, repo, nil)

		product := saleProduct(t)
		repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

		_, err := service.AddItem(context.Background(), userID, AddItemRequest{
			ProductID: product.ID,
			Size:      "39",
		})

		assert.Error(t, err)
		store.AssertNotCalled(t, "Put")
	})

	t.Run("should reject unpriced product", func(t *testing.T) {
		store := new(MockStore)
		repo := new(MockProductRepository)
		service := NewCartService(store, repo, nil)

		product, err := catalog.NewProduct("Sample", "")
		require.NoError(t, err)
		repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

		_, err = service.AddItem(context.Background(), userID, AddItemRequest{ProductID: product.ID})
		assert.Error(t, err)
	})
}

func TestCartServiceSetQuantity(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()

	seeded := func() *cart.Cart {
		c := cart.New(userID)
		c.AddItem(cart.Item{ProductID: productID, Size: "44", UnitPrice: decimal.NewFromInt(50), Quantity: 2})
		return c
	}

	t.Run("should remove line at zero quantity", func(t *testing.T) {
		store := new(MockStore)
		service := NewCartService(store, new(MockProductRepository), nil)

		store.On("Get", mock.Anything, userID).Return(seeded(), nil)
		store.On("Put", mock.Anything, mock.AnythingOfType("*cart.Cart")).Return(nil)

		resp, err := service.SetQuantity(context.Background(), userID, productID.String()+":44", SetQuantityRequest{Quantity: 0})

		require.NoError(t, err)
		assert.Empty(t, resp.Items)
	})

	t.Run("should error on missing line", func(t *testing.T) {
		store := new(MockStore)
		service := NewCartService(store, new(MockProductRepository), nil)

		store.On("Get", mock.Anything, userID).Return(cart.New(userID), nil)

		_, err := service.SetQuantity(context.Background(), userID, "missing:44", SetQuantityRequest{Quantity: 1})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
