package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/peeves/backend/internal/domain/catalog"
	"github.com/peeves/backend/internal/domain/shared"
)

// MockProductRepository is a mock implementation of ProductRepository
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

func TestProductServiceCreate(t *testing.T) {
	t.Run("should create product with promo pricing", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo, nil)

		repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := service.Create(context.Background(), CreateProductRequest{
			Name:          "Air Max 95",
			Alt:           "Neon",
			FinalPrice:    decPtr("139.99"),
			OriginalPrice: decPtr("179.99"),
			Sizes:         catalog.SizeChart{"44": {Quantity: 3}},
		})

		require.NoError(t, err)
		assert.True(t, resp.OnSale)
		assert.Equal(t, "Nike", resp.Brand)
		assert.Equal(t, 3, resp.TotalStock)
		repo.AssertExpectations(t)
	})

	t.Run("should reject invalid name", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo, nil)

		_, err := service.Create(context.Background(), CreateProductRequest{Name: "  "})

		assert.Error(t, err)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestProductServiceList(t *testing.T) {
	t.Run("should page results and build pager", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo, nil)

		page3 := make([]catalog.Product, 2)
		for i := range page3 {
			p, err := catalog.NewProduct("Pegasus", "")
			require.NoError(t, err)
			page3[i] = *p
		}

		repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Page == 3 && f.PageSize == 25
		})).Return(page3, nil)
		repo.On("Count", mock.Anything, mock.Anything).Return(int64(52), nil)

		result, err := service.List(context.Background(), ListProductsQuery{Page: 3, PageSize: 25})

		require.NoError(t, err)
		assert.Equal(t, 3, result.TotalPages)
		assert.Len(t, result.Items, 2)
		assert.NotEmpty(t, result.PageLinks)
	})

	t.Run("should forward collection filter", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo, nil)

		repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Filters[catalog.FilterKeyCollection] == catalog.CollectionPromos
		})).Return([]catalog.Product{}, nil)
		repo.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)

		_, err := service.List(context.Background(), ListProductsQuery{Collection: "PROMOS"})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("should not filter for ALL collection", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo, nil)

		repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
			_, has := f.Filters[catalog.FilterKeyCollection]
			return !has
		})).Return([]catalog.Product{}, nil)
		repo.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)

		_, err := service.List(context.Background(), ListProductsQuery{Collection: "ALL"})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestProductServiceReplaceSizes(t *testing.T) {
	repo := new(MockProductRepository)
	service := NewProductService(repo, nil)

	product, err := catalog.NewProduct("Vaporfly", "")
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	repo.On("Save", mock.Anything, product).Return(nil)

	resp, err := service.ReplaceSizes(context.Background(), product.ID, ReplaceSizesRequest{
		Sizes: catalog.SizeChart{"42": {Quantity: 4}, "43": {Quantity: -1}},
	})

	require.NoError(t, err)
	assert.Equal(t, 4, resp.TotalStock)
	assert.Equal(t, 0, resp.Sizes["43"].Quantity)
}

func TestProductServiceUpdate(t *testing.T) {
	t.Run("should clear prices when requested", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo, nil)

		product, err := catalog.NewProduct("Cortez", "")
		require.NoError(t, err)
		require.NoError(t, product.SetPrices(decPtr("79.99"), decPtr("99.99")))

		repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		repo.On("Save", mock.Anything, product).Return(nil)

		resp, err := service.Update(context.Background(), product.ID, UpdateProductRequest{ClearPrices: true})

		require.NoError(t, err)
		assert.Nil(t, resp.FinalPrice)
		assert.False(t, resp.OnSale)
	})

	t.Run("should propagate not found", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo, nil)

		id := uuid.New()
		repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := service.Update(context.Background(), id, UpdateProductRequest{})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
