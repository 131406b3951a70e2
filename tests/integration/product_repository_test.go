package integration

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peeves/backend/internal/domain/catalog"
	"github.com/peeves/backend/internal/domain/shared"
	"github.com/peeves/backend/internal/infrastructure/persistence"
)

func newTestProduct(t *testing.T, name string, final, original string) *catalog.Product {
	t.Helper()

	product, err := catalog.NewProduct(name, "")
	require.NoError(t, err)

	var finalPrice, originalPrice *decimal.Decimal
	if final != "" {
		v, err := decimal.NewFromString(final)
		require.NoError(t, err)
		finalPrice = &v
	}
	if original != "" {
		v, err := decimal.NewFromString(original)
		require.NoError(t, err)
		originalPrice = &v
	}
	require.NoError(t, product.SetPrices(finalPrice, originalPrice))

	return product
}

func TestProductRepository_SaveAndFind(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewSharedTestDB(t)
	tdb.CleanTables()
	repo := persistence.NewGormProductRepository(tdb.DB)
	ctx := context.Background()

	product := newTestProduct(t, "Nike Air Max 90", "129.99", "159.99")
	product.ReplaceSizes(catalog.SizeChart{
		"46": {Quantity: 3},
		"47": {Quantity: 0},
	})
	require.NoError(t, repo.Save(ctx, product))

	found, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nike Air Max 90", found.Name)
	assert.True(t, found.OnSale)
	require.NotNil(t, found.FinalPrice)
	assert.True(t, found.FinalPrice.Equal(decimal.RequireFromString("129.99")))
	assert.Equal(t, 3, found.Sizes["46"].Quantity)
	assert.Equal(t, 3, found.TotalStock())
}

func TestProductRepository_FindByIDNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewSharedTestDB(t)
	tdb.CleanTables()
	repo := persistence.NewGormProductRepository(tdb.DB)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestProductRepository_CollectionFilters(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewSharedTestDB(t)
	tdb.CleanTables()
	repo := persistence.NewGormProductRepository(tdb.DB)
	ctx := context.Background()

	products := []*catalog.Product{
		newTestProduct(t, "Nike Air Force 1", "99.99", ""),
		newTestProduct(t, "NIKE Dunk Low", "89.99", "119.99"),
		newTestProduct(t, "Jordan 1 Retro High", "179.99", ""),
		newTestProduct(t, "Adidas Samba", "99.99", ""),
	}
	require.NoError(t, repo.SaveBatch(ctx, products))

	t.Run("nike prefix is case-insensitive", func(t *testing.T) {
		found, err := repo.FindAll(ctx, shared.Filter{
			Page: 1, PageSize: 50,
			Filters: map[string]interface{}{catalog.FilterKeyCollection: catalog.CollectionNike},
		})
		require.NoError(t, err)
		require.Len(t, found, 2)
	})

	t.Run("jordan prefix", func(t *testing.T) {
		found, err := repo.FindAll(ctx, shared.Filter{
			Page: 1, PageSize: 50,
			Filters: map[string]interface{}{catalog.FilterKeyCollection: catalog.CollectionJordan},
		})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Jordan 1 Retro High", found[0].Name)
	})

	t.Run("promos need original above final", func(t *testing.T) {
		found, err := repo.FindAll(ctx, shared.Filter{
			Page: 1, PageSize: 50,
			Filters: map[string]interface{}{catalog.FilterKeyCollection: catalog.CollectionPromos},
		})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "NIKE Dunk Low", found[0].Name)
	})

	t.Run("search matches substring", func(t *testing.T) {
		found, err := repo.FindAll(ctx, shared.Filter{
			Page: 1, PageSize: 50,
			Search: "dunk",
		})
		require.NoError(t, err)
		require.Len(t, found, 1)
	})
}

func TestProductRepository_Pagination(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewSharedTestDB(t)
	tdb.CleanTables()
	repo := persistence.NewGormProductRepository(tdb.DB)
	ctx := context.Background()

	batch := make([]*catalog.Product, 0, 52)
	for i := 0; i < 52; i++ {
		batch = append(batch, newTestProduct(t, fmt.Sprintf("Nike Test %02d", i), "50.00", ""))
	}
	require.NoError(t, repo.SaveBatch(ctx, batch))

	total, err := repo.Count(ctx, shared.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(52), total)

	page3, err := repo.FindAll(ctx, shared.Filter{Page: 3, PageSize: 25})
	require.NoError(t, err)
	assert.Len(t, page3, 2)
}

func TestProductRepository_Delete(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewSharedTestDB(t)
	tdb.CleanTables()
	repo := persistence.NewGormProductRepository(tdb.DB)
	ctx := context.Background()

	product := newTestProduct(t, "Nike Blazer Mid", "94.99", "")
	require.NoError(t, repo.Save(ctx, product))

	require.NoError(t, repo.Delete(ctx, product.ID))

	_, err := repo.FindByID(ctx, product.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = repo.Delete(ctx, product.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
