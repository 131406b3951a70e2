package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/peeves/backend/internal/domain/catalog"
	"github.com/peeves/backend/internal/domain/shared"
	"github.com/peeves/backend/tests/testutil"
)

func TestGormProductRepository_FindByID(t *testing.T) {
	t.Run("finds existing product", func(t *testing.T) {
		mdb := testutil.NewMockDB(t)
		defer mdb.Close()
		repo := NewGormProductRepository(mdb.DB)

		productID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "name", "brand", "category", "currency", "on_sale", "sizes"}).
			AddRow(productID, "Air Max 90", "Nike", "Sneakers", "EUR", false, []byte(`{"46":{"quantity":3}}`))

		mdb.Mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(productID, 1).
			WillReturnRows(rows)

		product, err := repo.FindByID(context.Background(), productID)

		require.NoError(t, err)
		assert.Equal(t, productID, product.ID)
		assert.Equal(t, "Air Max 90", product.Name)
		assert.Equal(t, 3, product.Sizes["46"].Quantity)
		mdb.ExpectationsWereMet(t)
	})

	t.Run("maps missing row to not found", func(t *testing.T) {
		mdb := testutil.NewMockDB(t)
		defer mdb.Close()
		repo := NewGormProductRepository(mdb.DB)

		productID := uuid.New()

		mdb.Mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(productID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		product, err := repo.FindByID(context.Background(), productID)

		assert.Nil(t, product)
		assert.Equal(t, shared.ErrNotFound, err)
		mdb.ExpectationsWereMet(t)
	})
}

func TestGormProductRepository_FindAll(t *testing.T) {
	t.Run("applies nike collection as name prefix", func(t *testing.T) {
		mdb := testutil.NewMockDB(t)
		defer mdb.Close()
		repo := NewGormProductRepository(mdb.DB)

		rows := sqlmock.NewRows([]string{"id", "name"}).
			AddRow(uuid.New(), "Nike Air Max 90")

		mdb.Mock.ExpectQuery(`SELECT \* FROM "products" WHERE LOWER\(name\) LIKE \$1 ORDER BY .* LIMIT .*`).
			WithArgs("nike%", 24).
			WillReturnRows(rows)

		products, err := repo.FindAll(context.Background(), shared.Filter{
			Page:     1,
			PageSize: 24,
			Filters:  map[string]any{catalog.FilterKeyCollection: catalog.CollectionNike},
		})

		require.NoError(t, err)
		assert.Len(t, products, 1)
		mdb.ExpectationsWereMet(t)
	})

	t.Run("applies promos collection as price predicate", func(t *testing.T) {
		mdb := testutil.NewMockDB(t)
		defer mdb.Close()
		repo := NewGormProductRepository(mdb.DB)

		mdb.Mock.ExpectQuery(`SELECT \* FROM "products" WHERE original_price IS NOT NULL AND final_price IS NOT NULL AND original_price > final_price AND original_price > 0`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

		_, err := repo.FindAll(context.Background(), shared.Filter{
			Filters: map[string]any{catalog.FilterKeyCollection: catalog.CollectionPromos},
		})

		require.NoError(t, err)
		mdb.ExpectationsWereMet(t)
	})

	t.Run("applies case-insensitive search", func(t *testing.T) {
		mdb := testutil.NewMockDB(t)
		defer mdb.Close()
		repo := NewGormProductRepository(mdb.DB)

		mdb.Mock.ExpectQuery(`SELECT \* FROM "products" WHERE LOWER\(name\) LIKE \$1`).
			WithArgs("%dunk%").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

		_, err := repo.FindAll(context.Background(), shared.Filter{Search: "Dunk"})

		require.NoError(t, err)
		mdb.ExpectationsWereMet(t)
	})
}

func TestGormProductRepository_FindByIDs(t *testing.T) {
	mdb := testutil.NewMockDB(t)
	defer mdb.Close()
	repo := NewGormProductRepository(mdb.DB)

	id1 := uuid.New()
	id2 := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "name"}).
		AddRow(id1, "Air Max 90").
		AddRow(id2, "Dunk Low")

	mdb.Mock.ExpectQuery(`SELECT \* FROM "products" WHERE id IN \(\$1,\$2\)`).
		WithArgs(id1, id2).
		WillReturnRows(rows)

	products, err := repo.FindByIDs(context.Background(), []uuid.UUID{id1, id2})

	require.NoError(t, err)
	assert.Len(t, products, 2)
	mdb.ExpectationsWereMet(t)
}

func TestGormProductRepository_Delete(t *testing.T) {
	t.Run("returns not found when nothing deleted", func(t *testing.T) {
		mdb := testutil.NewMockDB(t)
		defer mdb.Close()
		repo := NewGormProductRepository(mdb.DB)

		productID := uuid.New()

		mdb.Mock.ExpectExec(`DELETE FROM "products" WHERE id = \$1`).
			WithArgs(productID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), productID)

		assert.Equal(t, shared.ErrNotFound, err)
		mdb.ExpectationsWereMet(t)
	})
}
