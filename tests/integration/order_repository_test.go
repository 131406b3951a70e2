package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peeves/backend/internal/domain/ordering"
	"github.com/peeves/backend/internal/domain/shared"
	"github.com/peeves/backend/internal/infrastructure/persistence"
)

func newTestOrder(t *testing.T, userID uuid.UUID, amount string, createdAt time.Time) *ordering.Order {
	t.Helper()

	order, err := ordering.NewOrder(userID, ordering.OrderItems{
		{
			ProductID: uuid.New(),
			Name:      "Nike Air Max 90",
			Size:      "46",
			Quantity:  1,
			UnitPrice: decimal.RequireFromString(amount),
		},
	}, decimal.RequireFromString(amount), "EUR", ordering.PaymentMethodCard)
	require.NoError(t, err)

	if !createdAt.IsZero() {
		order.CreatedAt = createdAt
	}
	return order
}

func TestOrderRepository_SaveAndFindByUser(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewSharedTestDB(t)
	tdb.CleanTables()
	repo := persistence.NewGormOrderRepository(tdb.DB)
	ctx := context.Background()

	userID := uuid.New()
	otherID := uuid.New()
	now := time.Now().UTC()

	older := newTestOrder(t, userID, "50.00", now.Add(-48*time.Hour))
	newer := newTestOrder(t, userID, "80.00", now.Add(-1*time.Hour))
	foreign := newTestOrder(t, otherID, "99.00", now)

	require.NoError(t, repo.Save(ctx, older))
	require.NoError(t, repo.Save(ctx, newer))
	require.NoError(t, repo.Save(ctx, foreign))

	orders, err := repo.FindByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	// Newest first
	assert.Equal(t, newer.ID, orders[0].ID)
	assert.Equal(t, older.ID, orders[1].ID)
}

func TestOrderRepository_StatusFilter(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewSharedTestDB(t)
	tdb.CleanTables()
	repo := persistence.NewGormOrderRepository(tdb.DB)
	ctx := context.Background()

	paid := newTestOrder(t, uuid.New(), "10.00", time.Time{})
	shipped := newTestOrder(t, uuid.New(), "20.00", time.Time{})
	changed, err := shipped.SetStatus(ordering.OrderStatusShipped)
	require.NoError(t, err)
	require.True(t, changed)

	require.NoError(t, repo.Save(ctx, paid))
	require.NoError(t, repo.Save(ctx, shipped))

	found, err := repo.FindAll(ctx, shared.Filter{
		Page: 1, PageSize: 20,
		Filters: map[string]interface{}{ordering.FilterKeyStatus: ordering.OrderStatusShipped},
	})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, shipped.ID, found[0].ID)

	count, err := repo.Count(ctx, shared.Filter{
		Filters: map[string]interface{}{ordering.FilterKeyStatus: ordering.OrderStatusPaid},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestOrderRepository_FindForRevenue(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewSharedTestDB(t)
	tdb.CleanTables()
	repo := persistence.NewGormOrderRepository(tdb.DB)
	ctx := context.Background()

	now := time.Now().UTC()
	recent := newTestOrder(t, uuid.New(), "10.00", now.Add(-24*time.Hour))
	old := newTestOrder(t, uuid.New(), "20.00", now.AddDate(0, 0, -40))
	lastYear := newTestOrder(t, uuid.New(), "30.00", now.AddDate(-1, 0, 0))

	require.NoError(t, repo.Save(ctx, recent))
	require.NoError(t, repo.Save(ctx, old))
	require.NoError(t, repo.Save(ctx, lastYear))

	t.Run("since window", func(t *testing.T) {
		since := now.Add(-7 * 24 * time.Hour)
		orders, err := repo.FindForRevenue(ctx, ordering.RevenueQuery{Since: &since})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, recent.ID, orders[0].ID)
	})

	t.Run("explicit year", func(t *testing.T) {
		orders, err := repo.FindForRevenue(ctx, ordering.RevenueQuery{Year: now.Year() - 1})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, lastYear.ID, orders[0].ID)
	})

	t.Run("no bounds returns everything ascending", func(t *testing.T) {
		orders, err := repo.FindForRevenue(ctx, ordering.RevenueQuery{})
		require.NoError(t, err)
		require.Len(t, orders, 3)
		assert.Equal(t, lastYear.ID, orders[0].ID)
	})
}

func TestOrderRepository_DistinctYears(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewSharedTestDB(t)
	tdb.CleanTables()
	repo := persistence.NewGormOrderRepository(tdb.DB)
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, repo.Save(ctx, newTestOrder(t, uuid.New(), "10.00", now)))
	require.NoError(t, repo.Save(ctx, newTestOrder(t, uuid.New(), "10.00", now.AddDate(-2, 0, 0))))

	years, err := repo.DistinctYears(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{now.Year() - 2, now.Year()}, years)
}

func TestOrderRepository_StatusRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewSharedTestDB(t)
	tdb.CleanTables()
	repo := persistence.NewGormOrderRepository(tdb.DB)
	ctx := context.Background()

	order := newTestOrder(t, uuid.New(), "75.00", time.Time{})
	require.NoError(t, repo.Save(ctx, order))

	changed, err := order.SetStatus(ordering.OrderStatusPrepared)
	require.NoError(t, err)
	require.True(t, changed)
	require.NoError(t, repo.Save(ctx, order))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, ordering.OrderStatusPrepared, found.Status)

	// Moving back is allowed
	changed, err = found.SetStatus(ordering.OrderStatusPaid)
	require.NoError(t, err)
	require.True(t, changed)
	require.NoError(t, repo.Save(ctx, found))

	again, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, ordering.OrderStatusPaid, again.Status)
}
