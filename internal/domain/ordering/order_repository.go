package ordering

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/peeves/backend/internal/domain/shared"
)

// FilterKeyStatus selects an OrderStatus inside shared.Filter.Filters.
const FilterKeyStatus = "status"

// RevenueQuery narrows the order set for revenue aggregation. Year/Month
// take precedence over the Since threshold when Year is set.
type RevenueQuery struct {
	Since *time.Time
	Year  int
	Month int // 1..12, 0 means whole year
}

// DailyRevenue is one bucket of the per-day revenue series.
type DailyRevenue struct {
	Day     string `json:"day"` // yyyy-mm-dd
	Revenue string `json:"revenue"`
	Orders  int64  `json:"orders"`
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByUser returns the orders of one user, newest first
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)

	// FindAll finds all orders matching the filter. FilterKeyStatus narrows
	// by status.
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// Save creates or updates an order
	Save(ctx context.Context, order *Order) error

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// FindForRevenue returns the orders matching a revenue query
	FindForRevenue(ctx context.Context, query RevenueQuery) ([]Order, error)

	// DistinctYears returns the years in which at least one order exists,
	// ascending
	DistinctYears(ctx context.Context) ([]int, error)
}
