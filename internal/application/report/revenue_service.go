package report

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/peeves/backend/internal/domain/ordering"
	"github.com/peeves/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Revenue ranges selectable on the dashboard.
const (
	RangeWeek  = "7d"
	RangeMonth = "30d"
	RangeAll   = "all"
)

// RevenueQuery captures the dashboard parameters. Picking a year overrides
// the rolling range; month narrows the picked year.
type RevenueQuery struct {
	Range string `form:"range,default=7d" binding:"omitempty,oneof=7d 30d all"`
	Year  int    `form:"year" binding:"omitempty,min=2000,max=2100"`
	Month int    `form:"month" binding:"omitempty,min=1,max=12"`
}

// DailyPoint is one day of the revenue series
type DailyPoint struct {
	Day     string `json:"day"`
	Revenue string `json:"revenue"`
	Orders  int64  `json:"orders"`
}

// RevenueResponse is the aggregated dashboard payload
type RevenueResponse struct {
	TotalRevenue   string       `json:"total_revenue"`
	TotalOrders    int64        `json:"total_orders"`
	TotalItems     int64        `json:"total_items"`
	AvgOrderValue  string       `json:"avg_order_value"`
	Daily          []DailyPoint `json:"daily"`
	YearsAvailable []int        `json:"years_available"`
}

// RevenueService aggregates order revenue for the admin dashboard
type RevenueService struct {
	orderRepo ordering.OrderRepository
	logger    *zap.Logger
	now       func() time.Time
}

// NewRevenueService creates a new RevenueService
func NewRevenueService(orderRepo ordering.OrderRepository, logger *zap.Logger) *RevenueService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RevenueService{
		orderRepo: orderRepo,
		logger:    logger,
		now:       time.Now,
	}
}

// Aggregate computes the revenue metrics and daily series for the query
func (s *RevenueService) Aggregate(ctx context.Context, query RevenueQuery) (*RevenueResponse, error) {
	repoQuery, err := s.buildRepoQuery(query)
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.FindForRevenue(ctx, repoQuery)
	if err != nil {
		return nil, err
	}

	years, err := s.orderRepo.DistinctYears(ctx)
	if err != nil {
		return nil, err
	}
	years = appendCurrentYear(years, s.now().Year())

	totalRevenue := decimal.Zero
	var totalItems int64
	buckets := make(map[string]*DailyPoint)
	bucketRevenue := make(map[string]decimal.Decimal)

	for i := range orders {
		order := &orders[i]
		totalRevenue = totalRevenue.Add(order.Amount)
		totalItems += int64(order.Items.TotalQuantity())

		day := order.CreatedAt.Format("2006-01-02")
		if _, ok := buckets[day]; !ok {
			buckets[day] = &DailyPoint{Day: day}
			bucketRevenue[day] = decimal.Zero
		}
		buckets[day].Orders++
		bucketRevenue[day] = bucketRevenue[day].Add(order.Amount)
	}

	daily := make([]DailyPoint, 0, len(buckets))
	for day, point := range buckets {
		point.Revenue = bucketRevenue[day].StringFixed(2)
		daily = append(daily, *point)
	}
	sort.Slice(daily, func(i, j int) bool { return daily[i].Day < daily[j].Day })

	totalOrders := int64(len(orders))
	avg := decimal.Zero
	if totalOrders > 0 {
		avg = totalRevenue.Div(decimal.NewFromInt(totalOrders))
	}

	return &RevenueResponse{
		TotalRevenue:   totalRevenue.StringFixed(2),
		TotalOrders:    totalOrders,
		TotalItems:     totalItems,
		AvgOrderValue:  avg.StringFixed(2),
		Daily:          daily,
		YearsAvailable: years,
	}, nil
}

func (s *RevenueService) buildRepoQuery(query RevenueQuery) (ordering.RevenueQuery, error) {
	// An explicit year wins over the rolling range.
	if query.Year > 0 {
		return ordering.RevenueQuery{Year: query.Year, Month: query.Month}, nil
	}
	if query.Month > 0 {
		return ordering.RevenueQuery{}, shared.NewDomainError("INVALID_RANGE", "Month filter requires a year")
	}

	switch query.Range {
	case RangeAll, "":
		return ordering.RevenueQuery{}, nil
	case RangeWeek:
		since := s.now().Add(-7 * 24 * time.Hour)
		return ordering.RevenueQuery{Since: &since}, nil
	case RangeMonth:
		since := s.now().Add(-30 * 24 * time.Hour)
		return ordering.RevenueQuery{Since: &since}, nil
	default:
		return ordering.RevenueQuery{}, shared.NewDomainError("INVALID_RANGE", "Unknown revenue range")
	}
}

func appendCurrentYear(years []int, current int) []int {
	for _, y := range years {
		if y == current {
			return years
		}
	}
	years = append(years, current)
	sort.Ints(years)
	return years
}
