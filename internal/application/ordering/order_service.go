package ordering

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peeves/backend/internal/domain/ordering"
	"github.com/peeves/backend/internal/domain/shared"
)

// UpdateStatusRequest moves an order to a new status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=paid prepared shipped"`
}

// ListOrdersQuery captures the admin order list parameters
type ListOrdersQuery struct {
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
	Status   string `form:"status" binding:"omitempty,max=30"`
}

// OrderItemResponse is one line of an order in API responses
type OrderItemResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Size      string `json:"size,omitempty"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

// OrderResponse represents an order in API responses. The status is passed
// through as stored, including values outside the known workflow.
type OrderResponse struct {
	ID            string              `json:"id"`
	UserID        string              `json:"user_id"`
	Items         []OrderItemResponse `json:"items"`
	Amount        string              `json:"amount"`
	Currency      string              `json:"currency"`
	Status        string              `json:"status"`
	PaymentMethod string              `json:"payment_method"`
	CreatedAt     time.Time           `json:"created_at"`
}

// ToOrderResponse converts a domain order to its API shape
func ToOrderResponse(o *ordering.Order) *OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			Size:      item.Size,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
		}
	}
	return &OrderResponse{
		ID:            o.ID.String(),
		UserID:        o.UserID.String(),
		Items:         items,
		Amount:        o.Amount.StringFixed(2),
		Currency:      o.Currency,
		Status:        string(o.Status),
		PaymentMethod: string(o.PaymentMethod),
		CreatedAt:     o.CreatedAt,
	}
}

// OrderService handles order history and the admin workflow
type OrderService struct {
	orderRepo      ordering.OrderRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo ordering.OrderRepository, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// ListMine returns the user's orders, newest first. When the ordered query
// fails (e.g. a missing index on a fresh database) it falls back to an
// unordered scan sorted in memory.
func (s *OrderService) ListMine(ctx context.Context, userID uuid.UUID) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindByUser(ctx, userID)
	if err != nil {
		s.logger.Warn("ordered history query failed, retrying unordered",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)

		filter := shared.DefaultFilter()
		filter.OrderBy = ""
		filter.PageSize = 0
		filter.Filters["user_id"] = userID
		orders, err = s.orderRepo.FindAll(ctx, filter)
		if err != nil {
			return nil, err
		}
		sort.Slice(orders, func(i, j int) bool {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		})
	}

	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = *ToOrderResponse(&orders[i])
	}
	return responses, nil
}

// List returns a page of all orders for the admin view
func (s *OrderService) List(ctx context.Context, query ListOrdersQuery) (*shared.Paginated[OrderResponse], error) {
	filter := shared.DefaultFilter()
	if query.Page > 0 {
		filter.Page = query.Page
	}
	if query.PageSize > 0 {
		filter.PageSize = query.PageSize
	}
	if query.Status != "" {
		filter.Filters[ordering.FilterKeyStatus] = query.Status
	}

	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]OrderResponse, len(orders))
	for i := range orders {
		items[i] = *ToOrderResponse(&orders[i])
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Get returns one order by ID
func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// GetForUser returns one order, verifying it belongs to the user
func (s *OrderService) GetForUser(ctx context.Context, userID, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, shared.ErrForbidden
	}
	return ToOrderResponse(order), nil
}

// UpdateStatus moves an order to the requested status. Repeating the
// current status is accepted and changes nothing.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changed, err := order.SetStatus(ordering.OrderStatus(req.Status))
	if err != nil {
		return nil, err
	}

	if changed {
		if err := s.orderRepo.Save(ctx, order); err != nil {
			return nil, err
		}
		s.publishEvents(ctx, order)
		s.logger.Info("order status updated",
			zap.String("order_id", id.String()),
			zap.String("status", req.Status),
		)
	}

	return ToOrderResponse(order), nil
}

func (s *OrderService) publishEvents(ctx context.Context, order *ordering.Order) {
	if s.eventPublisher == nil {
		return
	}
	events := order.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish order events", zap.Error(err))
	}
	order.ClearDomainEvents()
}
