package cart

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peeves/backend/internal/domain/cart"
	"github.com/peeves/backend/internal/domain/catalog"
	"github.com/peeves/backend/internal/domain/shared"
)

// AddItemRequest adds a product/size line to the cart
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Size      string    `json:"size" binding:"max=10"`
	Quantity  int       `json:"quantity" binding:"omitempty,min=1"`
}

// SetQuantityRequest changes the quantity of one line
type SetQuantityRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

// ItemResponse is one cart line in API responses
type ItemResponse struct {
	Key           string `json:"key"`
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	Size          string `json:"size,omitempty"`
	UnitPrice     string `json:"unit_price"`
	OriginalPrice string `json:"original_price,omitempty"`
	Quantity      int    `json:"quantity"`
	ImageURL      string `json:"image_url,omitempty"`
}

// CartResponse is the cart with its computed totals
type CartResponse struct {
	Items           []ItemResponse `json:"items"`
	TotalQuantity   int            `json:"total_quantity"`
	Total           string         `json:"total"`
	OriginalTotal   string         `json:"original_total"`
	Savings         string         `json:"savings"`
	DiscountPercent int64          `json:"discount_percent"`
}

// CartService handles the per-user shopping cart
type CartService struct {
	store       cart.Store
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(store cart.Store, productRepo catalog.ProductRepository, logger *zap.Logger) *CartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartService{
		store:       store,
		productRepo: productRepo,
		logger:      logger,
	}
}

// Get returns the user's cart with totals
func (s *CartService) Get(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	c, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toCartResponse(c), nil
}

// AddItem resolves the product and adds it as a line. The price snapshot is
// taken at add time; it is not refreshed when the catalog changes.
func (s *CartService) AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*CartResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if product.FinalPrice == nil {
		return nil, shared.NewDomainError("NOT_PURCHASABLE", "Product has no price")
	}
	if req.Size != "" {
		if _, ok := product.Sizes[req.Size]; !ok {
			return nil, shared.NewDomainError("INVALID_SIZE", "Product does not carry this size")
		}
	}

	c, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	item := cart.Item{
		ProductID: product.ID,
		Name:      product.Name,
		Size:      req.Size,
		UnitPrice: *product.FinalPrice,
		Quantity:  req.Quantity,
		ImageURL:  product.ImageURL,
	}
	if product.OnSale {
		item.OriginalPrice = product.OriginalPrice
	}
	c.AddItem(item)

	if err := s.store.Put(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Debug("cart item added",
		zap.String("user_id", userID.String()),
		zap.String("product_id", product.ID.String()),
		zap.String("size", req.Size),
	)

	return toCartResponse(c), nil
}

// SetQuantity sets the quantity of one line; zero removes it
func (s *CartService) SetQuantity(ctx context.Context, userID uuid.UUID, key string, req SetQuantityRequest) (*CartResponse, error) {
	c, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !c.SetQuantity(key, req.Quantity) {
		return nil, shared.ErrNotFound
	}

	if err := s.store.Put(ctx, c); err != nil {
		return nil, err
	}
	return toCartResponse(c), nil
}

// RemoveItem removes one line from the cart
func (s *CartService) RemoveItem(ctx context.Context, userID uuid.UUID, key string) (*CartResponse, error) {
	return s.SetQuantity(ctx, userID, key, SetQuantityRequest{Quantity: 0})
}

// Clear empties the cart
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.store.Delete(ctx, userID)
}

func toCartResponse(c *cart.Cart) *CartResponse {
	totals := c.ComputeTotals()

	items := make([]ItemResponse, len(c.Items))
	for i, item := range c.Items {
		items[i] = ItemResponse{
			Key:       item.Key(),
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			Size:      item.Size,
			UnitPrice: item.UnitPrice.StringFixed(2),
			Quantity:  item.Quantity,
			ImageURL:  item.ImageURL,
		}
		if item.OriginalPrice != nil {
			items[i].OriginalPrice = item.OriginalPrice.StringFixed(2)
		}
	}

	return &CartResponse{
		Items:           items,
		TotalQuantity:   c.TotalQuantity(),
		Total:           totals.Total.StringFixed(2),
		OriginalTotal:   totals.OriginalTotal.StringFixed(2),
		Savings:         totals.Savings.StringFixed(2),
		DiscountPercent: totals.DiscountPercent,
	}
}
