package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peeves/backend/internal/domain/catalog"
	"github.com/peeves/backend/internal/domain/shared"
)

// ProductService handles catalog browse and admin operations
type ProductService struct {
	productRepo    catalog.ProductRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		productRepo: productRepo,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Name, req.Alt)
	if err != nil {
		return nil, err
	}

	if req.Brand != "" || req.Category != "" {
		if err := product.Update(req.Name, req.Alt, req.Brand, req.Category); err != nil {
			return nil, err
		}
	}
	if req.FinalPrice != nil || req.OriginalPrice != nil {
		if err := product.SetPrices(req.FinalPrice, req.OriginalPrice); err != nil {
			return nil, err
		}
	}
	if req.ImageURL != "" {
		product.SetImageURL(req.ImageURL)
	}
	if len(req.Sizes) > 0 {
		product.ReplaceSizes(req.Sizes)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)
	s.logger.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name),
	)

	return ToProductResponse(product), nil
}

// Get returns one product by ID
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// List returns a page of products for the given browse query
func (s *ProductService) List(ctx context.Context, query ListProductsQuery) (*shared.Paginated[ProductResponse], error) {
	filter := shared.DefaultFilter()
	if query.Page > 0 {
		filter.Page = query.Page
	}
	if query.PageSize > 0 {
		filter.PageSize = query.PageSize
	}
	filter.Search = query.Search
	if query.Collection != "" && query.Collection != string(catalog.CollectionAll) {
		filter.Filters[catalog.FilterKeyCollection] = catalog.Collection(query.Collection)
	}

	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ProductResponse, len(products))
	for i := range products {
		items[i] = *ToProductResponse(&products[i])
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update updates a product's display data and prices
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := product.Name
	alt := product.Alt
	brand := ""
	category := ""
	if req.Name != nil {
		name = *req.Name
	}
	if req.Alt != nil {
		alt = *req.Alt
	}
	if req.Brand != nil {
		brand = *req.Brand
	}
	if req.Category != nil {
		category = *req.Category
	}
	if err := product.Update(name, alt, brand, category); err != nil {
		return nil, err
	}

	if req.ClearPrices {
		if err := product.SetPrices(nil, nil); err != nil {
			return nil, err
		}
	} else if req.FinalPrice != nil || req.OriginalPrice != nil {
		finalPrice := product.FinalPrice
		originalPrice := product.OriginalPrice
		if req.FinalPrice != nil {
			finalPrice = req.FinalPrice
		}
		if req.OriginalPrice != nil {
			originalPrice = req.OriginalPrice
		}
		if err := product.SetPrices(finalPrice, originalPrice); err != nil {
			return nil, err
		}
	}

	if req.ImageURL != nil {
		product.SetImageURL(*req.ImageURL)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)

	return ToProductResponse(product), nil
}

// ReplaceSizes replaces a product's size chart with the submitted draft
func (s *ProductService) ReplaceSizes(ctx context.Context, id uuid.UUID, req ReplaceSizesRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.ReplaceSizes(req.Sizes)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)
	s.logger.Info("product sizes replaced",
		zap.String("product_id", product.ID.String()),
		zap.Int("total_stock", product.TotalStock()),
	)

	return ToProductResponse(product), nil
}

// Delete removes a product from the catalog
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	product.MarkDeleted()
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.publishEvents(ctx, product)
	s.logger.Info("product deleted", zap.String("product_id", id.String()))

	return nil
}

func (s *ProductService) publishEvents(ctx context.Context, product *catalog.Product) {
	if s.eventPublisher == nil {
		return
	}
	events := product.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish catalog events", zap.Error(err))
	}
	product.ClearDomainEvents()
}
