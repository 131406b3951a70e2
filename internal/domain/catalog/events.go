package catalog

import (
	"github.com/peeves/backend/internal/domain/shared"
)

// Event types for the catalog domain
const (
	EventTypeProductCreated       = "catalog.product.created"
	EventTypeProductUpdated       = "catalog.product.updated"
	EventTypeProductPriceChanged  = "catalog.product.price_changed"
	EventTypeProductSizesReplaced = "catalog.product.sizes_replaced"
	EventTypeProductDeleted       = "catalog.product.deleted"
)

const aggregateTypeProduct = "Product"

// ProductCreatedEvent is raised when a product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	Name  string `json:"name"`
	Brand string `json:"brand"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, aggregateTypeProduct, p.ID),
		Name:            p.Name,
		Brand:           p.Brand,
	}
}

// ProductUpdatedEvent is raised when product display data changes
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewProductUpdatedEvent creates a new ProductUpdatedEvent
func NewProductUpdatedEvent(p *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, aggregateTypeProduct, p.ID),
		Name:            p.Name,
	}
}

// ProductPriceChangedEvent is raised when prices change
type ProductPriceChangedEvent struct {
	shared.BaseDomainEvent
	FinalPrice    string `json:"final_price,omitempty"`
	OriginalPrice string `json:"original_price,omitempty"`
	OnSale        bool   `json:"on_sale"`
}

// NewProductPriceChangedEvent creates a new ProductPriceChangedEvent
func NewProductPriceChangedEvent(p *Product) *ProductPriceChangedEvent {
	event := &ProductPriceChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductPriceChanged, aggregateTypeProduct, p.ID),
		OnSale:          p.OnSale,
	}
	if p.FinalPrice != nil {
		event.FinalPrice = p.FinalPrice.String()
	}
	if p.OriginalPrice != nil {
		event.OriginalPrice = p.OriginalPrice.String()
	}
	return event
}

// ProductSizesReplacedEvent is raised when the size chart is replaced
type ProductSizesReplacedEvent struct {
	shared.BaseDomainEvent
	TotalStock int `json:"total_stock"`
}

// NewProductSizesReplacedEvent creates a new ProductSizesReplacedEvent
func NewProductSizesReplacedEvent(p *Product) *ProductSizesReplacedEvent {
	return &ProductSizesReplacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductSizesReplaced, aggregateTypeProduct, p.ID),
		TotalStock:      p.TotalStock(),
	}
}

// ProductDeletedEvent is raised when a product is removed
type ProductDeletedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewProductDeletedEvent creates a new ProductDeletedEvent
func NewProductDeletedEvent(p *Product) *ProductDeletedEvent {
	return &ProductDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductDeleted, aggregateTypeProduct, p.ID),
		Name:            p.Name,
	}
}
