package catalog

import (
	"strings"

	"github.com/peeves/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	// DefaultBrand is assigned to products created without an explicit brand.
	DefaultBrand = "Nike"
	// DefaultCategory is assigned to products created without a category.
	DefaultCategory = "Sneakers"
	// DefaultCurrency is the only currency the store trades in.
	DefaultCurrency = "EUR"
)

// Product represents a sneaker model in the catalog.
// It is the aggregate root for catalog and stock operations.
type Product struct {
	shared.BaseAggregateRoot
	Name          string           `gorm:"type:varchar(200);not null;index"`
	Alt           string           `gorm:"type:varchar(200)"` // secondary label, e.g. colorway
	Brand         string           `gorm:"type:varchar(100);not null;default:'Nike'"`
	Category      string           `gorm:"type:varchar(100);not null;default:'Sneakers'"`
	Currency      string           `gorm:"type:varchar(3);not null;default:'EUR'"`
	FinalPrice    *decimal.Decimal `gorm:"type:decimal(18,2)"`
	OriginalPrice *decimal.Decimal `gorm:"type:decimal(18,2)"`
	OnSale        bool             `gorm:"not null;default:false"`
	ImageURL      string           `gorm:"type:text"`
	Sizes         SizeChart        `gorm:"type:jsonb;not null;default:'{}'"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with defaults applied
func NewProduct(name, alt string) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Alt:               strings.TrimSpace(alt),
		Brand:             DefaultBrand,
		Category:          DefaultCategory,
		Currency:          DefaultCurrency,
		Sizes:             SizeChart{},
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's display information
func (p *Product) Update(name, alt, brand, category string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = strings.TrimSpace(name)
	p.Alt = strings.TrimSpace(alt)
	if brand != "" {
		p.Brand = brand
	}
	if category != "" {
		p.Category = category
	}
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetPrices sets the final and original price and recomputes the sale flag.
// Either price may be nil when unknown.
func (p *Product) SetPrices(finalPrice, originalPrice *decimal.Decimal) error {
	if finalPrice != nil && finalPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Final price cannot be negative")
	}
	if originalPrice != nil && originalPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Original price cannot be negative")
	}

	p.FinalPrice = finalPrice
	p.OriginalPrice = originalPrice
	p.OnSale = computeOnSale(finalPrice, originalPrice)
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductPriceChangedEvent(p))

	return nil
}

// SetImageURL sets the product image location
func (p *Product) SetImageURL(url string) {
	p.ImageURL = url
	p.Touch()
	p.IncrementVersion()
}

// ReplaceSizes replaces the whole size chart. Negative quantities are
// clamped to zero.
func (p *Product) ReplaceSizes(sizes SizeChart) {
	p.Sizes = sizes.Normalize()
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductSizesReplacedEvent(p))
}

// TotalStock returns the stock summed across all sizes
func (p *Product) TotalStock() int {
	return p.Sizes.TotalQuantity()
}

// MarkDeleted records the deletion event before the aggregate is removed
func (p *Product) MarkDeleted() {
	p.AddDomainEvent(NewProductDeletedEvent(p))
}

// computeOnSale reports whether the price pair qualifies as a promotion:
// both prices present, original strictly above final, original positive.
func computeOnSale(finalPrice, originalPrice *decimal.Decimal) bool {
	if finalPrice == nil || originalPrice == nil {
		return false
	}
	return originalPrice.IsPositive() && originalPrice.GreaterThan(*finalPrice)
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name is required")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
