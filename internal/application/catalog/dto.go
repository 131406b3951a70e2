package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/peeves/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name          string            `json:"name" binding:"required,min=1,max=200"`
	Alt           string            `json:"alt" binding:"max=200"`
	Brand         string            `json:"brand" binding:"max=100"`
	Category      string            `json:"category" binding:"max=100"`
	FinalPrice    *decimal.Decimal  `json:"final_price"`
	OriginalPrice *decimal.Decimal  `json:"original_price"`
	ImageURL      string            `json:"image_url"`
	Sizes         catalog.SizeChart `json:"sizes"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Alt           *string          `json:"alt" binding:"omitempty,max=200"`
	Brand         *string          `json:"brand" binding:"omitempty,max=100"`
	Category      *string          `json:"category" binding:"omitempty,max=100"`
	FinalPrice    *decimal.Decimal `json:"final_price"`
	OriginalPrice *decimal.Decimal `json:"original_price"`
	ClearPrices   bool             `json:"clear_prices"`
	ImageURL      *string          `json:"image_url"`
}

// ReplaceSizesRequest replaces the whole size chart of a product
type ReplaceSizesRequest struct {
	Sizes catalog.SizeChart `json:"sizes" binding:"required"`
}

// ListProductsQuery captures the storefront browse parameters
type ListProductsQuery struct {
	Page       int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size,default=24" binding:"omitempty,min=1,max=100"`
	Collection string `form:"collection" binding:"omitempty,oneof=ALL NIKE JORDAN PROMOS"`
	Search     string `form:"search" binding:"omitempty,max=200"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID            uuid.UUID         `json:"id"`
	Name          string            `json:"name"`
	Alt           string            `json:"alt,omitempty"`
	Brand         string            `json:"brand"`
	Category      string            `json:"category"`
	Currency      string            `json:"currency"`
	FinalPrice    *decimal.Decimal  `json:"final_price"`
	OriginalPrice *decimal.Decimal  `json:"original_price"`
	OnSale        bool              `json:"on_sale"`
	ImageURL      string            `json:"image_url,omitempty"`
	Sizes         catalog.SizeChart `json:"sizes"`
	TotalStock    int               `json:"total_stock"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	Version       int               `json:"version"`
}

// ToProductResponse converts a domain product to its API shape
func ToProductResponse(p *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Alt:           p.Alt,
		Brand:         p.Brand,
		Category:      p.Category,
		Currency:      p.Currency,
		FinalPrice:    p.FinalPrice,
		OriginalPrice: p.OriginalPrice,
		OnSale:        p.OnSale,
		ImageURL:      p.ImageURL,
		Sizes:         p.Sizes,
		TotalStock:    p.TotalStock(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Version:       p.Version,
	}
}
