package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/peeves/backend/internal/domain/shared"
)

// Collection names the product list filters the storefront exposes.
type Collection string

const (
	CollectionAll    Collection = "ALL"
	CollectionNike   Collection = "NIKE"
	CollectionJordan Collection = "JORDAN"
	CollectionPromos Collection = "PROMOS"
)

// FilterKeyCollection selects a Collection inside shared.Filter.Filters.
const FilterKeyCollection = "collection"

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindAll finds all products matching the filter. The filter's Search
	// field matches case-insensitive substrings of the name; the
	// FilterKeyCollection entry applies a storefront collection.
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// SaveBatch creates or updates multiple products
	SaveBatch(ctx context.Context, products []*Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
