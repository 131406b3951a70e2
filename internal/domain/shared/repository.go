package shared

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the base interface for all repositories
type Repository[T any] interface {
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	FindAll(ctx context.Context, filter Filter) ([]T, error)
	Save(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter Filter) (int64, error)
}

// Filter represents query filter options
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]interface{}
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}
}

// Paginated represents a paginated result
type Paginated[T any] struct {
	Items      []T        `json:"items"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
	PageLinks  []PageLink `json:"page_links,omitempty"`
}

// PageLink is one entry in a compact pager: either a concrete page number
// or an ellipsis placeholder between gaps.
type PageLink struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
	Current  bool `json:"current,omitempty"`
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		PageLinks:  BuildPageLinks(page, totalPages),
	}
}

// BuildPageLinks builds the compact pager for the given current page:
// the first page, up to one page either side of current, the last page,
// with ellipsis placeholders covering the gaps.
func BuildPageLinks(current, totalPages int) []PageLink {
	if totalPages <= 0 {
		return nil
	}
	links := make([]PageLink, 0, totalPages)
	prev := 0
	for p := 1; p <= totalPages; p++ {
		keep := p == 1 || p == totalPages || (p >= current-1 && p <= current+1)
		if !keep {
			continue
		}
		if prev > 0 && p-prev > 1 {
			links = append(links, PageLink{Ellipsis: true})
		}
		links = append(links, PageLink{Page: p, Current: p == current})
		prev = p
	}
	return links
}
