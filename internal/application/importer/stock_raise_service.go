package importer

import (
	"context"
	"math/rand"
	"strings"

	"go.uber.org/zap"

	"github.com/peeves/backend/internal/domain/catalog"
	"github.com/peeves/backend/internal/domain/shared"
)

const raisePageSize = 400

// StockRaiseOptions controls a stock raise run
type StockRaiseOptions struct {
	// Min and Max bound the random quantity added per size, inclusive.
	Min int
	Max int
	// Filter keeps only products whose name contains the substring,
	// case-insensitive. Empty matches everything.
	Filter string
	DryRun bool
}

// StockRaiseResult summarizes a stock raise run
type StockRaiseResult struct {
	Scanned int `json:"scanned"`
	Raised  int `json:"raised"`
	Added   int `json:"added"`
}

// StockRaiseService bulk-adds stock across matching products
type StockRaiseService struct {
	productRepo catalog.ProductRepository
	logger      *zap.Logger
	randInt     func(n int) int
}

// NewStockRaiseService creates a new StockRaiseService
func NewStockRaiseService(productRepo catalog.ProductRepository, logger *zap.Logger) *StockRaiseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockRaiseService{
		productRepo: productRepo,
		logger:      logger,
		randInt:     rand.Intn,
	}
}

// Raise adds a random quantity in [Min, Max] to every size of every
// matching product, writing in batches.
func (s *StockRaiseService) Raise(ctx context.Context, opts StockRaiseOptions) (*StockRaiseResult, error) {
	if opts.Min < 0 {
		opts.Min = 0
	}
	if opts.Max < opts.Min {
		return nil, shared.NewDomainError("INVALID_RANGE", "Max must not be below min")
	}

	result := &StockRaiseResult{}
	needle := strings.ToLower(opts.Filter)

	page := 1
	for {
		products, err := s.productRepo.FindAll(ctx, shared.Filter{
			Page:     page,
			PageSize: raisePageSize,
			OrderBy:  "created_at",
			OrderDir: "asc",
		})
		if err != nil {
			return nil, err
		}
		if len(products) == 0 {
			break
		}

		var batch []*catalog.Product
		for i := range products {
			product := &products[i]
			result.Scanned++

			if needle != "" && !strings.Contains(strings.ToLower(product.Name), needle) {
				continue
			}

			added := s.raiseProduct(product, opts)
			result.Raised++
			result.Added += added

			if !opts.DryRun {
				batch = append(batch, product)
			}
		}

		if len(batch) > 0 {
			if err := s.productRepo.SaveBatch(ctx, batch); err != nil {
				return nil, err
			}
		}

		if len(products) < raisePageSize {
			break
		}
		page++
	}

	s.logger.Info("stock raise finished",
		zap.Int("scanned", result.Scanned),
		zap.Int("raised", result.Raised),
		zap.Int("added", result.Added),
		zap.Bool("dry_run", opts.DryRun),
	)

	return result, nil
}

func (s *StockRaiseService) raiseProduct(product *catalog.Product, opts StockRaiseOptions) int {
	sizes := make(catalog.SizeChart, len(product.Sizes))
	added := 0
	span := opts.Max - opts.Min + 1
	for label, stock := range product.Sizes {
		extra := opts.Min + s.randInt(span)
		sizes[label] = catalog.SizeStock{Quantity: stock.Quantity + extra}
		added += extra
	}
	product.ReplaceSizes(sizes)
	return added
}
