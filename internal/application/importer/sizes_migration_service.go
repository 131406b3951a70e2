package importer

import (
	"context"

	"go.uber.org/zap"

	"github.com/peeves/backend/internal/domain/catalog"
	"github.com/peeves/backend/internal/domain/shared"
)

// LegacySizeLabel is the single bucket the pre-size-chart schema stored
// the whole stock under.
const LegacySizeLabel = "total"

const migrationPageSize = 400

// SizesMigrationResult summarizes a quantity-to-sizes migration run
type SizesMigrationResult struct {
	Scanned  int `json:"scanned"`
	Migrated int `json:"migrated"`
	Skipped  int `json:"skipped"`
}

// SizesMigrationService converts products still carrying a single legacy
// stock bucket into per-size charts.
type SizesMigrationService struct {
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewSizesMigrationService creates a new SizesMigrationService
func NewSizesMigrationService(productRepo catalog.ProductRepository, logger *zap.Logger) *SizesMigrationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SizesMigrationService{
		productRepo: productRepo,
		logger:      logger,
	}
}

// Migrate spreads each legacy bucket over the standard size labels. The
// base share is total divided by the label count, with the remainder
// handed out one unit each to the leading labels. With dryRun set the
// changes are computed and logged but not saved.
func (s *SizesMigrationService) Migrate(ctx context.Context, dryRun bool) (*SizesMigrationResult, error) {
	result := &SizesMigrationResult{}

	page := 1
	for {
		products, err := s.productRepo.FindAll(ctx, shared.Filter{
			Page:     page,
			PageSize: migrationPageSize,
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

			legacy, ok := product.Sizes[LegacySizeLabel]
			if !ok {
				result.Skipped++
				continue
			}

			sizes, err := catalog.SpreadQuantity(legacy.Quantity, catalog.DefaultSizeLabels)
			if err != nil {
				return nil, err
			}
			s.logger.Info("migrating legacy stock",
				zap.String("product_id", product.ID.String()),
				zap.Int("total", legacy.Quantity),
				zap.Bool("dry_run", dryRun),
			)

			if dryRun {
				result.Migrated++
				continue
			}

			product.ReplaceSizes(sizes)
			batch = append(batch, product)
			result.Migrated++
		}

		if len(batch) > 0 {
			if err := s.productRepo.SaveBatch(ctx, batch); err != nil {
				return nil, err
			}
		}

		if len(products) < migrationPageSize {
			break
		}
		page++
	}

	return result, nil
}
