package importer

import (
	"context"
	"io"
	"math/rand"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/peeves/backend/internal/domain/catalog"
	csvimport "github.com/peeves/backend/internal/infrastructure/import"
)

// Column layout of the catalog feed. The feed carries one header line.
const (
	colImage = iota
	colName
	colAlt
	colFinalPrice
	colOriginalPrice
)

const maxRandomQuantity = 100 // exclusive upper bound per size

// ImportResult summarizes a catalog CSV import
type ImportResult struct {
	TotalRows    int                  `json:"total_rows"`
	ImportedRows int                  `json:"imported_rows"`
	ErrorRows    int                  `json:"error_rows"`
	Errors       []csvimport.RowError `json:"errors,omitempty"`
	IsTruncated  bool                 `json:"is_truncated,omitempty"`
	TotalErrors  int                  `json:"total_errors,omitempty"`
}

// CatalogImportService imports products from the semicolon-separated
// catalog feed (image;name;alt;finalPrice;originalPrice).
type CatalogImportService struct {
	productRepo catalog.ProductRepository
	logger      *zap.Logger
	titleCaser  cases.Caser
	randInt     func(n int) int
}

// NewCatalogImportService creates a new CatalogImportService
func NewCatalogImportService(productRepo catalog.ProductRepository, logger *zap.Logger) *CatalogImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogImportService{
		productRepo: productRepo,
		logger:      logger,
		titleCaser:  cases.Title(language.English),
		randInt:     rand.Intn,
	}
}

// Import reads the feed and saves one product per valid row. Each size of
// a new product starts with a random quantity below maxRandomQuantity.
func (s *CatalogImportService) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	parser, err := csvimport.NewCSVParser(r,
		csvimport.WithDelimiter(';'),
		csvimport.WithSkipHeader(true),
	)
	if err != nil {
		return nil, err
	}

	rows, err := parser.ReadAllRows()
	if err != nil {
		return nil, err
	}

	result := &ImportResult{TotalRows: len(rows)}
	errors := csvimport.NewErrorCollection(100)

	var batch []*catalog.Product
	for _, row := range rows {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		product, rowErr := s.buildProduct(row)
		if rowErr != nil {
			errors.Add(*rowErr)
			result.ErrorRows++
			continue
		}
		batch = append(batch, product)
	}

	if len(batch) > 0 {
		if err := s.productRepo.SaveBatch(ctx, batch); err != nil {
			return nil, err
		}
	}

	result.ImportedRows = len(batch)
	result.Errors = errors.Errors()
	result.IsTruncated = errors.IsTruncated()
	result.TotalErrors = errors.TotalCount()

	s.logger.Info("catalog import finished",
		zap.Int("total", result.TotalRows),
		zap.Int("imported", result.ImportedRows),
		zap.Int("errors", result.ErrorRows),
	)

	return result, nil
}

func (s *CatalogImportService) buildProduct(row *csvimport.Row) (*catalog.Product, *csvimport.RowError) {
	name := row.Field(colName)

	product, err := catalog.NewProduct(name, row.Field(colAlt))
	if err != nil {
		rowErr := csvimport.NewRowError(row.LineNumber, "name", err.Error())
		return nil, &rowErr
	}

	finalPrice, err := ParsePrice(row.Field(colFinalPrice))
	if err != nil {
		rowErr := csvimport.NewRowError(row.LineNumber, "final", err.Error())
		return nil, &rowErr
	}
	originalPrice, err := ParsePrice(row.Field(colOriginalPrice))
	if err != nil {
		rowErr := csvimport.NewRowError(row.LineNumber, "original", err.Error())
		return nil, &rowErr
	}
	if err := product.SetPrices(finalPrice, originalPrice); err != nil {
		rowErr := csvimport.NewRowError(row.LineNumber, "final", err.Error())
		return nil, &rowErr
	}

	if brand := s.brandFromName(name); brand != "" {
		if err := product.Update(product.Name, product.Alt, brand, ""); err != nil {
			rowErr := csvimport.NewRowError(row.LineNumber, "name", err.Error())
			return nil, &rowErr
		}
	}

	product.SetImageURL(row.Field(colImage))
	product.ReplaceSizes(s.randomSizes())

	return product, nil
}

// brandFromName derives the brand from the leading word of the name,
// normalized to title case ("NIKE Air Max" and "nike air max" both map
// to "Nike").
func (s *CatalogImportService) brandFromName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return s.titleCaser.String(strings.ToLower(fields[0]))
}

func (s *CatalogImportService) randomSizes() catalog.SizeChart {
	sizes := make(catalog.SizeChart, len(catalog.DefaultSizeLabels))
	for _, label := range catalog.DefaultSizeLabels {
		sizes[label] = catalog.SizeStock{Quantity: s.randInt(maxRandomQuantity)}
	}
	return sizes
}

// ParsePrice parses a feed price like "129,99 €" into a decimal. Empty
// input yields nil.
func ParsePrice(raw string) (*decimal.Decimal, error) {
	cleaned := strings.NewReplacer("€", "", " ", "", " ", "").Replace(raw)
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return nil, nil
	}

	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return nil, err
	}
	return &value, nil
}
