package importer

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	catalogapp "github.com/peeves/backend/internal/application/catalog"
	"github.com/peeves/backend/internal/domain/catalog"
)

// ImageUploadResult summarizes a bulk image upload run
type ImageUploadResult struct {
	Files    int `json:"files"`
	Uploaded int `json:"uploaded"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// ImageUploadService pushes a directory of local product images to object
// storage. Files are expected to be named <productID>.png.
type ImageUploadService struct {
	productRepo catalog.ProductRepository
	storage     catalogapp.ObjectStorageService
	logger      *zap.Logger
}

// NewImageUploadService creates a new ImageUploadService
func NewImageUploadService(
	productRepo catalog.ProductRepository,
	storage catalogapp.ObjectStorageService,
	logger *zap.Logger,
) *ImageUploadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImageUploadService{
		productRepo: productRepo,
		storage:     storage,
		logger:      logger,
	}
}

type pendingImage struct {
	file      string
	productID uuid.UUID
}

// UploadDirectory uploads every .png in dir whose base name is a known
// product ID and records the public URL on the product. Products are
// resolved in a single batched lookup before any upload starts.
func (s *ImageUploadService) UploadDirectory(ctx context.Context, dir string) (*ImageUploadResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	result := &ImageUploadResult{}
	var uploads []pendingImage
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".png") {
			continue
		}
		result.Files++

		productID, err := uuid.Parse(strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())))
		if err != nil {
			s.logger.Warn("skipping file without a product id name", zap.String("file", entry.Name()))
			result.Skipped++
			continue
		}
		uploads = append(uploads, pendingImage{file: entry.Name(), productID: productID})
	}

	if len(uploads) == 0 {
		return result, nil
	}

	ids := make([]uuid.UUID, len(uploads))
	for i, upload := range uploads {
		ids[i] = upload.productID
	}
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	for _, upload := range uploads {
		product, ok := byID[upload.productID]
		if !ok {
			s.logger.Warn("no product matches image file",
				zap.String("file", upload.file),
				zap.String("product_id", upload.productID.String()),
			)
			result.Failed++
			continue
		}

		if err := s.uploadOne(ctx, dir, upload.file, product); err != nil {
			s.logger.Warn("image upload failed",
				zap.String("product_id", upload.productID.String()),
				zap.Error(err),
			)
			result.Failed++
			continue
		}
		result.Uploaded++
	}

	s.logger.Info("image upload finished",
		zap.Int("files", result.Files),
		zap.Int("uploaded", result.Uploaded),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed),
	)

	return result, nil
}

func (s *ImageUploadService) uploadOne(ctx context.Context, dir, name string, product *catalog.Product) error {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return err
	}

	key := catalogapp.StorageKey(product.ID)
	if err := s.storage.Upload(ctx, key, data, catalogapp.ImageContentType); err != nil {
		return err
	}

	product.SetImageURL(s.storage.PublicURL(key))
	return s.productRepo.Save(ctx, product)
}
