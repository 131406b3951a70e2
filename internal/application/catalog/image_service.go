package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peeves/backend/internal/domain/catalog"
)

// ObjectStorageService abstracts the S3-compatible object store holding
// product images.
type ObjectStorageService interface {
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
	PublicURL(storageKey string) string
}

// ImageContentType is the content type product images are stored with.
const ImageContentType = "image/png"

// UploadURLResponse carries a presigned upload target for an admin client
type UploadURLResponse struct {
	UploadURL string    `json:"upload_url"`
	PublicURL string    `json:"public_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ProductImageService manages product image storage. Images are keyed by
// product ID so re-uploads overwrite in place.
type ProductImageService struct {
	productRepo catalog.ProductRepository
	storage     ObjectStorageService
	logger      *zap.Logger
}

// NewProductImageService creates a new ProductImageService
func NewProductImageService(productRepo catalog.ProductRepository, storage ObjectStorageService, logger *zap.Logger) *ProductImageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductImageService{
		productRepo: productRepo,
		storage:     storage,
		logger:      logger,
	}
}

// StorageKey returns the object key for a product's image
func StorageKey(productID uuid.UUID) string {
	return fmt.Sprintf("products/%s.png", productID)
}

// GenerateUploadURL returns a presigned PUT URL for a product's image and
// the public URL it will be served from.
func (s *ProductImageService) GenerateUploadURL(ctx context.Context, productID uuid.UUID) (*UploadURLResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	key := StorageKey(productID)
	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, ImageContentType, 0)
	if err != nil {
		return nil, err
	}

	return &UploadURLResponse{
		UploadURL: uploadURL,
		PublicURL: s.storage.PublicURL(key),
		ExpiresAt: expiresAt,
	}, nil
}

// ConfirmUpload verifies the object landed in storage and records its public
// URL on the product.
func (s *ProductImageService) ConfirmUpload(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	key := StorageKey(productID)
	exists, err := s.storage.ObjectExists(ctx, key)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("image for product %s was not uploaded", productID)
	}

	product.SetImageURL(s.storage.PublicURL(key))
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product image attached",
		zap.String("product_id", productID.String()),
		zap.String("key", key),
	)

	return ToProductResponse(product), nil
}
