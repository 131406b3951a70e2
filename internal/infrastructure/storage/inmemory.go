package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	catalogapp "github.com/peeves/backend/internal/application/catalog"
)

// InMemoryObjectStorage implements ObjectStorageService with a process-local
// map. Intended for tests and development setups without an object store.
type InMemoryObjectStorage struct {
	// BaseURL is the base URL for generated upload/download/public URLs
	BaseURL string

	mu      sync.RWMutex
	objects map[string][]byte
}

// NewInMemoryObjectStorage creates a new InMemoryObjectStorage
func NewInMemoryObjectStorage() *InMemoryObjectStorage {
	return &InMemoryObjectStorage{
		BaseURL: "https://storage.example.com",
		objects: make(map[string][]byte),
	}
}

// Ensure InMemoryObjectStorage implements ObjectStorageService
var _ catalogapp.ObjectStorageService = (*InMemoryObjectStorage)(nil)

// GenerateUploadURL returns a fake presigned upload URL
func (s *InMemoryObjectStorage) GenerateUploadURL(
	_ context.Context,
	storageKey, _ string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + "/upload/" + storageKey, expiresAt, nil
}

// GenerateDownloadURL returns a fake presigned download URL
func (s *InMemoryObjectStorage) GenerateDownloadURL(
	_ context.Context,
	storageKey string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + "/download/" + storageKey, expiresAt, nil
}

// Upload stores the object bytes in memory
func (s *InMemoryObjectStorage) Upload(_ context.Context, storageKey string, data []byte, _ string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	s.objects[storageKey] = stored
	return nil
}

// ObjectExists reports whether the key was uploaded
func (s *InMemoryObjectStorage) ObjectExists(_ context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[storageKey]
	return ok, nil
}

// DeleteObject removes the object if present
func (s *InMemoryObjectStorage) DeleteObject(_ context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, storageKey)
	return nil
}

// PublicURL returns the public URL an uploaded object would be served from
func (s *InMemoryObjectStorage) PublicURL(storageKey string) string {
	return s.BaseURL + "/" + storageKey
}

// Object returns the stored bytes for a key, for test assertions
func (s *InMemoryObjectStorage) Object(storageKey string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[storageKey]
	return data, ok
}
