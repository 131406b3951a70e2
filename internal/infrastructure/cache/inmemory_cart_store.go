package cache

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/peeves/backend/internal/domain/cart"
)

// InMemoryCartStore implements cart.Store with a process-local map.
// Intended for tests and single-instance development setups.
type InMemoryCartStore struct {
	mu    sync.RWMutex
	carts map[uuid.UUID]*cart.Cart
}

// NewInMemoryCartStore creates a new in-memory cart store
func NewInMemoryCartStore() *InMemoryCartStore {
	return &InMemoryCartStore{
		carts: make(map[uuid.UUID]*cart.Cart),
	}
}

// Get returns a copy of the user's cart, or an empty cart when none exists
func (s *InMemoryCartStore) Get(_ context.Context, userID uuid.UUID) (*cart.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.carts[userID]
	if !ok {
		return cart.New(userID), nil
	}

	// Copy so callers cannot mutate the stored cart without Put
	copied := *stored
	copied.Items = make([]cart.Item, len(stored.Items))
	copy(copied.Items, stored.Items)
	return &copied, nil
}

// Put stores the cart
func (s *InMemoryCartStore) Put(_ context.Context, c *cart.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *c
	copied.Items = make([]cart.Item, len(c.Items))
	copy(copied.Items, c.Items)
	s.carts[c.UserID] = &copied
	return nil
}

// Delete removes the user's cart
func (s *InMemoryCartStore) Delete(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
	return nil
}

// Ensure InMemoryCartStore implements cart.Store
var _ cart.Store = (*InMemoryCartStore)(nil)
