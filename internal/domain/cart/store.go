package cart

import (
	"context"

	"github.com/google/uuid"
)

// Store persists carts keyed by user. Implementations return an empty cart
// for users without one.
type Store interface {
	// Get loads the user's cart
	Get(ctx context.Context, userID uuid.UUID) (*Cart, error)

	// Put stores the user's cart
	Put(ctx context.Context, cart *Cart) error

	// Delete drops the user's cart
	Delete(ctx context.Context, userID uuid.UUID) error
}
