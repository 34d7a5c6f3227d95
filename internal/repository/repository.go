package repository

import (
	"context"

	"github.com/utafrali/storefront/internal/domain"
)

// CartRepository defines the interface for cart persistence operations.
// The storefront owns cart state; the backing store is an injectable detail
// (Redis in production, in-memory when no Redis address is configured).
type CartRepository interface {
	// Get retrieves a cart by its session ID.
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)

	// Save persists a cart to the store, overwriting any existing cart for
	// the session.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes a cart from the store by session ID.
	Delete(ctx context.Context, sessionID string) error
}
