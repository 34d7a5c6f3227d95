package memory

import (
	"context"
	"sync"
	"time"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

type entry struct {
	cart      domain.Cart
	expiresAt time.Time
}

// CartRepository implements repository.CartRepository with an in-process map.
// Used when no Redis address is configured; carts do not survive restarts.
type CartRepository struct {
	mu    sync.RWMutex
	carts map[string]entry
	ttl   time.Duration
	now   func() time.Time
}

// NewCartRepository creates a new in-memory cart repository.
func NewCartRepository(ttl time.Duration) *CartRepository {
	return &CartRepository{
		carts: make(map[string]entry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get retrieves a cart by session ID. Expired entries are treated as absent.
func (r *CartRepository) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	r.mu.RLock()
	e, ok := r.carts[sessionID]
	r.mu.RUnlock()

	if !ok || r.now().After(e.expiresAt) {
		return nil, apperrors.NotFound("cart", sessionID)
	}

	// Copy so callers cannot mutate stored state.
	cart := e.cart
	cart.Items = make([]domain.CartItem, len(e.cart.Items))
	copy(cart.Items, e.cart.Items)
	return &cart, nil
}

// Save stores a copy of the cart with a fresh TTL.
func (r *CartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	stored := *cart
	stored.Items = make([]domain.CartItem, len(cart.Items))
	copy(stored.Items, cart.Items)

	r.mu.Lock()
	r.carts[cart.SessionID] = entry{cart: stored, expiresAt: r.now().Add(r.ttl)}
	r.mu.Unlock()
	return nil
}

// Delete removes a cart by session ID.
func (r *CartRepository) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	delete(r.carts, sessionID)
	r.mu.Unlock()
	return nil
}
