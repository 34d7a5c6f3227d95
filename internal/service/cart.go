package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/event"
	"github.com/utafrali/storefront/internal/repository"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// Cart operation upper-bound limits to prevent abuse.
const (
	// MaxQuantityPerItem is the maximum quantity allowed for a single cart item.
	MaxQuantityPerItem = 100
	// MaxItemsPerCart is the maximum number of distinct items allowed in a cart.
	MaxItemsPerCart = 50
)

// ProductGetter resolves products from the catalog. Satisfied by
// catalog.Client.
type ProductGetter interface {
	GetProduct(ctx context.Context, id int) (*domain.Product, error)
}

// CartView is a cart together with its derived pricing breakdown.
type CartView struct {
	Cart    *domain.Cart       `json:"cart"`
	Summary domain.CartSummary `json:"summary"`
}

// CartService implements the business logic for cart operations.
type CartService struct {
	repo     repository.CartRepository
	catalog  ProductGetter
	producer *event.Producer
	pricing  domain.Pricing
	logger   *slog.Logger
	cartTTL  time.Duration
}

// NewCartService creates a new cart service.
func NewCartService(
	repo repository.CartRepository,
	catalog ProductGetter,
	producer *event.Producer,
	pricing domain.Pricing,
	logger *slog.Logger,
	cartTTL time.Duration,
) *CartService {
	return &CartService{
		repo:     repo,
		catalog:  catalog,
		producer: producer,
		pricing:  pricing,
		logger:   logger,
		cartTTL:  cartTTL,
	}
}

// GetCart retrieves the cart for a session. If no cart exists, returns an
// empty cart without persisting it.
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*CartView, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return s.view(s.newEmptyCart(sessionID)), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	return s.view(cart), nil
}

// AddItem adds a product to the session's cart. The product is resolved from
// the catalog so price and display fields are always current. Adding a
// product already in the cart increments its quantity by exactly one; a new
// product enters with quantity one.
func (s *CartService) AddItem(ctx context.Context, sessionID string, productID int) (*CartView, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if productID <= 0 {
		return nil, apperrors.InvalidInput("product id must be a positive integer")
	}

	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("resolve product: %w", err)
	}
	if !product.Purchasable() {
		return nil, apperrors.Conflict("product is not available for purchase")
	}

	cart, err := s.getOrCreateCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if i := cart.FindItemIndex(productID); i >= 0 {
		if cart.Items[i].Quantity >= MaxQuantityPerItem {
			return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerItem))
		}
		cart.Items[i].Quantity++
		// Refresh cached display fields in case the catalog changed.
		cart.Items[i].Name = product.Title
		cart.Items[i].Price = product.Price
		cart.Items[i].ImageURL = product.CardImagePath()
	} else {
		if len(cart.Items) >= MaxItemsPerCart {
			return nil, apperrors.InvalidInput(fmt.Sprintf("cart must not contain more than %d items", MaxItemsPerCart))
		}
		cart.Items = append(cart.Items, domain.CartItem{
			ProductID: product.ID,
			Name:      product.Title,
			Price:     product.Price,
			Quantity:  1,
			ImageURL:  product.CardImagePath(),
		})
	}

	if err := s.saveCart(ctx, cart); err != nil {
		return nil, err
	}

	s.publishCartUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("session_id", sessionID),
		slog.Int("product_id", productID),
	)

	return s.view(cart), nil
}

// UpdateQuantity sets the quantity of a cart line. A quantity below one
// removes the line. Updating a product that is not in the cart leaves the
// cart unchanged.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID string, productID, quantity int) (*CartView, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if quantity > MaxQuantityPerItem {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerItem))
	}

	cart, err := s.getOrCreateCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	i := cart.FindItemIndex(productID)
	if i < 0 {
		return s.view(cart), nil
	}

	if quantity < 1 {
		cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	} else {
		cart.Items[i].Quantity = quantity
	}

	if err := s.saveCart(ctx, cart); err != nil {
		return nil, err
	}

	s.publishCartUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "cart item quantity updated",
		slog.String("session_id", sessionID),
		slog.Int("product_id", productID),
		slog.Int("quantity", quantity),
	)

	return s.view(cart), nil
}

// RemoveItem removes a product's line from the cart. Removing a product that
// is not in the cart leaves the cart unchanged.
func (s *CartService) RemoveItem(ctx context.Context, sessionID string, productID int) (*CartView, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.getOrCreateCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	i := cart.FindItemIndex(productID)
	if i < 0 {
		return s.view(cart), nil
	}

	cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)

	if err := s.saveCart(ctx, cart); err != nil {
		return nil, err
	}

	s.publishCartUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("session_id", sessionID),
		slog.Int("product_id", productID),
	)

	return s.view(cart), nil
}

// ClearCart removes all items from the session's cart. Clearing an absent
// cart is a no-op.
func (s *CartService) ClearCart(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return apperrors.InvalidInput("session id is required")
	}

	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	if err := s.producer.PublishCartCleared(ctx, sessionID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cart cleared",
		slog.String("session_id", sessionID),
	)

	return nil
}

func (s *CartService) view(cart *domain.Cart) *CartView {
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}
	return &CartView{
		Cart:    cart,
		Summary: s.pricing.Summarize(cart),
	}
}

func (s *CartService) newEmptyCart(sessionID string) *domain.Cart {
	now := time.Now().UTC()
	return &domain.Cart{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Items:     []domain.CartItem{},
		Version:   0,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.cartTTL),
	}
}

func (s *CartService) getOrCreateCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return s.newEmptyCart(sessionID), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return cart, nil
}

func (s *CartService) saveCart(ctx context.Context, cart *domain.Cart) error {
	now := time.Now().UTC()
	cart.Version++
	cart.UpdatedAt = now
	cart.ExpiresAt = now.Add(s.cartTTL)

	if err := s.repo.Save(ctx, cart); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// publishCartUpdated publishes the event best-effort; failures are logged,
// never surfaced to the caller.
func (s *CartService) publishCartUpdated(ctx context.Context, cart *domain.Cart) {
	if err := s.producer.PublishCartUpdated(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("session_id", cart.SessionID),
			slog.String("error", err.Error()),
		)
	}
}
