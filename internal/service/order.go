package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/event"
	"github.com/utafrali/storefront/internal/repository"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// OrderSubmitter posts orders to the catalog. Satisfied by catalog.Client.
type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, order *catalog.CreateOrderRequest) (*catalog.OrderReceipt, error)
}

// SubmitOrderInput holds the checkout form fields. Cart contents are read
// from the session's stored cart, never from the request.
type SubmitOrderInput struct {
	CustomerName  string  `json:"customer_name" validate:"required,min=2,max=120"`
	Phone         string  `json:"phone" validate:"required,min=6,max=20"`
	City          string  `json:"city" validate:"required,min=2,max=80"`
	Address       string  `json:"address" validate:"required,min=5,max=240"`
	PaymentMethod string  `json:"payment_method" validate:"required,oneof=cod bkash nagad card"`
	TransactionID *string `json:"transaction_id,omitempty" validate:"omitempty,min=4,max=64"`
	Notes         *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// OrderConfirmation is returned to the client after a successful submission.
type OrderConfirmation struct {
	OrderID   int   `json:"order_id"`
	Status    int   `json:"status"`
	ItemCount int   `json:"item_count"`
	Subtotal  int64  `json:"subtotal"`
	Shipping  int64  `json:"shipping"`
	Total     int64  `json:"total"`
}

// OrderService implements order submission: it turns the session's cart into
// an order payload, posts it to the catalog, and clears the cart on success.
type OrderService struct {
	repo      repository.CartRepository
	submitter OrderSubmitter
	producer  *event.Producer
	pricing   domain.Pricing
	logger    *slog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	repo repository.CartRepository,
	submitter OrderSubmitter,
	producer *event.Producer,
	pricing domain.Pricing,
	logger *slog.Logger,
) *OrderService {
	return &OrderService{
		repo:      repo,
		submitter: submitter,
		producer:  producer,
		pricing:   pricing,
		logger:    logger,
	}
}

// SubmitOrder posts the session's cart as an order. An empty or absent cart
// cannot be submitted. The cart is cleared only after the catalog accepts
// the order; a failed submission leaves it intact.
func (s *OrderService) SubmitOrder(ctx context.Context, sessionID string, input SubmitOrderInput) (*OrderConfirmation, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.InvalidInput("cart is empty")
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	if len(cart.Items) == 0 {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	items := make([]catalog.OrderItem, len(cart.Items))
	for i, item := range cart.Items {
		items[i] = catalog.OrderItem{
			Product:  item.ProductID,
			Quantity: item.Quantity,
		}
	}

	receipt, err := s.submitter.SubmitOrder(ctx, &catalog.CreateOrderRequest{
		OrderItems:    items,
		PaymentMethod: input.PaymentMethod,
		TransactionID: input.TransactionID,
		Phone:         input.Phone,
		City:          input.City,
		Address:       input.Address,
		Status:        catalog.OrderStatusPending,
		Notes:         input.Notes,
		CustomerName:  input.CustomerName,
	})
	if err != nil {
		return nil, fmt.Errorf("submit order: %w", err)
	}

	summary := s.pricing.Summarize(cart)

	if err := s.repo.Delete(ctx, sessionID); err != nil {
		// The order went through; a leftover cart is an annoyance, not a failure.
		s.logger.ErrorContext(ctx, "failed to clear cart after order submission",
			slog.String("session_id", sessionID),
			slog.Int("order_id", receipt.ID),
			slog.String("error", err.Error()),
		)
	}

	if err := s.producer.PublishOrderSubmitted(ctx, event.OrderSubmittedData{
		OrderID:       receipt.ID,
		SessionID:     sessionID,
		ItemCount:     cart.ItemCount(),
		Subtotal:      summary.Subtotal,
		Shipping:      summary.Shipping,
		Total:         summary.Total,
		PaymentMethod: input.PaymentMethod,
		City:          input.City,
	}); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.submitted event",
			slog.String("session_id", sessionID),
			slog.Int("order_id", receipt.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order submitted",
		slog.String("session_id", sessionID),
		slog.Int("order_id", receipt.ID),
		slog.Int64("total", summary.Total),
	)

	return &OrderConfirmation{
		OrderID:   receipt.ID,
		Status:    receipt.Status,
		ItemCount: cart.ItemCount(),
		Subtotal:  summary.Subtotal,
		Shipping:  summary.Shipping,
		Total:     summary.Total,
	}, nil
}
