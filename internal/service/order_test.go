package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// --- Mock Submitter ---

type mockSubmitter struct {
	mock.Mock
}

func (m *mockSubmitter) SubmitOrder(ctx context.Context, order *catalog.CreateOrderRequest) (*catalog.OrderReceipt, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.OrderReceipt), args.Error(1)
}

func newTestOrderService(repo *mockCartRepository, submitter *mockSubmitter) *OrderService {
	return NewOrderService(repo, submitter, newTestProducer(), domain.DefaultPricing(), newTestLogger())
}

func validOrderInput() SubmitOrderInput {
	return SubmitOrderInput{
		CustomerName:  "Ayesha Rahman",
		Phone:         "01700000000",
		City:          "Dhaka",
		Address:       "House 1, Road 2, Banani",
		PaymentMethod: "cod",
	}
}

// --- SubmitOrder ---

func TestSubmitOrder_Success(t *testing.T) {
	repo := new(mockCartRepository)
	submitter := new(mockSubmitter)
	svc := newTestOrderService(repo, submitter)
	ctx := context.Background()

	repo.On("Get", ctx, "sess-1").Return(cartWithSerum("sess-1"), nil)
	repo.On("Delete", ctx, "sess-1").Return(nil)

	var gotOrder *catalog.CreateOrderRequest
	submitter.On("SubmitOrder", ctx, mock.AnythingOfType("*catalog.CreateOrderRequest")).
		Run(func(args mock.Arguments) {
			gotOrder = args.Get(1).(*catalog.CreateOrderRequest)
		}).
		Return(&catalog.OrderReceipt{ID: 55, Status: catalog.OrderStatusPending}, nil)

	confirmation, err := svc.SubmitOrder(ctx, "sess-1", validOrderInput())
	require.NoError(t, err)

	assert.Equal(t, 55, confirmation.OrderID)
	assert.Equal(t, catalog.OrderStatusPending, confirmation.Status)
	assert.Equal(t, 2, confirmation.ItemCount)
	assert.Equal(t, int64(9600), confirmation.Subtotal)
	assert.Equal(t, int64(0), confirmation.Shipping)
	assert.Equal(t, int64(9600), confirmation.Total)

	require.NotNil(t, gotOrder)
	require.Len(t, gotOrder.OrderItems, 1)
	assert.Equal(t, 7, gotOrder.OrderItems[0].Product)
	assert.Equal(t, 2, gotOrder.OrderItems[0].Quantity)
	assert.Equal(t, catalog.OrderStatusPending, gotOrder.Status)
	assert.Equal(t, "Ayesha Rahman", gotOrder.CustomerName)
	assert.Nil(t, gotOrder.TransactionID)

	repo.AssertExpectations(t)
	submitter.AssertExpectations(t)
}

func TestSubmitOrder_EmptyCart(t *testing.T) {
	repo := new(mockCartRepository)
	submitter := new(mockSubmitter)
	svc := newTestOrderService(repo, submitter)
	ctx := context.Background()

	empty := cartWithSerum("sess-1")
	empty.Items = nil
	repo.On("Get", ctx, "sess-1").Return(empty, nil)

	_, err := svc.SubmitOrder(ctx, "sess-1", validOrderInput())
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	submitter.AssertNotCalled(t, "SubmitOrder", mock.Anything, mock.Anything)
}

func TestSubmitOrder_AbsentCart(t *testing.T) {
	repo := new(mockCartRepository)
	submitter := new(mockSubmitter)
	svc := newTestOrderService(repo, submitter)
	ctx := context.Background()

	repo.On("Get", ctx, "sess-1").Return(nil, apperrors.NotFound("cart", "sess-1"))

	_, err := svc.SubmitOrder(ctx, "sess-1", validOrderInput())
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestSubmitOrder_UpstreamFailureKeepsCart(t *testing.T) {
	repo := new(mockCartRepository)
	submitter := new(mockSubmitter)
	svc := newTestOrderService(repo, submitter)
	ctx := context.Background()

	repo.On("Get", ctx, "sess-1").Return(cartWithSerum("sess-1"), nil)
	submitter.On("SubmitOrder", ctx, mock.AnythingOfType("*catalog.CreateOrderRequest")).
		Return(nil, apperrors.Upstream("catalog", 502, "bad gateway"))

	_, err := svc.SubmitOrder(ctx, "sess-1", validOrderInput())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestSubmitOrder_ClearFailureStillConfirms(t *testing.T) {
	repo := new(mockCartRepository)
	submitter := new(mockSubmitter)
	svc := newTestOrderService(repo, submitter)
	ctx := context.Background()

	repo.On("Get", ctx, "sess-1").Return(cartWithSerum("sess-1"), nil)
	repo.On("Delete", ctx, "sess-1").Return(errors.New("store unavailable"))
	submitter.On("SubmitOrder", ctx, mock.AnythingOfType("*catalog.CreateOrderRequest")).
		Return(&catalog.OrderReceipt{ID: 55, Status: catalog.OrderStatusPending}, nil)

	confirmation, err := svc.SubmitOrder(ctx, "sess-1", validOrderInput())
	require.NoError(t, err)
	assert.Equal(t, 55, confirmation.OrderID)
}

func TestSubmitOrder_OptionalFieldsForwarded(t *testing.T) {
	repo := new(mockCartRepository)
	submitter := new(mockSubmitter)
	svc := newTestOrderService(repo, submitter)
	ctx := context.Background()

	repo.On("Get", ctx, "sess-1").Return(cartWithSerum("sess-1"), nil)
	repo.On("Delete", ctx, "sess-1").Return(nil)

	var gotOrder *catalog.CreateOrderRequest
	submitter.On("SubmitOrder", ctx, mock.AnythingOfType("*catalog.CreateOrderRequest")).
		Run(func(args mock.Arguments) {
			gotOrder = args.Get(1).(*catalog.CreateOrderRequest)
		}).
		Return(&catalog.OrderReceipt{ID: 56, Status: catalog.OrderStatusPending}, nil)

	input := validOrderInput()
	txn := "TXN-1234"
	notes := "leave at the gate"
	input.PaymentMethod = "bkash"
	input.TransactionID = &txn
	input.Notes = &notes

	_, err := svc.SubmitOrder(ctx, "sess-1", input)
	require.NoError(t, err)

	require.NotNil(t, gotOrder.TransactionID)
	assert.Equal(t, "TXN-1234", *gotOrder.TransactionID)
	require.NotNil(t, gotOrder.Notes)
	assert.Equal(t, "leave at the gate", *gotOrder.Notes)
	assert.Equal(t, "bkash", gotOrder.PaymentMethod)
}
