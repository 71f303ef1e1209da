package merch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"samad-backend/internal/kafka"
	"samad-backend/internal/logger"
	"samad-backend/internal/models"
	"samad-backend/internal/paystack"
	"samad-backend/internal/storage"
)

// MockPaymentGateway is a mock implementation of the PaymentGateway interface
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) Initialize(ctx context.Context, req paystack.InitializeRequest) (*paystack.InitializeResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paystack.InitializeResponse), args.Error(1)
}

func (m *MockPaymentGateway) Verify(ctx context.Context, reference string) (*paystack.VerifyResponse, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paystack.VerifyResponse), args.Error(1)
}

// MockMailer is a mock implementation of the Mailer interface
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendOrderConfirmationEmail(order *models.MerchOrder, product *models.MerchProduct) bool {
	args := m.Called(order, product)
	return args.Bool(0)
}

func newServiceWithProduct(t *testing.T) (*MerchService, *MockPaymentGateway, *MockMailer, *models.MerchProduct) {
	t.Helper()
	store := storage.NewMemStorage("")
	payments := new(MockPaymentGateway)
	mail := new(MockMailer)
	svc := NewMerchService(store, payments, mail, kafka.NoopPublisher{}, logger.NewLogger())

	product, err := store.CreateMerchProduct(context.Background(), models.InsertMerchProduct{
		Name:  "Tour Hoodie",
		Price: 15000,
		Stock: 10,
	})
	assert.NoError(t, err)
	return svc, payments, mail, product
}

func TestPlaceOrderCreatesPendingOrder(t *testing.T) {
	svc, payments, _, product := newServiceWithProduct(t)

	payments.On("Initialize", mock.Anything, mock.MatchedBy(func(req paystack.InitializeRequest) bool {
		return req.Amount == 3000000 && req.Email == "ada@example.com"
	})).Return(&paystack.InitializeResponse{
		AuthorizationURL: "https://checkout.paystack.com/xyz",
	}, nil)

	result, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		ProductID:     product.ID,
		Quantity:      2,
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, "https://checkout.paystack.com/xyz", result.AuthorizationURL)
	assert.Equal(t, models.PaymentPending, result.Order.PaymentStatus)
	assert.Equal(t, "pending", result.Order.OrderStatus)
	assert.Equal(t, 30000.0, result.Order.TotalAmount)
	assert.NotEmpty(t, result.Order.TrackingNumber)
	assert.NotEmpty(t, result.Order.PaymentReference)
	payments.AssertExpectations(t)
}

func TestPlaceOrderRejectsUnknownProduct(t *testing.T) {
	svc, _, _, _ := newServiceWithProduct(t)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{ProductID: "missing"})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestPlaceOrderRejectsInactiveProduct(t *testing.T) {
	svc, _, _, product := newServiceWithProduct(t)

	inactive := false
	_, err := svc.UpdateProduct(context.Background(), product.ID, models.MerchProductUpdate{IsActive: &inactive})
	assert.NoError(t, err)

	_, err = svc.PlaceOrder(context.Background(), PlaceOrderRequest{ProductID: product.ID})
	assert.ErrorIs(t, err, ErrProductUnavailable)
}

func TestPlaceOrderMarksOrderFailedWhenInitFails(t *testing.T) {
	svc, payments, _, product := newServiceWithProduct(t)

	payments.On("Initialize", mock.Anything, mock.Anything).
		Return(nil, errors.New("gateway down"))

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		ProductID:     product.ID,
		Quantity:      1,
		CustomerEmail: "ada@example.com",
	})
	assert.ErrorIs(t, err, ErrPaymentInit)

	orders, err := svc.ListOrders(context.Background())
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, models.PaymentFailed, orders[0].PaymentStatus)
}

func TestVerifyPaymentSuccessDecrementsStockAndEmails(t *testing.T) {
	svc, payments, mail, product := newServiceWithProduct(t)

	payments.On("Initialize", mock.Anything, mock.Anything).
		Return(&paystack.InitializeResponse{AuthorizationURL: "https://checkout"}, nil)

	result, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		ProductID:     product.ID,
		Quantity:      3,
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
	})
	assert.NoError(t, err)
	reference := result.Order.PaymentReference

	payments.On("Verify", mock.Anything, reference).Return(&paystack.VerifyResponse{
		Status:    "success",
		Reference: reference,
	}, nil)
	mail.On("SendOrderConfirmationEmail", mock.Anything, mock.Anything).Return(true)

	order, err := svc.VerifyPayment(context.Background(), reference)
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentCompleted, order.PaymentStatus)
	assert.Equal(t, "processing", order.OrderStatus)

	updated, err := svc.GetProduct(context.Background(), product.ID)
	assert.NoError(t, err)
	assert.Equal(t, 7, updated.Stock)
	mail.AssertCalled(t, "SendOrderConfirmationEmail", mock.Anything, mock.Anything)
}

func TestVerifyPaymentStockClampsAtZero(t *testing.T) {
	svc, payments, mail, product := newServiceWithProduct(t)

	payments.On("Initialize", mock.Anything, mock.Anything).
		Return(&paystack.InitializeResponse{AuthorizationURL: "https://checkout"}, nil)

	result, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		ProductID:     product.ID,
		Quantity:      25,
		CustomerEmail: "ada@example.com",
	})
	assert.NoError(t, err)

	payments.On("Verify", mock.Anything, result.Order.PaymentReference).Return(&paystack.VerifyResponse{
		Status: "success",
	}, nil)
	mail.On("SendOrderConfirmationEmail", mock.Anything, mock.Anything).Return(true)

	_, err = svc.VerifyPayment(context.Background(), result.Order.PaymentReference)
	assert.NoError(t, err)

	updated, err := svc.GetProduct(context.Background(), product.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0, updated.Stock)
}

func TestVerifyPaymentFailureKeepsOrderPending(t *testing.T) {
	svc, payments, mail, product := newServiceWithProduct(t)

	payments.On("Initialize", mock.Anything, mock.Anything).
		Return(&paystack.InitializeResponse{AuthorizationURL: "https://checkout"}, nil)

	result, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		ProductID:     product.ID,
		Quantity:      1,
		CustomerEmail: "ada@example.com",
	})
	assert.NoError(t, err)

	payments.On("Verify", mock.Anything, result.Order.PaymentReference).Return(&paystack.VerifyResponse{
		Status: "abandoned",
	}, nil)

	order, err := svc.VerifyPayment(context.Background(), result.Order.PaymentReference)
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentFailed, order.PaymentStatus)
	assert.Equal(t, "pending", order.OrderStatus)

	// Stock untouched on failure.
	updated, err := svc.GetProduct(context.Background(), product.ID)
	assert.NoError(t, err)
	assert.Equal(t, 10, updated.Stock)
	mail.AssertNotCalled(t, "SendOrderConfirmationEmail", mock.Anything, mock.Anything)
}

func TestVerifyPaymentUnknownReference(t *testing.T) {
	svc, payments, _, _ := newServiceWithProduct(t)

	payments.On("Verify", mock.Anything, "unknown").Return(&paystack.VerifyResponse{
		Status: "success",
	}, nil)

	_, err := svc.VerifyPayment(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestVerifyPaymentGatewayError(t *testing.T) {
	svc, payments, _, _ := newServiceWithProduct(t)

	payments.On("Verify", mock.Anything, "ref").Return(nil, errors.New("network"))

	_, err := svc.VerifyPayment(context.Background(), "ref")
	assert.Error(t, err)
}
