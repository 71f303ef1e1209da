package merch

import (
	"context"
	"errors"
	"fmt"

	"samad-backend/internal/kafka"
	"samad-backend/internal/logger"
	"samad-backend/internal/models"
	"samad-backend/internal/paystack"
	"samad-backend/internal/storage"
	"samad-backend/internal/utils"
)

// referencePrefix is the payment reference prefix for merch orders.
const referencePrefix = "SAMAD-MERCH"

var (
	ErrProductNotFound    = errors.New("merch product not found")
	ErrProductUnavailable = errors.New("merch product not available")
	ErrOrderNotFound      = errors.New("merch order not found")
	ErrPaymentInit        = errors.New("payment initialization failed")
)

// PaymentGateway is the slice of the Paystack client the merch flow uses.
type PaymentGateway interface {
	Initialize(ctx context.Context, req paystack.InitializeRequest) (*paystack.InitializeResponse, error)
	Verify(ctx context.Context, reference string) (*paystack.VerifyResponse, error)
}

// Mailer delivers the order confirmation after a verified payment.
type Mailer interface {
	SendOrderConfirmationEmail(order *models.MerchOrder, product *models.MerchProduct) bool
}

// MerchService owns the merch catalog and the order/payment flow.
type MerchService struct {
	Store    storage.Storage
	Payments PaymentGateway
	Mail     Mailer
	Events   kafka.Publisher
	Logger   *logger.Logger
}

func NewMerchService(store storage.Storage, payments PaymentGateway, mail Mailer, events kafka.Publisher, log *logger.Logger) *MerchService {
	return &MerchService{Store: store, Payments: payments, Mail: mail, Events: events, Logger: log}
}

// --- catalog ---

func (s *MerchService) ListProducts(ctx context.Context, activeOnly bool) ([]models.MerchProduct, error) {
	if activeOnly {
		return s.Store.GetActiveMerchProducts(ctx)
	}
	return s.Store.GetMerchProducts(ctx)
}

func (s *MerchService) GetProduct(ctx context.Context, id string) (*models.MerchProduct, error) {
	product, err := s.Store.GetMerchProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *MerchService) CreateProduct(ctx context.Context, insert models.InsertMerchProduct) (*models.MerchProduct, error) {
	product, err := s.Store.CreateMerchProduct(ctx, insert)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	s.Logger.Info("MERCH", fmt.Sprintf("Created product %s (%s)", product.ID, product.Name))
	return product, nil
}

func (s *MerchService) UpdateProduct(ctx context.Context, id string, update models.MerchProductUpdate) (*models.MerchProduct, error) {
	product, err := s.Store.UpdateMerchProduct(ctx, id, update)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *MerchService) DeleteProduct(ctx context.Context, id string) error {
	existed, err := s.Store.DeleteMerchProduct(ctx, id)
	if err != nil {
		return err
	}
	if !existed {
		return ErrProductNotFound
	}
	s.Logger.Info("MERCH", fmt.Sprintf("Deleted product %s", id))
	return nil
}

// --- orders ---

// PlaceOrderRequest is the buyer-facing order payload.
type PlaceOrderRequest struct {
	ProductID       string                 `json:"productId"`
	Quantity        int                    `json:"quantity"`
	CustomerName    string                 `json:"customerName"`
	CustomerEmail   string                 `json:"customerEmail"`
	CustomerPhone   string                 `json:"customerPhone"`
	DeliveryAddress models.DeliveryAddress `json:"deliveryAddress"`
}

// PlaceOrderResult carries the pending order and the Paystack checkout URL.
type PlaceOrderResult struct {
	Order            *models.MerchOrder `json:"order"`
	AuthorizationURL string             `json:"authorizationUrl"`
}

// PlaceOrder creates a pending order and initializes the Paystack
// transaction. The order carries the payment reference so verification can
// find it without gateway metadata.
func (s *MerchService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*PlaceOrderResult, error) {
	product, err := s.Store.GetMerchProduct(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if !product.IsActive {
		return nil, ErrProductUnavailable
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}
	total := product.Price * float64(quantity)
	reference := utils.NewPaymentReference(referencePrefix)

	order, err := s.Store.CreateMerchOrder(ctx, models.InsertMerchOrder{
		ProductID:        product.ID,
		CustomerName:     req.CustomerName,
		CustomerEmail:    req.CustomerEmail,
		CustomerPhone:    req.CustomerPhone,
		DeliveryAddress:  req.DeliveryAddress,
		Quantity:         quantity,
		TotalAmount:      total,
		PaymentReference: reference,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	init, err := s.Payments.Initialize(ctx, paystack.InitializeRequest{
		Email:     req.CustomerEmail,
		Amount:    paystack.ToKobo(total),
		Reference: reference,
		Currency:  "NGN",
		Metadata: map[string]interface{}{
			"orderId":   order.ID,
			"productId": product.ID,
		},
	})
	if err != nil {
		s.Logger.Error("MERCH", fmt.Sprintf("Payment init failed for order %s: %v", order.ID, err))
		failed := models.PaymentFailed
		_, _ = s.Store.UpdateMerchOrder(ctx, order.ID, models.MerchOrderUpdate{PaymentStatus: &failed})
		return nil, fmt.Errorf("%w: %v", ErrPaymentInit, err)
	}

	if err := s.Events.PublishMerchOrderPlaced(order); err != nil {
		s.Logger.Warn("MERCH", fmt.Sprintf("Failed to publish order event: %v", err))
	}

	s.Logger.Info("MERCH", fmt.Sprintf("Order %s pending payment (%s)", order.ID, reference))
	return &PlaceOrderResult{Order: order, AuthorizationURL: init.AuthorizationURL}, nil
}

func (s *MerchService) ListOrders(ctx context.Context) ([]models.MerchOrder, error) {
	return s.Store.GetMerchOrders(ctx)
}

func (s *MerchService) GetOrder(ctx context.Context, id string) (*models.MerchOrder, error) {
	order, err := s.Store.GetMerchOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// VerifyPayment finalizes an order after checkout. Success moves the order
// to "processing", decrements stock best-effort and sends the confirmation
// email; the email outcome never changes the result.
func (s *MerchService) VerifyPayment(ctx context.Context, reference string) (*models.MerchOrder, error) {
	verification, err := s.Payments.Verify(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("payment verification failed: %w", err)
	}

	order, err := s.Store.GetMerchOrderByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	update := models.MerchOrderUpdate{}
	status := models.PaymentFailed
	if verification.Status == "success" {
		status = models.PaymentCompleted
		processing := "processing"
		update.OrderStatus = &processing
	}
	update.PaymentStatus = &status

	order, err = s.Store.UpdateMerchOrder(ctx, order.ID, update)
	if err != nil || order == nil {
		return nil, fmt.Errorf("failed to update order payment status: %w", err)
	}

	if err := s.Events.PublishPaymentVerified("merch_order", order.ID, reference, status); err != nil {
		s.Logger.Warn("MERCH", fmt.Sprintf("Failed to publish payment event: %v", err))
	}

	if status == models.PaymentCompleted {
		product := s.decrementStock(ctx, order)
		if !s.Mail.SendOrderConfirmationEmail(order, product) {
			s.Logger.Warn("MERCH", fmt.Sprintf("Order email not sent for %s", order.ID))
		}
	}

	s.Logger.Info("MERCH", fmt.Sprintf("Order %s payment %s", order.ID, status))
	return order, nil
}

// decrementStock reduces the product's stock by the order quantity,
// clamping at zero. Failures just log: stock is advisory, not a ledger.
func (s *MerchService) decrementStock(ctx context.Context, order *models.MerchOrder) *models.MerchProduct {
	product, err := s.Store.GetMerchProduct(ctx, order.ProductID)
	if err != nil || product == nil {
		s.Logger.Warn("MERCH", fmt.Sprintf("Could not load product %s for stock update", order.ProductID))
		return nil
	}

	stock := product.Stock - order.Quantity
	if stock < 0 {
		stock = 0
	}
	updated, err := s.Store.UpdateMerchProduct(ctx, product.ID, models.MerchProductUpdate{Stock: &stock})
	if err != nil || updated == nil {
		s.Logger.Warn("MERCH", fmt.Sprintf("Stock update failed for product %s", product.ID))
		return product
	}
	return updated
}
