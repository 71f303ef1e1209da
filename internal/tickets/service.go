package tickets

import (
	"context"
	"errors"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"samad-backend/internal/kafka"
	"samad-backend/internal/logger"
	"samad-backend/internal/models"
	"samad-backend/internal/paystack"
	"samad-backend/internal/storage"
	"samad-backend/internal/utils"
)

// referencePrefix is the payment reference prefix for ticket purchases.
const referencePrefix = "SAMAD"

var (
	ErrEventNotFound  = errors.New("event not found")
	ErrTicketNotFound = errors.New("ticket not found")
	ErrTierNotFound   = errors.New("ticket tier not found")
	ErrTierSoldOut    = errors.New("ticket tier not available")
	ErrPaymentInit    = errors.New("payment initialization failed")
)

// PaymentGateway is the slice of the Paystack client the ticket flow uses.
type PaymentGateway interface {
	Initialize(ctx context.Context, req paystack.InitializeRequest) (*paystack.InitializeResponse, error)
	Verify(ctx context.Context, reference string) (*paystack.VerifyResponse, error)
}

// Mailer delivers the ticket email after a verified payment.
type Mailer interface {
	SendTicketEmail(ticket *models.Ticket, event *models.Event) bool
}

// TicketService sells tickets: it creates the pending ticket record, hands
// the buyer to Paystack, and finalizes the record when the payment
// verifies.
type TicketService struct {
	Store    storage.Storage
	Payments PaymentGateway
	Mail     Mailer
	Events   kafka.Publisher
	Logger   *logger.Logger
}

func NewTicketService(store storage.Storage, payments PaymentGateway, mail Mailer, events kafka.Publisher, log *logger.Logger) *TicketService {
	return &TicketService{Store: store, Payments: payments, Mail: mail, Events: events, Logger: log}
}

// PurchaseRequest is the buyer-facing ticket purchase payload.
type PurchaseRequest struct {
	EventID       string `json:"eventId"`
	TierName      string `json:"tierName"`
	Quantity      int    `json:"quantity"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`
}

// PurchaseResult carries the pending ticket and the Paystack checkout URL.
type PurchaseResult struct {
	Ticket           *models.Ticket `json:"ticket"`
	AuthorizationURL string         `json:"authorizationUrl"`
}

// Purchase creates a pending ticket and initializes the Paystack
// transaction. The ticket record exists before checkout so an abandoned
// payment still leaves an auditable pending row.
func (s *TicketService) Purchase(ctx context.Context, req PurchaseRequest) (*PurchaseResult, error) {
	event, err := s.Store.GetEvent(ctx, req.EventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load event: %w", err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	tier := findTier(event.TicketTiers, req.TierName)
	if tier == nil {
		return nil, ErrTierNotFound
	}
	if !tier.Available {
		return nil, ErrTierSoldOut
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}
	total := tier.Price * float64(quantity)
	reference := utils.NewPaymentReference(referencePrefix)

	ticket, err := s.Store.CreateTicket(ctx, models.InsertTicket{
		EventID:          event.ID,
		CustomerName:     req.CustomerName,
		CustomerEmail:    req.CustomerEmail,
		CustomerPhone:    req.CustomerPhone,
		TierName:         tier.Name,
		Price:            tier.Price,
		Quantity:         quantity,
		TotalAmount:      total,
		PaymentReference: reference,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	init, err := s.Payments.Initialize(ctx, paystack.InitializeRequest{
		Email:     req.CustomerEmail,
		Amount:    paystack.ToKobo(total),
		Reference: reference,
		Currency:  "NGN",
		Metadata: map[string]interface{}{
			"ticketId": ticket.ID,
			"eventId":  event.ID,
		},
	})
	if err != nil {
		s.Logger.Error("TICKETS", fmt.Sprintf("Payment init failed for ticket %s: %v", ticket.ID, err))
		failed := models.PaymentFailed
		_, _ = s.Store.UpdateTicket(ctx, ticket.ID, models.TicketUpdate{PaymentStatus: &failed})
		return nil, fmt.Errorf("%w: %v", ErrPaymentInit, err)
	}

	if err := s.Events.PublishTicketIssued(ticket); err != nil {
		s.Logger.Warn("TICKETS", fmt.Sprintf("Failed to publish ticket event: %v", err))
	}

	s.Logger.Info("TICKETS", fmt.Sprintf("Ticket %s pending payment (%s)", ticket.ID, reference))
	return &PurchaseResult{Ticket: ticket, AuthorizationURL: init.AuthorizationURL}, nil
}

// VerifyPayment finalizes a ticket after checkout. The gateway's metadata
// round-trips the ticket id, so the lookup does not depend on the gateway
// and the store agreeing on references. Success sends the ticket email;
// the email outcome never changes the result.
func (s *TicketService) VerifyPayment(ctx context.Context, reference string) (*models.Ticket, error) {
	verification, err := s.Payments.Verify(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("payment verification failed: %w", err)
	}

	ticketID, _ := verification.Metadata["ticketId"].(string)
	if ticketID == "" {
		return nil, ErrTicketNotFound
	}
	ticket, err := s.Store.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, ErrTicketNotFound
	}

	status := models.PaymentFailed
	if verification.Status == "success" {
		status = models.PaymentCompleted
	}
	ticket, err = s.Store.UpdateTicket(ctx, ticket.ID, models.TicketUpdate{PaymentStatus: &status})
	if err != nil || ticket == nil {
		return nil, fmt.Errorf("failed to update ticket payment status: %w", err)
	}

	if err := s.Events.PublishPaymentVerified("ticket", ticket.ID, reference, status); err != nil {
		s.Logger.Warn("TICKETS", fmt.Sprintf("Failed to publish payment event: %v", err))
	}

	if status == models.PaymentCompleted {
		event, _ := s.Store.GetEvent(ctx, ticket.EventID)
		if !s.Mail.SendTicketEmail(ticket, event) {
			s.Logger.Warn("TICKETS", fmt.Sprintf("Ticket email not sent for %s", ticket.ID))
		}
	}

	s.Logger.Info("TICKETS", fmt.Sprintf("Ticket %s payment %s", ticket.ID, status))
	return ticket, nil
}

func (s *TicketService) ListTickets(ctx context.Context) ([]models.Ticket, error) {
	return s.Store.GetTickets(ctx)
}

func (s *TicketService) GetTicket(ctx context.Context, id string) (*models.Ticket, error) {
	ticket, err := s.Store.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, ErrTicketNotFound
	}
	return ticket, nil
}

func (s *TicketService) GetTicketByCode(ctx context.Context, code string) (*models.Ticket, error) {
	ticket, err := s.Store.GetTicketByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, ErrTicketNotFound
	}
	return ticket, nil
}

// TicketQR renders the ticket code as a PNG for gate scanning.
func (s *TicketService) TicketQR(ctx context.Context, id string) ([]byte, error) {
	ticket, err := s.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(ticket.TicketCode, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to render QR code: %w", err)
	}
	return png, nil
}

func findTier(tiers []models.TicketTier, name string) *models.TicketTier {
	for i := range tiers {
		if tiers[i].Name == name {
			return &tiers[i]
		}
	}
	return nil
}
