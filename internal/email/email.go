package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"samad-backend/internal/config"
	"samad-backend/internal/logger"
	"samad-backend/internal/models"
)

// Sender delivers the transactional mails fired after a verified payment.
// Sends are best-effort: the boolean result feeds the response payload but
// a false never fails the payment flow. When SMTP credentials are absent
// the send is simulated (logged as sent) so local runs work end to end.
type Sender struct {
	host     string
	port     string
	username string
	password string
	from     string
	logger   *logger.Logger

	// send is swappable for tests.
	send func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

func NewSender(cfg config.EmailConfig, log *logger.Logger) *Sender {
	return &Sender{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.FromAddress,
		logger:   log,
		send:     smtp.SendMail,
	}
}

func (s *Sender) configured() bool {
	return s.username != "" && s.password != ""
}

// SendTicketEmail mails the ticket code to the buyer. Returns whether the
// mail went out (or was simulated).
func (s *Sender) SendTicketEmail(ticket *models.Ticket, event *models.Event) bool {
	eventTitle := "your event"
	venue := ""
	if event != nil {
		eventTitle = event.Title
		venue = event.Venue
	}

	subject := fmt.Sprintf("Your ticket for %s", eventTitle)
	var body strings.Builder
	body.WriteString("<html><body>")
	fmt.Fprintf(&body, "<p>Hi %s,</p>", ticket.CustomerName)
	body.WriteString("<p>Your payment is confirmed. Here is your ticket:</p>")
	fmt.Fprintf(&body, "<h2 style=\"letter-spacing:2px\">%s</h2>", ticket.TicketCode)
	body.WriteString("<ul>")
	fmt.Fprintf(&body, "<li>Event: %s</li>", eventTitle)
	if venue != "" {
		fmt.Fprintf(&body, "<li>Venue: %s</li>", venue)
	}
	if event != nil && !event.EventDate.IsZero() {
		fmt.Fprintf(&body, "<li>Date: %s</li>", event.EventDate.Format("Monday, 2 January 2006"))
	}
	fmt.Fprintf(&body, "<li>Tier: %s</li>", ticket.TierName)
	fmt.Fprintf(&body, "<li>Quantity: %d</li>", ticket.Quantity)
	body.WriteString("</ul>")
	body.WriteString("<p>Present the ticket code at the entrance.</p>")
	body.WriteString("<p>Samad Music</p></body></html>")

	return s.deliver(ticket.CustomerEmail, subject, body.String())
}

// SendOrderConfirmationEmail mails the tracking number after a merch
// payment verifies.
func (s *Sender) SendOrderConfirmationEmail(order *models.MerchOrder, product *models.MerchProduct) bool {
	productName := "your order"
	if product != nil {
		productName = product.Name
	}

	subject := fmt.Sprintf("Order confirmed: %s", productName)
	var body strings.Builder
	body.WriteString("<html><body>")
	fmt.Fprintf(&body, "<p>Hi %s,</p>", order.CustomerName)
	body.WriteString("<p>Thanks for your order! Payment is confirmed.</p>")
	body.WriteString("<ul>")
	fmt.Fprintf(&body, "<li>Item: %s</li>", productName)
	fmt.Fprintf(&body, "<li>Quantity: %d</li>", order.Quantity)
	fmt.Fprintf(&body, "<li>Tracking number: <strong>%s</strong></li>", order.TrackingNumber)
	body.WriteString("</ul>")
	body.WriteString("<p>We will email you again when it ships.</p>")
	body.WriteString("<p>Samad Music</p></body></html>")

	return s.deliver(order.CustomerEmail, subject, body.String())
}

func (s *Sender) deliver(to, subject, body string) bool {
	if !s.configured() {
		s.logger.Info("EMAIL", fmt.Sprintf("SMTP not configured, simulating send to %s: %s", to, subject))
		return true
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.from, to, subject, body)

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := s.host + ":" + s.port

	if err := s.send(addr, auth, s.from, []string{to}, []byte(msg)); err != nil {
		s.logger.Error("EMAIL", fmt.Sprintf("Failed to send to %s: %v", to, err))
		return false
	}

	s.logger.Info("EMAIL", fmt.Sprintf("Sent %q to %s", subject, to))
	return true
}
