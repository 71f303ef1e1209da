package email

import (
	"fmt"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"samad-backend/internal/config"
	"samad-backend/internal/logger"
	"samad-backend/internal/models"
)

func testTicket() *models.Ticket {
	return &models.Ticket{
		ID:            "ticket-1",
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		TierName:      "VIP",
		Quantity:      2,
		TicketCode:    "SAMAD-1700000000000-ABC123",
	}
}

func TestUnconfiguredSenderSimulatesSend(t *testing.T) {
	sender := NewSender(config.EmailConfig{}, logger.NewLogger())

	ok := sender.SendTicketEmail(testTicket(), &models.Event{Title: "Lagos Live", Venue: "Eko Hotel"})
	assert.True(t, ok)
}

func TestTicketEmailContent(t *testing.T) {
	var gotTo []string
	var gotMsg string

	sender := NewSender(config.EmailConfig{
		SMTPHost:     "smtp.example.com",
		SMTPPort:     "587",
		SMTPUsername: "user",
		SMTPPassword: "pass",
		FromAddress:  "booking@samadmusic.com",
	}, logger.NewLogger())
	sender.send = func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
		assert.Equal(t, "smtp.example.com:587", addr)
		assert.Equal(t, "booking@samadmusic.com", from)
		gotTo = to
		gotMsg = string(msg)
		return nil
	}

	ok := sender.SendTicketEmail(testTicket(), &models.Event{Title: "Lagos Live", Venue: "Eko Hotel"})

	assert.True(t, ok)
	assert.Equal(t, []string{"ada@example.com"}, gotTo)
	assert.True(t, strings.Contains(gotMsg, "SAMAD-1700000000000-ABC123"))
	assert.True(t, strings.Contains(gotMsg, "Lagos Live"))
	assert.True(t, strings.Contains(gotMsg, "Eko Hotel"))
	assert.True(t, strings.Contains(gotMsg, "Subject: Your ticket for Lagos Live"))
}

func TestOrderEmailHandlesMissingProduct(t *testing.T) {
	var gotMsg string
	sender := NewSender(config.EmailConfig{
		SMTPHost:     "smtp.example.com",
		SMTPPort:     "587",
		SMTPUsername: "user",
		SMTPPassword: "pass",
	}, logger.NewLogger())
	sender.send = func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
		gotMsg = string(msg)
		return nil
	}

	order := &models.MerchOrder{
		CustomerName:   "Ada",
		CustomerEmail:  "ada@example.com",
		Quantity:       1,
		TrackingNumber: "SAMAD-MERCH-1700000000000-XYZ789",
	}

	ok := sender.SendOrderConfirmationEmail(order, nil)
	assert.True(t, ok)
	assert.True(t, strings.Contains(gotMsg, "SAMAD-MERCH-1700000000000-XYZ789"))
	assert.True(t, strings.Contains(gotMsg, "your order"))
}

func TestSendFailureReturnsFalse(t *testing.T) {
	sender := NewSender(config.EmailConfig{
		SMTPHost:     "smtp.example.com",
		SMTPPort:     "587",
		SMTPUsername: "user",
		SMTPPassword: "pass",
	}, logger.NewLogger())
	sender.send = func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
		return fmt.Errorf("connection refused")
	}

	ok := sender.SendTicketEmail(testTicket(), nil)
	assert.False(t, ok)
}
