package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Payment status values shared by tickets and merch orders.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

type Ticket struct {
	bun.BaseModel `bun:"table:tickets"`

	ID               string    `bun:"id,pk" json:"id"`
	EventID          string    `bun:"event_id,notnull" json:"eventId"`
	CustomerName     string    `bun:"customer_name,notnull" json:"customerName"`
	CustomerEmail    string    `bun:"customer_email,notnull" json:"customerEmail"`
	CustomerPhone    string    `bun:"customer_phone,notnull" json:"customerPhone"`
	TierName         string    `bun:"tier_name,notnull" json:"tierName"`
	Price            float64   `bun:"price,notnull" json:"price"`
	Quantity         int       `bun:"quantity,notnull" json:"quantity"`
	TotalAmount      float64   `bun:"total_amount,notnull" json:"totalAmount"`
	PaymentStatus    string    `bun:"payment_status" json:"paymentStatus"`
	PaymentReference string    `bun:"payment_reference" json:"paymentReference"`
	TicketCode       string    `bun:"ticket_code,unique,notnull" json:"ticketCode"`
	CreatedAt        time.Time `bun:"created_at,notnull" json:"createdAt"`
}

type InsertTicket struct {
	EventID          string  `json:"eventId"`
	CustomerName     string  `json:"customerName"`
	CustomerEmail    string  `json:"customerEmail"`
	CustomerPhone    string  `json:"customerPhone"`
	TierName         string  `json:"tierName"`
	Price            float64 `json:"price"`
	Quantity         int     `json:"quantity"`
	TotalAmount      float64 `json:"totalAmount"`
	PaymentStatus    string  `json:"paymentStatus"`
	PaymentReference string  `json:"paymentReference"`
}

// TicketUpdate never touches the ticket code: it is generated once at
// creation and immutable thereafter.
type TicketUpdate struct {
	CustomerName     *string  `json:"customerName"`
	CustomerEmail    *string  `json:"customerEmail"`
	CustomerPhone    *string  `json:"customerPhone"`
	TierName         *string  `json:"tierName"`
	Price            *float64 `json:"price"`
	Quantity         *int     `json:"quantity"`
	TotalAmount      *float64 `json:"totalAmount"`
	PaymentStatus    *string  `json:"paymentStatus"`
	PaymentReference *string  `json:"paymentReference"`
}

func (u TicketUpdate) Apply(t *Ticket) {
	if u.CustomerName != nil {
		t.CustomerName = *u.CustomerName
	}
	if u.CustomerEmail != nil {
		t.CustomerEmail = *u.CustomerEmail
	}
	if u.CustomerPhone != nil {
		t.CustomerPhone = *u.CustomerPhone
	}
	if u.TierName != nil {
		t.TierName = *u.TierName
	}
	if u.Price != nil {
		t.Price = *u.Price
	}
	if u.Quantity != nil {
		t.Quantity = *u.Quantity
	}
	if u.TotalAmount != nil {
		t.TotalAmount = *u.TotalAmount
	}
	if u.PaymentStatus != nil {
		t.PaymentStatus = *u.PaymentStatus
	}
	if u.PaymentReference != nil {
		t.PaymentReference = *u.PaymentReference
	}
}
