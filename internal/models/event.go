package models

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"
)

// TicketTier is an embedded pricing tier on an event. Stored as JSON.
type TicketTier struct {
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Description []string `json:"description"`
	Available   bool     `json:"available"`
}

type Event struct {
	bun.BaseModel `bun:"table:events"`

	ID          string       `bun:"id,pk" json:"id"`
	Title       string       `bun:"title,notnull" json:"title"`
	Description string       `bun:"description" json:"description"`
	Venue       string       `bun:"venue,notnull" json:"venue"`
	City        string       `bun:"city,notnull" json:"city"`
	EventDate   time.Time    `bun:"event_date,notnull" json:"eventDate"`
	ImageURL    string       `bun:"image_url" json:"imageUrl"`
	TicketLink  string       `bun:"ticket_link" json:"ticketLink"`
	TicketTiers []TicketTier `bun:"ticket_tiers,type:jsonb" json:"ticketTiers"`
	CreatedAt   time.Time    `bun:"created_at,notnull" json:"createdAt"`
}

// Date is a time.Time that also decodes bare YYYY-MM-DD strings. Event
// payloads arrive in both forms, so the date-only one must not be a 400.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t, err = time.Parse("2006-01-02", s)
	}
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

type InsertEvent struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Venue       string       `json:"venue"`
	City        string       `json:"city"`
	EventDate   Date         `json:"eventDate"`
	ImageURL    string       `json:"imageUrl"`
	TicketLink  string       `json:"ticketLink"`
	TicketTiers []TicketTier `json:"ticketTiers"`
}

type EventUpdate struct {
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	Venue       *string       `json:"venue"`
	City        *string       `json:"city"`
	EventDate   *Date         `json:"eventDate"`
	ImageURL    *string       `json:"imageUrl"`
	TicketLink  *string       `json:"ticketLink"`
	TicketTiers *[]TicketTier `json:"ticketTiers"`
}

func (u EventUpdate) Apply(e *Event) {
	if u.Title != nil {
		e.Title = *u.Title
	}
	if u.Description != nil {
		e.Description = *u.Description
	}
	if u.Venue != nil {
		e.Venue = *u.Venue
	}
	if u.City != nil {
		e.City = *u.City
	}
	if u.EventDate != nil {
		e.EventDate = u.EventDate.Time
	}
	if u.ImageURL != nil {
		e.ImageURL = *u.ImageURL
	}
	if u.TicketLink != nil {
		e.TicketLink = *u.TicketLink
	}
	if u.TicketTiers != nil {
		e.TicketTiers = *u.TicketTiers
	}
}
