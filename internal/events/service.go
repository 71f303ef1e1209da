package events

import (
	"context"
	"errors"
	"fmt"

	"samad-backend/internal/logger"
	"samad-backend/internal/models"
	"samad-backend/internal/storage"
)

var ErrEventNotFound = errors.New("event not found")

// EventService owns the show listings.
type EventService struct {
	Store  storage.Storage
	Logger *logger.Logger
}

func NewEventService(store storage.Storage, log *logger.Logger) *EventService {
	return &EventService{Store: store, Logger: log}
}

func (s *EventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	return s.Store.GetEvents(ctx)
}

func (s *EventService) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.Store.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

func (s *EventService) CreateEvent(ctx context.Context, insert models.InsertEvent) (*models.Event, error) {
	event, err := s.Store.CreateEvent(ctx, insert)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	s.Logger.Info("EVENTS", fmt.Sprintf("Created event %s (%s)", event.ID, event.Title))
	return event, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, id string, update models.EventUpdate) (*models.Event, error) {
	event, err := s.Store.UpdateEvent(ctx, id, update)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	existed, err := s.Store.DeleteEvent(ctx, id)
	if err != nil {
		return err
	}
	if !existed {
		return ErrEventNotFound
	}
	s.Logger.Info("EVENTS", fmt.Sprintf("Deleted event %s", id))
	return nil
}

// ListEventTickets returns the tickets sold for one event.
func (s *EventService) ListEventTickets(ctx context.Context, eventID string) ([]models.Ticket, error) {
	event, err := s.Store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return s.Store.GetTicketsByEvent(ctx, eventID)
}
