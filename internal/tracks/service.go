package tracks

import (
	"context"
	"errors"
	"fmt"

	"samad-backend/internal/logger"
	"samad-backend/internal/models"
	"samad-backend/internal/storage"
)

var ErrTrackNotFound = errors.New("track not found")

// TrackService owns the discography. Tracks are never deleted: a release
// stays on the site once listed.
type TrackService struct {
	Store  storage.Storage
	Logger *logger.Logger
}

func NewTrackService(store storage.Storage, log *logger.Logger) *TrackService {
	return &TrackService{Store: store, Logger: log}
}

func (s *TrackService) ListTracks(ctx context.Context) ([]models.Track, error) {
	return s.Store.GetTracks(ctx)
}

func (s *TrackService) GetTrack(ctx context.Context, id string) (*models.Track, error) {
	track, err := s.Store.GetTrack(ctx, id)
	if err != nil {
		return nil, err
	}
	if track == nil {
		return nil, ErrTrackNotFound
	}
	return track, nil
}

func (s *TrackService) CreateTrack(ctx context.Context, insert models.InsertTrack) (*models.Track, error) {
	track, err := s.Store.CreateTrack(ctx, insert)
	if err != nil {
		return nil, fmt.Errorf("failed to create track: %w", err)
	}
	s.Logger.Info("TRACKS", fmt.Sprintf("Created track %s (%s)", track.ID, track.Title))
	return track, nil
}

func (s *TrackService) UpdateTrack(ctx context.Context, id string, update models.TrackUpdate) (*models.Track, error) {
	track, err := s.Store.UpdateTrack(ctx, id, update)
	if err != nil {
		return nil, err
	}
	if track == nil {
		return nil, ErrTrackNotFound
	}
	return track, nil
}
