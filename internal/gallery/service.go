package gallery

import (
	"context"
	"errors"
	"fmt"

	"samad-backend/internal/logger"
	"samad-backend/internal/models"
	"samad-backend/internal/storage"
)

var ErrImageNotFound = errors.New("gallery image not found")

// GalleryService owns the photo gallery. Images can be soft-hidden via
// isActive or removed outright.
type GalleryService struct {
	Store  storage.Storage
	Logger *logger.Logger
}

func NewGalleryService(store storage.Storage, log *logger.Logger) *GalleryService {
	return &GalleryService{Store: store, Logger: log}
}

func (s *GalleryService) ListImages(ctx context.Context, activeOnly bool) ([]models.GalleryImage, error) {
	if activeOnly {
		return s.Store.GetActiveGalleryImages(ctx)
	}
	return s.Store.GetGalleryImages(ctx)
}

func (s *GalleryService) GetImage(ctx context.Context, id string) (*models.GalleryImage, error) {
	image, err := s.Store.GetGalleryImage(ctx, id)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, ErrImageNotFound
	}
	return image, nil
}

func (s *GalleryService) CreateImage(ctx context.Context, insert models.InsertGalleryImage) (*models.GalleryImage, error) {
	if insert.ImageURL == "" {
		return nil, fmt.Errorf("imageUrl is required")
	}
	image, err := s.Store.CreateGalleryImage(ctx, insert)
	if err != nil {
		return nil, fmt.Errorf("failed to create gallery image: %w", err)
	}
	s.Logger.Info("GALLERY", fmt.Sprintf("Added image %s", image.ID))
	return image, nil
}

func (s *GalleryService) UpdateImage(ctx context.Context, id string, update models.GalleryImageUpdate) (*models.GalleryImage, error) {
	image, err := s.Store.UpdateGalleryImage(ctx, id, update)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, ErrImageNotFound
	}
	return image, nil
}

func (s *GalleryService) DeleteImage(ctx context.Context, id string) error {
	existed, err := s.Store.DeleteGalleryImage(ctx, id)
	if err != nil {
		return err
	}
	if !existed {
		return ErrImageNotFound
	}
	s.Logger.Info("GALLERY", fmt.Sprintf("Deleted image %s", id))
	return nil
}
