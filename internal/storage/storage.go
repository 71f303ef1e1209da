package storage

import (
	"context"

	"samad-backend/internal/models"
)

// Storage is the catalog and order store shared by every request handler.
// Lookups return (nil, nil) when no record exists for the given key; only
// infrastructure failures surface as errors. Updates merge the supplied
// fields over the stored record and return the merged result, or (nil, nil)
// when the id is unknown. Deletes report whether a record existed.
//
// Route handlers are expected to depend on this interface, not on a
// concrete store, so the in-memory implementation can be swapped for the
// relational one without touching callers.
type Storage interface {
	// Users
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, insert models.InsertUser) (*models.User, error)

	// Tracks
	GetTracks(ctx context.Context) ([]models.Track, error)
	GetTrack(ctx context.Context, id string) (*models.Track, error)
	CreateTrack(ctx context.Context, insert models.InsertTrack) (*models.Track, error)
	UpdateTrack(ctx context.Context, id string, update models.TrackUpdate) (*models.Track, error)

	// Events
	GetEvents(ctx context.Context) ([]models.Event, error)
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	CreateEvent(ctx context.Context, insert models.InsertEvent) (*models.Event, error)
	UpdateEvent(ctx context.Context, id string, update models.EventUpdate) (*models.Event, error)
	DeleteEvent(ctx context.Context, id string) (bool, error)

	// Tickets
	GetTickets(ctx context.Context) ([]models.Ticket, error)
	GetTicketsByEvent(ctx context.Context, eventID string) ([]models.Ticket, error)
	GetTicket(ctx context.Context, id string) (*models.Ticket, error)
	GetTicketByCode(ctx context.Context, code string) (*models.Ticket, error)
	CreateTicket(ctx context.Context, insert models.InsertTicket) (*models.Ticket, error)
	UpdateTicket(ctx context.Context, id string, update models.TicketUpdate) (*models.Ticket, error)

	// Merch products
	GetMerchProducts(ctx context.Context) ([]models.MerchProduct, error)
	GetActiveMerchProducts(ctx context.Context) ([]models.MerchProduct, error)
	GetMerchProduct(ctx context.Context, id string) (*models.MerchProduct, error)
	CreateMerchProduct(ctx context.Context, insert models.InsertMerchProduct) (*models.MerchProduct, error)
	UpdateMerchProduct(ctx context.Context, id string, update models.MerchProductUpdate) (*models.MerchProduct, error)
	DeleteMerchProduct(ctx context.Context, id string) (bool, error)

	// Merch orders
	GetMerchOrders(ctx context.Context) ([]models.MerchOrder, error)
	GetMerchOrder(ctx context.Context, id string) (*models.MerchOrder, error)
	GetMerchOrderByReference(ctx context.Context, reference string) (*models.MerchOrder, error)
	CreateMerchOrder(ctx context.Context, insert models.InsertMerchOrder) (*models.MerchOrder, error)
	UpdateMerchOrder(ctx context.Context, id string, update models.MerchOrderUpdate) (*models.MerchOrder, error)

	// Gallery
	GetGalleryImages(ctx context.Context) ([]models.GalleryImage, error)
	GetActiveGalleryImages(ctx context.Context) ([]models.GalleryImage, error)
	GetGalleryImage(ctx context.Context, id string) (*models.GalleryImage, error)
	CreateGalleryImage(ctx context.Context, insert models.InsertGalleryImage) (*models.GalleryImage, error)
	UpdateGalleryImage(ctx context.Context, id string, update models.GalleryImageUpdate) (*models.GalleryImage, error)
	DeleteGalleryImage(ctx context.Context, id string) (bool, error)

	// Spotify stats (singleton record)
	GetSpotifyStats(ctx context.Context) (*models.SpotifyStats, error)
	UpdateSpotifyStats(ctx context.Context, update models.SpotifyStatsUpdate) (*models.SpotifyStats, error)
}
