package storage

import (
	"context"
	"sync"
	"time"

	"samad-backend/internal/models"
	"samad-backend/internal/utils"
)

// MemStorage keeps every table in process memory. Contents live for the
// process lifetime only. All access goes through one RWMutex: individual
// operations are atomic, but nothing spans multiple calls.
type MemStorage struct {
	mu sync.RWMutex

	codePrefix string

	users         map[string]models.User
	tracks        map[string]models.Track
	events        map[string]models.Event
	tickets       map[string]models.Ticket
	merchProducts map[string]models.MerchProduct
	merchOrders   map[string]models.MerchOrder
	galleryImages map[string]models.GalleryImage
	spotifyStats  *models.SpotifyStats
}

var _ Storage = (*MemStorage)(nil)

// NewMemStorage returns an empty store. codePrefix seeds ticket codes and
// tracking numbers (e.g. "SAMAD" -> SAMAD-..., SAMAD-MERCH-...).
func NewMemStorage(codePrefix string) *MemStorage {
	if codePrefix == "" {
		codePrefix = "SAMAD"
	}
	return &MemStorage{
		codePrefix:    codePrefix,
		users:         make(map[string]models.User),
		tracks:        make(map[string]models.Track),
		events:        make(map[string]models.Event),
		tickets:       make(map[string]models.Ticket),
		merchProducts: make(map[string]models.MerchProduct),
		merchOrders:   make(map[string]models.MerchOrder),
		galleryImages: make(map[string]models.GalleryImage),
	}
}

// ---------------- USERS ----------------

func (s *MemStorage) GetUser(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (s *MemStorage) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *MemStorage) CreateUser(_ context.Context, insert models.InsertUser) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user := models.User{
		ID:        utils.NewID(),
		Username:  insert.Username,
		Password:  insert.Password,
		IsAdmin:   false,
		CreatedAt: time.Now(),
	}
	s.users[user.ID] = user
	return &user, nil
}

// ---------------- TRACKS ----------------

func (s *MemStorage) GetTracks(_ context.Context) ([]models.Track, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Track, 0, len(s.tracks))
	for _, t := range s.tracks {
		out = append(out, t)
	}
	return out, nil
}

func (s *MemStorage) GetTrack(_ context.Context, id string) (*models.Track, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t, ok := s.tracks[id]; ok {
		return &t, nil
	}
	return nil, nil
}

func (s *MemStorage) CreateTrack(_ context.Context, insert models.InsertTrack) (*models.Track, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	track := models.Track{
		ID:          utils.NewID(),
		Title:       insert.Title,
		SpotifyID:   insert.SpotifyID,
		SpotifyURL:  insert.SpotifyURL,
		ImageURL:    insert.ImageURL,
		ReleaseDate: insert.ReleaseDate,
		Plays:       insert.Plays,
		Likes:       insert.Likes,
		CreatedAt:   time.Now(),
	}
	s.tracks[track.ID] = track
	return &track, nil
}

func (s *MemStorage) UpdateTrack(_ context.Context, id string, update models.TrackUpdate) (*models.Track, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	track, ok := s.tracks[id]
	if !ok {
		return nil, nil
	}
	update.Apply(&track)
	s.tracks[id] = track
	return &track, nil
}

// ---------------- EVENTS ----------------

func (s *MemStorage) GetEvents(_ context.Context) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Event, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e)
	}
	return out, nil
}

func (s *MemStorage) GetEvent(_ context.Context, id string) (*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.events[id]; ok {
		return &e, nil
	}
	return nil, nil
}

func (s *MemStorage) CreateEvent(_ context.Context, insert models.InsertEvent) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tiers := insert.TicketTiers
	if tiers == nil {
		tiers = []models.TicketTier{}
	}
	event := models.Event{
		ID:          utils.NewID(),
		Title:       insert.Title,
		Description: insert.Description,
		Venue:       insert.Venue,
		City:        insert.City,
		EventDate:   insert.EventDate.Time,
		ImageURL:    insert.ImageURL,
		TicketLink:  insert.TicketLink,
		TicketTiers: tiers,
		CreatedAt:   time.Now(),
	}
	s.events[event.ID] = event
	return &event, nil
}

func (s *MemStorage) UpdateEvent(_ context.Context, id string, update models.EventUpdate) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[id]
	if !ok {
		return nil, nil
	}
	update.Apply(&event)
	s.events[id] = event
	return &event, nil
}

func (s *MemStorage) DeleteEvent(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return false, nil
	}
	delete(s.events, id)
	return true, nil
}

// ---------------- TICKETS ----------------

func (s *MemStorage) GetTickets(_ context.Context) ([]models.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Ticket, 0, len(s.tickets))
	for _, t := range s.tickets {
		out = append(out, t)
	}
	return out, nil
}

func (s *MemStorage) GetTicketsByEvent(_ context.Context, eventID string) ([]models.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Ticket, 0)
	for _, t := range s.tickets {
		if t.EventID == eventID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *MemStorage) GetTicket(_ context.Context, id string) (*models.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t, ok := s.tickets[id]; ok {
		return &t, nil
	}
	return nil, nil
}

func (s *MemStorage) GetTicketByCode(_ context.Context, code string) (*models.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tickets {
		if t.TicketCode == code {
			return &t, nil
		}
	}
	return nil, nil
}

func (s *MemStorage) CreateTicket(_ context.Context, insert models.InsertTicket) (*models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	status := insert.PaymentStatus
	if status == "" {
		status = models.PaymentPending
	}
	ticket := models.Ticket{
		ID:               utils.NewID(),
		EventID:          insert.EventID,
		CustomerName:     insert.CustomerName,
		CustomerEmail:    insert.CustomerEmail,
		CustomerPhone:    insert.CustomerPhone,
		TierName:         insert.TierName,
		Price:            insert.Price,
		Quantity:         insert.Quantity,
		TotalAmount:      insert.TotalAmount,
		PaymentStatus:    status,
		PaymentReference: insert.PaymentReference,
		TicketCode:       utils.NewTicketCode(s.codePrefix),
		CreatedAt:        time.Now(),
	}
	s.tickets[ticket.ID] = ticket
	return &ticket, nil
}

func (s *MemStorage) UpdateTicket(_ context.Context, id string, update models.TicketUpdate) (*models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ticket, ok := s.tickets[id]
	if !ok {
		return nil, nil
	}
	update.Apply(&ticket)
	s.tickets[id] = ticket
	return &ticket, nil
}

// ---------------- MERCH PRODUCTS ----------------

func (s *MemStorage) GetMerchProducts(_ context.Context) ([]models.MerchProduct, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.MerchProduct, 0, len(s.merchProducts))
	for _, p := range s.merchProducts {
		out = append(out, p)
	}
	return out, nil
}

func (s *MemStorage) GetActiveMerchProducts(_ context.Context) ([]models.MerchProduct, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.MerchProduct, 0)
	for _, p := range s.merchProducts {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemStorage) GetMerchProduct(_ context.Context, id string) (*models.MerchProduct, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.merchProducts[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (s *MemStorage) CreateMerchProduct(_ context.Context, insert models.InsertMerchProduct) (*models.MerchProduct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	active := true
	if insert.IsActive != nil {
		active = *insert.IsActive
	}
	product := models.MerchProduct{
		ID:          utils.NewID(),
		Name:        insert.Name,
		Description: insert.Description,
		Price:       insert.Price,
		ImageURL:    insert.ImageURL,
		JumiaLink:   insert.JumiaLink,
		Stock:       insert.Stock,
		IsActive:    active,
		CreatedAt:   time.Now(),
	}
	s.merchProducts[product.ID] = product
	return &product, nil
}

func (s *MemStorage) UpdateMerchProduct(_ context.Context, id string, update models.MerchProductUpdate) (*models.MerchProduct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.merchProducts[id]
	if !ok {
		return nil, nil
	}
	update.Apply(&product)
	s.merchProducts[id] = product
	return &product, nil
}

func (s *MemStorage) DeleteMerchProduct(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.merchProducts[id]; !ok {
		return false, nil
	}
	delete(s.merchProducts, id)
	return true, nil
}

// ---------------- MERCH ORDERS ----------------

func (s *MemStorage) GetMerchOrders(_ context.Context) ([]models.MerchOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.MerchOrder, 0, len(s.merchOrders))
	for _, o := range s.merchOrders {
		out = append(out, o)
	}
	return out, nil
}

func (s *MemStorage) GetMerchOrder(_ context.Context, id string) (*models.MerchOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if o, ok := s.merchOrders[id]; ok {
		return &o, nil
	}
	return nil, nil
}

func (s *MemStorage) GetMerchOrderByReference(_ context.Context, reference string) (*models.MerchOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.merchOrders {
		if o.PaymentReference == reference {
			return &o, nil
		}
	}
	return nil, nil
}

func (s *MemStorage) CreateMerchOrder(_ context.Context, insert models.InsertMerchOrder) (*models.MerchOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	paymentStatus := insert.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = models.PaymentPending
	}
	orderStatus := insert.OrderStatus
	if orderStatus == "" {
		orderStatus = models.PaymentPending
	}
	order := models.MerchOrder{
		ID:               utils.NewID(),
		ProductID:        insert.ProductID,
		CustomerName:     insert.CustomerName,
		CustomerEmail:    insert.CustomerEmail,
		CustomerPhone:    insert.CustomerPhone,
		DeliveryAddress:  insert.DeliveryAddress,
		Quantity:         insert.Quantity,
		TotalAmount:      insert.TotalAmount,
		PaymentStatus:    paymentStatus,
		PaymentReference: insert.PaymentReference,
		TrackingNumber:   utils.NewTrackingNumber(s.codePrefix + "-MERCH"),
		OrderStatus:      orderStatus,
		CreatedAt:        time.Now(),
	}
	s.merchOrders[order.ID] = order
	return &order, nil
}

func (s *MemStorage) UpdateMerchOrder(_ context.Context, id string, update models.MerchOrderUpdate) (*models.MerchOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.merchOrders[id]
	if !ok {
		return nil, nil
	}
	update.Apply(&order)
	s.merchOrders[id] = order
	return &order, nil
}

// ---------------- GALLERY ----------------

func (s *MemStorage) GetGalleryImages(_ context.Context) ([]models.GalleryImage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.GalleryImage, 0, len(s.galleryImages))
	for _, g := range s.galleryImages {
		out = append(out, g)
	}
	return out, nil
}

func (s *MemStorage) GetActiveGalleryImages(_ context.Context) ([]models.GalleryImage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.GalleryImage, 0)
	for _, g := range s.galleryImages {
		if g.IsActive {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *MemStorage) GetGalleryImage(_ context.Context, id string) (*models.GalleryImage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if g, ok := s.galleryImages[id]; ok {
		return &g, nil
	}
	return nil, nil
}

func (s *MemStorage) CreateGalleryImage(_ context.Context, insert models.InsertGalleryImage) (*models.GalleryImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	active := true
	if insert.IsActive != nil {
		active = *insert.IsActive
	}
	image := models.GalleryImage{
		ID:        utils.NewID(),
		Title:     insert.Title,
		ImageURL:  insert.ImageURL,
		Caption:   insert.Caption,
		IsActive:  active,
		CreatedAt: time.Now(),
	}
	s.galleryImages[image.ID] = image
	return &image, nil
}

func (s *MemStorage) UpdateGalleryImage(_ context.Context, id string, update models.GalleryImageUpdate) (*models.GalleryImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	image, ok := s.galleryImages[id]
	if !ok {
		return nil, nil
	}
	update.Apply(&image)
	s.galleryImages[id] = image
	return &image, nil
}

func (s *MemStorage) DeleteGalleryImage(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.galleryImages[id]; !ok {
		return false, nil
	}
	delete(s.galleryImages, id)
	return true, nil
}

// ---------------- SPOTIFY STATS ----------------

func (s *MemStorage) GetSpotifyStats(_ context.Context) (*models.SpotifyStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.spotifyStats == nil {
		return nil, nil
	}
	stats := *s.spotifyStats
	return &stats, nil
}

func (s *MemStorage) UpdateSpotifyStats(_ context.Context, update models.SpotifyStatsUpdate) (*models.SpotifyStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.spotifyStats == nil {
		s.spotifyStats = &models.SpotifyStats{ID: utils.NewID()}
	}
	update.Apply(s.spotifyStats)
	s.spotifyStats.LastUpdated = time.Now()
	stats := *s.spotifyStats
	return &stats, nil
}
