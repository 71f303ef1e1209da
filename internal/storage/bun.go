package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"samad-backend/internal/models"
	"samad-backend/internal/utils"
)

// BunDB is the relational Storage implementation, one table per entity.
// It preserves the interface's absence semantics: sql.ErrNoRows maps to
// (nil, nil), never to an error.
type BunDB struct {
	Bun        *bun.DB
	CodePrefix string
}

var _ Storage = (*BunDB)(nil)

func NewBunDB(db *bun.DB, codePrefix string) *BunDB {
	if codePrefix == "" {
		codePrefix = "SAMAD"
	}
	return &BunDB{Bun: db, CodePrefix: codePrefix}
}

func noRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// ---------------- USERS ----------------

func (d *BunDB) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := d.Bun.NewSelect().Model(&user).Where("id = ?", id).Limit(1).Scan(ctx)
	if noRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *BunDB) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := d.Bun.NewSelect().Model(&user).Where("username = ?", username).Limit(1).Scan(ctx)
	if noRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *BunDB) CreateUser(ctx context.Context, insert models.InsertUser) (*models.User, error) {
	user := models.User{
		ID:        utils.NewID(),
		Username:  insert.Username,
		Password:  insert.Password,
		IsAdmin:   false,
		CreatedAt: time.Now(),
	}
	if _, err := d.Bun.NewInsert().Model(&user).Exec(ctx); err != nil {
		return nil, err
	}
	return &user, nil
}

// ---------------- TRACKS ----------------

func (d *BunDB) GetTracks(ctx context.Context) ([]models.Track, error) {
	tracks := make([]models.Track, 0)
	if err := d.Bun.NewSelect().Model(&tracks).Scan(ctx); err != nil {
		return nil, err
	}
	return tracks, nil
}

func (d *BunDB) GetTrack(ctx context.Context, id string) (*models.Track, error) {
	var track models.Track
	err := d.Bun.NewSelect().Model(&track).Where("id = ?", id).Limit(1).Scan(ctx)
	if noRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &track, nil
}

func (d *BunDB) CreateTrack(ctx context.Context, insert models.InsertTrack) (*models.Track, error) {
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
	if _, err := d.Bun.NewInsert().Model(&track).Exec(ctx); err != nil {
		return nil, err
	}
	return &track, nil
}

func (d *BunDB) UpdateTrack(ctx context.Context, id string, update models.TrackUpdate) (*models.Track, error) {
	track, err := d.GetTrack(ctx, id)
	if err != nil || track == nil {
		return nil, err
	}
	update.Apply(track)
	if _, err := d.Bun.NewUpdate().Model(track).Where("id = ?", id).Exec(ctx); err != nil {
		return nil, err
	}
	return track, nil
}

// ---------------- EVENTS ----------------

func (d *BunDB) GetEvents(ctx context.Context) ([]models.Event, error) {
	events := make([]models.Event, 0)
	if err := d.Bun.NewSelect().Model(&events).Scan(ctx); err != nil {
		return nil, err
	}
	return events, nil
}

func (d *BunDB) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	err := d.Bun.NewSelect().Model(&event).Where("id = ?", id).Limit(1).Scan(ctx)
	if noRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (d *BunDB) CreateEvent(ctx context.Context, insert models.InsertEvent) (*models.Event, error) {
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
	if _, err := d.Bun.NewInsert().Model(&event).Exec(ctx); err != nil {
		return nil, err
	}
	return &event, nil
}

func (d *BunDB) UpdateEvent(ctx context.Context, id string, update models.EventUpdate) (*models.Event, error) {
	event, err := d.GetEvent(ctx, id)
	if err != nil || event == nil {
		return nil, err
	}
	update.Apply(event)
	if _, err := d.Bun.NewUpdate().Model(event).Where("id = ?", id).Exec(ctx); err != nil {
		return nil, err
	}
	return event, nil
}

func (d *BunDB) DeleteEvent(ctx context.Context, id string) (bool, error) {
	res, err := d.Bun.NewDelete().Model((*models.Event)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ---------------- TICKETS ----------------

func (d *BunDB) GetTickets(ctx context.Context) ([]models.Ticket, error) {
	tickets := make([]models.Ticket, 0)
	if err := d.Bun.NewSelect().Model(&tickets).Scan(ctx); err != nil {
		return nil, err
	}
	return tickets, nil
}

func (d *BunDB) GetTicketsByEvent(ctx context.Context, eventID string) ([]models.Ticket, error) {
	tickets := make([]models.Ticket, 0)
	if err := d.Bun.NewSelect().Model(&tickets).Where("event_id = ?", eventID).Scan(ctx); err != nil {
		return nil, err
	}
	return tickets, nil
}

func (d *BunDB) GetTicket(ctx context.Context, id string) (*models.Ticket, error) {
	var ticket models.Ticket
	err := d.Bun.NewSelect().Model(&ticket).Where("id = ?", id).Limit(1).Scan(ctx)
	if noRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (d *BunDB) GetTicketByCode(ctx context.Context, code string) (*models.Ticket, error) {
	var ticket models.Ticket
	err := d.Bun.NewSelect().Model(&ticket).Where("ticket_code = ?", code).Limit(1).Scan(ctx)
	if noRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (d *BunDB) CreateTicket(ctx context.Context, insert models.InsertTicket) (*models.Ticket, error) {
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
		TicketCode:       utils.NewTicketCode(d.CodePrefix),
		CreatedAt:        time.Now(),
	}
	if _, err := d.Bun.NewInsert().Model(&ticket).Exec(ctx); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (d *BunDB) UpdateTicket(ctx context.Context, id string, update models.TicketUpdate) (*models.Ticket, error) {
	ticket, err := d.GetTicket(ctx, id)
	if err != nil || ticket == nil {
		return nil, err
	}
	update.Apply(ticket)
	if _, err := d.Bun.NewUpdate().Model(ticket).Where("id = ?", id).Exec(ctx); err != nil {
		return nil, err
	}
	return ticket, nil
}

// ---------------- MERCH PRODUCTS ----------------

func (d *BunDB) GetMerchProducts(ctx context.Context) ([]models.MerchProduct, error) {
	products := make([]models.MerchProduct, 0)
	if err := d.Bun.NewSelect().Model(&products).Scan(ctx); err != nil {
		return nil, err
	}
	return products, nil
}

func (d *BunDB) GetActiveMerchProducts(ctx context.Context) ([]models.MerchProduct, error) {
	products := make([]models.MerchProduct, 0)
	if err := d.Bun.NewSelect().Model(&products).Where("is_active = ?", true).Scan(ctx); err != nil {
		return nil, err
	}
	return products, nil
}

func (d *BunDB) GetMerchProduct(ctx context.Context, id string) (*models.MerchProduct, error) {
	var product models.MerchProduct
	err := d.Bun.NewSelect().Model(&product).Where("id = ?", id).Limit(1).Scan(ctx)
	if noRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (d *BunDB) CreateMerchProduct(ctx context.Context, insert models.InsertMerchProduct) (*models.MerchProduct, error) {
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
	if _, err := d.Bun.NewInsert().Model(&product).Exec(ctx); err != nil {
		return nil, err
	}
	return &product, nil
}

func (d *BunDB) UpdateMerchProduct(ctx context.Context, id string, update models.MerchProductUpdate) (*models.MerchProduct, error) {
	product, err := d.GetMerchProduct(ctx, id)
	if err != nil || product == nil {
		return nil, err
	}
	update.Apply(product)
	if _, err := d.Bun.NewUpdate().Model(product).Where("id = ?", id).Exec(ctx); err != nil {
		return nil, err
	}
	return product, nil
}

func (d *BunDB) DeleteMerchProduct(ctx context.Context, id string) (bool, error) {
	res, err := d.Bun.NewDelete().Model((*models.MerchProduct)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ---------------- MERCH ORDERS ----------------

func (d *BunDB) GetMerchOrders(ctx context.Context) ([]models.MerchOrder, error) {
	orders := make([]models.MerchOrder, 0)
	if err := d.Bun.NewSelect().Model(&orders).Scan(ctx); err != nil {
		return nil, err
	}
	return orders, nil
}

func (d *BunDB) GetMerchOrder(ctx context.Context, id string) (*models.MerchOrder, error) {
	var order models.MerchOrder
	err := d.Bun.NewSelect().Model(&order).Where("id = ?", id).Limit(1).Scan(ctx)
	if noRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (d *BunDB) GetMerchOrderByReference(ctx context.Context, reference string) (*models.MerchOrder, error) {
	var order models.MerchOrder
	err := d.Bun.NewSelect().Model(&order).Where("payment_reference = ?", reference).Limit(1).Scan(ctx)
	if noRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (d *BunDB) CreateMerchOrder(ctx context.Context, insert models.InsertMerchOrder) (*models.MerchOrder, error) {
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
		TrackingNumber:   utils.NewTrackingNumber(d.CodePrefix + "-MERCH"),
		OrderStatus:      orderStatus,
		CreatedAt:        time.Now(),
	}
	if _, err := d.Bun.NewInsert().Model(&order).Exec(ctx); err != nil {
		return nil, err
	}
	return &order, nil
}

func (d *BunDB) UpdateMerchOrder(ctx context.Context, id string, update models.MerchOrderUpdate) (*models.MerchOrder, error) {
	order, err := d.GetMerchOrder(ctx, id)
	if err != nil || order == nil {
		return nil, err
	}
	update.Apply(order)
	if _, err := d.Bun.NewUpdate().Model(order).Where("id = ?", id).Exec(ctx); err != nil {
		return nil, err
	}
	return order, nil
}

// ---------------- GALLERY ----------------

func (d *BunDB) GetGalleryImages(ctx context.Context) ([]models.GalleryImage, error) {
	images := make([]models.GalleryImage, 0)
	if err := d.Bun.NewSelect().Model(&images).Scan(ctx); err != nil {
		return nil, err
	}
	return images, nil
}

func (d *BunDB) GetActiveGalleryImages(ctx context.Context) ([]models.GalleryImage, error) {
	images := make([]models.GalleryImage, 0)
	if err := d.Bun.NewSelect().Model(&images).Where("is_active = ?", true).Scan(ctx); err != nil {
		return nil, err
	}
	return images, nil
}

func (d *BunDB) GetGalleryImage(ctx context.Context, id string) (*models.GalleryImage, error) {
	var image models.GalleryImage
	err := d.Bun.NewSelect().Model(&image).Where("id = ?", id).Limit(1).Scan(ctx)
	if noRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func (d *BunDB) CreateGalleryImage(ctx context.Context, insert models.InsertGalleryImage) (*models.GalleryImage, error) {
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
	if _, err := d.Bun.NewInsert().Model(&image).Exec(ctx); err != nil {
		return nil, err
	}
	return &image, nil
}

func (d *BunDB) UpdateGalleryImage(ctx context.Context, id string, update models.GalleryImageUpdate) (*models.GalleryImage, error) {
	image, err := d.GetGalleryImage(ctx, id)
	if err != nil || image == nil {
		return nil, err
	}
	update.Apply(image)
	if _, err := d.Bun.NewUpdate().Model(image).Where("id = ?", id).Exec(ctx); err != nil {
		return nil, err
	}
	return image, nil
}

func (d *BunDB) DeleteGalleryImage(ctx context.Context, id string) (bool, error) {
	res, err := d.Bun.NewDelete().Model((*models.GalleryImage)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ---------------- SPOTIFY STATS ----------------

func (d *BunDB) GetSpotifyStats(ctx context.Context) (*models.SpotifyStats, error) {
	var stats models.SpotifyStats
	err := d.Bun.NewSelect().Model(&stats).Limit(1).Scan(ctx)
	if noRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (d *BunDB) UpdateSpotifyStats(ctx context.Context, update models.SpotifyStatsUpdate) (*models.SpotifyStats, error) {
	stats, err := d.GetSpotifyStats(ctx)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = &models.SpotifyStats{ID: utils.NewID()}
		update.Apply(stats)
		stats.LastUpdated = time.Now()
		if _, err := d.Bun.NewInsert().Model(stats).Exec(ctx); err != nil {
			return nil, err
		}
		return stats, nil
	}
	update.Apply(stats)
	stats.LastUpdated = time.Now()
	if _, err := d.Bun.NewUpdate().Model(stats).Where("id = ?", stats.ID).Exec(ctx); err != nil {
		return nil, err
	}
	return stats, nil
}
