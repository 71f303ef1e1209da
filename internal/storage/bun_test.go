package storage_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"samad-backend/internal/models"
	"samad-backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "github.com/uptrace/bun/driver/sqliteshim"
)

func setupBunStore(t *testing.T) (*storage.BunDB, *bun.DB) {
	sqldb, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to connect to in-memory database: %v", err)
	}

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())

	ctx := context.Background()
	for _, model := range []interface{}{
		(*models.User)(nil),
		(*models.Track)(nil),
		(*models.Event)(nil),
		(*models.Ticket)(nil),
		(*models.MerchProduct)(nil),
		(*models.MerchOrder)(nil),
		(*models.GalleryImage)(nil),
		(*models.SpotifyStats)(nil),
	} {
		if _, err := bunDB.NewCreateTable().Model(model).Exec(ctx); err != nil {
			t.Fatalf("Failed to create table for %T: %v", model, err)
		}
	}

	return storage.NewBunDB(bunDB, "SAMAD"), bunDB
}

func TestBunEventRoundTrip(t *testing.T) {
	store, bunDB := setupBunStore(t)
	defer bunDB.Close()
	ctx := context.Background()

	event, err := store.CreateEvent(ctx, models.InsertEvent{
		Title:     "Live in Lagos",
		Venue:     "Eko Convention Centre",
		City:      "Lagos",
		EventDate: models.Date{Time: time.Date(2025, 12, 25, 20, 0, 0, 0, time.UTC)},
		TicketTiers: []models.TicketTier{
			{Name: "Regular", Price: 2000, Description: []string{"General admission"}, Available: true},
		},
	})
	require.NoError(t, err)

	got, err := store.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Live in Lagos", got.Title)
	require.Len(t, got.TicketTiers, 1)
	assert.Equal(t, "Regular", got.TicketTiers[0].Name)

	events, err := store.GetEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestBunGetMissingReturnsAbsent(t *testing.T) {
	store, bunDB := setupBunStore(t)
	defer bunDB.Close()
	ctx := context.Background()

	event, err := store.GetEvent(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, event)

	ticket, err := store.GetTicketByCode(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, ticket)

	user, err := store.GetUserByUsername(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestBunUpdateMergesFields(t *testing.T) {
	store, bunDB := setupBunStore(t)
	defer bunDB.Close()
	ctx := context.Background()

	product, err := store.CreateMerchProduct(ctx, models.InsertMerchProduct{
		Name: "Tour Tee", Price: 5000, Stock: 10,
	})
	require.NoError(t, err)
	assert.True(t, product.IsActive)

	stock := 7
	updated, err := store.UpdateMerchProduct(ctx, product.ID, models.MerchProductUpdate{Stock: &stock})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, 7, updated.Stock)
	assert.Equal(t, "Tour Tee", updated.Name)
	assert.Equal(t, 5000.0, updated.Price)

	absent, err := store.UpdateMerchProduct(ctx, "missing", models.MerchProductUpdate{Stock: &stock})
	require.NoError(t, err)
	assert.Nil(t, absent)
}

func TestBunDeleteReportsExistence(t *testing.T) {
	store, bunDB := setupBunStore(t)
	defer bunDB.Close()
	ctx := context.Background()

	image, err := store.CreateGalleryImage(ctx, models.InsertGalleryImage{ImageURL: "/uploads/x.png"})
	require.NoError(t, err)

	ok, err := store.DeleteGalleryImage(ctx, image.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.DeleteGalleryImage(ctx, image.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBunTicketCodeLookup(t *testing.T) {
	store, bunDB := setupBunStore(t)
	defer bunDB.Close()
	ctx := context.Background()

	ticket, err := store.CreateTicket(ctx, models.InsertTicket{
		EventID: "ev1", CustomerName: "Ada", TierName: "VIP", Quantity: 1, TotalAmount: 5000,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPending, ticket.PaymentStatus)
	assert.NotEmpty(t, ticket.TicketCode)

	got, err := store.GetTicketByCode(ctx, ticket.TicketCode)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, ticket.ID, got.ID)

	byEvent, err := store.GetTicketsByEvent(ctx, "ev1")
	require.NoError(t, err)
	assert.Len(t, byEvent, 1)
}

func TestBunSpotifyStatsSingleton(t *testing.T) {
	store, bunDB := setupBunStore(t)
	defer bunDB.Close()
	ctx := context.Background()

	stats, err := store.GetSpotifyStats(ctx)
	require.NoError(t, err)
	assert.Nil(t, stats)

	followers := 100
	created, err := store.UpdateSpotifyStats(ctx, models.SpotifyStatsUpdate{Followers: &followers})
	require.NoError(t, err)
	assert.Equal(t, 100, created.Followers)

	listeners := 150
	updated, err := store.UpdateSpotifyStats(ctx, models.SpotifyStatsUpdate{MonthlyListeners: &listeners})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 100, updated.Followers)
	assert.Equal(t, 150, updated.MonthlyListeners)
}

func TestBunMerchOrderByReference(t *testing.T) {
	store, bunDB := setupBunStore(t)
	defer bunDB.Close()
	ctx := context.Background()

	order, err := store.CreateMerchOrder(ctx, models.InsertMerchOrder{
		ProductID: "p1", Quantity: 2, TotalAmount: 10000,
		PaymentReference: "SAMAD-123-ref",
		DeliveryAddress: models.DeliveryAddress{
			Street: "1 Marina", City: "Lagos", State: "Lagos", PostalCode: "100001", Country: "NG",
		},
	})
	require.NoError(t, err)

	got, err := store.GetMerchOrderByReference(ctx, "SAMAD-123-ref")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, order.ID, got.ID)
	assert.Equal(t, "Lagos", got.DeliveryAddress.City)
}
