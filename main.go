package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"samad-backend/internal/config"
	"samad-backend/internal/email"
	"samad-backend/internal/events"
	"samad-backend/internal/events/event_api"
	"samad-backend/internal/gallery"
	"samad-backend/internal/gallery/gallery_api"
	"samad-backend/internal/kafka"
	"samad-backend/internal/logger"
	"samad-backend/internal/merch"
	"samad-backend/internal/merch/merch_api"
	"samad-backend/internal/paystack"
	"samad-backend/internal/spotify"
	"samad-backend/internal/spotify/spotify_api"
	"samad-backend/internal/storage"
	"samad-backend/internal/tickets"
	"samad-backend/internal/tickets/ticket_api"
	"samad-backend/internal/tracks"
	"samad-backend/internal/tracks/track_api"
	"samad-backend/internal/uploads"
)

// connectPostgres opens the relational store with a few retries so the app
// survives the database coming up slightly after it in compose setups.
func connectPostgres(dsn string, log *logger.Logger) *bun.DB {
	var sqldb *sql.DB
	var err error
	maxRetries := 5

	for i := 0; i < maxRetries; i++ {
		log.Info("DATABASE", fmt.Sprintf("Connecting to PostgreSQL (attempt %d/%d)", i+1, maxRetries))
		sqldb, err = sql.Open("postgres", dsn)
		if err == nil {
			err = sqldb.Ping()
			if err == nil {
				break
			}
		}
		log.Error("DATABASE", fmt.Sprintf("PostgreSQL connection failed: %v", err))
		if i < maxRetries-1 {
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL after %d attempts: %v", maxRetries, err))
	}

	log.Info("DATABASE", "PostgreSQL connection successful")
	return bun.NewDB(sqldb, pgdialect.New())
}

func main() {
	log := logger.NewLogger()
	defer log.Close()

	log.Info("APP", "Starting Samad Music backend")

	if err := godotenv.Load(); err != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		log.Info("CONFIG", "Loaded environment variables from .env file")
	}

	cfg := config.Load()
	ctx := context.Background()

	httpClient := &http.Client{Timeout: 10 * time.Second}

	// Storage: relational when a DSN is configured, in-memory otherwise.
	var store storage.Storage
	if cfg.Storage.PostgresDSN != "" {
		bunDB := connectPostgres(cfg.Storage.PostgresDSN, log)
		defer bunDB.Close()
		store = storage.NewBunDB(bunDB, "SAMAD")
		log.Info("STORAGE", "Using PostgreSQL storage")
	} else {
		store = storage.NewMemStorage("SAMAD")
		log.Info("STORAGE", "Using in-memory storage")
	}

	// Spotify token cache: Redis when configured, in-process otherwise.
	var tokenStore spotify.TokenStore = spotify.NewMemoryTokenStore()
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn("REDIS", fmt.Sprintf("Redis unreachable, falling back to in-memory token cache: %v", err))
		} else {
			defer redisClient.Close()
			tokenStore = spotify.NewRedisTokenStore(redisClient)
			log.Info("REDIS", fmt.Sprintf("Redis token cache enabled at %s", cfg.Redis.Addr))
		}
	}

	// Kafka lifecycle events are optional.
	var publisher kafka.Publisher = kafka.NoopPublisher{}
	if cfg.Kafka.Enabled {
		if err := kafka.EnsureTopicsExist(cfg.Kafka, log); err != nil {
			log.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
		}
		producer := kafka.NewProducer(cfg.Kafka, log)
		defer producer.Close()
		publisher = producer
		log.Info("KAFKA", "Kafka producer initialized")
	}

	paystackClient, err := paystack.New(cfg.Paystack.SecretKey, cfg.Paystack.BaseURL, httpClient, log)
	if err != nil {
		log.Fatal("PAYSTACK", err.Error())
	}

	spotifyClient := spotify.NewClient(cfg.Spotify, tokenStore, httpClient, log)
	mailer := email.NewSender(cfg.Email, log)

	saver, err := uploads.NewSaver(cfg.Uploads.Dir, cfg.Uploads.MaxSizeBytes, log)
	if err != nil {
		log.Fatal("UPLOADS", err.Error())
	}

	eventHandler := event_api.NewHandler(events.NewEventService(store, log))
	trackHandler := track_api.NewHandler(tracks.NewTrackService(store, log))
	galleryHandler := gallery_api.NewHandler(gallery.NewGalleryService(store, log), saver)
	merchHandler := merch_api.NewHandler(merch.NewMerchService(store, paystackClient, mailer, publisher, log), saver)
	ticketHandler := ticket_api.NewHandler(tickets.NewTicketService(store, paystackClient, mailer, publisher, log))
	spotifyHandler := spotify_api.NewHandler(spotifyClient, store, cfg.Artist.Name, log)

	log.Info("HTTP", "Setting up router")
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		r.Route("/events", eventHandler.Routes)
		r.Route("/tracks", trackHandler.Routes)
		r.Route("/gallery", galleryHandler.Routes)
		r.Route("/merch", merchHandler.Routes)
		r.Route("/tickets", ticketHandler.Routes)
		r.Route("/spotify", spotifyHandler.Routes)
	})

	// Uploaded images are served straight from disk.
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(saver.Dir())))
	r.Get("/uploads/*", func(w http.ResponseWriter, req *http.Request) {
		fileServer.ServeHTTP(w, req)
	})

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP", fmt.Sprintf("Server running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	log.Info("APP", "Service started, waiting for shutdown signal")
	<-stop

	log.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("HTTP", fmt.Sprintf("Server shutdown failed: %v", err))
	} else {
		log.Info("HTTP", "Shutdown complete")
	}
}
