package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Artist   ArtistConfig
	Spotify  SpotifyConfig
	Paystack PaystackConfig
	Email    EmailConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Uploads  UploadsConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// ArtistConfig names the single artist this deployment promotes. The
// streaming-url and stats endpoints resolve this name server-side.
type ArtistConfig struct {
	Name string
}

type SpotifyConfig struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	APIBaseURL   string
}

type PaystackConfig struct {
	SecretKey string
	PublicKey string
	BaseURL   string
}

type EmailConfig struct {
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	FromAddress  string
}

type StorageConfig struct {
	// PostgresDSN selects the relational store when set; empty means the
	// in-memory store.
	PostgresDSN string
}

type RedisConfig struct {
	// Addr enables the Redis-backed Spotify token cache when set.
	Addr string
}

type KafkaConfig struct {
	Brokers []string
	Enabled bool
	Topics  TopicConfig
}

type TopicConfig struct {
	TicketIssued     string
	MerchOrderPlaced string
	PaymentVerified  string
}

type UploadsConfig struct {
	Dir          string
	MaxSizeBytes int64
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", ":8080"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Artist: ArtistConfig{
			Name: getEnv("ARTIST_NAME", "Samad"),
		},
		Spotify: SpotifyConfig{
			ClientID:     getEnv("SPOTIFY_CLIENT_ID", ""),
			ClientSecret: getEnv("SPOTIFY_CLIENT_SECRET", ""),
			TokenURL:     getEnv("SPOTIFY_TOKEN_URL", "https://accounts.spotify.com/api/token"),
			APIBaseURL:   getEnv("SPOTIFY_API_BASE_URL", "https://api.spotify.com/v1"),
		},
		Paystack: PaystackConfig{
			SecretKey: getEnv("PAYSTACK_SECRET_KEY", ""),
			PublicKey: getEnv("PAYSTACK_PUBLIC_KEY", ""),
			BaseURL:   getEnv("PAYSTACK_BASE_URL", "https://api.paystack.co"),
		},
		Email: EmailConfig{
			SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			SMTPPort:     getEnv("SMTP_PORT", "587"),
			SMTPUsername: getEnv("SMTP_USERNAME", ""),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
			FromAddress:  getEnv("EMAIL_FROM", "booking@samadmusic.com"),
		},
		Storage: StorageConfig{
			PostgresDSN: getEnv("POSTGRES_DSN", ""),
		},
		Redis: RedisConfig{
			Addr: getEnv("REDIS_ADDR", ""),
		},
		Kafka: KafkaConfig{
			Brokers: []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Enabled: getEnvBool("KAFKA_ENABLED", false),
			Topics: TopicConfig{
				TicketIssued:     getEnv("KAFKA_TOPIC_TICKET_ISSUED", "samad.ticket.issued"),
				MerchOrderPlaced: getEnv("KAFKA_TOPIC_ORDER_PLACED", "samad.merch.order.placed"),
				PaymentVerified:  getEnv("KAFKA_TOPIC_PAYMENT_VERIFIED", "samad.payment.verified"),
			},
		},
		Uploads: UploadsConfig{
			Dir:          getEnv("UPLOADS_DIR", "uploads"),
			MaxSizeBytes: getEnvInt64("UPLOADS_MAX_SIZE_BYTES", 5*1024*1024),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
