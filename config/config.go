package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	Environment    string
	Port           string
	StoreDriver    string
	MongoURI       string
	MongoDatabase  string
	DBUrl          string
	PublicBaseURL  string
	ContextTimeout time.Duration

	ImageStorage   string
	UploadDir      string
	S3Bucket       string
	AWSRegion      string
	AWSAccessKeyID string
	AWSSecretKey   string

	EmailProvider  string
	EmailFromAddr  string
	EmailFromName  string
	SESRegion      string
	SESAccessKeyID string
	SESSecretKey   string

	JWTSecret     string
	JWTExpiry     time.Duration
	AdminEmail    string
	AdminPassHash string

	AllowedOrigins   []string
	BookingRateRPS   float64
	BookingRateBurst int
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production the environment is authoritative and .env may be absent.
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:    env,
		Port:           getEnv("PORT", "8080"),
		StoreDriver:    strings.ToLower(getEnv("STORE_DRIVER", StoreMongo)),
		MongoURI:       os.Getenv("MONGODB_URI"),
		MongoDatabase:  os.Getenv("MONGODB_DATABASE"),
		DBUrl:          os.Getenv("DATABASE_URL"),
		PublicBaseURL:  strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		ImageStorage:   strings.ToLower(getEnv("IMAGE_STORAGE", "local")),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		S3Bucket:       os.Getenv("S3_BUCKET"),
		AWSRegion:      os.Getenv("AWS_REGION"),
		AWSAccessKeyID: os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretKey:   os.Getenv("AWS_SECRET_ACCESS_KEY"),
		EmailProvider:  strings.ToLower(getEnv("EMAIL_PROVIDER", "noop")),
		EmailFromAddr:  os.Getenv("EMAIL_FROM_ADDRESS"),
		EmailFromName:  getEnv("EMAIL_FROM_NAME", "DevEvents"),
		SESRegion:      os.Getenv("SES_REGION"),
		SESAccessKeyID: os.Getenv("SES_ACCESS_KEY_ID"),
		SESSecretKey:   os.Getenv("SES_SECRET_ACCESS_KEY"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AdminEmail:     os.Getenv("ADMIN_EMAIL"),
		AdminPassHash:  os.Getenv("ADMIN_PASSWORD_HASH"),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	// SES falls back to the S3 credentials when not set separately.
	if cfg.SESRegion == "" {
		cfg.SESRegion = cfg.AWSRegion
	}
	if cfg.SESAccessKeyID == "" && cfg.SESSecretKey == "" {
		cfg.SESAccessKeyID, cfg.SESSecretKey = cfg.AWSAccessKeyID, cfg.AWSSecretKey
	}

	var err error
	if cfg.ContextTimeout, err = getDuration("CONTEXT_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.JWTExpiry, err = getDuration("JWT_EXPIRY", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.BookingRateRPS, err = getFloat("BOOKING_RATE_LIMIT_RPS", 0.2); err != nil {
		return nil, err
	}
	if cfg.BookingRateBurst, err = getInt("BOOKING_RATE_LIMIT_BURST", 5); err != nil {
		return nil, err
	}

	switch cfg.StoreDriver {
	case StoreMongo, StorePostgres:
	default:
		return nil, fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreMongo, StorePostgres, cfg.StoreDriver)
	}

	return cfg, nil
}

// StoreDSN returns the connection string for the selected store driver.
func (c *Config) StoreDSN() string {
	if c.StoreDriver == StorePostgres {
		return c.DBUrl
	}
	return c.MongoURI
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration such as 10s, got %q", key, v)
	}
	return d, nil
}

func getFloat(key string, def float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("%s must be a positive number, got %q", key, v)
	}
	return f, nil
}

func getInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, v)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
