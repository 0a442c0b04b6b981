package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	LogLevel    string
	StaticDir   string
	Admin       AdminConfig
	Supabase    SupabaseConfig
	Storage     StorageConfig
	Session     SessionConfig
	RateLimit   RateLimitConfig
}

// AdminConfig holds the single admin credential pair.
// Either value may be empty; the login handler reports that per request.
type AdminConfig struct {
	Username string
	Password string
}

// Configured reports whether both admin secrets are present
func (a AdminConfig) Configured() bool {
	return a.Username != "" && a.Password != ""
}

// SupabaseConfig holds the hosted data store configuration
type SupabaseConfig struct {
	URL             string
	ServiceKey      string
	AnonKey         string
	OrdersTable     string
	UpstreamTimeout time.Duration
}

// Configured reports whether the REST backend can be reached with service credentials
func (s SupabaseConfig) Configured() bool {
	return s.URL != "" && s.ServiceKey != ""
}

// StorageConfig holds object storage configuration
type StorageConfig struct {
	Type               string // "supabase", "s3", "local" or "mock"
	ProductImageBucket string
	PageImageBucket    string
	LocalPath          string
	S3Region           string
	S3Endpoint         string
	S3AccessKey        string
	S3SecretKey        string
}

// SessionConfig holds admin session cookie settings
type SessionConfig struct {
	CookieName string
	MaxAge     time.Duration
}

// RateLimitConfig holds server-mode rate limiting settings
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Load loads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8081")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ORDERS_TABLE", "orders")
	v.SetDefault("UPSTREAM_TIMEOUT_SECONDS", 0)
	v.SetDefault("STORAGE_TYPE", "supabase")
	v.SetDefault("PRODUCT_IMAGE_BUCKET", "product-images")
	v.SetDefault("PAGE_IMAGE_BUCKET", "page-images")
	v.SetDefault("STORAGE_LOCAL_PATH", "./data/images")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("SESSION_COOKIE_NAME", "admin_session")
	v.SetDefault("SESSION_MAX_AGE_HOURS", 24)
	v.SetDefault("RATE_LIMIT_RPS", 20)
	v.SetDefault("RATE_LIMIT_BURST", 40)

	config := &Config{
		Environment: v.GetString("ENVIRONMENT"),
		Port:        v.GetString("PORT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		StaticDir:   v.GetString("STATIC_DIR"),
		Admin: AdminConfig{
			Username: v.GetString("ADMIN_USERNAME"),
			Password: v.GetString("ADMIN_PASSWORD"),
		},
		Supabase: SupabaseConfig{
			URL:             v.GetString("SUPABASE_URL"),
			ServiceKey:      v.GetString("SUPABASE_SERVICE_KEY"),
			AnonKey:         v.GetString("SUPABASE_ANON_KEY"),
			OrdersTable:     v.GetString("ORDERS_TABLE"),
			UpstreamTimeout: time.Duration(v.GetInt("UPSTREAM_TIMEOUT_SECONDS")) * time.Second,
		},
		Storage: StorageConfig{
			Type:               v.GetString("STORAGE_TYPE"),
			ProductImageBucket: v.GetString("PRODUCT_IMAGE_BUCKET"),
			PageImageBucket:    v.GetString("PAGE_IMAGE_BUCKET"),
			LocalPath:          v.GetString("STORAGE_LOCAL_PATH"),
			S3Region:           v.GetString("S3_REGION"),
			S3Endpoint:         v.GetString("S3_ENDPOINT"),
			S3AccessKey:        v.GetString("S3_ACCESS_KEY"),
			S3SecretKey:        v.GetString("S3_SECRET_KEY"),
		},
		Session: SessionConfig{
			CookieName: v.GetString("SESSION_COOKIE_NAME"),
			MaxAge:     time.Duration(v.GetInt("SESSION_MAX_AGE_HOURS")) * time.Hour,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             v.GetInt("RATE_LIMIT_BURST"),
		},
	}

	return config, nil
}

// IsProduction reports whether the service runs with production settings
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
