package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Wayfare"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"wayfare"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigins []string      `envconfig:"CORS_ORIGINS" default:"*"`
	}

	Auth struct {
		// JWTSecret enables bearer identities. Empty means header identities only.
		JWTSecret string `envconfig:"AUTH_JWT_SECRET"`
	}

	Provider struct {
		BaseURL    string        `envconfig:"PROVIDER_BASE_URL" default:"https://checkout-sandbox.payway.com.kh"`
		MerchantID string        `envconfig:"PROVIDER_MERCHANT_ID"`
		APIKey     string        `envconfig:"PROVIDER_API_KEY"`
		Timeout    time.Duration `envconfig:"PROVIDER_TIMEOUT" default:"15s"`
		CacheTTL   time.Duration `envconfig:"PROVIDER_CHECK_CACHE_TTL" default:"24h"`
	}

	Redis struct {
		URL string `envconfig:"REDIS_URL"`
	}

	Storage struct {
		Bucket string `envconfig:"STORAGE_BUCKET"`
		Region string `envconfig:"STORAGE_REGION" default:"us-east-1"`
	}

	Reaper struct {
		TTLSeconds int           `envconfig:"REAPER_TTL_SECONDS" default:"300"`
		Interval   time.Duration `envconfig:"REAPER_INTERVAL" default:"1m"`
	}

	Share struct {
		BaseURL string        `envconfig:"SHARE_BASE_URL" default:"http://localhost:3000"`
		Window  time.Duration `envconfig:"SHARE_WINDOW" default:"168h"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// ReaperTTL is the soft-delete grace period.
func (c *Config) ReaperTTL() time.Duration {
	return time.Duration(c.Reaper.TTLSeconds) * time.Second
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.Reaper.TTLSeconds < 0 {
		return nil, fmt.Errorf("REAPER_TTL_SECONDS must not be negative, got %d", cfg.Reaper.TTLSeconds)
	}

	return &cfg, nil
}
