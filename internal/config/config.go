package config

import (
	"fmt"
	"strings"

	pkgconfig "github.com/utafrali/storefront/pkg/config"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`

	// Catalog upstream
	CatalogBaseURL string `env:"CATALOG_BASE_URL" envDefault:"http://localhost:3000"`
	// MediaBaseURL is the origin prepended to relative image paths returned
	// by the catalog. Defaults to the catalog origin when empty.
	MediaBaseURL     string `env:"MEDIA_BASE_URL" envDefault:""`
	PlaceholderImage string `env:"PLACEHOLDER_IMAGE" envDefault:"/media/placeholder.png"`

	// Redis cart storage. When RedisAddr is empty, carts are kept in memory.
	RedisAddr string `env:"REDIS_ADDR" envDefault:""`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Cart TTL in hours (default: 7 days)
	CartTTL int `env:"CART_TTL_HOURS" envDefault:"168"`

	// Shipping policy in cents.
	FreeShippingThreshold int64 `env:"FREE_SHIPPING_THRESHOLD_CENTS" envDefault:"5000"`
	ShippingFee           int64 `env:"SHIPPING_FEE_CENTS" envDefault:"800"`

	// Price filter ceiling in cents.
	MaxFilterPrice int64 `env:"MAX_FILTER_PRICE_CENTS" envDefault:"100000"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// CORS
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"" envSeparator:","`

	// Tracing
	TracingEnabled    bool    `env:"TRACING_ENABLED" envDefault:"false"`
	TracingEndpoint   string  `env:"TRACING_ENDPOINT" envDefault:"localhost:4318"`
	TracingSampleRate float64 `env:"TRACING_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.MediaBaseURL == "" {
		cfg.MediaBaseURL = cfg.CatalogBaseURL
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if !strings.HasPrefix(c.CatalogBaseURL, "http://") && !strings.HasPrefix(c.CatalogBaseURL, "https://") {
		return fmt.Errorf("invalid catalog base URL: %q", c.CatalogBaseURL)
	}
	if c.FreeShippingThreshold < 0 || c.ShippingFee < 0 {
		return fmt.Errorf("shipping policy must be non-negative")
	}
	return nil
}
