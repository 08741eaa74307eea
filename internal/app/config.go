package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the complete application configuration, loadable from
// environment variables (SHOPFRONT_ prefix), flags, or YAML config files.
type Config struct {
	Addr          string `default:"0.0.0.0:8080" usage:"API server listen address"`
	DatabaseURL   string `usage:"PostgreSQL connection URL (SHOPFRONT_DATABASE_URL or DATABASE_URL)" flag:"database-url"`
	RedisURL      string `usage:"Redis connection URL for basket storage (SHOPFRONT_REDIS_URL or REDIS_URL)" flag:"redis-url"`
	AMQPURL       string `default:"" usage:"AMQP broker URL for order events; empty disables publishing" flag:"amqp-url"`
	EventExchange string `default:"shopfront.orders" usage:"AMQP exchange for order events" flag:"event-exchange"`
	SessionPepper string `usage:"HMAC pepper for session token hashing (SHOPFRONT_SESSION_PEPPER)" flag:"session-pepper"`

	BasketTTL       time.Duration `default:"720h" usage:"Expiry for idle baskets in Redis" flag:"basket-ttl"`
	CatalogCacheTTL time.Duration `default:"5m" usage:"TTL for cached catalog lookups" flag:"catalog-cache-ttl"`

	RateLimit RateLimitConfig
	CORS      CORSConfig
	Graceful  GracefulConfig
}

// RateLimitConfig controls the per-client token bucket rate limiter.
type RateLimitConfig struct {
	Max    int           `default:"100" usage:"Max requests per window"`
	Window time.Duration `default:"1m"  usage:"Rate limit window duration"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins          []string `default:"*" usage:"Allowed CORS origins"`
	AllowCredentials bool     `default:"false" usage:"Allow credentials (cookies, auth headers)" flag:"cors-credentials"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables, YAML config files,
// and applies platform-specific defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "SHOPFRONT",
		Files:     []string{"config.yaml", "/etc/shopfront/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if cfg.DatabaseURL == "" {
		return nil, errors.New("database URL is required: set SHOPFRONT_DATABASE_URL or DATABASE_URL")
	}
	if cfg.RedisURL == "" {
		return nil, errors.New("redis URL is required: set SHOPFRONT_REDIS_URL or REDIS_URL")
	}

	return &cfg, nil
}

// applyPlatformDefaults maps platform-provided environment variables (Railway,
// Render, etc.) that use standard names like DATABASE_URL and PORT to the
// application's SHOPFRONT_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if c.DatabaseURL == "" {
		if v := os.Getenv("DATABASE_URL"); v != "" {
			c.DatabaseURL = v
		}
	}
	if c.RedisURL == "" {
		if v := os.Getenv("REDIS_URL"); v != "" {
			c.RedisURL = v
		}
	}
	if c.AMQPURL == "" {
		if v := os.Getenv("AMQP_URL"); v != "" {
			c.AMQPURL = v
		}
	}
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
}
