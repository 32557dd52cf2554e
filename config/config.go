package config

import (
	"fmt"
	"log"
	"net"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Server   ServerConfig  `envPrefix:"SERVER_"`
	Scraper  ScraperConfig `envPrefix:"SCRAPER_"`
	Cache    CacheConfig   `envPrefix:"CACHE_"`
	LogLevel string        `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
}

type ServerConfig struct {
	Host string `env:"HOST" envDefault:"0.0.0.0"`
	Port string `env:"PORT" envDefault:"5000" validate:"required,numeric"`
}

type ScraperConfig struct {
	Timeout   time.Duration `env:"TIMEOUT" envDefault:"15s" validate:"gt=0"`
	FetchMode string        `env:"FETCH_MODE" envDefault:"http" validate:"oneof=http browser"`

	// Zero concurrency means one worker per source.
	MaxConcurrency int `env:"MAX_CONCURRENCY" envDefault:"0" validate:"gte=0"`
	RateLimitMs    int `env:"RATE_LIMIT_MS" envDefault:"0" validate:"gte=0"`

	IncludeFallbackSource bool     `env:"INCLUDE_FALLBACK_SOURCE" envDefault:"true"`
	Sources               []string `env:"SOURCES" envDefault:"ebay,target,walmart" envSeparator:"," validate:"dive,oneof=ebay target walmart"`

	ChromeBin string `env:"CHROME_BIN"`
}

type CacheConfig struct {
	TTL             time.Duration `env:"TTL" envDefault:"600s" validate:"gt=0"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"120s" validate:"gt=0"`
}

// Load reads the .env file when present, parses the environment and
// validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	for i, s := range cfg.Scraper.Sources {
		cfg.Scraper.Sources[i] = strings.ToLower(strings.TrimSpace(s))
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return cfg, nil
}

// Addr returns the host:port the HTTP server listens on.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, c.Server.Port)
}

// SourceEnabled reports whether the named live source is configured.
func (c *Config) SourceEnabled(name string) bool {
	for _, s := range c.Scraper.Sources {
		if s == name {
			return true
		}
	}
	return false
}
