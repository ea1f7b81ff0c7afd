package config

import (
	"log/slog"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server     ServerConfig
	Perplexity PerplexityConfig
	Database   DatabaseConfig
	Cache      CacheConfig
}

type ServerConfig struct {
	Port        string        `envconfig:"SERVER_PORT" default:"8000"`
	Host        string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	ReadTimeout time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"30s"`
	// Deep-research calls run for many seconds; the write timeout bounds
	// the whole request at the transport layer.
	WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"5m"`
}

type PerplexityConfig struct {
	// APIKey's absence is a call-time failure, not a startup failure.
	APIKey      string        `envconfig:"PERPLEXITY_API_KEY"`
	APIEndpoint string        `envconfig:"PERPLEXITY_ENDPOINT" default:"https://api.perplexity.ai"`
	Model       string        `envconfig:"PERPLEXITY_MODEL" default:"sonar-deep-research"`
	Temperature float64       `envconfig:"PERPLEXITY_TEMPERATURE" default:"0.4"`
	MaxTokens   int64         `envconfig:"PERPLEXITY_MAX_TOKENS" default:"16384"`
	Timeout     time.Duration `envconfig:"PERPLEXITY_TIMEOUT" default:"4m"`
}

type DatabaseConfig struct {
	URL string `envconfig:"DATABASE_URL" required:"true"`
}

type CacheConfig struct {
	// TTL is the freshness window: records older than this are misses.
	TTL time.Duration `envconfig:"CACHE_TTL" default:"168h"`
}

func LoadConfig() (*Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}
	slog.Info("configuration loaded successfully")
	return &cfg, nil
}
