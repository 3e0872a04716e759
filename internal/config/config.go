package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	linkup "github.com/raezil/linkup-go/linkup"
)

// Config holds the settings shared by the command line tools.
type Config struct {
	APIKey    string        `env:"LINKUP_API_KEY"`
	BaseURL   string        `env:"LINKUP_BASE_URL"`
	UserAgent string        `env:"LINKUP_USER_AGENT"`
	Timeout   time.Duration `env:"LINKUP_TIMEOUT" envDefault:"30s"`

	MaxRetries   int           `env:"LINKUP_MAX_RETRIES" envDefault:"3"`
	RetryMinWait time.Duration `env:"LINKUP_RETRY_MIN_WAIT" envDefault:"250ms"`
	RetryMaxWait time.Duration `env:"LINKUP_RETRY_MAX_WAIT" envDefault:"4s"`

	LogLevel  string `env:"LINKUP_LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"LINKUP_LOG_FORMAT" envDefault:"console"` // console or json
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate reports settings the client cannot work without.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("missing API key: set LINKUP_API_KEY")
	}
	if c.RetryMaxWait < c.RetryMinWait {
		return fmt.Errorf("LINKUP_RETRY_MAX_WAIT (%s) is below LINKUP_RETRY_MIN_WAIT (%s)", c.RetryMaxWait, c.RetryMinWait)
	}
	return nil
}

// ClientOptions translates the configuration into linkup client options.
func (c *Config) ClientOptions(logger zerolog.Logger) []linkup.Option {
	opts := []linkup.Option{
		linkup.WithTimeout(c.Timeout),
		linkup.WithRetry(c.MaxRetries, c.RetryMinWait, c.RetryMaxWait),
		linkup.WithLogger(logger),
	}
	if c.BaseURL != "" {
		opts = append(opts, linkup.WithBaseURL(c.BaseURL))
	}
	if c.UserAgent != "" {
		opts = append(opts, linkup.WithUserAgent(c.UserAgent))
	}
	return opts
}
