// Package config loads runtime settings for the slug command from the
// environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/slug/pkg/logger"
)

// ErrInvalidConfig is returned when a loaded value is out of range.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the full command configuration.
type Config struct {
	Log     logger.Config
	Slug    SlugConfig
	HTTP    HTTPConfig
	Workers int `env:"SLUG_WORKERS" envDefault:"4"`
}

// SlugConfig holds the defaults applied to every slug.
type SlugConfig struct {
	Mode        string `env:"SLUG_MODE" envDefault:"pretty"`
	Replacement string `env:"SLUG_REPLACEMENT" envDefault:"-"`
	CharMapFile string `env:"SLUG_CHARMAP_FILE"`
}

// HTTPConfig holds the settings of the HTTP API.
type HTTPConfig struct {
	Addr            string        `env:"SLUG_HTTP_ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"SLUG_READ_TIMEOUT" envDefault:"5s"`
	ShutdownTimeout time.Duration `env:"SLUG_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	MaxBatch        int           `env:"SLUG_MAX_BATCH" envDefault:"1000"`
}

// Load parses the process environment.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, cfg.Validate()
}

// LoadFrom parses the given variables instead of the process environment.
func LoadFrom(environ map[string]string) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Environment: environ})
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, cfg.Validate()
}

// Validate reports values no component can run with.
func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("%w: SLUG_WORKERS must be positive, got %d", ErrInvalidConfig, c.Workers)
	}
	if c.HTTP.MaxBatch < 1 {
		return fmt.Errorf("%w: SLUG_MAX_BATCH must be positive, got %d", ErrInvalidConfig, c.HTTP.MaxBatch)
	}
	if c.Slug.Mode == "" {
		return fmt.Errorf("%w: SLUG_MODE is empty", ErrInvalidConfig)
	}
	return nil
}
