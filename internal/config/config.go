// Package config reads the player settings from the environment.
package config

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

var (
	ErrInvalidBaseURL = errors.New("invalid directory base url")
	ErrInvalidValue   = errors.New("invalid value")
)

// Config holds the player configuration loaded from PIXELWAVE_* variables.
type Config struct {
	APIBase      string        `env:"PIXELWAVE_API_BASE" envDefault:"https://de1.api.radio-browser.info/json"`
	Limit        int           `env:"PIXELWAVE_LIMIT" envDefault:"20"`
	RetryMax     int           `env:"PIXELWAVE_RETRY_MAX" envDefault:"2"`
	Rate         float64       `env:"PIXELWAVE_RATE" envDefault:"2"`
	HTTPTimeout  time.Duration `env:"PIXELWAVE_HTTP_TIMEOUT" envDefault:"20s"`
	MPV          string        `env:"PIXELWAVE_MPV" envDefault:"mpv"`
	Volume       float64       `env:"PIXELWAVE_VOLUME" envDefault:"0.8"`
	StartTimeout time.Duration `env:"PIXELWAVE_START_TIMEOUT" envDefault:"15s"`
	LogFile      string        `env:"PIXELWAVE_LOG_FILE"`
	Debug        bool          `env:"PIXELWAVE_DEBUG"`
}

// Load parses the environment and validates the result.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that every setting is in range.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBase)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("Validate: %w: %q", ErrInvalidBaseURL, c.APIBase)
	}

	switch {
	case c.Limit <= 0:
		return fmt.Errorf("Validate: %w: PIXELWAVE_LIMIT %d", ErrInvalidValue, c.Limit)
	case c.RetryMax < 0:
		return fmt.Errorf("Validate: %w: PIXELWAVE_RETRY_MAX %d", ErrInvalidValue, c.RetryMax)
	case c.Rate < 0 || math.IsNaN(c.Rate):
		return fmt.Errorf("Validate: %w: PIXELWAVE_RATE %v", ErrInvalidValue, c.Rate)
	case c.HTTPTimeout <= 0:
		return fmt.Errorf("Validate: %w: PIXELWAVE_HTTP_TIMEOUT %v", ErrInvalidValue, c.HTTPTimeout)
	case c.Volume < 0 || c.Volume > 1 || math.IsNaN(c.Volume):
		return fmt.Errorf("Validate: %w: PIXELWAVE_VOLUME %v", ErrInvalidValue, c.Volume)
	case c.StartTimeout <= 0:
		return fmt.Errorf("Validate: %w: PIXELWAVE_START_TIMEOUT %v", ErrInvalidValue, c.StartTimeout)
	case c.MPV == "":
		return fmt.Errorf("Validate: %w: PIXELWAVE_MPV is empty", ErrInvalidValue)
	}

	return nil
}

// DefaultLogFile returns the log path used when PIXELWAVE_LOG_FILE is unset.
func DefaultLogFile() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("DefaultLogFile: %w", err)
	}

	return filepath.Join(dir, "pixelwave", "pixelwave.log"), nil
}
