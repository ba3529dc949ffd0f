package config

import (
	"fmt"
	"time"

	"github.com/rileyhilliard/pingdeck/internal/errors"
)

// MinInterval is the shortest allowed probe interval.
const MinInterval = 100 * time.Millisecond

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	// Check version
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but pingdeck only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Grab the latest pingdeck release")
	}

	if cfg.Mode != ModeICMP && cfg.Mode != ModeHTTP {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("mode '%s' isn't valid", cfg.Mode),
			"Use 'icmp' or 'http'.")
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("port %d is out of range", cfg.Port),
			"Pick a port between 1 and 65535.")
	}

	if err := validateDurations(cfg); err != nil {
		return errors.New(errors.ErrConfig, err.Error(), "Use durations like '500ms', '2s' or '1m' in your .pingdeck.yaml.")
	}

	return nil
}

// validateDurations checks every timing field.
func validateDurations(cfg *Config) error {
	fields := []struct {
		name string
		d    time.Duration
	}{
		{"interval", cfg.Interval},
		{"ping_timeout", cfg.PingTimeout},
		{"http_timeout", cfg.HTTPTimeout},
		{"grace", cfg.Grace},
		{"refresh", cfg.Refresh},
	}
	for _, f := range fields {
		if f.d <= 0 {
			return fmt.Errorf("%s must be positive, got %v", f.name, f.d)
		}
	}

	if cfg.Interval < MinInterval {
		return fmt.Errorf("interval %v is too short - the minimum is %v", cfg.Interval, MinInterval)
	}
	return nil
}
