package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/pingdeck/internal/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}},
		{name: "http mode", mutate: func(c *Config) { c.Mode = ModeHTTP }},
		{name: "future version", mutate: func(c *Config) { c.Version = CurrentConfigVersion + 1 }, wantErr: "from the future"},
		{name: "unknown mode", mutate: func(c *Config) { c.Mode = "tcp" }, wantErr: "mode 'tcp'"},
		{name: "port zero", mutate: func(c *Config) { c.Port = 0 }, wantErr: "port 0"},
		{name: "port too large", mutate: func(c *Config) { c.Port = 70000 }, wantErr: "port 70000"},
		{name: "port upper bound", mutate: func(c *Config) { c.Port = 65535 }},
		{name: "zero interval", mutate: func(c *Config) { c.Interval = 0 }, wantErr: "interval must be positive"},
		{name: "negative grace", mutate: func(c *Config) { c.Grace = -time.Second }, wantErr: "grace must be positive"},
		{name: "zero refresh", mutate: func(c *Config) { c.Refresh = 0 }, wantErr: "refresh must be positive"},
		{name: "zero ping timeout", mutate: func(c *Config) { c.PingTimeout = 0 }, wantErr: "ping_timeout"},
		{name: "interval too short", mutate: func(c *Config) { c.Interval = 50 * time.Millisecond }, wantErr: "too short"},
		{name: "minimum interval", mutate: func(c *Config) { c.Interval = MinInterval }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
		})
	}
}
