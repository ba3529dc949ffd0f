// Package probe issues single network probes against one host and runs the
// per-host probe loop that feeds outcomes into a stats.Store.
package probe

import (
	"context"
	"time"

	"github.com/rileyhilliard/pingdeck/internal/stats"
)

// Default probe timings.
const (
	DefaultInterval    = time.Second
	DefaultPingTimeout = 2 * time.Second
	DefaultHTTPTimeout = 5 * time.Second
	DefaultHTTPPort    = 80
)

// Prober performs one probe per call. Probe never returns an error: every
// failure is folded into the Outcome. A Prober is used by a single goroutine.
type Prober interface {
	Probe(ctx context.Context) stats.Outcome
	Close() error
}

// Factory builds a Prober bound to one host address.
type Factory func(addr string) (Prober, error)

// Config selects and tunes the prober built for every host.
type Config struct {
	Kind        stats.Kind
	Port        int
	PingTimeout time.Duration
	HTTPTimeout time.Duration
	// Privileged selects raw ICMP sockets instead of unprivileged datagram sockets.
	Privileged bool
}

// DefaultConfig returns ping probing with default timeouts.
func DefaultConfig() Config {
	return Config{
		Kind:        stats.KindPing,
		Port:        DefaultHTTPPort,
		PingTimeout: DefaultPingTimeout,
		HTTPTimeout: DefaultHTTPTimeout,
		Privileged:  true,
	}
}

// New builds the prober for addr described by cfg.
func New(cfg Config, addr string) (Prober, error) {
	switch cfg.Kind {
	case stats.KindHTTP:
		return NewHTTPProber(addr, cfg.Port, cfg.HTTPTimeout), nil
	default:
		return NewPinger(addr, cfg.PingTimeout, cfg.Privileged)
	}
}

// NewFactory returns a Factory that calls New with cfg.
func NewFactory(cfg Config) Factory {
	return func(addr string) (Prober, error) {
		return New(cfg, addr)
	}
}
