package cli

import (
	"context"
	"time"

	"github.com/rileyhilliard/pingdeck/internal/api"
	"github.com/rileyhilliard/pingdeck/internal/config"
	"github.com/rileyhilliard/pingdeck/internal/export"
	"github.com/rileyhilliard/pingdeck/internal/hosts"
	"github.com/rileyhilliard/pingdeck/internal/logger"
	"github.com/rileyhilliard/pingdeck/internal/probe"
	"github.com/rileyhilliard/pingdeck/internal/stats"
	"github.com/rileyhilliard/pingdeck/internal/supervisor"
)

// drainTimeout bounds how long a session waits for loop goroutines to exit
// after Shutdown.
const drainTimeout = 2 * time.Second

// proberFactory builds the prober factory for a session. Tests replace it.
var proberFactory = probe.NewFactory

// session is everything one monitoring run needs.
type session struct {
	cfg      *config.Config
	store    *stats.Store
	sup      *supervisor.Supervisor
	exporter *export.Exporter
	api      *api.Server // nil when the API is disabled
}

// newSession resolves hosts and wires the store, supervisor, exporter and
// optional status API together. No loop runs until a host is selected.
func newSession(cfg *config.Config, src hosts.Source) (*session, error) {
	addrs, err := hosts.Load(src)
	if err != nil {
		return nil, err
	}

	kind, err := stats.ParseKind(cfg.Mode)
	if err != nil {
		return nil, err
	}

	store := stats.NewStore(kind, addrs)
	sup := supervisor.New(store, supervisor.Options{
		Interval: cfg.Interval,
		Grace:    cfg.Grace,
		NewProber: proberFactory(probe.Config{
			Kind:        kind,
			Port:        cfg.Port,
			PingTimeout: cfg.PingTimeout,
			HTTPTimeout: cfg.HTTPTimeout,
			Privileged:  cfg.Privileged,
		}),
		Logger:     logger.NewEnvLogger("[supervisor]"),
		LoopLogger: logger.NewEnvLogger("[probe]"),
	})

	s := &session{
		cfg:   cfg,
		store: store,
		sup:   sup,
		exporter: &export.Exporter{
			Dir:   cfg.ExportDir,
			Kind:  kind,
			Chart: cfg.Chart,
		},
	}
	if cfg.Listen != "" {
		s.api = api.New(cfg.Listen, sup, logger.NewEnvLogger("[api]"))
	}
	return s, nil
}

// close stops every loop and waits briefly for their goroutines.
func (s *session) close() {
	s.sup.Shutdown()
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	if err := s.sup.Wait(ctx); err != nil {
		logger.Default().Warn("probe loops still running after %s", drainTimeout)
	}
}
