package probe

import (
	"context"
	"time"

	"github.com/rileyhilliard/pingdeck/internal/errors"
	"github.com/rileyhilliard/pingdeck/internal/logger"
	"github.com/rileyhilliard/pingdeck/internal/stats"
)

// Loop probes one host on a fixed interval and records every outcome in the
// store. The first probe is issued immediately.
type Loop struct {
	Addr      string
	Interval  time.Duration
	Store     *stats.Store
	NewProber Factory
	Logger    logger.Logger
}

// Run probes until stop is cancelled. Probe I/O is bound to abort rather than
// stop, so an in-flight probe finishes or times out on its own after a stop.
// Once abort is cancelled the pending outcome is discarded and nothing more is
// written to the store.
//
// Run returns an error only when the prober cannot be built.
func (l *Loop) Run(stop, abort context.Context) error {
	log := l.Logger
	if log == nil {
		log = logger.Noop()
	}

	prober, err := l.NewProber(l.Addr)
	if err != nil {
		log.Error("%s: %s", l.Addr, errors.Short(err))
		return err
	}
	defer func() {
		if err := prober.Close(); err != nil {
			log.Debug("%s: close prober: %v", l.Addr, err)
		}
	}()

	interval := l.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Debug("%s: loop started (interval %s)", l.Addr, interval)

	for first := true; ; first = false {
		if first {
			if stop.Err() != nil {
				return nil
			}
		} else {
			select {
			case <-stop.Done():
				log.Debug("%s: loop stopped", l.Addr)
				return nil
			case <-ticker.C:
				// A slow probe leaves both cases ready; stop wins.
				if stop.Err() != nil {
					log.Debug("%s: loop stopped", l.Addr)
					return nil
				}
			}
		}

		outcome := prober.Probe(abort)
		if abort.Err() != nil {
			log.Debug("%s: loop aborted, outcome discarded", l.Addr)
			return nil
		}
		if !outcome.Reply {
			log.Debug("%s: %s", l.Addr, outcome.Err)
		}

		l.Store.Apply(l.Addr, func(s *stats.Stats) {
			if abort.Err() == nil {
				s.Record(outcome)
			}
		})
	}
}
