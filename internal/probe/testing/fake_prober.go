// Package testing provides test doubles for the probe package.
package testing

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rileyhilliard/pingdeck/internal/probe"
	"github.com/rileyhilliard/pingdeck/internal/stats"
)

// OutcomeFunc returns the outcome of the n-th probe (starting at 1) for addr.
type OutcomeFunc func(addr string, n int) stats.Outcome

// AlwaysSucceed replies after 1ms on every probe.
func AlwaysSucceed(addr string, n int) stats.Outcome {
	return stats.Success(time.Now(), time.Millisecond)
}

// FakeProber is a scripted probe.Prober.
type FakeProber struct {
	Addr string

	outcome OutcomeFunc
	block   bool
	calls   atomic.Int64
	closed  atomic.Bool
}

// Probe returns the scripted outcome. Blocking probers wait for ctx first.
func (p *FakeProber) Probe(ctx context.Context) stats.Outcome {
	n := p.calls.Add(1)
	if p.block {
		<-ctx.Done()
	}
	return p.outcome(p.Addr, int(n))
}

// Close marks the prober closed.
func (p *FakeProber) Close() error {
	p.closed.Store(true)
	return nil
}

// Calls returns how many probes were issued.
func (p *FakeProber) Calls() int {
	return int(p.calls.Load())
}

// Closed reports whether Close was called.
func (p *FakeProber) Closed() bool {
	return p.closed.Load()
}

// FakeFactory builds FakeProbers and records every construction so tests can
// count the loops that were started.
type FakeFactory struct {
	mu      sync.Mutex
	outcome OutcomeFunc
	block   bool
	failing map[string]error
	probers []*FakeProber
}

// NewFakeFactory creates a factory whose probers always succeed.
func NewFakeFactory() *FakeFactory {
	return &FakeFactory{
		outcome: AlwaysSucceed,
		failing: make(map[string]error),
	}
}

// WithOutcomes scripts the outcome of every probe.
func (f *FakeFactory) WithOutcomes(fn OutcomeFunc) *FakeFactory {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outcome = fn
	return f
}

// Blocking makes probes wait until their context is done, simulating a host
// that never answers within the grace period.
func (f *FakeFactory) Blocking() *FakeFactory {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.block = true
	return f
}

// Fail makes construction fail for addr.
func (f *FakeFactory) Fail(addr string, err error) *FakeFactory {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing[addr] = err
	return f
}

// New implements probe.Factory.
func (f *FakeFactory) New(addr string) (probe.Prober, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err, ok := f.failing[addr]; ok {
		return nil, err
	}
	p := &FakeProber{Addr: addr, outcome: f.outcome, block: f.block}
	f.probers = append(f.probers, p)
	return p, nil
}

// Created returns how many probers were built, in total or for addr when given.
func (f *FakeFactory) Created(addr ...string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(addr) == 0 {
		return len(f.probers)
	}
	n := 0
	for _, p := range f.probers {
		if p.Addr == addr[0] {
			n++
		}
	}
	return n
}

// Open returns how many built probers have not been closed.
func (f *FakeFactory) Open() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, p := range f.probers {
		if !p.Closed() {
			n++
		}
	}
	return n
}

// Last returns the most recent prober built for addr, or nil.
func (f *FakeFactory) Last(addr string) *FakeProber {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := len(f.probers) - 1; i >= 0; i-- {
		if f.probers[i].Addr == addr {
			return f.probers[i]
		}
	}
	return nil
}
