// Package supervisor starts and stops one probe loop per selected host and
// implements the pause, select-all, deselect-all and shutdown commands.
//
// Command methods (Toggle, SetPaused, SelectAll, DeselectAll, Shutdown) must
// be called from a single goroutine, normally the dashboard's update loop.
// Hosts, Running, IsRunning and Paused are safe from any goroutine.
package supervisor

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rileyhilliard/pingdeck/internal/logger"
	"github.com/rileyhilliard/pingdeck/internal/probe"
	"github.com/rileyhilliard/pingdeck/internal/stats"
)

// DefaultGrace is how long a stopped loop gets to exit on its own before its
// in-flight probe is aborted.
const DefaultGrace = 150 * time.Millisecond

// Host is a monitored address and whether the user selected it.
type Host struct {
	Addr     string `json:"addr"`
	Selected bool   `json:"selected"`
	Running  bool   `json:"running"`
}

// Options configures a Supervisor.
type Options struct {
	Interval  time.Duration
	Grace     time.Duration
	NewProber probe.Factory
	Logger    logger.Logger

	// LoopLogger is handed to every probe loop. Defaults to Logger.
	LoopLogger logger.Logger
}

// task is the handle of one running loop.
type task struct {
	cancel context.CancelFunc
	abort  context.CancelFunc
	done   chan struct{}
}

func (t *task) exited() bool {
	select {
	case <-t.done:
		return true
	default:
	}
	return false
}

// view pairs a host with its task for lock-free readers.
type view struct {
	host Host
	task *task
}

// Supervisor owns the host list and the running loops.
type Supervisor struct {
	store *stats.Store
	opts  Options
	log   logger.Logger

	hosts  []Host
	index  map[string]int
	tasks  map[string]*task
	paused bool
	closed bool

	published atomic.Pointer[[]view]
	isPaused  atomic.Bool
	wg        sync.WaitGroup
}

// New creates a supervisor for every host in the store. No loop runs until a
// host is selected.
func New(store *stats.Store, opts Options) *Supervisor {
	if opts.Grace <= 0 {
		opts.Grace = DefaultGrace
	}
	if opts.Interval <= 0 {
		opts.Interval = probe.DefaultInterval
	}
	if opts.Logger == nil {
		opts.Logger = logger.Noop()
	}
	if opts.LoopLogger == nil {
		opts.LoopLogger = opts.Logger
	}

	addrs := store.Hosts()
	s := &Supervisor{
		store: store,
		opts:  opts,
		log:   opts.Logger,
		hosts: make([]Host, len(addrs)),
		index: make(map[string]int, len(addrs)),
		tasks: make(map[string]*task),
	}
	for i, addr := range addrs {
		s.hosts[i] = Host{Addr: addr}
		s.index[addr] = i
	}
	s.publish()
	return s
}

// Toggle flips the selection of addr. Outside pause the host's loop is
// started or stopped accordingly; while paused only the selection changes.
// It returns false for an unknown host.
func (s *Supervisor) Toggle(addr string) bool {
	i, ok := s.index[addr]
	if !ok {
		return false
	}

	h := &s.hosts[i]
	h.Selected = !h.Selected
	s.log.Debug("toggle %s selected=%t paused=%t", addr, h.Selected, s.paused)

	if !s.paused {
		if h.Selected {
			s.start(addr)
		} else {
			s.stop(addr)
		}
	}
	s.publish()
	return true
}

// SetPaused pauses or resumes probing. Pausing stops every loop and keeps the
// selection; resuming starts a loop for every selected host without one.
func (s *Supervisor) SetPaused(paused bool) {
	s.paused = paused
	s.log.Debug("paused=%t", paused)

	if paused {
		s.stopAll()
	} else {
		for _, h := range s.hosts {
			if h.Selected {
				s.start(h.Addr)
			}
		}
	}
	s.publish()
}

// TogglePause flips the pause state and returns the new state.
func (s *Supervisor) TogglePause() bool {
	s.SetPaused(!s.paused)
	return s.paused
}

// SelectAll selects every host, starting loops for newly selected hosts when
// not paused.
func (s *Supervisor) SelectAll() {
	for i := range s.hosts {
		h := &s.hosts[i]
		if h.Selected {
			continue
		}
		h.Selected = true
		if !s.paused {
			s.start(h.Addr)
		}
	}
	s.log.Debug("select all (%d hosts)", len(s.hosts))
	s.publish()
}

// DeselectAll stops every loop and clears every selection, also while paused.
func (s *Supervisor) DeselectAll() {
	s.stopAll()
	for i := range s.hosts {
		s.hosts[i].Selected = false
	}
	s.log.Debug("deselect all")
	s.publish()
}

// Shutdown stops every loop, aborting those still busy after the grace period.
// No loop is started afterwards. Safe to call more than once.
func (s *Supervisor) Shutdown() {
	if !s.closed {
		s.log.Debug("shutdown with %d running loops", len(s.tasks))
	}
	s.closed = true
	s.stopAll()
	s.publish()
}

// Wait blocks until every loop goroutine has returned or ctx is done.
func (s *Supervisor) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Hosts returns the hosts in source order with their current state.
func (s *Supervisor) Hosts() []Host {
	views := *s.published.Load()
	out := make([]Host, len(views))
	for i, v := range views {
		out[i] = v.host
		out[i].Running = v.task != nil && !v.task.exited()
	}
	return out
}

// Host returns the state of one host.
func (s *Supervisor) Host(addr string) (Host, bool) {
	for _, h := range s.Hosts() {
		if h.Addr == addr {
			return h, true
		}
	}
	return Host{}, false
}

// Running returns the number of live loops.
func (s *Supervisor) Running() int {
	n := 0
	for _, v := range *s.published.Load() {
		if v.task != nil && !v.task.exited() {
			n++
		}
	}
	return n
}

// IsRunning reports whether addr has a live loop.
func (s *Supervisor) IsRunning(addr string) bool {
	h, ok := s.Host(addr)
	return ok && h.Running
}

// Paused reports whether probing is paused.
func (s *Supervisor) Paused() bool {
	return s.isPaused.Load()
}

// Store returns the stats store the loops write to.
func (s *Supervisor) Store() *stats.Store {
	return s.store
}

// start spawns a loop for addr unless one is already running. A handle whose
// loop exited on its own is replaced.
func (s *Supervisor) start(addr string) {
	if s.closed {
		return
	}
	if t, ok := s.tasks[addr]; ok {
		if !t.exited() {
			return
		}
		t.cancel()
		t.abort()
		delete(s.tasks, addr)
		s.log.Debug("reaped exited loop for %s", addr)
	}

	stop, cancel := context.WithCancel(context.Background())
	abort, abortFn := context.WithCancel(context.Background())
	t := &task{cancel: cancel, abort: abortFn, done: make(chan struct{})}
	s.tasks[addr] = t

	loop := &probe.Loop{
		Addr:      addr,
		Interval:  s.opts.Interval,
		Store:     s.store,
		NewProber: s.opts.NewProber,
		Logger:    s.opts.LoopLogger,
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(t.done)
		_ = loop.Run(stop, abort)
	}()
	s.log.Debug("started loop for %s", addr)
}

// stop stops addr's loop, if any.
func (s *Supervisor) stop(addr string) {
	if _, ok := s.tasks[addr]; !ok {
		return
	}
	s.stopTasks([]string{addr})
}

// stopAll stops every loop against one shared grace deadline.
func (s *Supervisor) stopAll() {
	addrs := make([]string, 0, len(s.tasks))
	for _, h := range s.hosts {
		if _, ok := s.tasks[h.Addr]; ok {
			addrs = append(addrs, h.Addr)
		}
	}
	s.stopTasks(addrs)
}

// stopTasks signals every loop first, then waits for them until the grace
// deadline. Loops still running at the deadline are aborted, which discards
// their in-flight probe.
func (s *Supervisor) stopTasks(addrs []string) {
	if len(addrs) == 0 {
		return
	}

	for _, addr := range addrs {
		s.tasks[addr].cancel()
	}

	deadline := time.NewTimer(s.opts.Grace)
	defer deadline.Stop()

	expired := false
	for _, addr := range addrs {
		t := s.tasks[addr]
		if !expired {
			select {
			case <-t.done:
			case <-deadline.C:
				expired = true
			}
		}
		if !t.exited() {
			s.log.Debug("aborting loop for %s after %s grace", addr, s.opts.Grace)
		}
		t.abort()
		delete(s.tasks, addr)
	}
}

// publish makes the current host list visible to concurrent readers.
func (s *Supervisor) publish() {
	views := make([]view, len(s.hosts))
	for i, h := range s.hosts {
		views[i] = view{host: h, task: s.tasks[h.Addr]}
	}
	s.published.Store(&views)
	s.isPaused.Store(s.paused)
}
