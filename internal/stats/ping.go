package stats

import "time"

// UnreachableAfter is the number of consecutive failures after which a ping
// host is reported Unreachable instead of Timeout.
const UnreachableAfter = 5

// PingStatus is the classification of a ping-monitored host.
type PingStatus int

const (
	PingNotStarted PingStatus = iota
	PingActive
	PingTimeout
	PingUnreachable
)

// String returns the status name as used in exports.
func (s PingStatus) String() string {
	switch s {
	case PingNotStarted:
		return "NotStarted"
	case PingActive:
		return "Active"
	case PingTimeout:
		return "Timeout"
	case PingUnreachable:
		return "Unreachable"
	default:
		return "Unknown"
	}
}

// Label returns the status as shown in the dashboard.
func (s PingStatus) Label() string {
	if s == PingNotStarted {
		return "Not Started"
	}
	return s.String()
}

// PingStats aggregates ICMP echo outcomes for one host.
type PingStats struct {
	Status PingStatus

	// Last is the most recent round-trip time; HasLast is false after a
	// failed probe or before the first reply.
	Last    time.Duration
	HasLast bool

	Sent        uint64
	Received    uint64
	LossPercent float64
	LastUpdated time.Time

	window              Window
	consecutiveFailures int
}

// NewPingStats returns empty ping statistics.
func NewPingStats() PingStats {
	return PingStats{window: NewWindow(DefaultWindowSize)}
}

// Record applies one probe outcome.
func (p *PingStats) Record(o Outcome) {
	p.Sent++
	p.LastUpdated = o.At

	if o.Reply {
		p.Received++
		p.Last = o.Duration
		p.HasLast = true
		p.consecutiveFailures = 0
		p.Status = PingActive
		p.window.Push(o.Duration)
	} else {
		p.Last = 0
		p.HasLast = false
		p.consecutiveFailures++
		if p.consecutiveFailures >= UnreachableAfter {
			p.Status = PingUnreachable
		} else {
			p.Status = PingTimeout
		}
	}

	p.LossPercent = float64(p.Sent-p.Received) / float64(p.Sent) * 100
}

// Avg, Min and Max report the window aggregates; ok is false before the first reply.
func (p PingStats) Avg() (time.Duration, bool) { return p.window.Avg() }
func (p PingStats) Min() (time.Duration, bool) { return p.window.Min() }
func (p PingStats) Max() (time.Duration, bool) { return p.window.Max() }

// ConsecutiveFailures returns the current run of failed probes.
func (p PingStats) ConsecutiveFailures() int {
	return p.consecutiveFailures
}

// Window returns a copy of the sample window.
func (p PingStats) Window() Window {
	return p.window.clone()
}

func (p PingStats) clone() PingStats {
	c := p
	c.window = p.window.clone()
	return c
}
