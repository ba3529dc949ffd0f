package stats

import (
	"fmt"
	"strings"
	"time"
)

// Kind selects the probe type for a session.
type Kind int

const (
	KindPing Kind = iota
	KindHTTP
)

// String returns the config name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPing:
		return "icmp"
	case KindHTTP:
		return "http"
	default:
		return "unknown"
	}
}

// ParseKind converts a config mode string into a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "icmp", "ping":
		return KindPing, nil
	case "http":
		return KindHTTP, nil
	default:
		return KindPing, fmt.Errorf("unknown probe mode %q", s)
	}
}

// Stats is the per-host statistics entry. Exactly one of Ping or HTTP is
// meaningful, selected by Kind.
type Stats struct {
	Kind Kind
	Ping PingStats
	HTTP HTTPStats
}

// New returns empty statistics of the given kind.
func New(kind Kind) Stats {
	s := Stats{Kind: kind}
	switch kind {
	case KindHTTP:
		s.HTTP = NewHTTPStats()
	default:
		s.Ping = NewPingStats()
	}
	return s
}

// Record applies one probe outcome to the active variant.
func (s *Stats) Record(o Outcome) {
	switch s.Kind {
	case KindHTTP:
		s.HTTP.Record(o)
	default:
		s.Ping.Record(o)
	}
}

// Clone returns a deep copy.
func (s Stats) Clone() Stats {
	c := s
	c.Ping = s.Ping.clone()
	c.HTTP = s.HTTP.clone()
	return c
}

// Sent returns the number of probes recorded.
func (s Stats) Sent() uint64 {
	if s.Kind == KindHTTP {
		return s.HTTP.Sent
	}
	return s.Ping.Sent
}

// Samples returns the window samples oldest first.
func (s Stats) Samples() []time.Duration {
	if s.Kind == KindHTTP {
		return s.HTTP.window.Samples()
	}
	return s.Ping.window.Samples()
}

// Severity buckets a status for colouring.
type Severity int

const (
	SeverityIdle Severity = iota
	SeverityHealthy
	SeverityWarning
	SeverityCritical
)

// Summary is a kind-independent projection of Stats used by the dashboard,
// the exporter and the status API.
type Summary struct {
	Kind     string        `json:"kind"`
	Status   string        `json:"status"`
	Label    string        `json:"label"`
	Severity Severity      `json:"severity"`
	Last     time.Duration `json:"last_ns"`
	HasLast  bool          `json:"has_last"`
	Avg      time.Duration `json:"avg_ns"`
	Min      time.Duration `json:"min_ns"`
	Max      time.Duration `json:"max_ns"`
	Samples  int           `json:"samples"`
	Sent     uint64        `json:"sent"`
	OK       uint64        `json:"ok"`
	// Rate is the loss percentage for ping and the success rate for HTTP.
	Rate        float64   `json:"rate"`
	StatusCode  int       `json:"status_code,omitempty"`
	ContentSize int64     `json:"content_size"`
	LastError   string    `json:"last_error,omitempty"`
	LastUpdated time.Time `json:"last_updated"`
}

// Summary projects the active variant.
func (s Stats) Summary() Summary {
	if s.Kind == KindHTTP {
		return s.HTTP.summary()
	}
	return s.Ping.summary()
}

func (p PingStats) summary() Summary {
	sum := Summary{
		Kind:        KindPing.String(),
		Status:      p.Status.String(),
		Label:       p.Status.Label(),
		Last:        p.Last,
		HasLast:     p.HasLast,
		Samples:     p.window.Len(),
		Sent:        p.Sent,
		OK:          p.Received,
		Rate:        p.LossPercent,
		ContentSize: -1,
		LastUpdated: p.LastUpdated,
	}
	sum.Avg, _ = p.window.Avg()
	sum.Min, _ = p.window.Min()
	sum.Max, _ = p.window.Max()

	switch p.Status {
	case PingActive:
		sum.Severity = SeverityHealthy
	case PingTimeout:
		sum.Severity = SeverityWarning
	case PingUnreachable:
		sum.Severity = SeverityCritical
	default:
		sum.Severity = SeverityIdle
	}
	return sum
}

func (h HTTPStats) summary() Summary {
	sum := Summary{
		Kind:        KindHTTP.String(),
		Status:      h.Status.String(),
		Label:       httpLabel(h.LastStatusCode, h.Status),
		Last:        h.LastResponseTime,
		HasLast:     h.Sent > 0,
		Samples:     h.window.Len(),
		Sent:        h.Sent,
		OK:          h.Successful,
		Rate:        h.SuccessRate,
		StatusCode:  h.LastStatusCode,
		ContentSize: h.LastContentSize,
		LastError:   h.LastError,
		LastUpdated: h.LastUpdated,
	}
	sum.Avg, _ = h.window.Avg()
	sum.Min, _ = h.window.Min()
	sum.Max, _ = h.window.Max()

	switch h.Status {
	case HTTPSuccess:
		sum.Severity = SeverityHealthy
	case HTTPClientError:
		sum.Severity = SeverityWarning
	case HTTPServerError, HTTPNetworkError:
		sum.Severity = SeverityCritical
	default:
		sum.Severity = SeverityIdle
	}
	return sum
}

// httpLabel renders "200 OK" style labels, falling back to the status name
// when there was no response.
func httpLabel(code int, status HTTPStatus) string {
	if code == 0 {
		if status == HTTPNotStarted {
			return "Not Started"
		}
		return status.String()
	}
	switch code {
	case 200:
		return "200 OK"
	case 404:
		return "404 Not Found"
	case 500:
		return "500 Server Err"
	default:
		return fmt.Sprintf("%d", code)
	}
}
