package stats

import "time"

// FailReason categorizes why a probe produced no reply.
type FailReason int

const (
	FailNone FailReason = iota
	FailTimeout
	FailRefused
	FailNoReply
	FailTransport
)

// String returns a human-readable description of the failure reason.
func (r FailReason) String() string {
	switch r {
	case FailNone:
		return "none"
	case FailTimeout:
		return "Request timeout"
	case FailRefused:
		return "Connection refused"
	case FailNoReply:
		return "No reply"
	case FailTransport:
		return "Transport error"
	default:
		return "unknown"
	}
}

// Outcome is the result of a single probe attempt. It is produced once per
// probe cycle and handed straight to Stats.Record.
type Outcome struct {
	// At is when the attempt completed.
	At time.Time

	// Reply is true when the host answered: an echo reply for ping, any
	// HTTP response (whatever its status code) for HTTP.
	Reply bool

	// Duration is the round-trip or response time. For HTTP failures it is
	// the time spent before the request failed.
	Duration time.Duration

	// StatusCode is the HTTP status code; 0 when there was no response.
	StatusCode int

	// ContentLength is the response Content-Length; -1 when unknown.
	ContentLength int64

	// Reason and Err describe a failed attempt.
	Reason FailReason
	Err    string
}

// Success builds a ping outcome for an echo reply after d.
func Success(at time.Time, d time.Duration) Outcome {
	return Outcome{At: at, Reply: true, Duration: d, ContentLength: -1}
}

// Response builds an HTTP outcome for a received response.
func Response(at time.Time, d time.Duration, code int, contentLength int64) Outcome {
	return Outcome{At: at, Reply: true, Duration: d, StatusCode: code, ContentLength: contentLength}
}

// Failure builds an outcome for an attempt that got no reply.
func Failure(at time.Time, d time.Duration, reason FailReason, msg string) Outcome {
	if msg == "" && reason != FailNone {
		msg = reason.String()
	}
	return Outcome{At: at, Duration: d, ContentLength: -1, Reason: reason, Err: msg}
}
