package stats

import "time"

// HTTPStatus is the classification of an HTTP-monitored host.
type HTTPStatus int

const (
	HTTPNotStarted HTTPStatus = iota
	HTTPSuccess
	HTTPClientError
	HTTPServerError
	HTTPNetworkError
)

// String returns the status name as used in exports.
func (s HTTPStatus) String() string {
	switch s {
	case HTTPNotStarted:
		return "NotStarted"
	case HTTPSuccess:
		return "Success"
	case HTTPClientError:
		return "ClientError"
	case HTTPServerError:
		return "ServerError"
	case HTTPNetworkError:
		return "NetworkError"
	default:
		return "Unknown"
	}
}

// ClassifyStatusCode maps a received HTTP status code to a host status.
// Codes outside 4xx and 5xx (including 1xx and 3xx) mean the server answered,
// so they count as Success.
func ClassifyStatusCode(code int) HTTPStatus {
	switch {
	case code >= 400 && code <= 499:
		return HTTPClientError
	case code >= 500 && code <= 599:
		return HTTPServerError
	default:
		return HTTPSuccess
	}
}

// HTTPStats aggregates HTTP GET outcomes for one host.
type HTTPStats struct {
	Status HTTPStatus

	// LastResponseTime is set by every outcome, failures included.
	LastResponseTime time.Duration
	// LastStatusCode is 0 when the last attempt got no response.
	LastStatusCode int
	// LastContentSize is -1 when unknown.
	LastContentSize int64
	// LastError is empty when the last attempt got a response.
	LastError string

	Sent        uint64
	Successful  uint64
	SuccessRate float64
	LastUpdated time.Time

	window Window
}

// NewHTTPStats returns empty HTTP statistics.
func NewHTTPStats() HTTPStats {
	return HTTPStats{
		LastContentSize: -1,
		window:          NewWindow(DefaultWindowSize),
	}
}

// Record applies one probe outcome. Any received response, whatever its
// status code, counts as successful for the success rate.
func (h *HTTPStats) Record(o Outcome) {
	h.Sent++
	h.LastUpdated = o.At
	h.LastResponseTime = o.Duration
	h.LastContentSize = o.ContentLength
	h.LastError = o.Err

	if o.Reply {
		h.LastStatusCode = o.StatusCode
		h.Successful++
		h.Status = ClassifyStatusCode(o.StatusCode)
		h.window.Push(o.Duration)
	} else {
		h.Status = HTTPNetworkError
		h.LastStatusCode = 0
		h.LastContentSize = -1
	}

	h.SuccessRate = float64(h.Successful) / float64(h.Sent) * 100
}

// Avg, Min and Max report the window aggregates; ok is false before the first response.
func (h HTTPStats) Avg() (time.Duration, bool) { return h.window.Avg() }
func (h HTTPStats) Min() (time.Duration, bool) { return h.window.Min() }
func (h HTTPStats) Max() (time.Duration, bool) { return h.window.Max() }

// Window returns a copy of the sample window.
func (h HTTPStats) Window() Window {
	return h.window.clone()
}

func (h HTTPStats) clone() HTTPStats {
	c := h
	c.window = h.window.clone()
	return c
}
