package probe

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rileyhilliard/pingdeck/internal/stats"
)

// drainLimit caps how much of a response body is read so the connection can
// be reused for the next probe.
const drainLimit = 64 << 10

// HTTPProber issues GET http://<addr>:<port>/ without following redirects.
type HTTPProber struct {
	url    string
	client *http.Client
}

// NewHTTPProber creates a prober for addr. IPv6 addresses are bracketed.
func NewHTTPProber(addr string, port int, timeout time.Duration) *HTTPProber {
	if port <= 0 {
		port = DefaultHTTPPort
	}
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}

	u := url.URL{
		Scheme: "http",
		Host:   net.JoinHostPort(addr, strconv.Itoa(port)),
		Path:   "/",
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 1
	// Plain GET: transparent gzip would drop the server's Content-Length.
	transport.DisableCompression = true

	return &HTTPProber{
		url: u.String(),
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// URL returns the probed URL.
func (p *HTTPProber) URL() string {
	return p.url
}

// Probe sends one GET. Duration is measured until the response headers arrive.
func (p *HTTPProber) Probe(ctx context.Context) stats.Outcome {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return stats.Failure(time.Now(), time.Since(start), stats.FailTransport, err.Error())
	}

	resp, err := p.client.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		reason, msg := categorize(err)
		return stats.Failure(time.Now(), elapsed, reason, msg)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, drainLimit))

	return stats.Response(time.Now(), elapsed, resp.StatusCode, resp.ContentLength)
}

// Close releases idle keep-alive connections.
func (p *HTTPProber) Close() error {
	p.client.CloseIdleConnections()
	return nil
}
