package probe

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/rileyhilliard/pingdeck/internal/stats"
)

// categorize converts a transport error into a failure reason and the text
// recorded as the host's last error.
func categorize(err error) (stats.FailReason, string) {
	if err == nil {
		return stats.FailNone, ""
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return stats.FailTimeout, stats.FailTimeout.String()
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return stats.FailRefused, stats.FailRefused.String()
	}

	errStr := strings.ToLower(err.Error())

	if strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out") {
		return stats.FailTimeout, stats.FailTimeout.String()
	}
	if strings.Contains(errStr, "connection refused") {
		return stats.FailRefused, stats.FailRefused.String()
	}

	// Drop the `Get "http://..."` prefix so the dashboard has room for the cause.
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return stats.FailTransport, urlErr.Err.Error()
	}
	return stats.FailTransport, err.Error()
}
