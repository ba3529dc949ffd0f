package dashboard

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatLatency(t *testing.T) {
	tests := []struct {
		name   string
		d      time.Duration
		ok     bool
		expect string
	}{
		{name: "missing", ok: false, expect: "-"},
		{name: "zero", d: 0, ok: true, expect: "0.0ms"},
		{name: "sub-millisecond", d: 250 * time.Microsecond, ok: true, expect: "0.2ms"},
		{name: "milliseconds", d: 12345 * time.Microsecond, ok: true, expect: "12.3ms"},
		{name: "seconds", d: 2 * time.Second, ok: true, expect: "2000.0ms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, formatLatency(tt.d, tt.ok))
		})
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		name   string
		n      int64
		expect string
	}{
		{name: "unknown", n: -1, expect: "-"},
		{name: "zero", n: 0, expect: "0B"},
		{name: "exactly 1 KB stays bytes", n: 1024, expect: "1024B"},
		{name: "kilobytes", n: 1536, expect: "1.5KB"},
		{name: "exactly 1 MB stays KB", n: 1024 * 1024, expect: "1024.0KB"},
		{name: "megabytes", n: 5 * 1024 * 1024, expect: "5.0MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, formatSize(tt.n))
		})
	}
}

func TestFormatError(t *testing.T) {
	assert.Equal(t, "-", formatError(""))
	assert.Equal(t, "Connection refused", formatError("Connection refused"))

	long := strings.Repeat("x", 40)
	assert.Equal(t, strings.Repeat("x", 28)+"...", formatError(long))

	exact := strings.Repeat("y", 28)
	assert.Equal(t, exact, formatError(exact))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "66.7%", formatPercent(200.0/3))
	assert.Equal(t, "0.0%", formatPercent(0))
}
