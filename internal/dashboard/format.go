package dashboard

import (
	"fmt"
	"time"
)

// maxErrorLen is how much of an HTTP error the table shows before "...".
const maxErrorLen = 28

// formatLatency renders d in milliseconds with one decimal, or "-".
func formatLatency(d time.Duration, ok bool) string {
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.1fms", float64(d)/float64(time.Millisecond))
}

// formatSize renders a body size; negative means unknown.
func formatSize(n int64) string {
	switch {
	case n < 0:
		return "-"
	case n > 1024*1024:
		return fmt.Sprintf("%.1fMB", float64(n)/(1024*1024))
	case n > 1024:
		return fmt.Sprintf("%.1fKB", float64(n)/1024)
	default:
		return fmt.Sprintf("%dB", n)
	}
}

func formatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// formatError truncates long errors so the table keeps its shape.
func formatError(msg string) string {
	if msg == "" {
		return "-"
	}
	r := []rune(msg)
	if len(r) > maxErrorLen {
		return string(r[:maxErrorLen]) + "..."
	}
	return msg
}
