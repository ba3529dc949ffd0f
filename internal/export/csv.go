package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rileyhilliard/pingdeck/internal/stats"
)

// Column headers of the two export formats.
var (
	PingHeader = []string{
		"IP", "Status", "Last Latency (ms)", "Avg Latency (ms)", "Min Latency (ms)",
		"Max Latency (ms)", "Packet Loss %", "Packets Sent", "Packets Received",
	}
	HTTPHeader = []string{
		"IP", "Status", "Status Code", "Last Response Time (ms)", "Avg Response Time (ms)",
		"Min Response Time (ms)", "Max Response Time (ms)", "Content Size", "Success Rate %",
		"Requests Sent", "Requests Successful", "Last Error",
	}
)

const missing = "-"

// WriteCSV writes a header and one row per host, in the given order. Hosts
// missing from snapshot get a row of a fresh entry.
func WriteCSV(w io.Writer, kind stats.Kind, hosts []string, snapshot map[string]stats.Stats) error {
	cw := csv.NewWriter(w)

	header := PingHeader
	if kind == stats.KindHTTP {
		header = HTTPHeader
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, host := range hosts {
		st, ok := snapshot[host]
		if !ok {
			st = stats.New(kind)
		}

		var row []string
		if kind == stats.KindHTTP {
			row = httpRow(host, st.HTTP)
		} else {
			row = pingRow(host, st.Ping)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func pingRow(host string, p stats.PingStats) []string {
	last := missing
	if p.HasLast {
		last = millis(p.Last)
	}
	return []string{
		host,
		p.Status.String(),
		last,
		optMillis(p.Avg()),
		optMillis(p.Min()),
		optMillis(p.Max()),
		fmt.Sprintf("%.2f", p.LossPercent),
		strconv.FormatUint(p.Sent, 10),
		strconv.FormatUint(p.Received, 10),
	}
}

func httpRow(host string, h stats.HTTPStats) []string {
	code := missing
	if h.LastStatusCode != 0 {
		code = strconv.Itoa(h.LastStatusCode)
	}
	last := missing
	if h.Sent > 0 {
		last = millis(h.LastResponseTime)
	}
	size := missing
	if h.LastContentSize >= 0 {
		size = strconv.FormatInt(h.LastContentSize, 10)
	}
	lastErr := missing
	if h.LastError != "" {
		lastErr = h.LastError
	}
	return []string{
		host,
		h.Status.String(),
		code,
		last,
		optMillis(h.Avg()),
		optMillis(h.Min()),
		optMillis(h.Max()),
		size,
		fmt.Sprintf("%.2f", h.SuccessRate),
		strconv.FormatUint(h.Sent, 10),
		strconv.FormatUint(h.Successful, 10),
		lastErr,
	}
}

func millis(d time.Duration) string {
	return fmt.Sprintf("%.2f", float64(d)/float64(time.Millisecond))
}

func optMillis(d time.Duration, ok bool) string {
	if !ok {
		return missing
	}
	return millis(d)
}
