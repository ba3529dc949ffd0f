package dashboard

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rileyhilliard/pingdeck/internal/stats"
)

func lineContaining(view, substr string) string {
	for _, l := range strings.Split(view, "\n") {
		if strings.Contains(l, substr) {
			return l
		}
	}
	return ""
}

func TestView_HostList(t *testing.T) {
	sess := newFakeSession(stats.KindPing)
	m := NewModel(sess, Options{})
	m, _ = press(t, m, runes("j"), space)

	view := m.View()
	assert.Contains(t, view, "Hosts (1/3)")
	assert.Contains(t, view, "[ ] 10.0.0.1")
	assert.Contains(t, lineContaining(view, "[x] 10.0.0.2"), RunningMark)
	assert.NotContains(t, lineContaining(view, "[ ] 10.0.0.3"), RunningMark)
	assert.Contains(t, view, "3 hosts | 1 selected | 1 running")
}

func TestView_PingTable(t *testing.T) {
	sess := newFakeSession(stats.KindPing)
	now := time.Now()
	sess.store.Record("10.0.0.1", stats.Success(now, 10*time.Millisecond))
	sess.store.Record("10.0.0.1", stats.Success(now, 20*time.Millisecond))
	sess.store.Record("10.0.0.1", stats.Failure(now, 0, stats.FailTimeout, ""))
	sess.store.Record("10.0.0.2", stats.Success(now, 5*time.Millisecond))

	m := NewModel(sess, Options{})
	m, _ = press(t, m, space)

	view := m.renderStatsTable()
	assert.Contains(t, view, "Ping Statistics")
	for _, col := range []string{"IP", "Status", "Last", "Avg", "Min", "Max", "Loss", "Packets"} {
		assert.Contains(t, view, col)
	}

	row := lineContaining(view, "Timeout")
	assert.Contains(t, row, "10.0.0.1")
	assert.Contains(t, row, "15.0ms")
	assert.Contains(t, row, "10.0ms")
	assert.Contains(t, row, "20.0ms")
	assert.Contains(t, row, "33.3%")
	assert.Contains(t, row, "2/3")

	// Only selected hosts appear in the table.
	assert.NotContains(t, view, "10.0.0.2")
}

func TestView_HTTPTable(t *testing.T) {
	sess := newFakeSession(stats.KindHTTP)
	now := time.Now()
	sess.store.Record("10.0.0.1", stats.Response(now, 8*time.Millisecond, 200, 2048))
	sess.store.Record("10.0.0.2", stats.Failure(now, time.Millisecond, stats.FailRefused, ""))

	m := NewModel(sess, Options{Port: 8080})
	m, _ = press(t, m, runes("a"))

	assert.Contains(t, m.View(), "Mode: HTTP:8080")

	view := m.renderStatsTable()
	assert.Contains(t, view, "HTTP Statistics")

	ok := lineContaining(view, "10.0.0.1")
	assert.Contains(t, ok, "Success")
	assert.Contains(t, ok, "200 OK")
	assert.Contains(t, ok, "8.0ms")
	assert.Contains(t, ok, "2.0KB")
	assert.Contains(t, ok, "100.0%")
	assert.Contains(t, ok, "1/1")

	failed := lineContaining(view, "Connection refused")
	assert.Contains(t, failed, "NetworkError")
	assert.Contains(t, failed, "0.0%")

	idle := lineContaining(view, "Not Started")
	assert.Contains(t, idle, "10.0.0.3")
}

func TestView_Footer(t *testing.T) {
	sess := newFakeSession(stats.KindPing)
	m := NewModel(sess, Options{})

	view := m.View()
	assert.Contains(t, view, "Mode: ICMP")
	assert.NotContains(t, view, PausedMark)

	m, _ = press(t, m, runes("p"))
	assert.Contains(t, m.View(), PausedMark)
}

func TestView_NoHosts(t *testing.T) {
	sess := &fakeSession{store: stats.NewStore(stats.KindPing, nil)}
	m := NewModel(sess, Options{})

	view := m.View()
	assert.Contains(t, view, "Hosts (0/0)")
	assert.Contains(t, view, "No hosts")
}
