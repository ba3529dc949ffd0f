package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func TestPingStats_Initial(t *testing.T) {
	p := NewPingStats()

	assert.Equal(t, PingNotStarted, p.Status)
	assert.Equal(t, "Not Started", p.Status.Label())
	assert.Equal(t, "NotStarted", p.Status.String())
	assert.False(t, p.HasLast)
	assert.Zero(t, p.Sent)
	assert.Zero(t, p.LossPercent)
	assert.True(t, p.LastUpdated.IsZero())

	_, ok := p.Avg()
	assert.False(t, ok)
}

func TestPingStats_Success(t *testing.T) {
	p := NewPingStats()
	p.Record(Success(t0, ms(10)))

	assert.Equal(t, PingActive, p.Status)
	assert.Equal(t, uint64(1), p.Sent)
	assert.Equal(t, uint64(1), p.Received)
	assert.True(t, p.HasLast)
	assert.Equal(t, ms(10), p.Last)
	assert.Equal(t, 0.0, p.LossPercent)
	assert.Equal(t, t0, p.LastUpdated)

	avg, ok := p.Avg()
	require.True(t, ok)
	assert.Equal(t, ms(10), avg)
}

func TestPingStats_Failures(t *testing.T) {
	tests := []struct {
		name     string
		failures int
		status   PingStatus
	}{
		{name: "one failure is timeout", failures: 1, status: PingTimeout},
		{name: "four failures is timeout", failures: 4, status: PingTimeout},
		{name: "five failures is unreachable", failures: 5, status: PingUnreachable},
		{name: "more failures stay unreachable", failures: 8, status: PingUnreachable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPingStats()
			for i := 0; i < tt.failures; i++ {
				p.Record(Failure(t0, 0, FailTimeout, ""))
			}

			assert.Equal(t, tt.status, p.Status)
			assert.Equal(t, tt.failures, p.ConsecutiveFailures())
			assert.Equal(t, uint64(tt.failures), p.Sent)
			assert.Zero(t, p.Received)
			assert.Equal(t, 100.0, p.LossPercent)
			assert.False(t, p.HasLast)
		})
	}
}

func TestPingStats_SuccessResetsFailureRun(t *testing.T) {
	p := NewPingStats()
	for i := 0; i < 6; i++ {
		p.Record(Failure(t0, 0, FailTimeout, ""))
	}
	require.Equal(t, PingUnreachable, p.Status)

	p.Record(Success(t0, ms(3)))
	assert.Equal(t, PingActive, p.Status)
	assert.Equal(t, 0, p.ConsecutiveFailures())

	p.Record(Failure(t0, 0, FailTimeout, ""))
	assert.Equal(t, PingTimeout, p.Status)
}

func TestPingStats_FailureClearsLastKeepsWindow(t *testing.T) {
	p := NewPingStats()
	p.Record(Success(t0, ms(10)))
	p.Record(Success(t0, ms(20)))
	p.Record(Failure(t0.Add(time.Second), 0, FailNoReply, ""))

	assert.False(t, p.HasLast)
	assert.Zero(t, p.Last)
	assert.Equal(t, t0.Add(time.Second), p.LastUpdated)

	avg, ok := p.Avg()
	require.True(t, ok)
	assert.Equal(t, ms(15), avg)
	assert.Equal(t, 2, p.Window().Len())
}

func TestPingStats_LossPercent(t *testing.T) {
	p := NewPingStats()
	p.Record(Success(t0, ms(1)))
	p.Record(Success(t0, ms(1)))
	p.Record(Failure(t0, 0, FailTimeout, ""))

	assert.InDelta(t, 33.33, p.LossPercent, 0.01)
	assert.Equal(t, uint64(3), p.Sent)
	assert.Equal(t, uint64(2), p.Received)
}

func TestPingStats_CounterInvariant(t *testing.T) {
	p := NewPingStats()
	outcomes := []Outcome{
		Success(t0, ms(1)),
		Failure(t0, 0, FailTimeout, ""),
		Success(t0, ms(2)),
		Failure(t0, 0, FailTimeout, ""),
		Failure(t0, 0, FailTimeout, ""),
	}
	for _, o := range outcomes {
		p.Record(o)
		assert.LessOrEqual(t, p.Received, p.Sent)
		assert.GreaterOrEqual(t, p.LossPercent, 0.0)
		assert.LessOrEqual(t, p.LossPercent, 100.0)
	}
	assert.Equal(t, 60.0, p.LossPercent)
}
