package stats

import "time"

// DefaultWindowSize is the number of most recent samples kept per host.
const DefaultWindowSize = 100

// Window is a fixed-size FIFO of durations. When full, pushing a new sample
// drops the oldest one. Avg, Min and Max are recomputed from the retained
// samples on every push.
//
// The zero value is an empty window of DefaultWindowSize.
type Window struct {
	data  []time.Duration
	head  int
	count int
	size  int

	avg time.Duration
	min time.Duration
	max time.Duration
}

// NewWindow creates a window holding at most size samples.
func NewWindow(size int) Window {
	if size <= 0 {
		size = DefaultWindowSize
	}
	return Window{
		data: make([]time.Duration, size),
		size: size,
	}
}

// Push adds a sample, evicting the oldest one when the window is full.
func (w *Window) Push(d time.Duration) {
	if w.data == nil {
		*w = NewWindow(w.size)
	}

	w.data[w.head] = d
	w.head = (w.head + 1) % w.size
	if w.count < w.size {
		w.count++
	}

	w.recompute()
}

// recompute derives avg/min/max from the retained samples.
func (w *Window) recompute() {
	if w.count == 0 {
		w.avg, w.min, w.max = 0, 0, 0
		return
	}

	start := (w.head - w.count + w.size) % w.size
	var sum time.Duration
	lo := w.data[start]
	hi := w.data[start]
	for i := 0; i < w.count; i++ {
		v := w.data[(start+i)%w.size]
		sum += v
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	w.avg = sum / time.Duration(w.count)
	w.min = lo
	w.max = hi
}

// Len returns the number of retained samples.
func (w Window) Len() int {
	return w.count
}

// Cap returns the window capacity.
func (w Window) Cap() int {
	if w.size == 0 {
		return DefaultWindowSize
	}
	return w.size
}

// Avg returns the mean of the retained samples; ok is false when empty.
func (w Window) Avg() (avg time.Duration, ok bool) {
	return w.avg, w.count > 0
}

// Min returns the smallest retained sample; ok is false when empty.
func (w Window) Min() (min time.Duration, ok bool) {
	return w.min, w.count > 0
}

// Max returns the largest retained sample; ok is false when empty.
func (w Window) Max() (max time.Duration, ok bool) {
	return w.max, w.count > 0
}

// Samples returns the retained samples in chronological order (oldest first).
func (w Window) Samples() []time.Duration {
	if w.count == 0 {
		return nil
	}

	out := make([]time.Duration, w.count)
	start := (w.head - w.count + w.size) % w.size
	for i := 0; i < w.count; i++ {
		out[i] = w.data[(start+i)%w.size]
	}
	return out
}

// clone returns a copy that shares no backing storage with w.
func (w Window) clone() Window {
	c := w
	if w.data != nil {
		c.data = make([]time.Duration, len(w.data))
		copy(c.data, w.data)
	}
	return c
}
