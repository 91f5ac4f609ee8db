package anim

import (
	"sync"
	"time"
)

// FrameFunc is invoked once per frame with the frame timestamp.
type FrameFunc func(now time.Time)

// Scheduler runs a callback once, before the next repaint.
type Scheduler interface {
	RequestFrame(fn FrameFunc)
}

// Clock provides monotonic timestamps.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock with its monotonic component.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FrameQueue is a Scheduler for hosts that tick: requested callbacks wait
// until the host calls Flush. Callbacks requested during a flush run on the
// following one, like requestAnimationFrame.
type FrameQueue struct {
	pending []FrameFunc
	spare   []FrameFunc
}

// NewFrameQueue creates an empty queue.
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

func (q *FrameQueue) RequestFrame(fn FrameFunc) {
	q.pending = append(q.pending, fn)
}

// Pending reports how many callbacks wait for the next flush.
func (q *FrameQueue) Pending() int { return len(q.pending) }

// Flush runs every callback queued before the call and returns how many ran.
func (q *FrameQueue) Flush(now time.Time) int {
	if len(q.pending) == 0 {
		return 0
	}
	batch := q.pending
	q.pending = q.spare[:0]

	for i, fn := range batch {
		fn(now)
		batch[i] = nil
	}
	q.spare = batch[:0]
	return len(batch)
}

// RunUntilIdle flushes the queue, stepping the clock by step before each
// flush, until nothing is pending or maxFrames flushes have run. It returns
// the number of flushes.
func (q *FrameQueue) RunUntilIdle(clock *MockClock, step time.Duration, maxFrames int) int {
	n := 0
	for q.Pending() > 0 && n < maxFrames {
		clock.Advance(step)
		q.Flush(clock.Now())
		n++
	}
	return n
}

// MockClock is a controllable Clock for tests and offline rendering.
type MockClock struct {
	mu          sync.RWMutex
	currentTime time.Time
}

// NewMockClock creates a mock clock starting at start.
func NewMockClock(start time.Time) *MockClock {
	return &MockClock{currentTime: start}
}

func (m *MockClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// Set moves the clock to t.
func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = t
}

// Advance moves the clock forward by d.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}
