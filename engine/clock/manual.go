package clock

import (
	"sync"
	"time"
)

// Manual is a virtual clock. Time only moves when the caller advances it, and frames only
// run when the caller asks for one. Callbacks run on the caller's goroutine.
type Manual struct {
	mu sync.Mutex

	now    time.Duration
	seq    uint64
	timers []*manualTimer
	frames []FrameCallback
}

var (
	_ Scheduler  = &Manual{}
	_ FrameClock = &Manual{}
)

// manualTimer is a pending callback on a Manual clock.
type manualTimer struct {
	clock *Manual
	at    time.Duration
	seq   uint64
	fn    func()
}

// NewManual creates a virtual clock reading zero.
//
// Returns:
//   - *Manual: the clock
func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTimer{clock: m, at: m.now + d, seq: m.seq, fn: fn}
	m.timers = append(m.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	m := t.clock
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, pending := range m.timers {
		if pending == t {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return true
		}
	}
	return false
}

func (m *Manual) RequestAnimationFrame(fn FrameCallback) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frames = append(m.frames, fn)
}

// Advance moves time forward by d, firing due timers in deadline order.
//
// Parameters:
//   - d: the amount of virtual time to elapse
func (m *Manual) Advance(d time.Duration) {
	m.AdvanceTo(m.Now() + d)
}

// AdvanceTo moves time forward to t, firing due timers in deadline order.
// Timers scheduled by a firing callback fire in the same call if they fall due before t.
// Moving backwards is ignored.
//
// Parameters:
//   - t: the target clock reading
func (m *Manual) AdvanceTo(t time.Duration) {
	for {
		m.mu.Lock()
		next := m.nextDueLocked(t)
		if next == nil {
			if t > m.now {
				m.now = t
			}
			m.mu.Unlock()
			return
		}
		m.now = next.at
		m.mu.Unlock()
		next.fn()
	}
}

// nextDueLocked removes and returns the earliest timer due at or before t.
func (m *Manual) nextDueLocked(t time.Duration) *manualTimer {
	idx := -1
	for i, pending := range m.timers {
		if pending.at > t {
			continue
		}
		if idx == -1 || pending.at < m.timers[idx].at || (pending.at == m.timers[idx].at && pending.seq < m.timers[idx].seq) {
			idx = i
		}
	}
	if idx == -1 {
		return nil
	}
	next := m.timers[idx]
	m.timers = append(m.timers[:idx], m.timers[idx+1:]...)
	return next
}

// Frame runs the callbacks requested before this call with the current clock reading.
// Callbacks requested while the frame runs wait for the next Frame.
func (m *Manual) Frame() {
	m.mu.Lock()
	frames := m.frames
	m.frames = nil
	now := m.now
	m.mu.Unlock()
	for _, fn := range frames {
		fn(now)
	}
}

// FrameAt advances to t and runs a frame.
//
// Parameters:
//   - t: the clock reading of the frame
func (m *Manual) FrameAt(t time.Duration) {
	m.AdvanceTo(t)
	m.Frame()
}

// PendingTimers returns the number of scheduled, unfired timers.
func (m *Manual) PendingTimers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

// PendingFrames returns the number of callbacks waiting for the next frame.
func (m *Manual) PendingFrames() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.frames)
}
