package clock

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-controls/common"
)

// Realtime is a wall-clock Scheduler and FrameClock. Timer, frame and posted callbacks are
// submitted to a single-worker pool, so they run one at a time in submission order even
// though timers and the frame ticker fire on their own goroutines.
type Realtime struct {
	start time.Time

	// pool runs every callback; one worker keeps delivery serial.
	pool   worker.DynamicWorkerPool
	taskID atomic.Int64

	frameInterval time.Duration
	queueSize     int

	mu     sync.Mutex
	frames []FrameCallback

	quit      chan struct{}
	closeOnce sync.Once
}

var (
	_ Scheduler  = &Realtime{}
	_ FrameClock = &Realtime{}
)

// realtimeTimer guards against a callback that was already handed to the pool when Stop ran.
type realtimeTimer struct {
	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
	fired   bool
}

// NewRealtime creates a running Realtime clock. Call Close to stop the frame ticker.
//
// Parameters:
//   - options: functional options to configure the clock
//
// Returns:
//   - *Realtime: the clock
func NewRealtime(options ...RealtimeBuilderOption) *Realtime {
	r := &Realtime{
		start:         time.Now(),
		frameInterval: time.Second / 60,
		queueSize:     256,
		quit:          make(chan struct{}),
	}
	for _, opt := range options {
		opt(r)
	}
	r.pool = worker.NewDynamicWorkerPool(1, r.queueSize, time.Second)
	go r.handleFrames()
	return r
}

// Post runs fn on the clock's executor, after every previously posted callback.
//
// Parameters:
//   - fn: the callback
func (r *Realtime) Post(fn func()) {
	id := int(r.taskID.Add(1))
	r.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			defer func() {
				if rec := recover(); rec != nil {
					common.ComponentLogger("clock").Error("callback panicked", "task", id, "panic", rec)
				}
			}()
			fn()
			return nil, nil
		},
	})
}

// Do runs fn on the clock's executor and waits for its result.
// It must not be called from a callback already running on the executor.
//
// Parameters:
//   - fn: the callback
//
// Returns:
//   - error: the callback's error, or an error describing its panic
func (r *Realtime) Do(fn func() error) error {
	done := make(chan error, 1)
	r.Post(func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- fmt.Errorf("callback panicked: %v", rec)
			}
		}()
		done <- fn()
	})
	return <-done
}

func (r *Realtime) Now() time.Duration {
	return time.Since(r.start)
}

func (r *Realtime) AfterFunc(d time.Duration, fn func()) Timer {
	t := &realtimeTimer{}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timer = time.AfterFunc(d, func() {
		r.Post(func() {
			t.mu.Lock()
			if t.stopped {
				t.mu.Unlock()
				return
			}
			t.fired = true
			t.mu.Unlock()
			fn()
		})
	})
	return t
}

func (t *realtimeTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	t.timer.Stop()
	return true
}

func (r *Realtime) RequestAnimationFrame(fn FrameCallback) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, fn)
}

// handleFrames drains requested frame callbacks once per frame interval until Close.
func (r *Realtime) handleFrames() {
	ticker := time.NewTicker(r.frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.quit:
			return
		case <-ticker.C:
			r.mu.Lock()
			frames := r.frames
			r.frames = nil
			r.mu.Unlock()
			if len(frames) == 0 {
				continue
			}
			r.Post(func() {
				ts := r.Now()
				for _, fn := range frames {
					fn(ts)
				}
			})
		}
	}
}

// Close stops the frame ticker. Safe to call multiple times.
func (r *Realtime) Close() {
	r.closeOnce.Do(func() {
		close(r.quit)
	})
}
