package clock

import "time"

// RealtimeBuilderOption is a functional option for configuring a Realtime clock.
// Use the With* functions to create options.
type RealtimeBuilderOption func(r *Realtime)

// WithFrameRate sets how often requested frame callbacks run.
// Values <= 0 are treated as the default (60Hz).
//
// Parameters:
//   - fps: target frames per second
//
// Returns:
//   - RealtimeBuilderOption: option function to apply
func WithFrameRate(fps float64) RealtimeBuilderOption {
	return func(r *Realtime) {
		if fps <= 0 {
			fps = 60
		}
		r.frameInterval = time.Duration(float64(time.Second) / fps)
	}
}

// WithQueueSize sets the executor queue capacity.
//
// Parameters:
//   - size: number of callbacks that may wait for the executor
//
// Returns:
//   - RealtimeBuilderOption: option function to apply
func WithQueueSize(size int) RealtimeBuilderOption {
	return func(r *Realtime) {
		if size > 0 {
			r.queueSize = size
		}
	}
}
