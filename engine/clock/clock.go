// Package clock abstracts timers and per-frame callbacks so the orchestrator, the resize
// debounce and the frame-rate sampler can run on the browser's event loop, on a wall-clock
// executor, or on virtual time in tests. Every implementation delivers callbacks one at a
// time: the model is single-threaded and cooperative.
package clock

import "time"

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop cancels the callback.
	//
	// Returns:
	//   - bool: true if the call stopped the timer, false if it had already fired or been stopped
	Stop() bool
}

// Scheduler runs callbacks after a delay.
type Scheduler interface {
	// Now returns the time elapsed since the clock's origin.
	//
	// Returns:
	//   - time.Duration: the current clock reading
	Now() time.Duration

	// AfterFunc schedules fn to run once after d.
	//
	// Parameters:
	//   - d: the delay
	//   - fn: the callback
	//
	// Returns:
	//   - Timer: handle used to cancel the callback
	AfterFunc(d time.Duration, fn func()) Timer
}

// FrameCallback receives the clock reading of the frame it runs in.
type FrameCallback func(timestamp time.Duration)

// FrameClock runs callbacks once on the next rendered frame, like requestAnimationFrame.
// A callback that wants to keep running reschedules itself.
type FrameClock interface {
	// RequestAnimationFrame schedules fn for the next frame.
	//
	// Parameters:
	//   - fn: the callback
	RequestAnimationFrame(fn FrameCallback)
}
