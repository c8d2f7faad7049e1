package profiler

import (
	"time"

	"github.com/Carmen-Shannon/oxy-controls/engine/clock"
	"github.com/Carmen-Shannon/oxy-controls/engine/dom"
)

// SamplerBuilderOption is a functional option for configuring a sampler.
// Use the With* functions to create options.
type SamplerBuilderOption func(s *sampler)

// WithDisplay sets the document holding the frame-rate display and the display's id.
// An empty id keeps the default.
//
// Parameters:
//   - doc: the page document
//   - id: the display element id
//
// Returns:
//   - SamplerBuilderOption: option function to apply
func WithDisplay(doc dom.Document, id string) SamplerBuilderOption {
	return func(s *sampler) {
		s.doc = doc
		if id != "" {
			s.displayID = id
		}
	}
}

// WithScheduler sets the clock whose reading starts the first sampling window.
// Without it the first window starts at zero.
//
// Parameters:
//   - sched: the scheduler
//
// Returns:
//   - SamplerBuilderOption: option function to apply
func WithScheduler(sched clock.Scheduler) SamplerBuilderOption {
	return func(s *sampler) {
		if sched != nil {
			s.now = sched.Now
		}
	}
}

// WithWindow sets the sampling window. Values <= 0 are treated as the default (1s).
//
// Parameters:
//   - d: the window
//
// Returns:
//   - SamplerBuilderOption: option function to apply
func WithWindow(d time.Duration) SamplerBuilderOption {
	return func(s *sampler) {
		if d <= 0 {
			d = DefaultWindow
		}
		s.updateInterval = d
	}
}
