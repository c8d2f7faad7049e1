package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-controls/common"
	"github.com/Carmen-Shannon/oxy-controls/engine/clock"
	"github.com/Carmen-Shannon/oxy-controls/engine/controls"
	"github.com/Carmen-Shannon/oxy-controls/engine/dom"
	"github.com/Carmen-Shannon/oxy-controls/engine/host"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithModule sets the host module whose readiness the engine waits for and whose
// entry points the controls call.
//
// Parameters:
//   - m: the host module
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithModule(m host.Module) EngineBuilderOption {
	return func(e *engine) {
		e.module = m
	}
}

// WithDocument sets the page document holding the surface, the controls and the FPS display.
// Without it the engine works against an empty in-memory document.
//
// Parameters:
//   - doc: the document
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithDocument(doc dom.Document) EngineBuilderOption {
	return func(e *engine) {
		e.doc = doc
	}
}

// WithWindow sets the page window providing the device pixel ratio, resize events and alerts.
//
// Parameters:
//   - w: the window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w dom.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithScheduler sets the scheduler used for the readiness poll and the resize debounce.
//
// Parameters:
//   - s: the scheduler
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScheduler(s clock.Scheduler) EngineBuilderOption {
	return func(e *engine) {
		e.scheduler = s
	}
}

// WithFrameClock sets the animation-frame source driving the frame-rate sampler.
//
// Parameters:
//   - fc: the frame clock
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameClock(fc clock.FrameClock) EngineBuilderOption {
	return func(e *engine) {
		e.frames = fc
	}
}

// WithBindings replaces the default control declarations.
//
// Parameters:
//   - bindings: the declarations bound on StateBound
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithBindings(bindings []controls.Binding) EngineBuilderOption {
	return func(e *engine) {
		e.bindings = bindings
	}
}

// WithRequired replaces the capability set that must resolve before binding.
// An empty list keeps the default.
//
// Parameters:
//   - caps: the required capabilities
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRequired(caps ...host.Capability) EngineBuilderOption {
	return func(e *engine) {
		if len(caps) > 0 {
			e.requiredCaps = caps
		}
	}
}

// WithPollInterval sets the readiness poll interval.
// Values <= 0 will be treated as the default (100ms).
//
// Parameters:
//   - d: the interval
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithPollInterval(d time.Duration) EngineBuilderOption {
	return func(e *engine) {
		if d <= 0 {
			d = DefaultPollInterval
		}
		e.pollInterval = d
	}
}

// WithResizeDebounce sets the resize quiescence delay.
//
// Parameters:
//   - d: the delay
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithResizeDebounce(d time.Duration) EngineBuilderOption {
	return func(e *engine) {
		e.debounce = d
	}
}

// WithSampleWindow sets the frame-rate sampling window.
//
// Parameters:
//   - d: the window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSampleWindow(d time.Duration) EngineBuilderOption {
	return func(e *engine) {
		e.sampleWindow = d
	}
}

// WithBackendProbe sets the rendering-backend availability check reported by the diagnostic summary.
//
// Parameters:
//   - fn: the probe
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithBackendProbe(fn func() bool) EngineBuilderOption {
	return func(e *engine) {
		if fn != nil {
			e.backendProbe = fn
		}
	}
}

// WithSurface sets the ids of the rendering surface, its sizing container and the frame-rate display.
// Empty ids keep their defaults.
//
// Parameters:
//   - surfaceID: the surface id
//   - containerID: the container id
//   - fpsID: the frame-rate display id
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSurface(surfaceID, containerID, fpsID string) EngineBuilderOption {
	return func(e *engine) {
		e.surfaceID = common.Coalesce(surfaceID, e.surfaceID)
		e.containerID = common.Coalesce(containerID, e.containerID)
		e.fpsID = common.Coalesce(fpsID, e.fpsID)
	}
}
