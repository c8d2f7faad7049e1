package controls

import "github.com/Carmen-Shannon/oxy-controls/engine/dom"

// RegistryBuilderOption is a functional option for configuring a registry.
// Use the With* functions to create options.
type RegistryBuilderOption func(r *registry)

// WithWindow sets the window used for the device pixel ratio and for presenting the performance summary.
//
// Parameters:
//   - w: the page window
//
// Returns:
//   - RegistryBuilderOption: option function to apply
func WithWindow(w dom.Window) RegistryBuilderOption {
	return func(r *registry) {
		r.window = w
	}
}

// WithFPSSource sets the function reporting the latest frame-rate estimate.
//
// Parameters:
//   - fn: the frame-rate source
//
// Returns:
//   - RegistryBuilderOption: option function to apply
func WithFPSSource(fn func() int) RegistryBuilderOption {
	return func(r *registry) {
		if fn != nil {
			r.fps = fn
		}
	}
}

// WithBackendProbe sets the function reporting rendering-backend availability.
//
// Parameters:
//   - fn: the availability probe
//
// Returns:
//   - RegistryBuilderOption: option function to apply
func WithBackendProbe(fn func() bool) RegistryBuilderOption {
	return func(r *registry) {
		if fn != nil {
			r.backend = fn
		}
	}
}

// WithSurfaceID sets the id of the surface reported in the performance summary.
//
// Parameters:
//   - id: the surface element id
//
// Returns:
//   - RegistryBuilderOption: option function to apply
func WithSurfaceID(id string) RegistryBuilderOption {
	return func(r *registry) {
		r.surfaceID = id
	}
}
