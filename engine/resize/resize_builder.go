package resize

import (
	"time"

	"github.com/Carmen-Shannon/oxy-controls/engine/dom"
	"github.com/Carmen-Shannon/oxy-controls/engine/host"
)

// CoordinatorBuilderOption is a functional option for configuring a coordinator.
// Use the With* functions to create options.
type CoordinatorBuilderOption func(c *coordinator)

// WithWindow sets the window supplying the device pixel ratio and resize events.
// Without a window the ratio is 1 and Attach does nothing.
//
// Parameters:
//   - w: the page window
//
// Returns:
//   - CoordinatorBuilderOption: option function to apply
func WithWindow(w dom.Window) CoordinatorBuilderOption {
	return func(c *coordinator) {
		c.window = w
	}
}

// WithHost sets the host notified of new backing sizes.
//
// Parameters:
//   - h: the host module
//
// Returns:
//   - CoordinatorBuilderOption: option function to apply
func WithHost(h host.Host) CoordinatorBuilderOption {
	return func(c *coordinator) {
		c.host = h
	}
}

// WithDebounce sets the quiescence delay. Values <= 0 are treated as the default.
//
// Parameters:
//   - d: the delay
//
// Returns:
//   - CoordinatorBuilderOption: option function to apply
func WithDebounce(d time.Duration) CoordinatorBuilderOption {
	return func(c *coordinator) {
		if d <= 0 {
			d = DefaultDebounce
		}
		c.debounce = d
	}
}

// WithElementIDs sets the ids of the surface and its sizing container.
//
// Parameters:
//   - surfaceID: the surface id
//   - containerID: the container id
//
// Returns:
//   - CoordinatorBuilderOption: option function to apply
func WithElementIDs(surfaceID, containerID string) CoordinatorBuilderOption {
	return func(c *coordinator) {
		if surfaceID != "" {
			c.surfaceID = surfaceID
		}
		if containerID != "" {
			c.containerID = containerID
		}
	}
}
