package panel

import "github.com/Carmen-Shannon/oxy-controls/engine/dom"

// ModelBuilderOption is a functional option for configuring a panel Model.
// Use the With* functions to create options.
type ModelBuilderOption func(m *Model)

// WithExecutor sets the function that runs widget interactions.
// Pass a realtime clock's Post so interactions share the page's executor.
//
// Parameters:
//   - post: the executor
//
// Returns:
//   - ModelBuilderOption: option function to apply
func WithExecutor(post func(func())) ModelBuilderOption {
	return func(m *Model) {
		if post != nil {
			m.post = post
		}
	}
}

// WithWindow sets the page window whose latest alert the panel shows.
//
// Parameters:
//   - w: the in-memory window
//
// Returns:
//   - ModelBuilderOption: option function to apply
func WithWindow(w *dom.MemoryWindow) ModelBuilderOption {
	return func(m *Model) {
		m.window = w
	}
}
