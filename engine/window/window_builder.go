package window

import (
	"time"

	"github.com/Carmen-Shannon/oxy-controls/engine/clock"
	"github.com/Carmen-Shannon/oxy-controls/engine/controls"
	"github.com/Carmen-Shannon/oxy-controls/engine/dom"
)

// WindowBuilderOption is a functional option for configuring an engineWindow.
// Use the With* functions to create options.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithMaxSize sets the maximum allowed window size.
//
// Parameters:
//   - width: maximum width in screen coordinates
//   - height: maximum height in screen coordinates
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMaxSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.maxWidth = width
		w.maxHeight = height
	}
}

// WithMinSize sets the minimum allowed window size.
//
// Parameters:
//   - width: minimum width in screen coordinates
//   - height: minimum height in screen coordinates
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMinSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minWidth = width
		w.minHeight = height
	}
}

// WithWidth sets the initial window width.
//
// Parameters:
//   - width: initial width in screen coordinates
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithWidth(width int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.width = width
	}
}

// WithHeight sets the initial window height.
//
// Parameters:
//   - height: initial height in screen coordinates
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithHeight(height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.height = height
	}
}

// WithDocument sets the page document whose surface container tracks the window size.
//
// Parameters:
//   - doc: the in-memory page document
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithDocument(doc *dom.MemoryDocument) WindowBuilderOption {
	return func(w *engineWindow) {
		w.doc = doc
	}
}

// WithContainerID sets the id of the surface container sized to the window.
//
// Parameters:
//   - id: the container id
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithContainerID(id string) WindowBuilderOption {
	return func(w *engineWindow) {
		if id != "" {
			w.containerID = id
		}
	}
}

// WithAccelerators makes each button binding's Key click that button.
//
// Parameters:
//   - bindings: the control declarations
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithAccelerators(bindings []controls.Binding) WindowBuilderOption {
	return func(w *engineWindow) {
		for key, id := range acceleratorsFor(bindings) {
			w.accelerators[key] = id
		}
	}
}

// WithExecutor sets the function that runs page callbacks: resize listeners, frames and accelerator clicks.
// Pass a realtime clock's Post to keep them on the page's single executor.
//
// Parameters:
//   - post: the executor
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithExecutor(post func(func())) WindowBuilderOption {
	return func(w *engineWindow) {
		if post != nil {
			w.post = post
		}
	}
}

// WithScheduler sets the clock used to timestamp animation frames.
//
// Parameters:
//   - s: the scheduler
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithScheduler(s clock.Scheduler) WindowBuilderOption {
	return func(w *engineWindow) {
		if s != nil {
			w.now = s.Now
		}
	}
}

// WithFrameRate caps the message loop, and with it the animation frame rate.
// Values <= 0 will be treated as the default (60).
//
// Parameters:
//   - fps: frames per second
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithFrameRate(fps float64) WindowBuilderOption {
	return func(w *engineWindow) {
		if fps <= 0 {
			fps = 60
		}
		w.frameInterval = time.Duration(float64(time.Second) / fps)
	}
}

// WithAlertHandler sets a function receiving alert messages in addition to the log.
//
// Parameters:
//   - fn: the handler
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithAlertHandler(fn func(msg string)) WindowBuilderOption {
	return func(w *engineWindow) {
		w.onAlert = fn
	}
}
