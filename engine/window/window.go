// Package window hosts the page natively: a GLFW window stands in for the browser viewport,
// supplying the device pixel ratio, resize events, animation frames and keyboard accelerators.
package window

import (
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-controls/common"
	"github.com/Carmen-Shannon/oxy-controls/engine/clock"
	"github.com/Carmen-Shannon/oxy-controls/engine/controls"
	"github.com/Carmen-Shannon/oxy-controls/engine/dom"
)

// Window is a native page viewport. It serves as the page's dom.Window and as its frame clock.
type Window interface {
	dom.Window
	clock.FrameClock

	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetKeyDownCallback sets the callback for key press events.
	// Accelerators still click their buttons when a callback is set.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Each iteration polls events, runs the update callback
	// and delivers one animation frame, limited to the configured frame rate.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and the page-facing event plumbing.
type engineWindow struct {
	mu sync.Mutex

	// title is the window title displayed in the title bar.
	title string

	// maxWidth, maxHeight, minWidth and minHeight bound the window size during resize.
	maxWidth  int
	maxHeight int
	minWidth  int
	minHeight int

	// width and height are the current framebuffer size in pixels.
	width  int
	height int

	// scale is the content scale, reported to the page as the device pixel ratio.
	scale float64

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// doc is the page document; its container tracks the window's layout size.
	doc         *dom.MemoryDocument
	containerID string

	// accelerators maps key codes to the ids of the buttons they click.
	accelerators map[int]string

	// post runs page callbacks on the page's executor.
	post func(func())

	// now timestamps animation frames.
	now func() time.Duration

	frameInterval time.Duration
	frames        []clock.FrameCallback
	listeners     map[string][]dom.Listener

	onUpdate  func()
	onKeyDown func(keyCode uint32)
	onAlert   func(msg string)

	logger *slog.Logger
}

var _ Window = &engineWindow{}

// NewWindow creates and spawns a native window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the window, already shown
//   - error: error if the platform window cannot be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := newEngineWindow(options...)
	if err := newPlatformWindow(w); err != nil {
		return nil, err
	}
	w.syncLayout()
	return w, nil
}

// newEngineWindow applies the options without touching the platform.
func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	start := time.Now()
	w := &engineWindow{
		title:         "Alice2",
		maxWidth:      3840,
		maxHeight:     2160,
		minWidth:      600,
		minHeight:     200,
		width:         1280,
		height:        720,
		scale:         1,
		containerID:   dom.ContainerID,
		accelerators:  make(map[int]string),
		post:          func(fn func()) { fn() },
		now:           func() time.Duration { return time.Since(start) },
		frameInterval: time.Second / 60,
		listeners:     make(map[string][]dom.Listener),
		logger:        common.ComponentLogger("window"),
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		started := time.Now()
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}
		w.runFrame()

		if remaining := w.frameInterval - time.Since(started); remaining > 0 {
			time.Sleep(remaining)
		} else {
			runtime.Gosched()
		}
	}
}

func (w *engineWindow) Width() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width
}

func (w *engineWindow) Height() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.height
}

func (w *engineWindow) DevicePixelRatio() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.scale
}

func (w *engineWindow) AddEventListener(event string, fn dom.Listener) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners[event] = append(w.listeners[event], fn)
}

func (w *engineWindow) Alert(msg string) {
	w.logger.Info("alert", "message", msg)
	if w.onAlert != nil {
		w.onAlert(msg)
	}
}

func (w *engineWindow) RequestAnimationFrame(fn clock.FrameCallback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.frames = append(w.frames, fn)
}

// runFrame delivers the callbacks requested since the previous frame.
func (w *engineWindow) runFrame() {
	w.mu.Lock()
	frames := w.frames
	w.frames = nil
	w.mu.Unlock()
	if len(frames) == 0 {
		return
	}

	ts := w.now()
	w.post(func() {
		for _, fn := range frames {
			fn(ts)
		}
	})
}

// handleFramebufferSize records a new framebuffer size and notifies the page.
func (w *engineWindow) handleFramebufferSize(width, height int) {
	w.mu.Lock()
	w.width = width
	w.height = height
	w.mu.Unlock()
	w.syncLayout()
	w.dispatch(dom.EventResize)
}

// handleContentScale records a new content scale, e.g. after moving to another monitor.
func (w *engineWindow) handleContentScale(scale float64) {
	if scale <= 0 {
		scale = 1
	}
	w.mu.Lock()
	w.scale = scale
	w.mu.Unlock()
	w.syncLayout()
	w.dispatch(dom.EventResize)
}

// handleKeyDown runs the key callback and clicks the accelerator's button, if any.
func (w *engineWindow) handleKeyDown(key int) {
	if w.onKeyDown != nil {
		w.onKeyDown(uint32(key))
	}
	id, ok := w.accelerators[key]
	if !ok || w.doc == nil {
		return
	}
	w.post(func() {
		if button := w.doc.Element(id); button != nil {
			button.Click()
		}
	})
}

// syncLayout sets the container's layout box to the framebuffer size in CSS pixels.
func (w *engineWindow) syncLayout() {
	if w.doc == nil {
		return
	}
	container := w.doc.Element(w.containerID)
	if container == nil {
		return
	}
	w.mu.Lock()
	rect := dom.Rect{
		Width:  float64(w.width) / w.scale,
		Height: float64(w.height) / w.scale,
	}
	w.mu.Unlock()
	container.SetRect(rect)
}

// dispatch posts every listener attached for an event.
func (w *engineWindow) dispatch(event string) {
	w.mu.Lock()
	listeners := append([]dom.Listener(nil), w.listeners[event]...)
	w.mu.Unlock()
	for _, fn := range listeners {
		w.post(fn)
	}
}

// acceleratorsFor maps each binding's key to its widget id.
func acceleratorsFor(bindings []controls.Binding) map[int]string {
	keys := make(map[int]string)
	for _, b := range bindings {
		if b.Key == 0 || b.Kind != controls.KindButton {
			continue
		}
		keys[b.Key] = strings.TrimPrefix(b.Selector, "#")
	}
	return keys
}
