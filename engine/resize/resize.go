// Package resize keeps the rendering surface's backing resolution in step with its container
// and tells the host about every change, coalescing bursts of viewport resize events.
package resize

import (
	"log/slog"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-controls/common"
	"github.com/Carmen-Shannon/oxy-controls/engine/clock"
	"github.com/Carmen-Shannon/oxy-controls/engine/dom"
	"github.com/Carmen-Shannon/oxy-controls/engine/host"
)

// DefaultDebounce is the quiescence delay between the last resize event of a burst and the recompute.
const DefaultDebounce = 100 * time.Millisecond

// Coordinator owns the surface dimensions.
type Coordinator interface {
	// Recompute reads the container's layout box and the device pixel ratio, sets the surface's
	// backing size to layout × ratio (rounded half up) and its CSS size to the layout size, and
	// pushes the backing size to the host if it exports the resize capability.
	// Does nothing if the surface or its container is absent.
	Recompute()

	// HandleResize schedules Recompute after the debounce delay, cancelling any pending one.
	HandleResize()

	// Attach registers HandleResize as the window's resize listener.
	Attach()

	// Dimensions returns the backing size of the last recompute.
	//
	// Returns:
	//   - common.Dimensions: the backing size in device pixels, zero before the first recompute
	Dimensions() common.Dimensions

	// Pending reports whether a debounced recompute is scheduled.
	//
	// Returns:
	//   - bool: true if a recompute is waiting for quiescence
	Pending() bool
}

// coordinator implements Coordinator.
type coordinator struct {
	doc       dom.Document
	window    dom.Window
	host      host.Host
	scheduler clock.Scheduler

	debounce    time.Duration
	surfaceID   string
	containerID string

	// mu guards dims and pending, which are read from outside the page's executor.
	mu   sync.RWMutex
	dims common.Dimensions

	// pending is the single outstanding debounced recompute; a new event replaces it.
	pending clock.Timer

	logger *slog.Logger
}

var _ Coordinator = &coordinator{}

// NewCoordinator creates a Coordinator.
//
// Parameters:
//   - doc: the page document holding the surface and its container
//   - scheduler: the scheduler used for the debounce timer
//   - options: functional options to configure the coordinator
//
// Returns:
//   - Coordinator: the coordinator
func NewCoordinator(doc dom.Document, scheduler clock.Scheduler, options ...CoordinatorBuilderOption) Coordinator {
	c := &coordinator{
		doc:         doc,
		scheduler:   scheduler,
		debounce:    DefaultDebounce,
		surfaceID:   dom.SurfaceID,
		containerID: dom.ContainerID,
		logger:      common.ComponentLogger("resize"),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *coordinator) Recompute() {
	surface := c.doc.GetElementByID(c.surfaceID)
	container := c.doc.GetElementByID(c.containerID)
	if surface == nil || container == nil {
		return
	}

	rect := container.BoundingClientRect()
	ratio := 1.0
	if c.window != nil {
		ratio = c.window.DevicePixelRatio()
	}

	dims := common.Dimensions{
		Width:  common.ScaleToPixels(rect.Width, ratio),
		Height: common.ScaleToPixels(rect.Height, ratio),
	}
	surface.SetIntProperty("width", dims.Width)
	surface.SetIntProperty("height", dims.Height)
	surface.SetStyle("width", common.FormatNumber(rect.Width)+"px")
	surface.SetStyle("height", common.FormatNumber(rect.Height)+"px")
	c.mu.Lock()
	c.dims = dims
	c.mu.Unlock()

	c.logger.Info("surface resized", "width", dims.Width, "height", dims.Height, "dpr", ratio)

	if c.host == nil || !c.host.Has(host.Resize) {
		return
	}
	if err := c.host.Call(host.Resize, float64(dims.Width), float64(dims.Height)); err != nil {
		c.logger.Error("host resize failed", "error", err)
	}
}

func (c *coordinator) HandleResize() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != nil {
		c.pending.Stop()
	}
	var t clock.Timer
	t = c.scheduler.AfterFunc(c.debounce, func() {
		c.mu.Lock()
		if c.pending == t {
			c.pending = nil
		}
		c.mu.Unlock()
		c.Recompute()
	})
	c.pending = t
}

func (c *coordinator) Attach() {
	if c.window == nil {
		return
	}
	c.window.AddEventListener(dom.EventResize, c.HandleResize)
}

func (c *coordinator) Dimensions() common.Dimensions {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dims
}

func (c *coordinator) Pending() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pending != nil
}
