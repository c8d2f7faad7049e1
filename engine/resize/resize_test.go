package resize

import (
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-controls/common"
	"github.com/Carmen-Shannon/oxy-controls/engine/clock"
	"github.com/Carmen-Shannon/oxy-controls/engine/dom"
	"github.com/Carmen-Shannon/oxy-controls/engine/host"
)

type stubHost struct {
	hasResize bool
	calls     [][]float64
}

func (h *stubHost) Container() bool { return true }

func (h *stubHost) Has(c host.Capability) bool { return c == host.Resize && h.hasResize }

func (h *stubHost) Call(c host.Capability, args ...float64) error {
	h.calls = append(h.calls, args)
	return nil
}

func newSurface(width, height float64) (*dom.MemoryDocument, *dom.MemoryElement, *dom.MemoryElement) {
	doc := dom.NewMemoryDocument()
	surface := dom.NewMemoryElement("canvas", dom.SurfaceID)
	container := dom.NewMemoryElement("div", dom.ContainerID).Append(surface)
	container.SetRect(dom.Rect{Width: width, Height: height})
	doc.Body().Append(container)
	return doc, surface, container
}

func TestRecomputeScalesByDevicePixelRatio(t *testing.T) {
	doc, surface, _ := newSurface(800, 600)
	h := &stubHost{hasResize: true}
	c := NewCoordinator(doc, clock.NewManual(), WithWindow(dom.NewMemoryWindow(2)), WithHost(h))

	c.Recompute()

	if w, hh := surface.IntProperty("width"), surface.IntProperty("height"); w != 1600 || hh != 1200 {
		t.Fatalf("backing size = %dx%d, want 1600x1200", w, hh)
	}
	if surface.Style("width") != "800px" || surface.Style("height") != "600px" {
		t.Fatalf("css size = %s x %s", surface.Style("width"), surface.Style("height"))
	}
	if len(h.calls) != 1 || h.calls[0][0] != 1600 || h.calls[0][1] != 1200 {
		t.Fatalf("host resize calls = %v", h.calls)
	}
	if got := c.Dimensions(); got != (common.Dimensions{Width: 1600, Height: 1200}) {
		t.Fatalf("Dimensions = %v", got)
	}
}

func TestRecomputeRoundsHalfUp(t *testing.T) {
	doc, surface, _ := newSurface(333.5, 201.25)
	c := NewCoordinator(doc, clock.NewManual(), WithWindow(dom.NewMemoryWindow(1.5)))

	c.Recompute()

	// 333.5 * 1.5 = 500.25, 201.25 * 1.5 = 301.875
	if w, h := surface.IntProperty("width"), surface.IntProperty("height"); w != 500 || h != 302 {
		t.Fatalf("backing size = %dx%d, want 500x302", w, h)
	}
	if surface.Style("width") != "333.5px" {
		t.Fatalf("css width = %s", surface.Style("width"))
	}
}

func TestRecomputeWithoutResizeCapability(t *testing.T) {
	doc, surface, _ := newSurface(640, 480)
	h := &stubHost{}
	c := NewCoordinator(doc, clock.NewManual(), WithHost(h))

	c.Recompute()

	if surface.IntProperty("width") != 640 {
		t.Fatalf("backing width = %d", surface.IntProperty("width"))
	}
	if len(h.calls) != 0 {
		t.Fatalf("host should not be called without the capability, got %v", h.calls)
	}
}

func TestRecomputeMissingElementsIsNoop(t *testing.T) {
	h := &stubHost{hasResize: true}
	c := NewCoordinator(dom.NewMemoryDocument(), clock.NewManual(), WithHost(h))

	c.Recompute()

	if len(h.calls) != 0 {
		t.Fatalf("expected no host calls, got %v", h.calls)
	}
	if !c.Dimensions().Empty() {
		t.Fatalf("expected empty dimensions, got %v", c.Dimensions())
	}
}

func TestResizeBurstCoalesced(t *testing.T) {
	doc, surface, container := newSurface(800, 600)
	clk := clock.NewManual()
	w := dom.NewMemoryWindow(1)
	h := &stubHost{hasResize: true}
	c := NewCoordinator(doc, clk, WithWindow(w), WithHost(h))
	c.Attach()

	sizes := []dom.Rect{
		{Width: 900, Height: 600},
		{Width: 1000, Height: 700},
		{Width: 1024, Height: 768},
	}
	for i, r := range sizes {
		container.SetRect(r)
		w.Dispatch(dom.EventResize)
		if i < len(sizes)-1 {
			clk.Advance(40 * time.Millisecond)
		}
	}

	if !c.Pending() {
		t.Fatal("expected a pending recompute during the burst")
	}
	clk.Advance(99 * time.Millisecond)
	if len(h.calls) != 0 {
		t.Fatalf("recompute fired before quiescence: %v", h.calls)
	}

	clk.Advance(time.Millisecond)
	if len(h.calls) != 1 {
		t.Fatalf("expected exactly one recompute, got %d", len(h.calls))
	}
	if h.calls[0][0] != 1024 || h.calls[0][1] != 768 {
		t.Fatalf("recompute used %v, want the last layout 1024x768", h.calls[0])
	}
	if surface.IntProperty("width") != 1024 {
		t.Fatalf("backing width = %d", surface.IntProperty("width"))
	}
	if c.Pending() {
		t.Fatal("pending token should clear after firing")
	}
	if clk.PendingTimers() != 0 {
		t.Fatalf("stale timers left behind: %d", clk.PendingTimers())
	}

	clk.Advance(time.Second)
	if len(h.calls) != 1 {
		t.Fatalf("unexpected extra recompute: %v", h.calls)
	}
}

func TestSeparateBurstsEachRecompute(t *testing.T) {
	doc, _, _ := newSurface(800, 600)
	clk := clock.NewManual()
	w := dom.NewMemoryWindow(1)
	h := &stubHost{hasResize: true}
	c := NewCoordinator(doc, clk, WithWindow(w), WithHost(h), WithDebounce(50*time.Millisecond))
	c.Attach()

	w.Dispatch(dom.EventResize)
	clk.Advance(60 * time.Millisecond)
	w.Dispatch(dom.EventResize)
	clk.Advance(60 * time.Millisecond)

	if len(h.calls) != 2 {
		t.Fatalf("expected one recompute per burst, got %d", len(h.calls))
	}
}

func TestDimensionsReadableWhileRecomputing(t *testing.T) {
	doc, _, container := newSurface(100, 100)
	rt := clock.NewRealtime()
	defer rt.Close()
	c := NewCoordinator(doc, rt, WithWindow(dom.NewMemoryWindow(2)))

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				_ = c.Dimensions()
				_ = c.Pending()
			}
		}
	}()

	for i := 1; i <= 200; i++ {
		width := float64(100 + i)
		if err := rt.Do(func() error {
			container.SetRect(dom.Rect{Width: width, Height: 100})
			c.Recompute()
			c.HandleResize()
			return nil
		}); err != nil {
			t.Fatalf("recompute %d: %v", i, err)
		}
	}
	close(stop)
	wg.Wait()

	if got := c.Dimensions(); got != (common.Dimensions{Width: 600, Height: 200}) {
		t.Fatalf("Dimensions = %v, want 600x200", got)
	}
}
