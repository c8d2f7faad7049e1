package controls

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-controls/common"
	"github.com/Carmen-Shannon/oxy-controls/engine/dom"
	"github.com/Carmen-Shannon/oxy-controls/engine/host"
)

type call struct {
	c    host.Capability
	args []float64
}

type stubHost struct {
	exports map[host.Capability]bool
	calls   []call
	err     error
}

func (h *stubHost) Container() bool { return true }

func (h *stubHost) Has(c host.Capability) bool { return h.exports[c] }

func (h *stubHost) Call(c host.Capability, args ...float64) error {
	h.calls = append(h.calls, call{c: c, args: args})
	return h.err
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	orig := common.Logger()
	t.Cleanup(func() { common.SetLogger(orig) })
	var buf bytes.Buffer
	common.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return &buf
}

func newPage() *dom.MemoryDocument {
	doc := dom.NewMemoryDocument()
	BuildMarkup(doc, DefaultBindings())
	return doc
}

func sliderDisplay(t *testing.T, doc *dom.MemoryDocument, id string) dom.Element {
	t.Helper()
	slider := doc.Element(id)
	if slider == nil {
		t.Fatalf("slider %s missing", id)
	}
	display := slider.ParentElement().QuerySelector("." + dom.SliderValueClass)
	if display == nil {
		t.Fatalf("display for %s missing", id)
	}
	return display
}

func TestSliderDefaultDisplayedOnBind(t *testing.T) {
	doc := newPage()
	r := NewRegistry(doc, &stubHost{})

	if !r.BindSlider("#brightness-slider", func(float64) error { return nil }, 0.2, nil) {
		t.Fatal("expected slider to bind")
	}

	if got := sliderDisplay(t, doc, "brightness-slider").TextContent(); got != "0.2" {
		t.Fatalf("display = %q, want 0.2", got)
	}
	if got := doc.Element("brightness-slider").Value(); got != "0.2" {
		t.Fatalf("slider value = %q, want 0.2", got)
	}
}

func TestSliderFormatterOnBindAndInput(t *testing.T) {
	doc := newPage()
	r := NewRegistry(doc, &stubHost{})

	var got []float64
	r.BindSlider("#fov-slider", func(v float64) error {
		got = append(got, v)
		return nil
	}, 45, func(v float64) string { return common.FormatNumber(v) + "°" })

	display := sliderDisplay(t, doc, "fov-slider")
	if display.TextContent() != "45°" {
		t.Fatalf("display on bind = %q", display.TextContent())
	}

	slider := doc.Element("fov-slider")
	slider.Input("60")
	if display.TextContent() != "60°" {
		t.Fatalf("display after input = %q", display.TextContent())
	}
	slider.Input("72.5")
	if display.TextContent() != "72.5°" {
		t.Fatalf("display after second input = %q", display.TextContent())
	}
	if len(got) != 2 || got[0] != 60 || got[1] != 72.5 {
		t.Fatalf("callback values = %v", got)
	}
}

func TestSliderDisplayUpdatedWhenCallbackFails(t *testing.T) {
	buf := captureLogs(t)
	doc := newPage()
	r := NewRegistry(doc, &stubHost{})

	r.BindSlider("#point-size-slider", func(float64) error { panic("host crashed") }, 5, nil)
	doc.Element("point-size-slider").Input("7")

	if got := sliderDisplay(t, doc, "point-size-slider").TextContent(); got != "7" {
		t.Fatalf("display = %q, want 7", got)
	}
	if !strings.Contains(buf.String(), "selector=#point-size-slider") {
		t.Fatalf("expected failure logged with selector, got %q", buf.String())
	}
}

func TestButtonFailureIsolated(t *testing.T) {
	buf := captureLogs(t)
	doc := newPage()
	r := NewRegistry(doc, &stubHost{})

	r.BindButton("#clear-scene", func() error { return errors.New("boom") })
	clicks := 0
	r.BindButton("#reset-camera", func() error {
		clicks++
		return nil
	})

	doc.Element("clear-scene").Click()
	doc.Element("reset-camera").Click()
	doc.Element("clear-scene").Click()
	doc.Element("reset-camera").Click()

	if clicks != 2 {
		t.Fatalf("second button clicks = %d, want 2", clicks)
	}
	out := buf.String()
	if strings.Count(out, "selector=#clear-scene") != 2 {
		t.Fatalf("expected two logged failures for #clear-scene, got %q", out)
	}
	if !strings.Contains(out, "error=boom") {
		t.Fatalf("expected error text in log, got %q", out)
	}
}

func TestBindMissingWidget(t *testing.T) {
	doc := dom.NewMemoryDocument()
	r := NewRegistry(doc, &stubHost{})

	if r.BindButton("#nope", func() error { return nil }) {
		t.Fatal("expected missing button to be skipped")
	}
	if r.BindSlider("#nope", func(float64) error { return nil }, 1, nil) {
		t.Fatal("expected missing slider to be skipped")
	}
	if len(r.Bound()) != 0 {
		t.Fatalf("Bound = %v", r.Bound())
	}
}

func TestBindAllGuardsEachCall(t *testing.T) {
	doc := newPage()
	h := &stubHost{exports: map[host.Capability]bool{host.AddTestGeometry: true}}
	r := NewRegistry(doc, h)

	if n := r.BindAll(DefaultBindings()); n != len(DefaultBindings()) {
		t.Fatalf("BindAll bound %d widgets", n)
	}

	doc.Element("fov-slider").Input("90")
	doc.Element("add-test-geometry").Click()
	if len(h.calls) != 1 || h.calls[0].c != host.AddTestGeometry {
		t.Fatalf("expected only add_test_geometry to be called, got %+v", h.calls)
	}

	// The capability appears later; the next interaction reaches the host.
	h.exports[host.SetFOV] = true
	doc.Element("fov-slider").Input("75")
	last := h.calls[len(h.calls)-1]
	if last.c != host.SetFOV || len(last.args) != 1 || last.args[0] != 75 {
		t.Fatalf("unexpected last call %+v", last)
	}
	if got := sliderDisplay(t, doc, "fov-slider").TextContent(); got != "75°" {
		t.Fatalf("fov display = %q", got)
	}
}

func TestPerformanceInfo(t *testing.T) {
	doc := newPage()
	doc.Element(dom.SurfaceID).SetIntProperty("width", 1600)
	doc.Element(dom.SurfaceID).SetIntProperty("height", 1200)
	w := dom.NewMemoryWindow(2)

	r := NewRegistry(doc, &stubHost{},
		WithWindow(w),
		WithFPSSource(func() int { return 60 }),
		WithBackendProbe(func() bool { return true }),
	)
	r.BindAll(DefaultBindings())
	doc.Element("performance-info").Click()

	alerts := w.Alerts()
	if len(alerts) != 1 {
		t.Fatalf("expected one alert, got %d", len(alerts))
	}
	for _, want := range []string{`"fps": 60`, `"width": 1600`, `"height": 1200`, `"devicePixelRatio": 2`, `"webgpu": "Available"`} {
		if !strings.Contains(alerts[0], want) {
			t.Errorf("alert missing %s:\n%s", want, alerts[0])
		}
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"0.5", 0.5},
		{" 45", 45},
		{"12px", 12},
		{"-3.25e1", -32.5},
		{"5.", 5},
		{".5", 0.5},
		{"+7", 7},
		{"1e", 1},
		{"2e+", 2},
		{"0x10", 0},
		{"1_000", 1},
		{"Infinity", math.Inf(1)},
		{"-Infinityx", math.Inf(-1)},
		{"1e400", math.Inf(1)},
	}
	for _, tt := range tests {
		if got := parseFloat(tt.in); got != tt.want {
			t.Errorf("parseFloat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	for _, in := range []string{"abc", "", "-", ".", "inf", "nan", "NaN", "Inf", "e5"} {
		if got := parseFloat(in); !math.IsNaN(got) {
			t.Errorf("parseFloat(%q) = %v, want NaN", in, got)
		}
	}
}
