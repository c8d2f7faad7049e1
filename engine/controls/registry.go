// Package controls binds page widgets to host module calls. Each widget is bound once for the
// page session; a failing callback is caught at the widget boundary and never affects its siblings.
package controls

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/Carmen-Shannon/oxy-controls/common"
	"github.com/Carmen-Shannon/oxy-controls/engine/dom"
	"github.com/Carmen-Shannon/oxy-controls/engine/host"
)

// Registry attaches interactive controls to the page.
type Registry interface {
	// BindButton attaches a click listener that invokes fn inside the isolating boundary.
	// Calling it twice for one widget attaches two listeners.
	//
	// Parameters:
	//   - selector: the widget selector
	//   - fn: the callback
	//
	// Returns:
	//   - bool: false if the widget is absent or fn is nil, leaving nothing bound
	BindButton(selector string, fn func() error) bool

	// BindSlider sets the widget to defaultValue, renders the formatted default into the adjacent
	// value display, and attaches an input listener. On every input the value is parsed as a
	// float, the display is updated, and only then fn is invoked inside the isolating boundary.
	//
	// Parameters:
	//   - selector: the widget selector
	//   - fn: the callback receiving the parsed value
	//   - defaultValue: the initial value
	//   - format: the display formatter, or nil for DefaultFormatter
	//
	// Returns:
	//   - bool: false if the widget is absent or fn is nil, leaving nothing bound
	BindSlider(selector string, fn func(v float64) error, defaultValue float64, format Formatter) bool

	// BindAll binds a set of declarative bindings. Host calls are guarded per call:
	// a binding whose capability is absent when triggered does nothing.
	//
	// Parameters:
	//   - bindings: the declarations
	//
	// Returns:
	//   - int: the number of widgets bound
	BindAll(bindings []Binding) int

	// Bound returns the selectors bound so far, in binding order.
	//
	// Returns:
	//   - []string: the selectors
	Bound() []string

	// PerformanceInfo captures the current diagnostic summary.
	//
	// Returns:
	//   - PerformanceInfo: the summary
	PerformanceInfo() PerformanceInfo

	// ShowPerformanceInfo presents the diagnostic summary through the window.
	ShowPerformanceInfo()
}

// registry implements Registry.
type registry struct {
	doc    dom.Document
	window dom.Window
	host   host.Host

	// fps returns the latest frame-rate estimate for the diagnostic summary.
	fps func() int

	// backend reports rendering-backend availability for the diagnostic summary.
	backend func() bool

	surfaceID string
	bound     []string
	logger    *slog.Logger
}

var _ Registry = &registry{}

// NewRegistry creates a Registry over a document and host.
//
// Parameters:
//   - doc: the page document
//   - h: the host module
//   - options: functional options to configure the registry
//
// Returns:
//   - Registry: the registry
func NewRegistry(doc dom.Document, h host.Host, options ...RegistryBuilderOption) Registry {
	r := &registry{
		doc:       doc,
		host:      h,
		fps:       func() int { return 0 },
		backend:   func() bool { return false },
		surfaceID: dom.SurfaceID,
		logger:    common.ComponentLogger("controls"),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// guard runs fn, catching both returned errors and panics and logging them with the selector.
func (r *registry) guard(selector string, fn func() error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("control callback panicked", "selector", selector, "error", fmt.Sprint(rec))
		}
	}()
	if err := fn(); err != nil {
		r.logger.Error("control callback failed", "selector", selector, "error", err)
	}
}

func (r *registry) BindButton(selector string, fn func() error) bool {
	button := r.doc.QuerySelector(selector)
	if button == nil || fn == nil {
		r.logger.Debug("button not bound", "selector", selector)
		return false
	}
	button.AddEventListener(dom.EventClick, func() {
		r.guard(selector, fn)
	})
	r.bound = append(r.bound, selector)
	return true
}

func (r *registry) BindSlider(selector string, fn func(v float64) error, defaultValue float64, format Formatter) bool {
	slider := r.doc.QuerySelector(selector)
	if slider == nil || fn == nil {
		r.logger.Debug("slider not bound", "selector", selector)
		return false
	}
	if format == nil {
		format = DefaultFormatter
	}

	var display dom.Element
	if parent := slider.ParentElement(); parent != nil {
		display = parent.QuerySelector("." + dom.SliderValueClass)
	}
	update := func(v float64) {
		if display != nil {
			display.SetTextContent(format(v))
		}
	}

	slider.SetValue(common.FormatNumber(defaultValue))
	update(defaultValue)

	slider.AddEventListener(dom.EventInput, func() {
		v := parseFloat(slider.Value())
		update(v)
		r.guard(selector, func() error { return fn(v) })
	})
	r.bound = append(r.bound, selector)
	return true
}

func (r *registry) BindAll(bindings []Binding) int {
	n := 0
	for _, b := range bindings {
		var ok bool
		switch b.Kind {
		case KindButton:
			ok = r.BindButton(b.Selector, r.buttonAction(b))
		case KindSlider:
			ok = r.BindSlider(b.Selector, r.sliderAction(b), b.Default, b.Formatter)
		default:
			r.logger.Warn("unknown control kind", "name", b.Name, "kind", b.Kind)
		}
		if ok {
			n++
		}
	}
	r.logger.Info("controls bound", "count", n, "declared", len(bindings))
	return n
}

func (r *registry) buttonAction(b Binding) func() error {
	if b.Action == ActionPerformanceInfo {
		return func() error {
			r.ShowPerformanceInfo()
			return nil
		}
	}
	return func() error {
		return r.callIfPresent(b.Capability)
	}
}

func (r *registry) sliderAction(b Binding) func(float64) error {
	return func(v float64) error {
		return r.callIfPresent(b.Capability, v)
	}
}

// callIfPresent checks the capability on every invocation; optional capabilities may appear late.
func (r *registry) callIfPresent(c host.Capability, args ...float64) error {
	if r.host == nil || !r.host.Has(c) {
		r.logger.Debug("capability absent, call skipped", "capability", c)
		return nil
	}
	return r.host.Call(c, args...)
}

func (r *registry) Bound() []string {
	return append([]string(nil), r.bound...)
}

// parseFloat follows the browser's parseFloat: leading whitespace is skipped, the longest
// decimal prefix (or Infinity) is used, and a value with no numeric prefix is NaN.
// Hexadecimal, "inf" and "nan" spellings are not numbers here.
func parseFloat(s string) float64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		if s[0] == '-' {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if digits > 0 || j > i+1 {
			digits += j - i - 1
			i = j
		}
	}
	if digits == 0 {
		return math.NaN()
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}

	// Out-of-range literals come back as ±Inf or 0 alongside ErrRange, which is what the browser yields.
	v, _ := strconv.ParseFloat(s[:i], 64)
	return v
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
