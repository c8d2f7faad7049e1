package controls

import (
	"github.com/Carmen-Shannon/oxy-controls/common"
	"github.com/Carmen-Shannon/oxy-controls/engine/host"
)

// Kind identifies the widget type of a Binding.
type Kind string

const (
	// KindButton is a clickable widget.
	KindButton Kind = "button"
	// KindSlider is a range input with an adjacent value display.
	KindSlider Kind = "slider"
)

// Action identifies what a Binding does when triggered.
type Action string

const (
	// ActionCall forwards the interaction to a host capability. This is the default.
	ActionCall Action = "call"
	// ActionPerformanceInfo presents the performance summary.
	ActionPerformanceInfo Action = "performance-info"
)

// Formatter renders a slider value for its display element. It must be pure.
type Formatter func(v float64) string

// DefaultFormatter renders a value the way a browser stringifies a number.
func DefaultFormatter(v float64) string {
	return common.FormatNumber(v)
}

// SuffixFormatter renders the value followed by a unit suffix, e.g. "45°".
//
// Parameters:
//   - suffix: the unit suffix
//
// Returns:
//   - Formatter: the formatter
func SuffixFormatter(suffix string) Formatter {
	return func(v float64) string {
		return common.FormatNumber(v) + suffix
	}
}

// Binding declares one widget-to-host wiring.
type Binding struct {
	// Name identifies the binding in logs and configuration.
	Name string

	// Kind is the widget type.
	Kind Kind

	// Selector locates the widget, e.g. "#fov-slider".
	Selector string

	// Label is the human-readable caption used when markup is generated.
	Label string

	// Action is what the binding does; empty means ActionCall.
	Action Action

	// Capability is the host entry point forwarded to for ActionCall.
	Capability host.Capability

	// Default is the initial slider value.
	Default float64

	// Min, Max and Step describe the slider range for generated markup.
	Min, Max, Step float64

	// Formatter renders the slider value; nil means DefaultFormatter.
	Formatter Formatter

	// Key is an optional keyboard accelerator (a GLFW key code) that clicks a button.
	Key int
}

// DefaultBindings returns the standard control panel: scene, rendering, camera and debug controls.
//
// Returns:
//   - []Binding: the bindings, in panel order
func DefaultBindings() []Binding {
	return []Binding{
		{Name: "add-test-geometry", Kind: KindButton, Selector: "#add-test-geometry", Label: "Add Test Geometry", Capability: host.AddTestGeometry, Key: common.KeyG},
		{Name: "clear-scene", Kind: KindButton, Selector: "#clear-scene", Label: "Clear Scene", Capability: host.ClearScene, Key: common.KeyC},
		{Name: "reset-camera", Kind: KindButton, Selector: "#reset-camera", Label: "Reset Camera", Capability: host.ResetCamera, Key: common.KeyR},
		{Name: "brightness", Kind: KindSlider, Selector: "#brightness-slider", Label: "Background Brightness", Capability: host.SetBackgroundBrightness, Default: 0.2, Min: 0, Max: 1, Step: 0.01},
		{Name: "point-size", Kind: KindSlider, Selector: "#point-size-slider", Label: "Point Size", Capability: host.SetPointSize, Default: 5.0, Min: 1, Max: 20, Step: 0.5},
		{Name: "line-width", Kind: KindSlider, Selector: "#line-width-slider", Label: "Line Width", Capability: host.SetLineWidth, Default: 1.0, Min: 0.5, Max: 10, Step: 0.5},
		{Name: "fov", Kind: KindSlider, Selector: "#fov-slider", Label: "Field of View", Capability: host.SetFOV, Default: 45, Min: 10, Max: 120, Step: 1, Formatter: SuffixFormatter("°")},
		{Name: "toggle-wireframe", Kind: KindButton, Selector: "#toggle-wireframe", Label: "Toggle Wireframe", Capability: host.ToggleWireframe, Key: common.KeyW},
		{Name: "performance-info", Kind: KindButton, Selector: "#performance-info", Label: "Performance Info", Action: ActionPerformanceInfo, Key: common.KeyI},
	}
}
