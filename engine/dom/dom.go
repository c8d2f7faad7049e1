// Package dom is the page contract the controls consume: element lookup, element state,
// layout queries and event listeners. The browser binds it to the real DOM; tests, the
// terminal panel and the native page use the in-memory implementation.
package dom

// Event names dispatched to listeners.
const (
	EventClick  = "click"
	EventInput  = "input"
	EventResize = "resize"
	EventLoad   = "load"
)

// Ids and classes of the page markup contract.
const (
	// SurfaceID is the id of the rendering surface (a canvas).
	SurfaceID = "canvas"
	// ContainerID is the id of the element whose layout box sizes the surface.
	ContainerID = "canvas-container"
	// FPSCounterID is the id of the frame-rate display.
	FPSCounterID = "fps-counter"
	// SliderValueClass marks the value display next to a slider, inside the same parent.
	SliderValueClass = "slider-value"
)

// Listener is an event callback. Listeners read element state themselves.
type Listener func()

// Rect is a layout box in CSS pixels.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Element is a single node of the page.
type Element interface {
	// ID returns the element id, or "" if it has none.
	ID() string

	// Value returns the current form value (sliders report their position as a decimal string).
	Value() string

	// SetValue sets the form value.
	SetValue(v string)

	// TextContent returns the element's text.
	TextContent() string

	// SetTextContent replaces the element's text.
	SetTextContent(s string)

	// Style returns an inline style property, e.g. "width".
	Style(property string) string

	// SetStyle sets an inline style property.
	SetStyle(property, value string)

	// IntProperty returns an integer DOM property, e.g. a canvas "width".
	IntProperty(name string) int

	// SetIntProperty sets an integer DOM property.
	SetIntProperty(name string, v int)

	// BoundingClientRect returns the element's current layout box.
	BoundingClientRect() Rect

	// ParentElement returns the parent, or nil for a detached or root element.
	ParentElement() Element

	// QuerySelector returns the first descendant matching a selector, or nil.
	QuerySelector(selector string) Element

	// AddEventListener attaches a listener. Attaching twice attaches two listeners.
	AddEventListener(event string, fn Listener)
}

// Document is the element lookup surface of the page.
type Document interface {
	// GetElementByID returns the element with the id, or nil.
	GetElementByID(id string) Element

	// QuerySelector returns the first element matching a selector, or nil.
	QuerySelector(selector string) Element
}

// Window is the viewport surface of the page.
type Window interface {
	// DevicePixelRatio returns the ratio of device pixels to CSS pixels.
	DevicePixelRatio() float64

	// AddEventListener attaches a window-level listener, e.g. for EventResize or EventLoad.
	AddEventListener(event string, fn Listener)

	// Alert presents a message to the user.
	Alert(msg string)
}
