//go:build js && wasm

package dom

import (
	"syscall/js"
)

// browserElement wraps a DOM node.
type browserElement struct {
	v js.Value
}

var _ Element = browserElement{}

// wrap returns nil for null or undefined nodes so callers can compare against nil.
func wrap(v js.Value) Element {
	if v.IsUndefined() || v.IsNull() {
		return nil
	}
	return browserElement{v: v}
}

func (e browserElement) ID() string {
	return e.v.Get("id").String()
}

func (e browserElement) Value() string {
	return e.v.Get("value").String()
}

func (e browserElement) SetValue(v string) {
	e.v.Set("value", v)
}

func (e browserElement) TextContent() string {
	return e.v.Get("textContent").String()
}

func (e browserElement) SetTextContent(s string) {
	e.v.Set("textContent", s)
}

func (e browserElement) Style(property string) string {
	return e.v.Get("style").Get(property).String()
}

func (e browserElement) SetStyle(property, value string) {
	e.v.Get("style").Set(property, value)
}

func (e browserElement) IntProperty(name string) int {
	return e.v.Get(name).Int()
}

func (e browserElement) SetIntProperty(name string, v int) {
	e.v.Set(name, v)
}

func (e browserElement) BoundingClientRect() Rect {
	r := e.v.Call("getBoundingClientRect")
	return Rect{
		X:      r.Get("x").Float(),
		Y:      r.Get("y").Float(),
		Width:  r.Get("width").Float(),
		Height: r.Get("height").Float(),
	}
}

func (e browserElement) ParentElement() Element {
	return wrap(e.v.Get("parentElement"))
}

func (e browserElement) QuerySelector(selector string) Element {
	return wrap(e.v.Call("querySelector", selector))
}

// AddEventListener attaches a listener for the page lifetime; the js.Func is never released.
func (e browserElement) AddEventListener(event string, fn Listener) {
	e.v.Call("addEventListener", event, js.FuncOf(func(this js.Value, args []js.Value) any {
		fn()
		return nil
	}))
}

// browserDocument wraps the global document.
type browserDocument struct {
	v js.Value
}

var _ Document = browserDocument{}

// NewBrowserDocument returns the page's document.
//
// Returns:
//   - Document: the global document
func NewBrowserDocument() Document {
	return browserDocument{v: js.Global().Get("document")}
}

func (d browserDocument) GetElementByID(id string) Element {
	return wrap(d.v.Call("getElementById", id))
}

func (d browserDocument) QuerySelector(selector string) Element {
	return wrap(d.v.Call("querySelector", selector))
}

// browserWindow wraps the global window.
type browserWindow struct {
	v js.Value
}

var _ Window = browserWindow{}

// NewBrowserWindow returns the page's window.
//
// Returns:
//   - Window: the global window
func NewBrowserWindow() Window {
	return browserWindow{v: js.Global().Get("window")}
}

func (w browserWindow) DevicePixelRatio() float64 {
	ratio := w.v.Get("devicePixelRatio")
	if ratio.Type() != js.TypeNumber {
		return 1
	}
	return ratio.Float()
}

func (w browserWindow) AddEventListener(event string, fn Listener) {
	w.v.Call("addEventListener", event, js.FuncOf(func(this js.Value, args []js.Value) any {
		fn()
		return nil
	}))
}

func (w browserWindow) Alert(msg string) {
	w.v.Call("alert", msg)
}
