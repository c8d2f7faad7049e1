package dom

import (
	"strings"
	"sync"
)

// MemoryElement is an in-memory Element. State reads and writes are guarded so a renderer
// goroutine may read while the event loop mutates; listeners run outside the lock.
type MemoryElement struct {
	mu sync.RWMutex

	tag     string
	id      string
	classes []string

	value string
	text  string
	attrs map[string]string
	style map[string]string
	props map[string]int
	rect  Rect

	parent    *MemoryElement
	children  []*MemoryElement
	listeners map[string][]Listener
}

var _ Element = &MemoryElement{}

// NewMemoryElement creates a detached element.
//
// Parameters:
//   - tag: the tag name, e.g. "input"
//   - id: the element id, or ""
//   - classes: class names
//
// Returns:
//   - *MemoryElement: the element
func NewMemoryElement(tag, id string, classes ...string) *MemoryElement {
	return &MemoryElement{
		tag:       strings.ToLower(tag),
		id:        id,
		classes:   classes,
		attrs:     make(map[string]string),
		style:     make(map[string]string),
		props:     make(map[string]int),
		listeners: make(map[string][]Listener),
	}
}

// Append attaches children and returns the receiver for chaining.
func (e *MemoryElement) Append(children ...*MemoryElement) *MemoryElement {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, c := range children {
		c.mu.Lock()
		c.parent = e
		c.mu.Unlock()
		e.children = append(e.children, c)
	}
	return e
}

// Children returns a copy of the child list.
func (e *MemoryElement) Children() []*MemoryElement {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]*MemoryElement(nil), e.children...)
}

// Tag returns the lower-case tag name.
func (e *MemoryElement) Tag() string {
	return e.tag
}

// HasClass reports whether the element carries a class.
func (e *MemoryElement) HasClass(class string) bool {
	for _, c := range e.classes {
		if c == class {
			return true
		}
	}
	return false
}

// Attribute returns a markup attribute such as "min" or "max".
func (e *MemoryElement) Attribute(name string) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.attrs[name]
}

// SetAttribute sets a markup attribute.
func (e *MemoryElement) SetAttribute(name, value string) *MemoryElement {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.attrs[name] = value
	return e
}

// SetRect sets the layout box reported by BoundingClientRect.
func (e *MemoryElement) SetRect(r Rect) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rect = r
}

// ListenerCount returns the number of listeners attached for an event.
func (e *MemoryElement) ListenerCount(event string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.listeners[event])
}

// Dispatch runs every listener attached for an event, in attachment order.
func (e *MemoryElement) Dispatch(event string) {
	e.mu.RLock()
	listeners := append([]Listener(nil), e.listeners[event]...)
	e.mu.RUnlock()
	for _, fn := range listeners {
		fn()
	}
}

// Click dispatches EventClick.
func (e *MemoryElement) Click() {
	e.Dispatch(EventClick)
}

// Input sets the value and dispatches EventInput, the way a user dragging a slider does.
func (e *MemoryElement) Input(value string) {
	e.SetValue(value)
	e.Dispatch(EventInput)
}

func (e *MemoryElement) ID() string {
	return e.id
}

func (e *MemoryElement) Value() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.value
}

func (e *MemoryElement) SetValue(v string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.value = v
}

func (e *MemoryElement) TextContent() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.text
}

func (e *MemoryElement) SetTextContent(s string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.text = s
}

func (e *MemoryElement) Style(property string) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.style[property]
}

func (e *MemoryElement) SetStyle(property, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.style[property] = value
}

func (e *MemoryElement) IntProperty(name string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.props[name]
}

func (e *MemoryElement) SetIntProperty(name string, v int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.props[name] = v
}

func (e *MemoryElement) BoundingClientRect() Rect {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.rect
}

func (e *MemoryElement) ParentElement() Element {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.parent == nil {
		return nil
	}
	return e.parent
}

func (e *MemoryElement) QuerySelector(selector string) Element {
	if found := e.find(selector); found != nil {
		return found
	}
	return nil
}

func (e *MemoryElement) AddEventListener(event string, fn Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners[event] = append(e.listeners[event], fn)
}

// find walks descendants depth-first and returns the first match.
func (e *MemoryElement) find(selector string) *MemoryElement {
	for _, c := range e.Children() {
		if c.matches(selector) {
			return c
		}
		if found := c.find(selector); found != nil {
			return found
		}
	}
	return nil
}

// matches supports the simple selectors the markup contract uses: #id, .class and tag.
func (e *MemoryElement) matches(selector string) bool {
	switch {
	case strings.HasPrefix(selector, "#"):
		return e.id == selector[1:]
	case strings.HasPrefix(selector, "."):
		return e.HasClass(selector[1:])
	default:
		return e.tag == strings.ToLower(selector)
	}
}

// MemoryDocument is an in-memory Document rooted at a body element.
type MemoryDocument struct {
	body *MemoryElement
}

var _ Document = &MemoryDocument{}

// NewMemoryDocument creates an empty document.
//
// Returns:
//   - *MemoryDocument: the document
func NewMemoryDocument() *MemoryDocument {
	return &MemoryDocument{body: NewMemoryElement("body", "")}
}

// Body returns the root element.
func (d *MemoryDocument) Body() *MemoryElement {
	return d.body
}

// Element returns the in-memory element with an id, or nil.
func (d *MemoryDocument) Element(id string) *MemoryElement {
	return d.body.find("#" + id)
}

func (d *MemoryDocument) GetElementByID(id string) Element {
	if el := d.Element(id); el != nil {
		return el
	}
	return nil
}

func (d *MemoryDocument) QuerySelector(selector string) Element {
	if el := d.body.find(selector); el != nil {
		return el
	}
	return nil
}

// MemoryWindow is an in-memory Window.
type MemoryWindow struct {
	mu sync.RWMutex

	ratio     float64
	listeners map[string][]Listener
	alerts    []string
	onAlert   func(msg string)
}

var _ Window = &MemoryWindow{}

// NewMemoryWindow creates a window with the given device pixel ratio.
//
// Parameters:
//   - ratio: the device pixel ratio
//
// Returns:
//   - *MemoryWindow: the window
func NewMemoryWindow(ratio float64) *MemoryWindow {
	return &MemoryWindow{
		ratio:     ratio,
		listeners: make(map[string][]Listener),
	}
}

// SetDevicePixelRatio changes the ratio, e.g. when the page moves to another monitor.
func (w *MemoryWindow) SetDevicePixelRatio(ratio float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ratio = ratio
}

// OnAlert sets a function receiving every alert message.
func (w *MemoryWindow) OnAlert(fn func(msg string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onAlert = fn
}

// Alerts returns every alert message presented so far.
func (w *MemoryWindow) Alerts() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]string(nil), w.alerts...)
}

// ListenerCount returns the number of listeners attached for an event.
func (w *MemoryWindow) ListenerCount(event string) int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.listeners[event])
}

// Dispatch runs every listener attached for an event, in attachment order.
func (w *MemoryWindow) Dispatch(event string) {
	w.mu.RLock()
	listeners := append([]Listener(nil), w.listeners[event]...)
	w.mu.RUnlock()
	for _, fn := range listeners {
		fn()
	}
}

func (w *MemoryWindow) DevicePixelRatio() float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.ratio
}

func (w *MemoryWindow) AddEventListener(event string, fn Listener) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners[event] = append(w.listeners[event], fn)
}

func (w *MemoryWindow) Alert(msg string) {
	w.mu.Lock()
	w.alerts = append(w.alerts, msg)
	fn := w.onAlert
	w.mu.Unlock()
	if fn != nil {
		fn(msg)
	}
}
