//go:build js && wasm

package host

import (
	"fmt"
	"syscall/js"

	"github.com/Carmen-Shannon/oxy-controls/common"
)

// browserModule implements Module on the page's global runtime container.
type browserModule struct {
	global string
	prefix string

	// hooks keeps the installed js.Func values alive for the page lifetime.
	hooks []js.Func
}

var _ Module = &browserModule{}

// NewBrowserModule creates a Module bound to the page's global runtime container.
//
// Parameters:
//   - global: the container's global name, usually DefaultContainer
//   - prefix: the symbol prefix, usually DefaultPrefix
//
// Returns:
//   - Module: the module
func NewBrowserModule(global, prefix string) Module {
	return &browserModule{
		global: common.Coalesce(global, DefaultContainer),
		prefix: common.Coalesce(prefix, DefaultPrefix),
	}
}

func (m *browserModule) container() (js.Value, bool) {
	v := js.Global().Get(m.global)
	if v.IsUndefined() || v.IsNull() {
		return js.Value{}, false
	}
	return v, true
}

func (m *browserModule) Container() bool {
	_, ok := m.container()
	return ok
}

func (m *browserModule) Has(c Capability) bool {
	obj, ok := m.container()
	if !ok {
		return false
	}
	return obj.Get(Symbol(m.prefix, c)).Type() == js.TypeFunction
}

func (m *browserModule) Call(c Capability, args ...float64) (err error) {
	obj, ok := m.container()
	if !ok {
		return ErrNoContainer
	}
	sym := Symbol(m.prefix, c)
	if obj.Get(sym).Type() != js.TypeFunction {
		return fmt.Errorf("%w: %s", ErrMissingCapability, sym)
	}

	// syscall/js surfaces a thrown JavaScript exception as a panic carrying js.Error.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("host call %s: %v", sym, r)
		}
	}()

	jsArgs := make([]any, len(args))
	for i, a := range args {
		jsArgs[i] = a
	}
	obj.Call(sym, jsArgs...)
	return nil
}

func (m *browserModule) ChainRuntimeInitialized(fn func()) {
	obj, ok := m.container()
	if !ok {
		obj = js.Global().Get("Object").New()
		js.Global().Set(m.global, obj)
	}
	existing := obj.Get("onRuntimeInitialized")
	hook := js.FuncOf(func(this js.Value, args []js.Value) any {
		if existing.Type() == js.TypeFunction {
			jsArgs := make([]any, len(args))
			for i, a := range args {
				jsArgs[i] = a
			}
			existing.Invoke(jsArgs...)
		}
		fn()
		return nil
	})
	m.hooks = append(m.hooks, hook)
	obj.Set("onRuntimeInitialized", hook)
}

func (m *browserModule) CalledRun() bool {
	obj, ok := m.container()
	if !ok {
		return false
	}
	return obj.Get("calledRun").Truthy()
}
