package host

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Carmen-Shannon/oxy-controls/common"
	"github.com/dop251/goja"
)

// ScriptModule is a host module whose runtime container lives in an embedded JavaScript VM.
// Host scripts follow the emscripten convention: they reuse a pre-existing container
// (`var Module = typeof Module !== 'undefined' ? Module : {};`) and attach prefixed
// entry points to it. The VM is not safe for concurrent use; callers serialise access.
type ScriptModule interface {
	Module

	// Load executes a host script in the VM.
	//
	// Parameters:
	//   - name: the script name used in stack traces
	//   - src: the JavaScript source
	//
	// Returns:
	//   - error: error if the script fails to compile or throws
	Load(name, src string) error

	// Start marks the runtime as run and fires the runtime-initialized hook, if any.
	//
	// Returns:
	//   - error: error if the hook throws
	Start() error

	// Exported returns the sorted list of callable identifiers on the container that carry the symbol prefix.
	//
	// Returns:
	//   - []string: the exported identifiers
	Exported() []string

	// Eval evaluates an expression against the VM and exports the result to a Go value.
	//
	// Parameters:
	//   - expr: the JavaScript expression
	//
	// Returns:
	//   - any: the exported result
	//   - error: error if evaluation throws
	Eval(expr string) (any, error)
}

// scriptModule implements ScriptModule on a goja runtime.
type scriptModule struct {
	vm *goja.Runtime

	// global is the name of the container object on the VM's global scope.
	global string

	// prefix is prepended to capability names to form exported identifiers.
	prefix string
}

var _ ScriptModule = &scriptModule{}

// NewScriptModule creates a ScriptModule with a fresh VM.
// The VM gets a minimal `console` object routed to the module logger.
//
// Parameters:
//   - options: functional options to configure the module
//
// Returns:
//   - ScriptModule: the module; the container is absent until a script or the handshake creates it
func NewScriptModule(options ...ScriptModuleBuilderOption) ScriptModule {
	m := &scriptModule{
		vm:     goja.New(),
		global: DefaultContainer,
		prefix: DefaultPrefix,
	}
	for _, opt := range options {
		opt(m)
	}
	m.installConsole()
	return m
}

func (m *scriptModule) installConsole() {
	logger := common.ComponentLogger("host")
	console := m.vm.NewObject()
	write := func(level string) func(goja.FunctionCall) goja.Value {
		return func(call goja.FunctionCall) goja.Value {
			parts := make([]string, 0, len(call.Arguments))
			for _, arg := range call.Arguments {
				parts = append(parts, arg.String())
			}
			msg := strings.Join(parts, " ")
			switch level {
			case "error":
				logger.Error(msg, "source", "console")
			case "warn":
				logger.Warn(msg, "source", "console")
			default:
				logger.Info(msg, "source", "console")
			}
			return goja.Undefined()
		}
	}
	_ = console.Set("log", write("log"))
	_ = console.Set("warn", write("warn"))
	_ = console.Set("error", write("error"))
	_ = m.vm.Set("console", console)
}

// container returns the container object, or nil if it is absent or not an object.
func (m *scriptModule) container() *goja.Object {
	v := m.vm.GlobalObject().Get(m.global)
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	obj, ok := v.(*goja.Object)
	if !ok {
		return nil
	}
	return obj
}

// ensureContainer returns the container, creating an empty one if needed.
func (m *scriptModule) ensureContainer() *goja.Object {
	if obj := m.container(); obj != nil {
		return obj
	}
	obj := m.vm.NewObject()
	_ = m.vm.Set(m.global, obj)
	return obj
}

func (m *scriptModule) Container() bool {
	return m.container() != nil
}

func (m *scriptModule) Has(c Capability) bool {
	obj := m.container()
	if obj == nil {
		return false
	}
	_, ok := goja.AssertFunction(obj.Get(Symbol(m.prefix, c)))
	return ok
}

func (m *scriptModule) Call(c Capability, args ...float64) error {
	obj := m.container()
	if obj == nil {
		return ErrNoContainer
	}
	sym := Symbol(m.prefix, c)
	fn, ok := goja.AssertFunction(obj.Get(sym))
	if !ok {
		return fmt.Errorf("%w: %s", ErrMissingCapability, sym)
	}
	values := make([]goja.Value, len(args))
	for i, a := range args {
		values[i] = m.vm.ToValue(a)
	}
	if _, err := fn(obj, values...); err != nil {
		return fmt.Errorf("host call %s: %w", sym, err)
	}
	return nil
}

func (m *scriptModule) ChainRuntimeInitialized(fn func()) {
	obj := m.ensureContainer()
	prev, hasPrev := goja.AssertFunction(obj.Get("onRuntimeInitialized"))
	_ = obj.Set("onRuntimeInitialized", func(call goja.FunctionCall) goja.Value {
		if hasPrev {
			if _, err := prev(call.This, call.Arguments...); err != nil {
				common.ComponentLogger("host").Error("previous runtime-initialized hook failed", "error", err)
			}
		}
		fn()
		return goja.Undefined()
	})
}

func (m *scriptModule) CalledRun() bool {
	obj := m.container()
	if obj == nil {
		return false
	}
	v := obj.Get("calledRun")
	return v != nil && v.ToBoolean()
}

func (m *scriptModule) Load(name, src string) error {
	if _, err := m.vm.RunScript(name, src); err != nil {
		return fmt.Errorf("host script %s: %w", name, err)
	}
	return nil
}

func (m *scriptModule) Start() error {
	obj := m.ensureContainer()
	_ = obj.Set("calledRun", true)
	hook, ok := goja.AssertFunction(obj.Get("onRuntimeInitialized"))
	if !ok {
		return nil
	}
	if _, err := hook(obj); err != nil {
		return fmt.Errorf("runtime-initialized hook: %w", err)
	}
	return nil
}

func (m *scriptModule) Exported() []string {
	obj := m.container()
	if obj == nil {
		return nil
	}
	var names []string
	for _, key := range obj.Keys() {
		if !strings.HasPrefix(key, m.prefix) {
			continue
		}
		if _, ok := goja.AssertFunction(obj.Get(key)); ok {
			names = append(names, key)
		}
	}
	sort.Strings(names)
	return names
}

func (m *scriptModule) Eval(expr string) (any, error) {
	v, err := m.vm.RunString(expr)
	if err != nil {
		return nil, fmt.Errorf("host eval: %w", err)
	}
	return v.Export(), nil
}
