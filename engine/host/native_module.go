package host

import (
	"fmt"
	"sync"
)

// EntryPoint is an in-process host entry point.
type EntryPoint func(args ...float64) error

// NativeModule is a host module whose entry points are Go functions living in the same process,
// such as a desktop renderer driven by the native page.
type NativeModule interface {
	Module

	// Export publishes an entry point under a capability, replacing any previous one.
	//
	// Parameters:
	//   - c: the capability
	//   - fn: the entry point
	Export(c Capability, fn EntryPoint)

	// Unexport removes an entry point.
	//
	// Parameters:
	//   - c: the capability
	Unexport(c Capability)

	// Start marks the runtime as run and fires every chained runtime-initialized hook in installation order.
	Start()
}

// nativeModule implements NativeModule.
type nativeModule struct {
	mu sync.RWMutex

	exports   map[Capability]EntryPoint
	hooks     []func()
	calledRun bool
}

var _ NativeModule = &nativeModule{}

// NewNativeModule creates a NativeModule. The container exists from construction.
//
// Parameters:
//   - options: functional options to configure the module
//
// Returns:
//   - NativeModule: the module
func NewNativeModule(options ...NativeModuleBuilderOption) NativeModule {
	m := &nativeModule{
		exports: make(map[Capability]EntryPoint),
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *nativeModule) Container() bool {
	return true
}

func (m *nativeModule) Has(c Capability) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.exports[c]
	return ok
}

func (m *nativeModule) Call(c Capability, args ...float64) error {
	m.mu.RLock()
	fn, ok := m.exports[c]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrMissingCapability, c)
	}
	return fn(args...)
}

func (m *nativeModule) Export(c Capability, fn EntryPoint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exports[c] = fn
}

func (m *nativeModule) Unexport(c Capability) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.exports, c)
}

func (m *nativeModule) ChainRuntimeInitialized(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks = append(m.hooks, fn)
}

func (m *nativeModule) CalledRun() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calledRun
}

func (m *nativeModule) Start() {
	m.mu.Lock()
	m.calledRun = true
	hooks := append([]func(){}, m.hooks...)
	m.mu.Unlock()

	for _, hook := range hooks {
		hook()
	}
}
