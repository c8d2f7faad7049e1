package host

// NativeModuleBuilderOption is a functional option for configuring a nativeModule.
// Use the With* functions to create options.
type NativeModuleBuilderOption func(m *nativeModule)

// WithEntryPoint exports an entry point at construction time.
//
// Parameters:
//   - c: the capability
//   - fn: the entry point
//
// Returns:
//   - NativeModuleBuilderOption: option function to apply
func WithEntryPoint(c Capability, fn EntryPoint) NativeModuleBuilderOption {
	return func(m *nativeModule) {
		m.exports[c] = fn
	}
}
