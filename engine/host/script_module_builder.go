package host

// ScriptModuleBuilderOption is a functional option for configuring a scriptModule.
// Use the With* functions to create options.
type ScriptModuleBuilderOption func(m *scriptModule)

// WithScriptPrefix sets the symbol prefix of exported entry points.
//
// Parameters:
//   - prefix: the prefix, e.g. "_alice2_"
//
// Returns:
//   - ScriptModuleBuilderOption: option function to apply
func WithScriptPrefix(prefix string) ScriptModuleBuilderOption {
	return func(m *scriptModule) {
		m.prefix = prefix
	}
}

// WithScriptContainer sets the global name of the runtime container object.
//
// Parameters:
//   - name: the global name, e.g. "Module"
//
// Returns:
//   - ScriptModuleBuilderOption: option function to apply
func WithScriptContainer(name string) ScriptModuleBuilderOption {
	return func(m *scriptModule) {
		m.global = name
	}
}
