package renderer

// ProbeBuilderOption is a functional option for configuring a Probe.
// Use the With* functions to create options.
type ProbeBuilderOption func(p *probe)

// WithForceFallbackAdapter requests the software fallback adapter during the check.
//
// Parameters:
//   - force: if true, only a fallback adapter counts as available
//
// Returns:
//   - ProbeBuilderOption: option function to apply
func WithForceFallbackAdapter(force bool) ProbeBuilderOption {
	return func(p *probe) {
		p.forceFallbackAdapter = force
	}
}
