package probe

import (
	"github.com/Carmen-Shannon/oxy-controls/common"
	"github.com/Carmen-Shannon/oxy-controls/engine/host"
)

// ProberBuilderOption is a functional option for configuring a prober.
// Use the With* functions to create options.
type ProberBuilderOption func(p *prober)

// WithRequired replaces the required capability set. Duplicates are dropped.
//
// Parameters:
//   - caps: the capabilities that must all be present before binding
//
// Returns:
//   - ProberBuilderOption: option function to apply
func WithRequired(caps ...host.Capability) ProberBuilderOption {
	return func(p *prober) {
		p.required = p.required[:0]
		for _, c := range caps {
			if !common.Contains(p.required, c) {
				p.required = append(p.required, c)
			}
		}
	}
}
