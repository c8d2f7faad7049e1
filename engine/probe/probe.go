// Package probe decides whether the host module has finished initializing.
package probe

import (
	"github.com/Carmen-Shannon/oxy-controls/engine/host"
)

// Prober reports host readiness.
type Prober interface {
	// IsReady reports whether the host container exists and every required capability is callable.
	// Absence is an expected transient state: IsReady never fails and has no side effects.
	//
	// Returns:
	//   - bool: true if controls may be bound
	IsReady() bool

	// Missing lists the required capabilities that are not currently callable.
	//
	// Returns:
	//   - []host.Capability: the missing capabilities, in required order
	Missing() []host.Capability

	// Required returns a copy of the required capability set.
	//
	// Returns:
	//   - []host.Capability: the required capabilities
	Required() []host.Capability
}

// prober implements Prober.
type prober struct {
	host     host.Host
	required []host.Capability
}

var _ Prober = &prober{}

// NewProber creates a Prober over a host. The required set defaults to host.Required.
//
// Parameters:
//   - h: the host to probe
//   - options: functional options to configure the prober
//
// Returns:
//   - Prober: the prober
func NewProber(h host.Host, options ...ProberBuilderOption) Prober {
	p := &prober{
		host:     h,
		required: append([]host.Capability(nil), host.Required...),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *prober) IsReady() bool {
	if p.host == nil || !p.host.Container() {
		return false
	}
	for _, c := range p.required {
		if !p.host.Has(c) {
			return false
		}
	}
	return true
}

func (p *prober) Missing() []host.Capability {
	var missing []host.Capability
	for _, c := range p.required {
		if p.host == nil || !p.host.Container() || !p.host.Has(c) {
			missing = append(missing, c)
		}
	}
	return missing
}

func (p *prober) Required() []host.Capability {
	return append([]host.Capability(nil), p.required...)
}
