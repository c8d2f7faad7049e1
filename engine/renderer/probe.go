// Package renderer reports whether a WebGPU rendering backend is usable, for the page's
// diagnostic summary. Rendering itself belongs to the host module.
package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-controls/common"
)

// Probe checks rendering-backend availability once and remembers the answer.
type Probe interface {
	// Available reports whether a WebGPU adapter can be obtained.
	// The first call performs the check; later calls return the cached answer.
	//
	// Returns:
	//   - bool: true if the backend is available
	Available() bool
}

// probe implements Probe.
type probe struct {
	once      sync.Once
	available bool

	forceFallbackAdapter bool

	// check performs the platform lookup.
	check func(forceFallback bool) (bool, error)
}

var _ Probe = &probe{}

// NewProbe creates a Probe for the platform's WebGPU backend.
//
// Parameters:
//   - options: functional options to configure the probe
//
// Returns:
//   - Probe: the probe
func NewProbe(options ...ProbeBuilderOption) Probe {
	p := &probe{
		check: platformBackendAvailable,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *probe) Available() bool {
	p.once.Do(func() {
		// Resolved here so a logger installed after construction is honoured.
		logger := common.ComponentLogger("renderer")
		defer func() {
			if r := recover(); r != nil {
				p.available = false
				logger.Warn("webgpu probe panicked", "error", fmt.Sprint(r))
			}
		}()
		ok, err := p.check(p.forceFallbackAdapter)
		if err != nil {
			logger.Info("webgpu unavailable", "error", err)
		}
		p.available = ok && err == nil
		logger.Debug("webgpu probed", "available", p.available)
	})
	return p.available
}

var defaultProbe = NewProbe()

// BackendAvailable reports availability through a process-wide probe.
//
// Returns:
//   - bool: true if a WebGPU adapter can be obtained
func BackendAvailable() bool {
	return defaultProbe.Available()
}
