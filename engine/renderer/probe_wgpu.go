//go:build !js

package renderer

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// platformBackendAvailable requests an adapter from a fresh WebGPU instance and releases both.
func platformBackendAvailable(forceFallback bool) (bool, error) {
	instance := wgpu.CreateInstance(nil)
	if instance == nil {
		return false, fmt.Errorf("webgpu instance not created")
	}
	defer instance.Release()

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallback,
	})
	if err != nil {
		return false, fmt.Errorf("request adapter: %w", err)
	}
	if adapter == nil {
		return false, nil
	}
	adapter.Release()
	return true, nil
}
