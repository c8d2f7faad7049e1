//go:build js && wasm

package renderer

import "syscall/js"

// platformBackendAvailable reports whether the browser exposes navigator.gpu.
func platformBackendAvailable(bool) (bool, error) {
	navigator := js.Global().Get("navigator")
	if navigator.IsUndefined() || navigator.IsNull() {
		return false, nil
	}
	return navigator.Get("gpu").Truthy(), nil
}
