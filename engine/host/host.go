// Package host describes the externally supplied computation module the controls drive.
// The module is a black box: a runtime container exposing named, synchronously callable
// entry points, plus a one-shot "runtime initialized" hook and a "has already run" flag.
package host

import "errors"

// Capability is the logical name of an entry point the host module may export.
// The exported identifier is the capability prefixed with the module's symbol prefix.
type Capability string

const (
	// Resize notifies the host of new backing pixel dimensions (width, height).
	Resize Capability = "resize"
	// ClearScene removes all geometry from the host scene.
	ClearScene Capability = "clear_scene"
	// AddTestGeometry adds the host's built-in test geometry to the scene.
	AddTestGeometry Capability = "add_test_geometry"
	// ResetCamera restores the host camera to its default position and target.
	ResetCamera Capability = "reset_camera"
	// SetBackgroundBrightness sets the clear-colour brightness in [0, 1].
	SetBackgroundBrightness Capability = "set_background_brightness"
	// SetPointSize sets the rendered point size.
	SetPointSize Capability = "set_point_size"
	// SetLineWidth sets the rendered line width.
	SetLineWidth Capability = "set_line_width"
	// SetFOV sets the camera field of view in degrees.
	SetFOV Capability = "set_fov"
	// ToggleWireframe flips wireframe rendering.
	ToggleWireframe Capability = "toggle_wireframe"
)

// DefaultPrefix is the symbol prefix the host toolchain adds to exported entry points.
const DefaultPrefix = "_alice2_"

// DefaultContainer is the global name of the host runtime container.
const DefaultContainer = "Module"

// Required lists the capabilities that must all be exported before controls are bound.
var Required = []Capability{Resize, ClearScene, AddTestGeometry}

// Optional lists the capabilities probed lazily at each call site.
var Optional = []Capability{
	ResetCamera,
	SetBackgroundBrightness,
	SetPointSize,
	SetLineWidth,
	SetFOV,
	ToggleWireframe,
}

var (
	// ErrNoContainer is returned when the host runtime container does not exist yet.
	ErrNoContainer = errors.New("host runtime container not present")
	// ErrMissingCapability is returned when an entry point is not exported.
	ErrMissingCapability = errors.New("host capability not exported")
)

// Symbol returns the exported identifier of a capability.
//
// Parameters:
//   - prefix: the symbol prefix, e.g. DefaultPrefix
//   - c: the capability
//
// Returns:
//   - string: the prefixed identifier, e.g. "_alice2_resize"
func Symbol(prefix string, c Capability) string {
	return prefix + string(c)
}

// Host is the callable surface of the host module.
// Every method is safe to call before the host has loaded; absence is reported, never raised.
type Host interface {
	// Container reports whether the host runtime container exists.
	//
	// Returns:
	//   - bool: true if the container is present
	Container() bool

	// Has reports whether a capability currently resolves to a callable entry point.
	//
	// Parameters:
	//   - c: the capability to look up
	//
	// Returns:
	//   - bool: true if the entry point is present and callable
	Has(c Capability) bool

	// Call invokes a capability with numeric arguments.
	//
	// Parameters:
	//   - c: the capability to invoke
	//   - args: the numeric arguments
	//
	// Returns:
	//   - error: ErrNoContainer, ErrMissingCapability, or the failure raised by the host
	Call(c Capability, args ...float64) error
}

// Runtime is the readiness handshake surface of the host module.
type Runtime interface {
	// ChainRuntimeInitialized installs fn as a continuation of the runtime-initialized hook.
	// Any hook already installed by another consumer keeps running, before fn.
	// The container is created if it does not exist yet.
	//
	// Parameters:
	//   - fn: function to call once the host runtime has initialized
	ChainRuntimeInitialized(fn func())

	// CalledRun reports whether the host runtime has already started.
	//
	// Returns:
	//   - bool: true if the runtime has run
	CalledRun() bool
}

// Module is a host module exposing both the callable and the handshake surfaces.
type Module interface {
	Host
	Runtime
}
