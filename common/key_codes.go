package common

// Virtual key codes for keyboard accelerators on the native page.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyC = 67 // C key (ASCII)
	KeyG = 71 // G key (ASCII)
	KeyI = 73 // I key (ASCII)
	KeyR = 82 // R key (ASCII)
	KeyW = 87 // W key (ASCII)
)
