package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyN     = 78  // N key (ASCII), cycle to the next cubemap
	KeyP     = 80  // P key (ASCII), toggle profiler output
	KeySpace = 32  // Spacebar (ASCII), cycle to the next cubemap
	KeyEsc   = 256 // Escape key (GLFW)
	KeyRight = 262 // Right arrow (GLFW), cycle to the next cubemap
)
