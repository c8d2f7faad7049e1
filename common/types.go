// package common contains common types that are used throughout this module. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import "fmt"

// Dimensions is a width/height pair in device pixels.
type Dimensions struct {
	// Width is the horizontal size in device pixels.
	Width int
	// Height is the vertical size in device pixels.
	Height int
}

// String renders the dimensions as "WxH".
func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// Empty reports whether either side is zero or negative.
func (d Dimensions) Empty() bool {
	return d.Width <= 0 || d.Height <= 0
}
