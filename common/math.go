package common

import (
	"math"
	"strconv"
	"strings"
)

// RoundHalfUp rounds v to the nearest integer, with halves rounded towards positive infinity.
// Used wherever a fractional layout size is converted to a pixel count.
//
// Parameters:
//   - v: the value to round
//
// Returns:
//   - int: the rounded value
func RoundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// ScaleToPixels converts a layout size in CSS pixels to device pixels.
// A non-positive ratio is treated as 1.
//
// Parameters:
//   - size: layout size in CSS pixels
//   - ratio: the device pixel ratio
//
// Returns:
//   - int: the size in device pixels, rounded half up
func ScaleToPixels(size, ratio float64) int {
	if ratio <= 0 {
		ratio = 1
	}
	return RoundHalfUp(size * ratio)
}

// FormatNumber renders v the way a browser stringifies a number: shortest representation,
// no trailing zeros, exponent form only below 1e-6 or from 1e21 in magnitude.
//
// Parameters:
//   - v: the value to format
//
// Returns:
//   - string: the formatted value
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}

	if abs := math.Abs(v); abs >= 1e21 || abs < 1e-6 {
		// Go pads the exponent to two digits and JavaScript does not: 1.5e-07 → 1.5e-7.
		mantissa, exp, _ := strings.Cut(strconv.FormatFloat(v, 'e', -1, 64), "e")
		sign := exp[:1]
		exp = strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + sign + exp
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
