// SPDX-License-Identifier: Unlicense OR MIT

// Package geom holds the 26.6 fixed-point geometry shared by every layer of
// the layout engine: one logical pixel is 64 units, matching the scheme
// golang.org/x/image/math/fixed already uses for font metrics.
package geom

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// Fixed is a 26.6 fixed-point scalar: one logical pixel equals Scale units.
type Fixed = fixed.Int26_6

// Point is a 26.6 point.
type Point = fixed.Point26_6

// Rectangle is a 26.6 rectangle.
type Rectangle = fixed.Rectangle26_6

// Scale is the number of fixed-point units per logical pixel.
const Scale = 64

// I converts an integer pixel count to fixed-point units.
func I(px int) Fixed { return fixed.I(px) }

// FromFloat converts a floating point pixel count to fixed-point units.
func FromFloat(px float64) Fixed { return fixed.Int26_6(math.Round(px * Scale)) }

// Max returns the larger of a and b.
func Max(a, b Fixed) Fixed {
	if a > b {
		return a
	}
	return b
}

// Min returns the smaller of a and b.
func Min(a, b Fixed) Fixed {
	if a < b {
		return a
	}
	return b
}
