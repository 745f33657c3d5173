// Package transform implements the coordinate transforms between the
// source image, the square detector canvas, and the display box.
package transform

import (
	"fmt"
	"math"

	"github.com/langsard/pose/internal/geometry"
)

// Transform maps points between coordinate frames by uniform scale
// followed by translation. The zero value is not useful; build transforms
// through Letterbox, Fit or composition.
type Transform struct {
	Scale   float64 `json:"scale"`
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
}

// Identity is the no-op transform.
var Identity = Transform{Scale: 1}

// Letterbox returns the transform that fits a srcW x srcH image onto a
// square canvas of the given side: uniform scale by size/max(srcW, srcH),
// then centering. Offsets are rounded to whole pixels, never negative, and
// at least one of them is exactly zero (the long axis fills the canvas).
//
// Letterbox panics when any argument is not positive. Dimensions come from
// decoded images and configuration, so a non-positive value here is a
// programming error, not a runtime condition.
func Letterbox(srcW, srcH, size int) Transform {
	if srcW <= 0 || srcH <= 0 {
		panic(fmt.Sprintf("transform: letterbox source %dx%d", srcW, srcH))
	}
	if size <= 0 {
		panic(fmt.Sprintf("transform: letterbox canvas side %d", size))
	}

	scale := float64(size) / float64(max(srcW, srcH))
	return Transform{
		Scale:   scale,
		OffsetX: math.Round((float64(size) - float64(srcW)*scale) / 2),
		OffsetY: math.Round((float64(size) - float64(srcH)*scale) / 2),
	}
}

// Fit returns the transform that fits a srcW x srcH image into a
// boxW x boxH box, preserving aspect ratio and centering. Unlike Letterbox
// the offsets are not rounded; display code works in fractional pixels.
// Panics on non-positive arguments for the same reason Letterbox does.
func Fit(srcW, srcH, boxW, boxH int) Transform {
	if srcW <= 0 || srcH <= 0 || boxW <= 0 || boxH <= 0 {
		panic(fmt.Sprintf("transform: fit %dx%d into %dx%d", srcW, srcH, boxW, boxH))
	}

	scale := math.Min(float64(boxW)/float64(srcW), float64(boxH)/float64(srcH))
	return Transform{
		Scale:   scale,
		OffsetX: (float64(boxW) - float64(srcW)*scale) / 2,
		OffsetY: (float64(boxH) - float64(srcH)*scale) / 2,
	}
}

// Apply maps a point through the transform.
func (t Transform) Apply(p geometry.Point) geometry.Point {
	return geometry.Point{
		X: p.X*t.Scale + t.OffsetX,
		Y: p.Y*t.Scale + t.OffsetY,
	}
}

// Then returns the transform equivalent to applying t first and next
// second. Offsets fold as next.Offset + t.Offset*next.Scale; composition
// is associative.
func (t Transform) Then(next Transform) Transform {
	return Transform{
		Scale:   t.Scale * next.Scale,
		OffsetX: next.OffsetX + t.OffsetX*next.Scale,
		OffsetY: next.OffsetY + t.OffsetY*next.Scale,
	}
}
