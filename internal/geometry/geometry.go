// Package geometry provides the 2D point math shared by the pose pipeline.
package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/floats"
)

// MinSegment is the shortest segment length that still defines a direction.
// Angles involving a shorter segment are reported as undefined.
const MinSegment = 1e-6

// Point represents a 2D point.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) vec() mgl64.Vec2 {
	return mgl64.Vec2{p.X, p.Y}
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return b.vec().Sub(a.vec()).Len()
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// AngleAt returns the interior angle at vertex b formed by the segments
// b->a and b->c, in degrees within [0, 180]. ok is false when either
// segment is shorter than MinSegment: the angle is undefined at a
// degenerate vertex and callers must not substitute a default.
func AngleAt(a, b, c Point) (deg float64, ok bool) {
	ba := a.vec().Sub(b.vec())
	bc := c.vec().Sub(b.vec())

	lba := ba.Len()
	lbc := bc.Len()
	if lba < MinSegment || lbc < MinSegment {
		return 0, false
	}

	// Rounding can push the ratio a hair outside [-1, 1], where Acos
	// returns NaN.
	cos := ba.Dot(bc) / (lba * lbc)
	cos = math.Max(-1, math.Min(1, cos))

	return math.Acos(cos) * 180 / math.Pi, true
}

// NormalizePoints maps points into a canonical frame: centered on the
// midpoint of their bounding box and divided by the box's longer side.
// A degenerate box keeps scale 1 so the translation still applies.
// Returns a new slice; the input is not modified.
func NormalizePoints(points []Point) []Point {
	if len(points) == 0 {
		return nil
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X
		ys[i] = p.Y
	}

	minX, maxX := floats.Min(xs), floats.Max(xs)
	minY, maxY := floats.Min(ys), floats.Max(ys)

	center := Point{X: (minX + maxX) / 2, Y: (minY + maxY) / 2}
	scale := math.Max(maxX-minX, maxY-minY)
	if scale == 0 {
		scale = 1
	}

	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = Point{X: (p.X - center.X) / scale, Y: (p.Y - center.Y) / scale}
	}
	return out
}
