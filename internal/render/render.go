// Package render draws skeleton overlays for detected poses. Drawing is a
// boundary concern: nothing in here feeds back into the pipeline's
// computation, so the rest of the system stays testable without producing
// a single pixel.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/langsard/pose/internal/detector"
	"github.com/langsard/pose/internal/geometry"
)

// Edges lists the skeleton segments as canonical keypoint index pairs.
var Edges = [][2]int{
	// face
	{detector.Nose, detector.LeftEye},
	{detector.Nose, detector.RightEye},
	{detector.LeftEye, detector.RightEye},
	{detector.LeftEye, detector.LeftEar},
	{detector.RightEye, detector.RightEar},
	// arms
	{detector.LeftShoulder, detector.RightShoulder},
	{detector.LeftShoulder, detector.LeftElbow},
	{detector.LeftElbow, detector.LeftWrist},
	{detector.RightShoulder, detector.RightElbow},
	{detector.RightElbow, detector.RightWrist},
	// torso
	{detector.LeftShoulder, detector.LeftHip},
	{detector.RightShoulder, detector.RightHip},
	{detector.LeftHip, detector.RightHip},
	// legs
	{detector.LeftHip, detector.LeftKnee},
	{detector.LeftKnee, detector.LeftAnkle},
	{detector.RightHip, detector.RightKnee},
	{detector.RightKnee, detector.RightAnkle},
}

var jointColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// Options control overlay drawing.
type Options struct {
	// MinConfidence hides keypoints scoring below it, along with any edge
	// touching one.
	MinConfidence float64

	// LineWidth is the edge stroke width in pixels.
	LineWidth float64

	// JointRadius is the keypoint marker radius in pixels.
	JointRadius float64
}

// DefaultOptions returns Options with sensible default values.
func DefaultOptions() Options {
	return Options{
		MinConfidence: 0.3,
		LineWidth:     3,
		JointRadius:   4,
	}
}

// Annotate returns a copy of src with the pose's skeleton drawn on top.
// A nil pose yields a plain copy.
func Annotate(src image.Image, pose *detector.Pose, opts Options) *image.NRGBA {
	dst := image.NewNRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	if pose != nil {
		Draw(dst, pose, opts)
	}
	return dst
}

// Draw draws the skeleton in place on dst. Edge colors are stable across
// calls: edge i always gets the same hue.
func Draw(dst *image.NRGBA, pose *detector.Pose, opts Options) {
	colors := palette(len(Edges))
	for i, e := range Edges {
		a, okA := pose.Keypoint(detector.Names[e[0]])
		b, okB := pose.Keypoint(detector.Names[e[1]])
		if !okA || !okB {
			continue
		}
		if a.Confidence < opts.MinConfidence || b.Confidence < opts.MinConfidence {
			continue
		}
		line(dst, a.Position, b.Position, opts.LineWidth, colors[i])
	}

	for _, kp := range pose.Keypoints {
		if kp.Confidence < opts.MinConfidence {
			continue
		}
		disc(dst, kp.Position, opts.JointRadius, jointColor)
	}
}

// palette spaces hues around the wheel so adjacent limbs stay apart.
func palette(n int) []color.NRGBA {
	out := make([]color.NRGBA, n)
	for i := range out {
		c := colorful.Hsv(float64(i)*360/float64(n), 0.75, 0.95)
		r, g, b := c.RGB255()
		out[i] = color.NRGBA{R: r, G: g, B: b, A: 255}
	}
	return out
}

// line stamps discs along the segment. Good enough at overlay widths and
// free of angle-dependent thinning.
func line(dst *image.NRGBA, a, b geometry.Point, width float64, c color.NRGBA) {
	steps := int(math.Ceil(geometry.Distance(a, b)))
	if steps == 0 {
		disc(dst, a, width/2, c)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		p := geometry.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
		disc(dst, p, width/2, c)
	}
}

func disc(dst *image.NRGBA, center geometry.Point, r float64, c color.NRGBA) {
	for y := int(math.Floor(center.Y - r)); y <= int(math.Ceil(center.Y+r)); y++ {
		for x := int(math.Floor(center.X - r)); x <= int(math.Ceil(center.X+r)); x++ {
			dx := float64(x) - center.X
			dy := float64(y) - center.Y
			if dx*dx+dy*dy <= r*r {
				dst.SetNRGBA(x, y, c)
			}
		}
	}
}
