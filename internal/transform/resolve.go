package transform

import (
	"github.com/langsard/pose/internal/detector"
	"github.com/langsard/pose/internal/geometry"
)

// normalizedMax is the bound at or under which a coordinate pair is treated
// as normalized [0,1] detector output. The slack over 1.0 absorbs models
// that emit values like 1.004 at the frame edge.
const normalizedMax = 1.01

// Resolve returns kp with its position expressed in frame pixels.
//
// Detection backends disagree about their output convention: some emit
// normalized [0,1] coordinates, others emit pixels. A keypoint whose x and
// y both lie at or below normalizedMax is taken as normalized and scaled
// by the frame size; anything else passes through unchanged. Name and
// confidence are untouched.
//
// The heuristic has a known blind spot: a pixel coordinate that genuinely
// lands within a pixel of the origin on both axes is misread as
// normalized. Without convention metadata from the backend that is not
// fixable, so every caller needing pixels must go through this function
// rather than re-deriving the convention locally.
func Resolve(kp detector.Keypoint, frameW, frameH float64) detector.Keypoint {
	p := kp.Position
	if p.X <= normalizedMax && p.Y <= normalizedMax {
		kp.Position = geometry.Point{X: p.X * frameW, Y: p.Y * frameH}
	}
	return kp
}

// ResolvePose resolves every keypoint of a pose into frame pixels and tags
// the result with the canvas frame. When the detector consumed the square
// letterboxed canvas, frameW and frameH are both the canvas side. Returns
// nil for a nil pose; the input is not modified.
func ResolvePose(p *detector.Pose, frameW, frameH float64) *detector.Pose {
	if p == nil {
		return nil
	}

	out := &detector.Pose{
		Frame:     detector.FrameCanvas,
		Keypoints: make([]detector.Keypoint, len(p.Keypoints)),
	}
	for i, kp := range p.Keypoints {
		out.Keypoints[i] = Resolve(kp, frameW, frameH)
	}
	return out
}

// Project maps every keypoint of a pose through t and tags the result with
// the given frame. Returns nil for a nil pose; the input is not modified.
func Project(p *detector.Pose, t Transform, frame detector.Frame) *detector.Pose {
	if p == nil {
		return nil
	}

	out := &detector.Pose{
		Frame:     frame,
		Keypoints: make([]detector.Keypoint, len(p.Keypoints)),
	}
	for i, kp := range p.Keypoints {
		kp.Position = t.Apply(kp.Position)
		out.Keypoints[i] = kp
	}
	return out
}
