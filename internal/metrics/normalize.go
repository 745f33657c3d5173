package metrics

import (
	"github.com/langsard/pose/internal/detector"
	"github.com/langsard/pose/internal/geometry"
)

// NormalizePose maps a pose into the canonical comparison frame: positions
// are centered on their bounding box and divided by its longer side, so
// two poses of the same body shape line up regardless of where and how
// large they appeared in their images. Names and confidences carry over.
// Returns nil for a nil or empty pose.
func NormalizePose(p *detector.Pose) *detector.Pose {
	if p == nil || len(p.Keypoints) == 0 {
		return nil
	}

	points := make([]geometry.Point, len(p.Keypoints))
	for i, kp := range p.Keypoints {
		points[i] = kp.Position
	}
	normalized := geometry.NormalizePoints(points)

	out := &detector.Pose{
		Frame:     detector.FrameNormalized,
		Keypoints: make([]detector.Keypoint, len(p.Keypoints)),
	}
	for i, kp := range p.Keypoints {
		kp.Position = normalized[i]
		out.Keypoints[i] = kp
	}
	return out
}

// NormalizedDistance is the mean per-keypoint distance between two
// normalized poses over the keypoints they share. ok is false when either
// pose is nil or they share no keypoints.
func NormalizedDistance(a, b *detector.Pose) (float64, bool) {
	if a == nil || b == nil {
		return 0, false
	}

	var sum float64
	var n int
	for _, kp := range a.Keypoints {
		other, ok := b.Keypoint(kp.Name)
		if !ok {
			continue
		}
		sum += geometry.Distance(kp.Position, other.Position)
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
