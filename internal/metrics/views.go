package metrics

import "github.com/langsard/pose/internal/detector"

// View labels used in combined results.
const (
	ViewFront = "front"
	ViewSide  = "side"
)

// BestAngle is a joint angle together with the view it was taken from.
type BestAngle struct {
	View       string   `json:"view"`
	Angle      *float64 `json:"angle"`
	Confidence float64  `json:"confidence"`
}

// ChooseBestView picks, per joint, the angle from whichever view computed
// it with higher confidence. Selection goes purely by confidence, so a
// winning entry may still carry a nil angle. Ties go to the front view.
func ChooseBestView(front, side map[string]AngleResult) map[string]BestAngle {
	out := make(map[string]BestAngle, len(front))
	for label, f := range front {
		out[label] = BestAngle{View: ViewFront, Angle: f.Angle, Confidence: f.Confidence}
	}
	for label, s := range side {
		f, ok := front[label]
		if !ok || s.Confidence > f.Confidence {
			out[label] = BestAngle{View: ViewSide, Angle: s.Angle, Confidence: s.Confidence}
		}
	}
	return out
}

// MergeBestPerJoint builds a composite pose taking, per canonical
// keypoint, whichever view detected it with higher confidence. Ties go to
// the front view. The composite mixes projections, so it suits rendering
// and normalization but is not a physically consistent single view.
// Returns nil when both inputs are nil.
func MergeBestPerJoint(front, side *detector.Pose) *detector.Pose {
	if front == nil && side == nil {
		return nil
	}

	frame := detector.FrameDisplay
	if front != nil {
		frame = front.Frame
	} else if side != nil {
		frame = side.Frame
	}

	out := &detector.Pose{Frame: frame}
	for i := 0; i < detector.NumKeypoints; i++ {
		name := detector.Names[i]
		f, okF := front.Keypoint(name)
		s, okS := side.Keypoint(name)
		switch {
		case okF && okS:
			if s.Confidence > f.Confidence {
				out.Keypoints = append(out.Keypoints, s)
			} else {
				out.Keypoints = append(out.Keypoints, f)
			}
		case okF:
			out.Keypoints = append(out.Keypoints, f)
		case okS:
			out.Keypoints = append(out.Keypoints, s)
		}
	}
	return out
}
