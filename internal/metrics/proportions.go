package metrics

import (
	"gonum.org/v1/gonum/stat"

	"github.com/langsard/pose/internal/detector"
	"github.com/langsard/pose/internal/geometry"
)

// Proportions are derived body segment lengths in the pose's frame units.
// A field is nil when any keypoint it depends on is missing; a partial
// pose degrades the result, it never fails it.
type Proportions struct {
	ArmLength   *float64 `json:"arm_length"`
	LegLength   *float64 `json:"leg_length"`
	TorsoLength *float64 `json:"torso_length"`
}

// ComputeProportions derives segment lengths from one pose. Arm is the
// mean of the two shoulder-to-wrist distances, leg the mean of the two
// hip-to-ankle distances, and torso the distance between the shoulder and
// hip midpoints.
func ComputeProportions(p *detector.Pose) Proportions {
	return Proportions{
		ArmLength:   pairMean(p, "left_shoulder", "left_wrist", "right_shoulder", "right_wrist"),
		LegLength:   pairMean(p, "left_hip", "left_ankle", "right_hip", "right_ankle"),
		TorsoLength: torsoLength(p),
	}
}

func segment(p *detector.Pose, from, to string) (float64, bool) {
	a, okA := p.Keypoint(from)
	b, okB := p.Keypoint(to)
	if !okA || !okB {
		return 0, false
	}
	return geometry.Distance(a.Position, b.Position), true
}

func pairMean(p *detector.Pose, leftFrom, leftTo, rightFrom, rightTo string) *float64 {
	left, okL := segment(p, leftFrom, leftTo)
	right, okR := segment(p, rightFrom, rightTo)
	if !okL || !okR {
		return nil
	}
	m := stat.Mean([]float64{left, right}, nil)
	return &m
}

func torsoLength(p *detector.Pose) *float64 {
	ls, ok1 := p.Keypoint("left_shoulder")
	rs, ok2 := p.Keypoint("right_shoulder")
	lh, ok3 := p.Keypoint("left_hip")
	rh, ok4 := p.Keypoint("right_hip")
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return nil
	}

	d := geometry.Distance(
		geometry.Midpoint(ls.Position, rs.Position),
		geometry.Midpoint(lh.Position, rh.Position),
	)
	return &d
}
