package metrics

import (
	"math"

	"github.com/langsard/pose/internal/detector"
	"github.com/langsard/pose/internal/geometry"
)

// AngleResult is one computed joint angle in degrees. Angle is nil when the
// value is unavailable: a required keypoint is missing, a keypoint sits
// below the confidence threshold, or the geometry is degenerate.
// Confidence is the minimum of the three keypoint confidences and is
// reported even when Angle is nil, so view selection can still rank the
// result.
type AngleResult struct {
	Angle      *float64 `json:"angle"`
	Confidence float64  `json:"confidence"`
}

// Angles computes every configured joint angle for one pose. A nil pose
// yields all angles nil with zero confidence, which lets view combination
// treat an undetected view uniformly.
func (e *Engine) Angles(p *detector.Pose) map[string]AngleResult {
	out := make(map[string]AngleResult, len(e.defs))
	for _, def := range e.defs {
		out[def.Label] = e.angle(p, def)
	}
	return out
}

func (e *Engine) angle(p *detector.Pose, def Definition) AngleResult {
	a, okA := p.Keypoint(def.A)
	b, okB := p.Keypoint(def.B)
	c, okC := p.Keypoint(def.C)
	if !okA || !okB || !okC {
		return AngleResult{}
	}

	conf := math.Min(a.Confidence, math.Min(b.Confidence, c.Confidence))
	if conf < e.threshold {
		return AngleResult{Confidence: conf}
	}

	deg, ok := geometry.AngleAt(a.Position, b.Position, c.Position)
	if !ok {
		return AngleResult{Confidence: conf}
	}
	return AngleResult{Angle: &deg, Confidence: conf}
}
