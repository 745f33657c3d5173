package metrics

import "github.com/langsard/pose/internal/detector"

// MergePolicy selects how the front and side views combine into one
// result. Exactly one policy applies per engine; mixing them in a single
// result would make the view attribution meaningless.
type MergePolicy string

const (
	// PolicyBestPerAngle keeps per-joint view attribution: each angle
	// comes from the view that computed it more confidently.
	PolicyBestPerAngle MergePolicy = "best-per-angle"

	// PolicyBestPerKeypoint merges the two views into one composite pose
	// first and computes angles on the composite. No per-angle view
	// attribution exists under this policy.
	PolicyBestPerKeypoint MergePolicy = "best-per-keypoint"
)

// Config holds the metric engine's tuning.
type Config struct {
	// Definitions is the joint angle set to compute.
	Definitions []Definition

	// ConfidenceThreshold gates angle computation: an angle is nil unless
	// all three of its keypoints score at least this value (0.0-1.0).
	ConfidenceThreshold float64

	// Policy selects how the two views combine.
	Policy MergePolicy
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Definitions:         CoreDefinitions(),
		ConfidenceThreshold: 0.3,
		Policy:              PolicyBestPerAngle,
	}
}

// Engine computes pose metrics under a fixed configuration.
type Engine struct {
	defs      []Definition
	threshold float64
	policy    MergePolicy
}

// NewEngine creates an engine. Missing config fields fall back to the
// defaults.
func NewEngine(config Config) *Engine {
	if len(config.Definitions) == 0 {
		config.Definitions = CoreDefinitions()
	}
	if config.Policy == "" {
		config.Policy = PolicyBestPerAngle
	}
	return &Engine{
		defs:      config.Definitions,
		threshold: config.ConfidenceThreshold,
		policy:    config.Policy,
	}
}

// ViewMetrics are the measurements derived from a single pose.
type ViewMetrics struct {
	Angles      map[string]AngleResult `json:"angles"`
	Proportions Proportions            `json:"proportions"`
	Normalized  *detector.Pose         `json:"normalized"`
}

// Analysis combines the per-view measurements with the cross-view product
// of the engine's merge policy.
type Analysis struct {
	Front *ViewMetrics `json:"front,omitempty"`
	Side  *ViewMetrics `json:"side,omitempty"`

	// Best holds the per-angle winners; set under PolicyBestPerAngle.
	Best map[string]BestAngle `json:"best,omitempty"`

	// Merged holds the metrics of the composite pose and MergedPose the
	// composite itself; set under PolicyBestPerKeypoint.
	Merged     *ViewMetrics   `json:"merged,omitempty"`
	MergedPose *detector.Pose `json:"merged_pose,omitempty"`

	// NormalizedDistance compares the two normalized poses when both
	// views resolved.
	NormalizedDistance *float64 `json:"normalized_distance,omitempty"`
}

// Analyze derives all metrics from the two views. Either pose may be nil:
// that view's metrics are omitted and the cross-view product falls back to
// whatever the remaining view supports.
func (e *Engine) Analyze(front, side *detector.Pose) *Analysis {
	a := &Analysis{}
	if front != nil {
		a.Front = e.viewMetrics(front)
	}
	if side != nil {
		a.Side = e.viewMetrics(side)
	}

	switch e.policy {
	case PolicyBestPerKeypoint:
		if merged := MergeBestPerJoint(front, side); merged != nil {
			a.Merged = e.viewMetrics(merged)
			a.MergedPose = merged
		}
	default:
		a.Best = ChooseBestView(e.Angles(front), e.Angles(side))
	}

	if a.Front != nil && a.Side != nil {
		if d, ok := NormalizedDistance(a.Front.Normalized, a.Side.Normalized); ok {
			a.NormalizedDistance = &d
		}
	}
	return a
}

func (e *Engine) viewMetrics(p *detector.Pose) *ViewMetrics {
	return &ViewMetrics{
		Angles:      e.Angles(p),
		Proportions: ComputeProportions(p),
		Normalized:  NormalizePose(p),
	}
}
