// Package metrics derives joint angles, body proportions and normalized
// poses from detected keypoints, and combines the front and side views
// into a single result.
package metrics

// Definition names a joint angle as an ordered keypoint triple: the angle
// is measured at vertex B between the segments B->A and B->C.
type Definition struct {
	Label string `json:"label"`
	A     string `json:"a"`
	B     string `json:"b"`
	C     string `json:"c"`
}

// CoreDefinitions returns the four elbow and knee angles.
func CoreDefinitions() []Definition {
	return []Definition{
		{Label: "left_elbow", A: "left_shoulder", B: "left_elbow", C: "left_wrist"},
		{Label: "right_elbow", A: "right_shoulder", B: "right_elbow", C: "right_wrist"},
		{Label: "left_knee", A: "left_hip", B: "left_knee", C: "left_ankle"},
		{Label: "right_knee", A: "right_hip", B: "right_knee", C: "right_ankle"},
	}
}

// ExtendedDefinitions returns the core set plus the shoulder and hip
// angles.
func ExtendedDefinitions() []Definition {
	return append(CoreDefinitions(),
		Definition{Label: "left_shoulder", A: "left_elbow", B: "left_shoulder", C: "left_hip"},
		Definition{Label: "right_shoulder", A: "right_elbow", B: "right_shoulder", C: "right_hip"},
		Definition{Label: "left_hip", A: "left_shoulder", B: "left_hip", C: "left_knee"},
		Definition{Label: "right_hip", A: "right_shoulder", B: "right_hip", C: "right_knee"},
	)
}

// Definitions returns the angle set for the given preference.
func Definitions(extended bool) []Definition {
	if extended {
		return ExtendedDefinitions()
	}
	return CoreDefinitions()
}
