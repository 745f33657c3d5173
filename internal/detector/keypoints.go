// Package detector provides pose detection interfaces and the keypoint
// data model shared by the analysis pipeline.
package detector

import "github.com/langsard/pose/internal/geometry"

// Keypoint indices following the COCO 17-point convention.
// The index order is part of the contract with the detection model: output
// row i is keypoint i. Reordering requires re-tagging every stored pose.
const (
	Nose          = 0
	LeftEye       = 1
	RightEye      = 2
	LeftEar       = 3
	RightEar      = 4
	LeftShoulder  = 5
	RightShoulder = 6
	LeftElbow     = 7
	RightElbow    = 8
	LeftWrist     = 9
	RightWrist    = 10
	LeftHip       = 11
	RightHip      = 12
	LeftKnee      = 13
	RightKnee     = 14
	LeftAnkle     = 15
	RightAnkle    = 16
	NumKeypoints  = 17
)

// Names maps keypoint indices to their canonical identifiers.
var Names = [NumKeypoints]string{
	"nose",
	"left_eye",
	"right_eye",
	"left_ear",
	"right_ear",
	"left_shoulder",
	"right_shoulder",
	"left_elbow",
	"right_elbow",
	"left_wrist",
	"right_wrist",
	"left_hip",
	"right_hip",
	"left_knee",
	"right_knee",
	"left_ankle",
	"right_ankle",
}

// Index returns the canonical index for a keypoint name.
func Index(name string) (int, bool) {
	for i, n := range Names {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// Frame identifies the coordinate frame a pose is expressed in. A position
// means nothing without one.
type Frame string

const (
	// FrameDetector is raw detector output, coordinate convention unresolved.
	FrameDetector Frame = "detector"
	// FrameCanvas is pixels on the square letterboxed canvas.
	FrameCanvas Frame = "canvas"
	// FrameDisplay is pixels in the display box.
	FrameDisplay Frame = "display"
	// FrameNormalized is the centered, scale-free comparison frame.
	FrameNormalized Frame = "normalized"
)

// Keypoint is a single detected body landmark.
type Keypoint struct {
	Name       string         `json:"name"`
	Position   geometry.Point `json:"position"`
	Confidence float64        `json:"confidence"` // detector score in [0,1]
}

// Pose is one detected person: up to NumKeypoints keypoints expressed in a
// single coordinate frame. Keypoints the detector failed to produce are
// simply absent, so lookups go by name rather than index.
type Pose struct {
	Frame     Frame      `json:"frame"`
	Keypoints []Keypoint `json:"keypoints"`
}

// Keypoint returns the named keypoint, or false when the pose lacks it.
// Safe on a nil pose.
func (p *Pose) Keypoint(name string) (Keypoint, bool) {
	if p == nil {
		return Keypoint{}, false
	}
	for _, kp := range p.Keypoints {
		if kp.Name == name {
			return kp, true
		}
	}
	return Keypoint{}, false
}
