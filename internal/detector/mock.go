package detector

import (
	"image"
	"sync"

	"github.com/langsard/pose/internal/geometry"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results and the reported state.
type MockDetector struct {
	mu         sync.Mutex
	state      State
	pose       *Pose
	err        error
	detectFunc func(img image.Image) (*Pose, error)
}

// NewMockDetector creates a MockDetector that reports StateReady.
func NewMockDetector() *MockDetector {
	return &MockDetector{state: StateReady}
}

// SetPose sets the pose that will be returned by Detect.
func (m *MockDetector) SetPose(p *Pose) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pose = p
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// SetState sets the state reported by State.
func (m *MockDetector) SetState(s State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s
}

// SetDetectFunc installs a hook that replaces the fixed pose and error.
// Useful when a test needs different results per input image.
func (m *MockDetector) SetDetectFunc(fn func(img image.Image) (*Pose, error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.detectFunc = fn
}

// Load marks the mock ready.
func (m *MockDetector) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateReady
	return nil
}

// State reports the configured state.
func (m *MockDetector) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Detect returns the pre-configured pose or error.
func (m *MockDetector) Detect(img image.Image) (*Pose, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.detectFunc != nil {
		return m.detectFunc(img)
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.pose, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

func kp(index int, x, y, confidence float64) Keypoint {
	return Keypoint{
		Name:       Names[index],
		Position:   geometry.Point{X: x, Y: y},
		Confidence: confidence,
	}
}

// FrontPose returns a preset pose of a person standing upright, facing the
// camera, in normalized [0,1] coordinates with y growing downward.
func FrontPose() *Pose {
	return &Pose{
		Frame: FrameDetector,
		Keypoints: []Keypoint{
			kp(Nose, 0.50, 0.10, 0.97),
			kp(LeftEye, 0.52, 0.09, 0.95),
			kp(RightEye, 0.48, 0.09, 0.95),
			kp(LeftEar, 0.55, 0.10, 0.88),
			kp(RightEar, 0.45, 0.10, 0.88),
			kp(LeftShoulder, 0.60, 0.22, 0.93),
			kp(RightShoulder, 0.40, 0.22, 0.93),
			kp(LeftElbow, 0.64, 0.34, 0.90),
			kp(RightElbow, 0.36, 0.34, 0.90),
			kp(LeftWrist, 0.66, 0.46, 0.87),
			kp(RightWrist, 0.34, 0.46, 0.87),
			kp(LeftHip, 0.57, 0.50, 0.92),
			kp(RightHip, 0.43, 0.50, 0.92),
			kp(LeftKnee, 0.57, 0.68, 0.89),
			kp(RightKnee, 0.43, 0.68, 0.89),
			kp(LeftAnkle, 0.57, 0.86, 0.85),
			kp(RightAnkle, 0.43, 0.86, 0.85),
		},
	}
}

// SidePose returns a preset pose of the same person seen in right profile.
// The left side of the body is partly occluded, so its keypoints carry
// lower confidence.
func SidePose() *Pose {
	return &Pose{
		Frame: FrameDetector,
		Keypoints: []Keypoint{
			kp(Nose, 0.58, 0.10, 0.94),
			kp(LeftEye, 0.56, 0.09, 0.41),
			kp(RightEye, 0.56, 0.09, 0.93),
			kp(LeftEar, 0.52, 0.10, 0.38),
			kp(RightEar, 0.52, 0.10, 0.91),
			kp(LeftShoulder, 0.50, 0.22, 0.52),
			kp(RightShoulder, 0.50, 0.22, 0.95),
			kp(LeftElbow, 0.52, 0.34, 0.48),
			kp(RightElbow, 0.52, 0.34, 0.91),
			kp(LeftWrist, 0.55, 0.45, 0.44),
			kp(RightWrist, 0.55, 0.45, 0.88),
			kp(LeftHip, 0.49, 0.50, 0.55),
			kp(RightHip, 0.49, 0.50, 0.93),
			kp(LeftKnee, 0.51, 0.68, 0.50),
			kp(RightKnee, 0.51, 0.68, 0.90),
			kp(LeftAnkle, 0.50, 0.86, 0.47),
			kp(RightAnkle, 0.50, 0.86, 0.86),
		},
	}
}
