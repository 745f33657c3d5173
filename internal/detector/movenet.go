package detector

import (
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"

	"github.com/langsard/pose/internal/geometry"
)

// MoveNet implements Detector on a MoveNet SinglePose network executed
// through the OpenCV DNN module.
type MoveNet struct {
	config Config

	mu    sync.Mutex
	state State
	net   gocv.Net
}

// NewMoveNet creates a detector for the given config. The network itself
// is read by Load, not here, so construction is cheap and the caller
// decides when to pay the load cost.
func NewMoveNet(config Config) *MoveNet {
	return &MoveNet{config: config, state: StateUninitialized}
}

// State reports the current load state.
func (d *MoveNet) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Load reads the network from disk.
func (d *MoveNet) Load() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state == StateReady {
		return nil
	}
	if d.config.ModelPath == "" {
		d.state = StateFailed
		return fmt.Errorf("load model: no model path configured")
	}

	d.state = StateLoading
	net := gocv.ReadNet(d.config.ModelPath, "")
	if net.Empty() {
		d.state = StateFailed
		return fmt.Errorf("load model %s: network is empty", d.config.ModelPath)
	}

	net.SetPreferableBackend(gocv.NetBackendDefault)
	net.SetPreferableTarget(gocv.NetTargetCPU)

	d.net = net
	d.state = StateReady
	return nil
}

// Detect runs the network on an image, normally the square letterboxed
// canvas. MoveNet emits coordinates normalized to its input frame; callers
// resolve them into canvas pixels.
func (d *MoveNet) Detect(img image.Image) (*Pose, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateReady {
		return nil, ErrNotReady
	}

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("convert image: %w", err)
	}
	defer mat.Close()

	// The mat above is already RGB, which is what MoveNet expects, so the
	// blob does not swap channels.
	blob := gocv.BlobFromImage(mat, 1.0, image.Pt(d.config.InputSize, d.config.InputSize),
		gocv.NewScalar(0, 0, 0, 0), false, false)
	defer blob.Close()

	d.net.SetInput(blob, "")
	output := d.net.Forward("")
	defer output.Close()

	// Output shape is [1, 1, 17, 3]: one row per keypoint, columns
	// (y, x, score), coordinates normalized to [0, 1].
	rows := output.Reshape(1, NumKeypoints)
	defer rows.Close()

	pose := &Pose{Frame: FrameDetector, Keypoints: make([]Keypoint, 0, NumKeypoints)}
	var scoreSum float64
	for i := 0; i < NumKeypoints; i++ {
		y := float64(rows.GetFloatAt(i, 0))
		x := float64(rows.GetFloatAt(i, 1))
		score := float64(rows.GetFloatAt(i, 2))
		scoreSum += score
		pose.Keypoints = append(pose.Keypoints, Keypoint{
			Name:       Names[i],
			Position:   geometry.Point{X: x, Y: y},
			Confidence: score,
		})
	}

	// Single-person mode: a low mean score across all joints means nobody
	// is in frame, which is a normal result rather than an error.
	if scoreSum/NumKeypoints < d.config.PresenceThreshold {
		return nil, nil
	}

	return pose, nil
}

// Close releases the network.
func (d *MoveNet) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateReady {
		return nil
	}
	d.state = StateUninitialized
	return d.net.Close()
}
