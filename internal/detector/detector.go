package detector

import (
	"errors"
	"image"
)

// ErrNotReady is returned by Detect when the model has not been loaded yet,
// is still loading, or failed to load.
var ErrNotReady = errors.New("detector not ready")

// State describes where a detector is in its load lifecycle.
type State string

const (
	// StateUninitialized means Load has not been called.
	StateUninitialized State = "uninitialized"
	// StateLoading means a load is in progress.
	StateLoading State = "loading"
	// StateReady means the detector accepts Detect calls.
	StateReady State = "ready"
	// StateFailed means the last load attempt failed.
	StateFailed State = "failed"
)

// Detector defines the interface for pose detection implementations.
type Detector interface {
	// Load makes the detector ready for Detect calls. Calling Load on a
	// ready detector is a no-op; calling it after a failure retries.
	Load() error

	// State reports the current load state.
	State() State

	// Detect runs single-person pose estimation on an image and returns
	// the detected pose, or nil when no person is found. Nil with a nil
	// error is a normal outcome, not a failure.
	Detect(img image.Image) (*Pose, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for pose detection.
type Config struct {
	// ModelPath is the path of the serialized network to load.
	ModelPath string

	// InputSize is the model's square input side in pixels.
	InputSize int

	// PresenceThreshold is the minimum mean keypoint score for a result
	// to count as a detected person (0.0-1.0).
	PresenceThreshold float64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		InputSize:         256,
		PresenceThreshold: 0.2,
	}
}
