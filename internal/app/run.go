package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/langsard/pose/internal/detector"
	"github.com/langsard/pose/internal/imaging"
	"github.com/langsard/pose/internal/metrics"
	"github.com/langsard/pose/internal/render"
	"github.com/langsard/pose/internal/store"
	"github.com/langsard/pose/internal/transform"
)

// Stages reported through progress events.
const (
	StageDecode  = "decode"
	StageDetect  = "detect"
	StageResolve = "resolve"
	StageMetrics = "metrics"
	StageDone    = "done"
	StageFailed  = "failed"
)

// Event reports the progress of one analysis run. View is empty for the
// stages that span both views.
type Event struct {
	RunID string `json:"run_id"`
	View  string `json:"view,omitempty"`
	Stage string `json:"stage"`
	Error string `json:"error,omitempty"`
}

// ViewResult is the per-view output of a run.
type ViewResult struct {
	View         string `json:"view"`
	SourceWidth  int    `json:"source_width"`
	SourceHeight int    `json:"source_height"`

	// Detected is false when the detector found nobody in this view.
	Detected bool `json:"detected"`

	// Keypoints is the resolved pose in display-frame pixels, nil when
	// Detected is false.
	Keypoints *detector.Pose `json:"keypoints,omitempty"`

	// Overlay is a base64 PNG of the display surface with the skeleton
	// drawn on top.
	Overlay string `json:"overlay_png"`
}

// Result is the outcome of one analysis run. It is returned to the caller
// and never persisted.
type Result struct {
	RunID   string            `json:"run_id"`
	Front   *ViewResult       `json:"front"`
	Side    *ViewResult       `json:"side"`
	Metrics *metrics.Analysis `json:"metrics"`
}

// Analyze runs the full pipeline over a front and a side image. The two
// views carry no data dependency on each other, so they are processed in
// parallel and joined before metrics are computed. A view in which nobody
// was detected degrades to nil metrics fields; a hard failure on either
// view fails the run.
func (a *App) Analyze(ctx context.Context, front, side []byte) (*Result, error) {
	if len(front) == 0 || len(side) == 0 {
		return nil, ErrMissingInput
	}

	det := a.Detector()
	if det == nil {
		return nil, detector.ErrNotReady
	}
	if det.State() == detector.StateUninitialized {
		if err := det.Load(); err != nil {
			return nil, fmt.Errorf("load detector: %w", err)
		}
	}
	if det.State() != detector.StateReady {
		return nil, detector.ErrNotReady
	}

	runID := uuid.New().String()
	settings := a.settings()

	inputs := [2][]byte{front, side}
	views := [2]string{metrics.ViewFront, metrics.ViewSide}
	var results [2]*ViewResult
	var errs [2]error

	var wg sync.WaitGroup
	for i := range inputs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = a.analyzeView(runID, views[i], det, inputs[i], settings)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			a.emit(Event{RunID: runID, View: views[i], Stage: StageFailed, Error: err.Error()})
			return nil, fmt.Errorf("%s view: %w", views[i], err)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.emit(Event{RunID: runID, Stage: StageMetrics})
	engine := metrics.NewEngine(metrics.Config{
		Definitions:         metrics.Definitions(settings.ExtendedJoints),
		ConfidenceThreshold: settings.ConfidenceThreshold,
		Policy:              metrics.MergePolicy(settings.MergePolicy),
	})

	result := &Result{
		RunID:   runID,
		Front:   results[0],
		Side:    results[1],
		Metrics: engine.Analyze(results[0].Keypoints, results[1].Keypoints),
	}
	a.emit(Event{RunID: runID, Stage: StageDone})
	return result, nil
}

// analyzeView carries one image from bytes to a rendered display overlay.
func (a *App) analyzeView(runID, view string, det detector.Detector, data []byte, s store.Settings) (*ViewResult, error) {
	a.emit(Event{RunID: runID, View: view, Stage: StageDecode})
	img, err := imaging.Decode(data)
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()

	canvas, _ := imaging.LetterboxCanvas(img, a.config.CanvasSize)

	a.emit(Event{RunID: runID, View: view, Stage: StageDetect})
	raw, err := det.Detect(canvas)
	if err != nil {
		return nil, fmt.Errorf("detect: %w", err)
	}

	a.emit(Event{RunID: runID, View: view, Stage: StageResolve})
	// The detector consumed the square canvas, so raw coordinates resolve
	// against the canvas side, not the source image size.
	canvasSide := float64(a.config.CanvasSize)
	onCanvas := transform.ResolvePose(raw, canvasSide, canvasSide)

	surface, display := imaging.FitBox(canvas, s.DisplayWidth, s.DisplayHeight)
	onDisplay := transform.Project(onCanvas, display, detector.FrameDisplay)

	opts := render.DefaultOptions()
	opts.MinConfidence = s.ConfidenceThreshold
	overlay, err := imaging.ToBase64PNG(render.Annotate(surface, onDisplay, opts))
	if err != nil {
		return nil, err
	}

	return &ViewResult{
		View:         view,
		SourceWidth:  bounds.Dx(),
		SourceHeight: bounds.Dy(),
		Detected:     onDisplay != nil,
		Keypoints:    onDisplay,
		Overlay:      overlay,
	}, nil
}
