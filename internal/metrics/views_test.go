package metrics

import (
	"testing"

	"github.com/langsard/pose/internal/detector"
)

func angleOf(deg, conf float64) AngleResult {
	return AngleResult{Angle: &deg, Confidence: conf}
}

func TestChooseBestView(t *testing.T) {
	t.Run("higher confidence wins", func(t *testing.T) {
		front := map[string]AngleResult{"left_elbow": angleOf(170, 0.6)}
		side := map[string]AngleResult{"left_elbow": angleOf(150, 0.9)}

		got := ChooseBestView(front, side)["left_elbow"]
		if got.View != ViewSide {
			t.Errorf("expected side view, got %q", got.View)
		}
		if *got.Angle != 150 {
			t.Errorf("expected angle 150, got %f", *got.Angle)
		}
	})

	t.Run("equal confidence goes to front", func(t *testing.T) {
		front := map[string]AngleResult{"left_knee": angleOf(175, 0.8)}
		side := map[string]AngleResult{"left_knee": angleOf(168, 0.8)}

		got := ChooseBestView(front, side)["left_knee"]
		if got.View != ViewFront {
			t.Errorf("expected tie to go to front, got %q", got.View)
		}
		if *got.Angle != 175 {
			t.Errorf("expected angle 175, got %f", *got.Angle)
		}
	})

	t.Run("winner may carry a nil angle", func(t *testing.T) {
		// The side view saw the joint more confidently but its angle was
		// degenerate; selection is by confidence alone.
		front := map[string]AngleResult{"right_elbow": angleOf(120, 0.2)}
		side := map[string]AngleResult{"right_elbow": {Confidence: 0.5}}

		got := ChooseBestView(front, side)["right_elbow"]
		if got.View != ViewSide {
			t.Errorf("expected side view, got %q", got.View)
		}
		if got.Angle != nil {
			t.Errorf("expected nil angle, got %f", *got.Angle)
		}
	})

	t.Run("label present in only one view", func(t *testing.T) {
		front := map[string]AngleResult{}
		side := map[string]AngleResult{"right_knee": angleOf(140, 0.7)}

		got := ChooseBestView(front, side)
		if got["right_knee"].View != ViewSide {
			t.Errorf("expected side view, got %q", got["right_knee"].View)
		}
	})
}

func TestMergeBestPerJoint(t *testing.T) {
	t.Run("element-wise winner by confidence", func(t *testing.T) {
		front := poseWith(
			keypoint("nose", 10, 10, 0.9),
			keypoint("left_wrist", 20, 20, 0.4),
		)
		side := poseWith(
			keypoint("nose", 11, 11, 0.95),
			keypoint("left_wrist", 21, 21, 0.3),
		)

		got := MergeBestPerJoint(front, side)

		nose, _ := got.Keypoint("nose")
		if nose.Position.X != 11 {
			t.Errorf("expected the side nose (x=11), got x=%f", nose.Position.X)
		}
		wrist, _ := got.Keypoint("left_wrist")
		if wrist.Position.X != 20 {
			t.Errorf("expected the front wrist (x=20), got x=%f", wrist.Position.X)
		}
	})

	t.Run("tie goes to front", func(t *testing.T) {
		front := poseWith(keypoint("left_ankle", 5, 5, 0.8))
		side := poseWith(keypoint("left_ankle", 6, 6, 0.8))

		got := MergeBestPerJoint(front, side)
		ankle, _ := got.Keypoint("left_ankle")
		if ankle.Position.X != 5 {
			t.Errorf("expected the front ankle (x=5), got x=%f", ankle.Position.X)
		}
	})

	t.Run("keypoint present in only one view is taken", func(t *testing.T) {
		front := poseWith(keypoint("nose", 10, 10, 0.9))
		side := poseWith(keypoint("right_ear", 30, 30, 0.6))

		got := MergeBestPerJoint(front, side)
		if len(got.Keypoints) != 2 {
			t.Fatalf("expected 2 keypoints, got %d", len(got.Keypoints))
		}
		if _, ok := got.Keypoint("right_ear"); !ok {
			t.Error("expected the side-only right_ear to be present")
		}
	})

	t.Run("canonical order in the composite", func(t *testing.T) {
		got := MergeBestPerJoint(detector.FrontPose(), detector.SidePose())
		if len(got.Keypoints) != detector.NumKeypoints {
			t.Fatalf("expected %d keypoints, got %d", detector.NumKeypoints, len(got.Keypoints))
		}
		for i, kp := range got.Keypoints {
			if kp.Name != detector.Names[i] {
				t.Errorf("position %d: expected %q, got %q", i, detector.Names[i], kp.Name)
			}
		}
	})

	t.Run("one nil view", func(t *testing.T) {
		side := poseWith(keypoint("nose", 1, 2, 0.5))
		got := MergeBestPerJoint(nil, side)
		if got == nil {
			t.Fatal("expected a composite from the surviving view")
		}
		if _, ok := got.Keypoint("nose"); !ok {
			t.Error("expected the side nose to be present")
		}
	})

	t.Run("both nil", func(t *testing.T) {
		if got := MergeBestPerJoint(nil, nil); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})
}
