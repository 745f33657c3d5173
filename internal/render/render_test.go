package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/langsard/pose/internal/detector"
	"github.com/langsard/pose/internal/transform"
)

func TestEdges(t *testing.T) {
	if len(Edges) != 17 {
		t.Errorf("expected 17 skeleton edges, got %d", len(Edges))
	}
	for i, e := range Edges {
		if e[0] < 0 || e[0] >= detector.NumKeypoints || e[1] < 0 || e[1] >= detector.NumKeypoints {
			t.Errorf("edge %d references an index outside the keypoint range: %v", i, e)
		}
		if e[0] == e[1] {
			t.Errorf("edge %d connects a keypoint to itself", i)
		}
	}
}

func countNonBlack(img *image.NRGBA) int {
	var n int
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.NRGBAAt(x, y)
			if c.R != 0 || c.G != 0 || c.B != 0 {
				n++
			}
		}
	}
	return n
}

func blackCanvas(side int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, side, side))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	return img
}

func TestAnnotate(t *testing.T) {
	pose := transform.ResolvePose(detector.FrontPose(), 128, 128)

	t.Run("draws over a blank canvas", func(t *testing.T) {
		got := Annotate(blackCanvas(128), pose, DefaultOptions())
		if countNonBlack(got) == 0 {
			t.Error("expected the skeleton to touch at least one pixel")
		}
	})

	t.Run("nil pose yields a plain copy", func(t *testing.T) {
		got := Annotate(blackCanvas(128), nil, DefaultOptions())
		if countNonBlack(got) != 0 {
			t.Error("expected no drawing for a nil pose")
		}
	})

	t.Run("does not modify the source", func(t *testing.T) {
		src := blackCanvas(128)
		Annotate(src, pose, DefaultOptions())
		if countNonBlack(src) != 0 {
			t.Error("expected the source image to be left unmodified")
		}
	})

	t.Run("low confidence pose is hidden", func(t *testing.T) {
		faint := &detector.Pose{Frame: pose.Frame}
		for _, kp := range pose.Keypoints {
			kp.Confidence = 0.05
			faint.Keypoints = append(faint.Keypoints, kp)
		}

		got := Annotate(blackCanvas(128), faint, DefaultOptions())
		if countNonBlack(got) != 0 {
			t.Error("expected nothing drawn below the confidence floor")
		}
	})

	t.Run("out of bounds keypoints are clipped", func(t *testing.T) {
		wild := &detector.Pose{Frame: detector.FrameCanvas}
		for _, kp := range pose.Keypoints {
			kp.Position.X += 10000
			wild.Keypoints = append(wild.Keypoints, kp)
		}

		// Must not panic; SetNRGBA drops out-of-bounds writes.
		got := Annotate(blackCanvas(128), wild, DefaultOptions())
		if countNonBlack(got) != 0 {
			t.Error("expected nothing drawn for an off-canvas pose")
		}
	})
}

func TestPalette(t *testing.T) {
	colors := palette(len(Edges))

	if len(colors) != len(Edges) {
		t.Fatalf("expected %d colors, got %d", len(Edges), len(colors))
	}

	seen := make(map[color.NRGBA]bool)
	for _, c := range colors {
		if seen[c] {
			t.Errorf("expected distinct edge colors, %v repeats", c)
		}
		seen[c] = true
		if c.A != 255 {
			t.Errorf("expected opaque colors, got alpha %d", c.A)
		}
	}

	again := palette(len(Edges))
	for i := range colors {
		if colors[i] != again[i] {
			t.Errorf("expected stable colors across calls, edge %d changed", i)
		}
	}
}
