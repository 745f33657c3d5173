// Package testdata generates the synthetic image fixtures shared by the
// integration and end-to-end tests. The images are produced in memory
// rather than embedded: the pose detector is mocked in every test that
// uses them, so only the dimensions and the fact that they decode matter.
package testdata

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
)

// figurePNG renders a rough standing silhouette on a plain background and
// encodes it as PNG.
func figurePNG(w, h int, bg, fg color.NRGBA) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, bg)
		}
	}

	// Head.
	cx := w / 2
	r := h / 16
	headY := h / 6
	for y := headY - r; y <= headY+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			dx, dy := x-cx, y-headY
			if dx*dx+dy*dy <= r*r {
				img.SetNRGBA(x, y, fg)
			}
		}
	}

	// Torso and legs as a vertical bar.
	for y := headY + r; y < h*9/10; y++ {
		for x := cx - w/20; x <= cx+w/20; x++ {
			img.SetNRGBA(x, y, fg)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// FrontImagePNG returns a 400x300 landscape stand-in for a front-view
// photograph.
func FrontImagePNG() []byte {
	return figurePNG(400, 300,
		color.NRGBA{R: 220, G: 220, B: 220, A: 255},
		color.NRGBA{R: 40, G: 40, B: 80, A: 255})
}

// SideImagePNG returns a 300x400 portrait stand-in for a side-view
// photograph.
func SideImagePNG() []byte {
	return figurePNG(300, 400,
		color.NRGBA{R: 210, G: 215, B: 220, A: 255},
		color.NRGBA{R: 60, G: 40, B: 40, A: 255})
}
