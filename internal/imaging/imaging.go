// Package imaging handles raster input and output for the pipeline:
// decoding uploads, producing the square detector canvas, and fitting
// images for display.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/disintegration/imaging"

	"github.com/langsard/pose/internal/transform"
)

// Decode parses image bytes into an image.Image. JPEG, PNG, GIF, TIFF and
// BMP are accepted.
func Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("decode image: empty input")
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// LetterboxCanvas scales img onto a size x size canvas, preserving aspect
// ratio and centering, and returns the canvas together with the transform
// that maps source pixels onto it. The padding is opaque black, which is
// what detection models see during training.
func LetterboxCanvas(img image.Image, size int) (*image.NRGBA, transform.Transform) {
	b := img.Bounds()
	t := transform.Letterbox(b.Dx(), b.Dy(), size)

	w := int(math.Round(float64(b.Dx()) * t.Scale))
	h := int(math.Round(float64(b.Dy()) * t.Scale))
	scaled := imaging.Resize(img, w, h, imaging.Lanczos)

	canvas := imaging.New(size, size, color.NRGBA{A: 255})
	return imaging.Paste(canvas, scaled, image.Pt(int(t.OffsetX), int(t.OffsetY))), t
}

// Scale resizes img by the transform's scale factor, upscaling when the
// factor exceeds one. Taking the transform rather than a box keeps the
// pixel content aligned with coordinates mapped through the same
// transform.
func Scale(img image.Image, t transform.Transform) *image.NRGBA {
	b := img.Bounds()
	w := int(math.Round(float64(b.Dx()) * t.Scale))
	h := int(math.Round(float64(b.Dy()) * t.Scale))
	return imaging.Resize(img, w, h, imaging.Lanczos)
}

// FitBox scales img into a boxW x boxH surface, preserving aspect ratio
// and centering on opaque black, and returns the surface together with the
// transform that maps source pixels into it. It is the display-side
// counterpart of LetterboxCanvas.
func FitBox(img image.Image, boxW, boxH int) (*image.NRGBA, transform.Transform) {
	b := img.Bounds()
	t := transform.Fit(b.Dx(), b.Dy(), boxW, boxH)

	scaled := Scale(img, t)
	surface := imaging.New(boxW, boxH, color.NRGBA{A: 255})
	return imaging.Paste(surface, scaled,
		image.Pt(int(math.Round(t.OffsetX)), int(math.Round(t.OffsetY)))), t
}

// ToBase64PNG encodes img as a base64 PNG string, ready for a data URI.
func ToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
