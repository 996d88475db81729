package qrscan

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Contrast stretch factor applied around the 128 midpoint by
// GrayscaleContrast. Tuned for washed-out photos of printed cards.
const contrastFactor = 1.5

// Region is a rectangle expressed as percentages (0-100) of an image's
// dimensions. The same conversion serves the crop strategies and the
// OCR region plumbing so both round identically.
type Region struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PixelRect converts the region to pixel coordinates within an image of
// the given size, rounding each edge independently.
func (r Region) PixelRect(width, height int) image.Rectangle {
	x := int(math.Round(float64(width) * r.X / 100))
	y := int(math.Round(float64(height) * r.Y / 100))
	w := int(math.Round(float64(width) * r.Width / 100))
	h := int(math.Round(float64(height) * r.Height / 100))
	return image.Rect(x, y, x+w, y+h)
}

// GrayscaleContrast writes each pixel's contrast-stretched luminance
// into all three color channels, preserving alpha. Always allocates a
// new buffer; the caller may reuse the source across cascade branches.
func GrayscaleContrast(src image.Image) *image.NRGBA {
	img := imaging.Clone(src)
	for i := 0; i < len(img.Pix); i += 4 {
		lum := luminance(img.Pix[i], img.Pix[i+1], img.Pix[i+2])
		v := clamp255((lum-128)*contrastFactor + 128)
		img.Pix[i] = v
		img.Pix[i+1] = v
		img.Pix[i+2] = v
	}
	return img
}

// Binarize thresholds plain luminance: channels become 255 where
// luminance exceeds the threshold, 0 otherwise. No contrast step.
func Binarize(src image.Image, threshold uint8) *image.NRGBA {
	img := imaging.Clone(src)
	for i := 0; i < len(img.Pix); i += 4 {
		var v uint8
		if luminance(img.Pix[i], img.Pix[i+1], img.Pix[i+2]) > float64(threshold) {
			v = 255
		}
		img.Pix[i] = v
		img.Pix[i+1] = v
		img.Pix[i+2] = v
	}
	return img
}

// ResizeMax scales the longer dimension down to maxSize, preserving
// aspect ratio. Images already within bounds come back as a clone.
func ResizeMax(src image.Image, maxSize int) *image.NRGBA {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxSize && h <= maxSize {
		return imaging.Clone(src)
	}
	if w >= h {
		return imaging.Resize(src, maxSize, 0, imaging.Lanczos)
	}
	return imaging.Resize(src, 0, maxSize, imaging.Lanczos)
}

// CropPercent copies the region out of src into a new, smaller buffer.
func CropPercent(src image.Image, region Region) *image.NRGBA {
	bounds := src.Bounds()
	return imaging.Crop(src, region.PixelRect(bounds.Dx(), bounds.Dy()).Add(bounds.Min))
}

// ITU-R BT.601 luma weights.
func luminance(r, g, b uint8) float64 {
	return 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
