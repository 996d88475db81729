package qrscan

import (
	"image"
	"image/color"
	"testing"
)

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestGrayscaleContrastPixelMath(t *testing.T) {
	// luminance(200,100,50) = 59.8 + 58.7 + 5.7 = 124.2
	// stretched: (124.2-128)*1.5 + 128 = 122.3 -> 122
	src := solidImage(2, 2, color.NRGBA{R: 200, G: 100, B: 50, A: 255})

	out := GrayscaleContrast(src)
	got := out.NRGBAAt(0, 0)
	if got.R != 122 || got.G != 122 || got.B != 122 {
		t.Fatalf("expected gray 122, got %+v", got)
	}
	if got.A != 255 {
		t.Fatalf("alpha must be preserved, got %d", got.A)
	}

	// The source must not be mutated.
	if src.NRGBAAt(0, 0).R != 200 {
		t.Fatalf("source buffer was modified")
	}
}

func TestGrayscaleContrastClamps(t *testing.T) {
	white := GrayscaleContrast(solidImage(1, 1, color.NRGBA{R: 250, G: 250, B: 250, A: 255}))
	if got := white.NRGBAAt(0, 0).R; got != 255 {
		t.Fatalf("expected clamp to 255, got %d", got)
	}

	black := GrayscaleContrast(solidImage(1, 1, color.NRGBA{R: 10, G: 10, B: 10, A: 255}))
	if got := black.NRGBAAt(0, 0).R; got != 0 {
		t.Fatalf("expected clamp to 0, got %d", got)
	}
}

func TestBinarizeThreshold(t *testing.T) {
	src := solidImage(1, 1, color.NRGBA{R: 200, G: 100, B: 50, A: 255}) // luminance 124.2

	dark := Binarize(src, 128)
	if got := dark.NRGBAAt(0, 0); got.R != 0 || got.G != 0 || got.B != 0 {
		t.Fatalf("expected black below threshold, got %+v", got)
	}

	light := Binarize(src, 100)
	if got := light.NRGBAAt(0, 0); got.R != 255 || got.G != 255 || got.B != 255 {
		t.Fatalf("expected white above threshold, got %+v", got)
	}
}

func TestResizeMaxScalesLongerSide(t *testing.T) {
	src := solidImage(1000, 500, color.NRGBA{A: 255})

	out := ResizeMax(src, 500)
	if w, h := out.Bounds().Dx(), out.Bounds().Dy(); w != 500 || h != 250 {
		t.Fatalf("expected 500x250, got %dx%d", w, h)
	}

	tall := ResizeMax(solidImage(300, 600, color.NRGBA{A: 255}), 300)
	if w, h := tall.Bounds().Dx(), tall.Bounds().Dy(); w != 150 || h != 300 {
		t.Fatalf("expected 150x300, got %dx%d", w, h)
	}
}

func TestResizeMaxWithinBoundsClones(t *testing.T) {
	src := solidImage(100, 80, color.NRGBA{R: 7, A: 255})

	out := ResizeMax(src, 500)
	if w, h := out.Bounds().Dx(), out.Bounds().Dy(); w != 100 || h != 80 {
		t.Fatalf("expected untouched dimensions, got %dx%d", w, h)
	}

	out.SetNRGBA(0, 0, color.NRGBA{R: 99, A: 255})
	if src.NRGBAAt(0, 0).R != 7 {
		t.Fatalf("expected an independent buffer")
	}
}

func TestCropPercent(t *testing.T) {
	src := solidImage(200, 100, color.NRGBA{A: 255})

	out := CropPercent(src, Region{X: 10, Y: 20, Width: 80, Height: 60})
	if w, h := out.Bounds().Dx(), out.Bounds().Dy(); w != 160 || h != 60 {
		t.Fatalf("expected 160x60, got %dx%d", w, h)
	}
}

func TestRegionPixelRectRounds(t *testing.T) {
	r := Region{X: 10, Y: 0, Width: 50, Height: 100}

	rect := r.PixelRect(33, 10)
	if rect.Min.X != 3 {
		t.Fatalf("expected x=3 (round of 3.3), got %d", rect.Min.X)
	}
	if rect.Dx() != 17 {
		t.Fatalf("expected width 17 (round of 16.5), got %d", rect.Dx())
	}
	if rect.Dy() != 10 {
		t.Fatalf("expected full height, got %d", rect.Dy())
	}
}
