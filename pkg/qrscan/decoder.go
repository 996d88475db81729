// Package qrscan recovers QR payloads from photographs of printed QRIS
// cards. A single decode pass over a bad photo fails often, so the
// scanner runs a fixed cascade of preprocessed variants (resizes,
// center crops, contrast stretch, binarization) and stops at the first
// hit, reporting which variant succeeded.
package qrscan

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/sirupsen/logrus"
)

// StrategyNone is reported when every strategy in the cascade failed.
const StrategyNone = "none"

// Result is the outcome of one scan cascade. Strategy identifies the
// transform chain that produced the hit (e.g. "resized-600",
// "binarized-100") with enough detail to reproduce the attempt.
type Result struct {
	Success  bool   `json:"success"`
	Data     string `json:"data,omitempty"`
	Strategy string `json:"strategy"`
}

// BitmapDecoder recovers a QR payload from one prepared image, trying
// both normal and inverted colors. Any error means "not found on this
// variant"; the cascade moves on to the next strategy.
type BitmapDecoder interface {
	Decode(img image.Image) (string, error)
}

// Scanner runs the strategy cascade over a decoded raster image.
type Scanner struct {
	dec BitmapDecoder
	log *logrus.Logger
}

func New(log *logrus.Logger) *Scanner {
	return &Scanner{dec: &zxingDecoder{}, log: log}
}

// NewWithDecoder swaps the underlying bitmap decoder; used by tests to
// observe the cascade order.
func NewWithDecoder(dec BitmapDecoder, log *logrus.Logger) *Scanner {
	return &Scanner{dec: dec, log: log}
}

// Cascade parameters, in the exact order they are attempted. Cheap,
// likely-to-succeed variants come first; destructive ones last.
var (
	resizeSizes        = []int{500, 600, 400, 800, 300, 1000, 1200}
	binarizeThresholds = []uint8{128, 100, 80, 150, 180, 60, 200}
	resizeThenGraySizes = []int{500, 600, 400}

	// QR codes sit near the center of a printed card; the windows skip
	// margins prone to glare and print artifacts.
	cropRegions = []Region{
		{X: 10, Y: 20, Width: 80, Height: 60},
		{X: 15, Y: 25, Width: 70, Height: 50},
		{X: 5, Y: 15, Width: 90, Height: 70},
		{X: 20, Y: 30, Width: 60, Height: 40},
		{X: 0, Y: 10, Width: 100, Height: 80},
	}
)

type strategy struct {
	name      string
	transform func(image.Image) image.Image
}

func cascade() []strategy {
	list := []strategy{{
		name:      "direct",
		transform: func(img image.Image) image.Image { return img },
	}}

	for _, size := range resizeSizes {
		list = append(list, strategy{
			name:      fmt.Sprintf("resized-%d", size),
			transform: func(img image.Image) image.Image { return ResizeMax(img, size) },
		})
	}

	for _, region := range cropRegions {
		list = append(list, strategy{
			name: fmt.Sprintf("cropped-%.0f-%.0f-%.0f-%.0f",
				region.X, region.Y, region.Width, region.Height),
			transform: func(img image.Image) image.Image { return CropPercent(img, region) },
		})
	}

	list = append(list, strategy{
		name:      "preprocessed",
		transform: func(img image.Image) image.Image { return GrayscaleContrast(img) },
	})

	for _, threshold := range binarizeThresholds {
		list = append(list, strategy{
			name:      fmt.Sprintf("binarized-%d", threshold),
			transform: func(img image.Image) image.Image { return Binarize(img, threshold) },
		})
	}

	for _, size := range resizeThenGraySizes {
		list = append(list, strategy{
			name:      fmt.Sprintf("resized-preprocessed-%d", size),
			transform: func(img image.Image) image.Image { return GrayscaleContrast(ResizeMax(img, size)) },
		})
	}

	return list
}

// Scan tries each strategy in order and short-circuits on the first
// success. Exhausting the cascade is a normal outcome for poor photos,
// reported as Success=false with Strategy "none".
func (s *Scanner) Scan(img image.Image) Result {
	for _, st := range cascade() {
		payload, err := s.dec.Decode(st.transform(img))
		if err != nil {
			continue
		}

		if s.log != nil {
			s.log.WithFields(logrus.Fields{
				"strategy": st.name,
				"length":   len(payload),
			}).Debug("QR payload recovered")
		}

		return Result{Success: true, Data: payload, Strategy: st.name}
	}

	return Result{Success: false, Strategy: StrategyNone}
}

type zxingDecoder struct{}

func (d *zxingDecoder) Decode(img image.Image) (string, error) {
	if text, err := decodeBitmap(img); err == nil {
		return text, nil
	}
	// Some printed cards render the code light-on-dark.
	return decodeBitmap(imaging.Invert(img))
}

func decodeBitmap(img image.Image) (string, error) {
	source := gozxing.NewLuminanceSourceFromImage(img)

	bitmap, err := gozxing.NewBinaryBitmap(gozxing.NewHybridBinarizer(source))
	if err != nil {
		return "", err
	}

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}

	result, err := qrcode.NewQRCodeReader().Decode(bitmap, hints)
	if err != nil {
		return "", err
	}

	return result.GetText(), nil
}
