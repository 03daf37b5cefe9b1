package compose

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/codecraft128/codecraft/internal/layout"
	"github.com/disintegration/imaging"
)

// ConversionError represents a failure turning a drawable into a raster
// surface or transforming one.
type ConversionError struct {
	Operation string
	Err       error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("conversion error in %s: %v", e.Operation, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// Normalize converts any drawable into an NRGBA raster of the declared
// pixel size, resizing when the drawable's intrinsic bounds differ.
// Every export path goes through this single conversion point.
func Normalize(img image.Image, width, height int) (*image.NRGBA, error) {
	if img == nil {
		return nil, &ConversionError{Operation: "normalize", Err: errors.New("nil drawable")}
	}
	if width <= 0 || height <= 0 {
		return nil, &ConversionError{Operation: "normalize", Err: fmt.Errorf("invalid declared size %dx%d", width, height)}
	}
	b := img.Bounds()
	if b.Dx() != width || b.Dy() != height {
		return imaging.Resize(img, width, height, imaging.Lanczos), nil
	}
	return imaging.Clone(img), nil
}

// Compose draws the barcode raster and the optional overlay image onto an
// opaque white canvas according to the placement. The barcode is rotated in
// place about its own center; the overlay is never rotated. The placement
// already accounts for the rotated bounding box, so the symbol is never
// stretched.
func Compose(p layout.Placement, barcodeImg image.Image, barcodeWidth, barcodeHeight int,
	overlay *layout.Overlay, rotationDegrees int,
) (image.Image, error) {
	bars, err := Normalize(barcodeImg, barcodeWidth, barcodeHeight)
	if err != nil {
		return nil, err
	}

	canvas := imaging.New(p.CanvasWidth, p.CanvasHeight, color.White)

	if rotationDegrees != 0 {
		rotated := rotateExact(bars, rotationDegrees)
		centerX := p.BarcodeX + float64(barcodeWidth)/2
		centerY := p.BarcodeY + float64(barcodeHeight)/2
		rb := rotated.Bounds()
		x := roundInt(centerX - float64(rb.Dx())/2)
		y := roundInt(centerY - float64(rb.Dy())/2)
		canvas = imaging.Paste(canvas, rotated, image.Pt(x, y))
	} else {
		canvas = imaging.Paste(canvas, bars, image.Pt(roundInt(p.BarcodeX), roundInt(p.BarcodeY)))
	}

	if p.HasOverlay && overlay != nil && overlay.Source != nil {
		w := roundInt(p.ImageWidth)
		h := roundInt(p.ImageHeight)
		if w > 0 && h > 0 {
			img := imaging.Resize(overlay.Source, w, h, imaging.Lanczos)
			canvas = imaging.Paste(canvas, img, image.Pt(roundInt(p.ImageX), roundInt(p.ImageY)))
		}
	}

	return canvas, nil
}

// Resample resizes a finished surface by the given factor using Lanczos
// resampling. A factor of exactly 1.0 returns the input unchanged with no
// allocation.
func Resample(img image.Image, factor float64) image.Image {
	if factor == 1.0 {
		return img
	}
	b := img.Bounds()
	w := roundInt(float64(b.Dx()) * factor)
	h := roundInt(float64(b.Dy()) * factor)
	return imaging.Resize(img, w, h, imaging.Lanczos)
}

// rotateExact applies a lossless clockwise rotation by a multiple of 90
// degrees. imaging's Rotate90/270 are counter-clockwise.
func rotateExact(img image.Image, degrees int) image.Image {
	switch degrees {
	case 90:
		return imaging.Rotate270(img)
	case 180:
		return imaging.Rotate180(img)
	case 270:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

func roundInt(v float64) int { return int(math.Round(v)) }
