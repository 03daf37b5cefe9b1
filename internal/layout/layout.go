package layout

import (
	"fmt"
	"image"
	"math"
)

// Position places the overlay image relative to the barcode.
type Position string

const (
	PositionLeft  Position = "left"
	PositionRight Position = "right"
	PositionOver  Position = "over"
	PositionUnder Position = "under"
)

// Spacing is the fixed gap in pixels between barcode and overlay image.
const Spacing = 10

// Limits for the user-configurable knobs.
const (
	MinSizePercent = 25
	MaxSizePercent = 200
	MinScaleFactor = 0.5
	MaxScaleFactor = 3.0
)

// Config holds the layout knobs applied uniformly to every record at
// render time. It is a value type: callers snapshot it per batch.
type Config struct {
	Position        Position
	SizePercent     int     // overlay height as percent of barcode height
	RotationDegrees int     // 0, 90, 180 or 270, clockwise
	ScaleFactor     float64 // output resolution multiplier
}

// DefaultConfig matches the original UI defaults.
func DefaultConfig() Config {
	return Config{
		Position:        PositionRight,
		SizePercent:     100,
		RotationDegrees: 0,
		ScaleFactor:     1.0,
	}
}

// Validate checks the config against the documented ranges.
func (c Config) Validate() error {
	switch c.Position {
	case PositionLeft, PositionRight, PositionOver, PositionUnder:
	default:
		return fmt.Errorf("invalid position: %q", c.Position)
	}
	if c.SizePercent < MinSizePercent || c.SizePercent > MaxSizePercent {
		return fmt.Errorf("size percent %d out of range [%d,%d]", c.SizePercent, MinSizePercent, MaxSizePercent)
	}
	switch c.RotationDegrees {
	case 0, 90, 180, 270:
	default:
		return fmt.Errorf("invalid rotation: %d", c.RotationDegrees)
	}
	if c.ScaleFactor < MinScaleFactor || c.ScaleFactor > MaxScaleFactor {
		return fmt.Errorf("scale factor %.2f out of range [%.1f,%.1f]", c.ScaleFactor, MinScaleFactor, MaxScaleFactor)
	}
	return nil
}

// Overlay describes the user-supplied image composited next to each barcode.
// A single instance is shared by reference across all records.
type Overlay struct {
	Width  int
	Height int
	Source image.Image
}

// Placement is the computed geometry for one composited output. It is
// derived fresh for every render call and never cached.
type Placement struct {
	CanvasWidth  int
	CanvasHeight int

	// Top-left corner of the unrotated barcode raster. Rotation happens
	// about the barcode's own center, so for 90/270 the effective
	// bounding box is already accounted for in these coordinates.
	BarcodeX float64
	BarcodeY float64

	ImageX      float64
	ImageY      float64
	ImageWidth  float64
	ImageHeight float64

	HasOverlay bool
}

// EffectiveSize returns the bounding-box dimensions of a w×h barcode after
// rotation: width and height swap at 90 and 270 degrees.
func EffectiveSize(w, h, rotation int) (int, int) {
	if rotation == 90 || rotation == 270 {
		return h, w
	}
	return w, h
}

// Compute derives the canvas size and element coordinates for one barcode.
// barcodeWidth/barcodeHeight are the unrotated pixel dimensions of the
// rendered symbol. overlay may be nil. Pure arithmetic, no I/O.
func Compute(barcodeWidth, barcodeHeight int, overlay *Overlay, cfg Config) Placement {
	bw := float64(barcodeWidth)
	bh := float64(barcodeHeight)

	var imageWidth, imageHeight float64
	hasImage := overlay != nil && overlay.Width > 0 && overlay.Height > 0
	if hasImage {
		imageHeight = bh * float64(cfg.SizePercent) / 100
		aspect := float64(overlay.Width) / float64(overlay.Height)
		imageWidth = imageHeight * aspect

		// Side positions cap the overlay width; above/under do not.
		if cfg.Position == PositionLeft || cfg.Position == PositionRight {
			maxWidth := 200 * float64(cfg.SizePercent) / 100
			if imageWidth > maxWidth {
				imageWidth = maxWidth
				imageHeight = imageWidth / aspect
			}
		}
		if imageHeight <= 0 {
			hasImage = false
			imageWidth, imageHeight = 0, 0
		}
	}

	effW, effH := EffectiveSize(barcodeWidth, barcodeHeight, cfg.RotationDegrees)
	ew := float64(effW)
	eh := float64(effH)

	p := Placement{HasOverlay: hasImage, ImageWidth: imageWidth, ImageHeight: imageHeight}

	if !hasImage {
		p.CanvasWidth = effW
		p.CanvasHeight = effH
		p.BarcodeX = (ew - bw) / 2
		p.BarcodeY = (eh - bh) / 2
		return p
	}

	spacing := float64(Spacing)
	switch cfg.Position {
	case PositionOver:
		cw := math.Max(ew, imageWidth)
		p.CanvasWidth = roundInt(cw)
		p.CanvasHeight = roundInt(imageHeight + spacing + eh)
		p.ImageX = (cw - imageWidth) / 2
		p.ImageY = 0
		p.BarcodeX = (cw - bw) / 2
		p.BarcodeY = imageHeight + spacing + (eh-bh)/2
	case PositionUnder:
		cw := math.Max(ew, imageWidth)
		p.CanvasWidth = roundInt(cw)
		p.CanvasHeight = roundInt(eh + spacing + imageHeight)
		p.BarcodeX = (cw - bw) / 2
		p.BarcodeY = (eh - bh) / 2
		p.ImageX = (cw - imageWidth) / 2
		p.ImageY = eh + spacing
	case PositionLeft:
		ch := math.Max(eh, imageHeight)
		p.CanvasWidth = roundInt(imageWidth + spacing + ew)
		p.CanvasHeight = roundInt(ch)
		p.ImageX = 0
		p.ImageY = (ch - imageHeight) / 2
		p.BarcodeX = imageWidth + spacing + (ew-bw)/2
		p.BarcodeY = (ch - bh) / 2
	default: // PositionRight
		ch := math.Max(eh, imageHeight)
		p.CanvasWidth = roundInt(ew + spacing + imageWidth)
		p.CanvasHeight = roundInt(ch)
		p.BarcodeX = (ew - bw) / 2
		p.BarcodeY = (ch - bh) / 2
		p.ImageX = ew + spacing
		p.ImageY = (ch - imageHeight) / 2
	}
	return p
}

func roundInt(v float64) int { return int(math.Round(v)) }
