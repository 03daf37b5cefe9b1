package layout

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestLayoutProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	genBarcodeW := gen.IntRange(20, 2000)
	genBarcodeH := gen.IntRange(20, 400)
	genRotation := gen.OneConstOf(0, 90, 180, 270)
	genSize := gen.IntRange(MinSizePercent, MaxSizePercent)
	genPosition := gen.OneConstOf(PositionLeft, PositionRight, PositionOver, PositionUnder)

	properties.Property("canvas covers the rotated barcode footprint", prop.ForAll(
		func(bw, bh, rot int) bool {
			cfg := DefaultConfig()
			cfg.RotationDegrees = rot
			p := Compute(bw, bh, nil, cfg)
			effW, effH := EffectiveSize(bw, bh, rot)
			return p.CanvasWidth >= effW && p.CanvasHeight >= effH
		},
		genBarcodeW, genBarcodeH, genRotation,
	))

	properties.Property("square overlays stay square at every size", prop.ForAll(
		func(bw, bh, size int, pos Position) bool {
			cfg := DefaultConfig()
			cfg.Position = pos
			cfg.SizePercent = size
			p := Compute(bw, bh, &Overlay{Width: 64, Height: 64}, cfg)
			if !p.HasOverlay {
				return true
			}
			// The side-position width clamp rescales both dimensions by the
			// same ratio, so aspect 1.0 must survive.
			return equalWithin(p.ImageWidth, p.ImageHeight, 1e-6)
		},
		genBarcodeW, genBarcodeH, genSize, genPosition,
	))

	properties.Property("overlay and barcode both fit on the canvas", prop.ForAll(
		func(bw, bh, size, rot int, pos Position) bool {
			cfg := DefaultConfig()
			cfg.Position = pos
			cfg.SizePercent = size
			cfg.RotationDegrees = rot
			p := Compute(bw, bh, &Overlay{Width: 120, Height: 80}, cfg)
			if !p.HasOverlay {
				return true
			}
			// Canvas dimensions are rounded to whole pixels, so allow half a
			// pixel of slack at every edge.
			const slack = 0.5
			if p.ImageX < -slack || p.ImageY < -slack {
				return false
			}
			return p.ImageX+p.ImageWidth <= float64(p.CanvasWidth)+slack &&
				p.ImageY+p.ImageHeight <= float64(p.CanvasHeight)+slack
		},
		genBarcodeW, genBarcodeH, genSize, genRotation, genPosition,
	))

	properties.Property("overlay height scales linearly with size percent for stacked positions", prop.ForAll(
		func(bh, size int) bool {
			cfg := DefaultConfig()
			cfg.Position = PositionOver
			cfg.SizePercent = size
			p := Compute(300, bh, &Overlay{Width: 100, Height: 100}, cfg)
			if !p.HasOverlay {
				return true
			}
			want := float64(bh) * float64(size) / 100.0
			return equalWithin(p.ImageHeight, want, 1e-6)
		},
		genBarcodeH, genSize,
	))

	properties.TestingRun(t)
}

func equalWithin(a, b, eps float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}
