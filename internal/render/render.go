package render

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/code39"
	"github.com/boombuler/barcode/ean"
	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Supported symbology names accepted by Options.Format.
const (
	FormatCode128 = "code128"
	FormatCode39  = "code39"
	FormatEAN     = "ean"
)

// Options controls barcode rendering.
type Options struct {
	Format      string // symbology; empty means code128
	ModuleWidth int    // horizontal pixels per narrow module
	Height      int    // bar height in pixels (excluding text and margin)
	ShowText    bool   // draw the encoded text under the bars
	FontSize    int    // vertical space reserved for the text line
	Margin      int    // quiet zone around the symbol
}

// DefaultOptions mirror the defaults of the original generator:
// CODE128, module width 2, height 100, font size 16, margin 10.
func DefaultOptions() Options {
	return Options{
		Format:      FormatCode128,
		ModuleWidth: 2,
		Height:      100,
		ShowText:    true,
		FontSize:    16,
		Margin:      10,
	}
}

// Rendered is a rasterized barcode with its known pixel dimensions.
type Rendered struct {
	Image  image.Image
	Width  int
	Height int
}

// RenderError indicates that symbol generation failed for a given text.
type RenderError struct {
	Text string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("barcode render failed for %q: %v", e.Text, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Render encodes text into a barcode raster using the configured symbology.
// The returned image is opaque white with black bars, includes the quiet-zone
// margin on all sides and, when ShowText is set, a human-readable text line
// below the bars.
func Render(text string, opts Options) (*Rendered, error) {
	if text == "" {
		return nil, &RenderError{Text: text, Err: fmt.Errorf("empty text")}
	}
	opts = withDefaults(opts)

	bc, err := encode(text, opts.Format)
	if err != nil {
		return nil, &RenderError{Text: text, Err: err}
	}

	barsWidth := bc.Bounds().Dx() * opts.ModuleWidth
	scaled, err := barcode.Scale(bc, barsWidth, opts.Height)
	if err != nil {
		return nil, &RenderError{Text: text, Err: fmt.Errorf("scaling symbol: %w", err)}
	}

	textHeight := 0
	if opts.ShowText {
		textHeight = opts.FontSize + 4
	}

	width := barsWidth + 2*opts.Margin
	height := opts.Height + textHeight + 2*opts.Margin
	canvas := imaging.New(width, height, color.White)
	canvas = imaging.Paste(canvas, scaled, image.Pt(opts.Margin, opts.Margin))

	if opts.ShowText {
		drawLabel(canvas, text, width, opts.Margin+opts.Height+textHeight)
	}

	return &Rendered{Image: canvas, Width: width, Height: height}, nil
}

func withDefaults(opts Options) Options {
	def := DefaultOptions()
	if opts.Format == "" {
		opts.Format = def.Format
	}
	if opts.ModuleWidth <= 0 {
		opts.ModuleWidth = def.ModuleWidth
	}
	if opts.Height <= 0 {
		opts.Height = def.Height
	}
	if opts.FontSize <= 0 {
		opts.FontSize = def.FontSize
	}
	if opts.Margin < 0 {
		opts.Margin = def.Margin
	}
	return opts
}

func encode(text, format string) (barcode.Barcode, error) {
	switch strings.ToLower(format) {
	case FormatCode128:
		return code128.Encode(text)
	case FormatCode39:
		return code39.Encode(text, true, true)
	case FormatEAN:
		return ean.Encode(text)
	default:
		return nil, fmt.Errorf("unsupported symbology: %s", format)
	}
}

// drawLabel centers the text line at the given baseline y.
func drawLabel(dst *image.NRGBA, text string, width, baseline int) {
	face := basicfont.Face7x13
	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.Black),
		Face: face,
	}
	textWidth := font.MeasureString(face, text).Ceil()
	x := (width - textWidth) / 2
	if x < 0 {
		x = 0
	}
	drawer.Dot = fixed.P(x, baseline-2)
	drawer.DrawString(text)
}
