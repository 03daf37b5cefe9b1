package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
)

// EncodingError indicates that a raster surface could not be turned into an
// image blob.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding error: %v", e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// EncodePNG converts a raster surface into a PNG blob. Surfaces with a zero
// dimension or an empty encoder output are rejected.
func EncodePNG(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, &EncodingError{Err: errors.New("nil surface")}
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, &EncodingError{Err: fmt.Errorf("invalid surface dimensions %dx%d", b.Dx(), b.Dy())}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, &EncodingError{Err: err}
	}
	if buf.Len() == 0 {
		return nil, &EncodingError{Err: errors.New("encoder produced no data")}
	}
	return buf.Bytes(), nil
}
