package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/codecraft128/codecraft/internal/render"
)

// Input limits, matching the original generator's validation.
const (
	MaxTextLength = 1000
	MaxLines      = 100
)

// ErrNoRecords is reported when a batch export is invoked with an empty
// record list. No downstream collaborator is touched in that case.
var ErrNoRecords = errors.New("no barcodes to export")

// ErrNoSink is reported at build time when no save sink is configured.
var ErrNoSink = errors.New("no save sink configured")

// Record is one barcode to export. Records are immutable once created; IDs
// are assigned monotonically within a list.
type Record struct {
	ID        int
	Text      string
	Symbology string
}

// Result is the finished output for one record.
type Result struct {
	Record   Record
	Filename string
	Blob     []byte
}

// Renderer produces a barcode raster of known pixel dimensions from text.
type Renderer interface {
	Render(text string, opts render.Options) (*render.Rendered, error)
}

// RendererFunc adapts a plain function to the Renderer interface.
type RendererFunc func(text string, opts render.Options) (*render.Rendered, error)

func (f RendererFunc) Render(text string, opts render.Options) (*render.Rendered, error) {
	return f(text, opts)
}

// RecordsFromLines builds a record list from multi-line input. Blank lines
// are skipped; at most MaxLines non-blank lines of up to MaxTextLength
// characters each are accepted.
func RecordsFromLines(input, symbology string) ([]Record, error) {
	var records []Record
	id := 0
	for _, line := range strings.Split(input, "\n") {
		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}
		if len([]rune(text)) > MaxTextLength {
			return nil, fmt.Errorf("line %d exceeds %d characters", id+1, MaxTextLength)
		}
		id++
		if id > MaxLines {
			return nil, fmt.Errorf("too many lines: maximum is %d", MaxLines)
		}
		records = append(records, Record{ID: id, Text: text, Symbology: symbology})
	}
	return records, nil
}
