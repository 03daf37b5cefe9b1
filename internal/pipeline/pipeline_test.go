package pipeline

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"github.com/codecraft128/codecraft/internal/layout"
	"github.com/codecraft128/codecraft/internal/render"
	"github.com/codecraft128/codecraft/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memSink collects saved blobs in memory.
type memSink struct {
	mu    sync.Mutex
	files map[string][]byte
	err   error
}

func newMemSink() *memSink {
	return &memSink{files: map[string][]byte{}}
}

func (s *memSink) Save(data []byte, filename string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	s.files[filename] = cp
	return nil
}

// fakeRenderer returns a fixed-size white raster, failing for texts listed
// in failOn.
type fakeRenderer struct {
	width, height int
	failOn        map[string]bool
	calls         int
}

func (f *fakeRenderer) Render(text string, opts render.Options) (*render.Rendered, error) {
	f.calls++
	if f.failOn[text] {
		return nil, &render.RenderError{Text: text, Err: errors.New("injected failure")}
	}
	return &render.Rendered{
		Image:  testutil.CreateTestImage(f.width, f.height, color.White),
		Width:  f.width,
		Height: f.height,
	}, nil
}

// recordingProgress captures every callback invocation.
type recordingProgress struct {
	started   []int
	progress  [][2]int
	completed int
	errors    []int
}

func (r *recordingProgress) OnStart(total int)             { r.started = append(r.started, total) }
func (r *recordingProgress) OnProgress(current, total int) { r.progress = append(r.progress, [2]int{current, total}) }
func (r *recordingProgress) OnComplete()                   { r.completed++ }
func (r *recordingProgress) OnError(current int, err error) {
	r.errors = append(r.errors, current)
}

func TestBuilderRequiresSink(t *testing.T) {
	_, err := NewBuilder().Build()
	require.ErrorIs(t, err, ErrNoSink)
}

func TestBuilderRejectsInvalidLayout(t *testing.T) {
	cfg := layout.DefaultConfig()
	cfg.RotationDegrees = 45

	_, err := NewBuilder().
		WithLayout(cfg).
		WithSink(newMemSink()).
		Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rotation")
}

func TestBuilderSnapshotsLayout(t *testing.T) {
	cfg := layout.DefaultConfig()
	cfg.ScaleFactor = 2.0

	b := NewBuilder().WithLayout(cfg).WithSink(newMemSink())

	// Mutating the caller's config after the builder captured it must not
	// leak into the pipeline.
	cfg.ScaleFactor = 3.0

	p, err := b.Build()
	require.NoError(t, err)
	assert.InDelta(t, 2.0, p.layoutCfg.ScaleFactor, 1e-9)
}

func TestProcessEndToEnd(t *testing.T) {
	p, err := NewBuilder().WithSink(newMemSink()).Build()
	require.NoError(t, err)

	res, err := p.Process(Record{ID: 1, Text: "Hello World"})
	require.NoError(t, err)

	assert.Equal(t, "bbc-Hello_World.png", res.Filename)

	img, err := png.Decode(bytes.NewReader(res.Blob))
	require.NoError(t, err)
	assert.Positive(t, img.Bounds().Dx())
	assert.Positive(t, img.Bounds().Dy())
}

func TestProcessAppliesScaleFactor(t *testing.T) {
	cfg := layout.DefaultConfig()
	cfg.ScaleFactor = 2.0

	p, err := NewBuilder().
		WithRenderer(&fakeRenderer{width: 100, height: 50}).
		WithLayout(cfg).
		WithSink(newMemSink()).
		Build()
	require.NoError(t, err)

	res, err := p.Process(Record{ID: 1, Text: "x"})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(res.Blob))
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())
}

func TestProcessWithOverlay(t *testing.T) {
	overlay := &layout.Overlay{
		Width: 50, Height: 50,
		Source: testutil.CreateTestImage(50, 50, color.RGBA{R: 255, A: 255}),
	}
	cfg := layout.DefaultConfig()
	cfg.Position = layout.PositionRight

	p, err := NewBuilder().
		WithRenderer(&fakeRenderer{width: 100, height: 50}).
		WithLayout(cfg).
		WithOverlay(overlay).
		WithSink(newMemSink()).
		Build()
	require.NoError(t, err)

	res, err := p.Process(Record{ID: 1, Text: "x"})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(res.Blob))
	require.NoError(t, err)
	// 100 barcode + 10 spacing + 50 overlay.
	assert.Equal(t, 160, img.Bounds().Dx())
}

func TestProcessRecordSymbologyOverridesOptions(t *testing.T) {
	var seen string
	r := RendererFunc(func(text string, opts render.Options) (*render.Rendered, error) {
		seen = opts.Format
		return &render.Rendered{
			Image:  testutil.CreateTestImage(10, 10, color.White),
			Width:  10, Height: 10,
		}, nil
	})

	opts := render.DefaultOptions()
	opts.Format = render.FormatCode128

	p, err := NewBuilder().
		WithRenderer(r).
		WithRenderOptions(opts).
		WithSink(newMemSink()).
		Build()
	require.NoError(t, err)

	_, err = p.Process(Record{ID: 1, Text: "x", Symbology: render.FormatCode39})
	require.NoError(t, err)
	assert.Equal(t, render.FormatCode39, seen)
}

func TestProcessRenderFailure(t *testing.T) {
	p, err := NewBuilder().
		WithRenderer(&fakeRenderer{width: 10, height: 10, failOn: map[string]bool{"bad": true}}).
		WithSink(newMemSink()).
		Build()
	require.NoError(t, err)

	_, err = p.Process(Record{ID: 7, Text: "bad"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record 7")

	var rerr *render.RenderError
	assert.ErrorAs(t, err, &rerr)
}

func TestSave(t *testing.T) {
	sink := newMemSink()
	p, err := NewBuilder().WithSink(sink).Build()
	require.NoError(t, err)

	res, err := p.Process(Record{ID: 1, Text: "alpha"})
	require.NoError(t, err)
	require.NoError(t, p.Save(res))

	assert.Equal(t, res.Blob, sink.files["bbc-alpha.png"])
}
