package pipeline

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/codecraft128/codecraft/internal/compose"
	"github.com/codecraft128/codecraft/internal/export"
	"github.com/codecraft128/codecraft/internal/layout"
	"github.com/codecraft128/codecraft/internal/render"
)

// DefaultDelay is the pacing between successive individual saves.
const DefaultDelay = 300 * time.Millisecond

// Pipeline runs the render→layout→compose→resample→encode chain for
// records. Layout config and overlay are snapshotted at build time: edits
// made while a batch is running never affect that batch.
type Pipeline struct {
	renderer   Renderer
	renderOpts render.Options
	layoutCfg  layout.Config
	overlay    *layout.Overlay
	progress   ProgressCallback
	sink       export.Sink
	delay      time.Duration
	logger     *slog.Logger
	now        func() time.Time
}

// Builder assembles a Pipeline.
type Builder struct {
	p   Pipeline
	err error
}

// NewBuilder returns a builder with defaults: the built-in renderer,
// default render options and layout config, no overlay, no-op progress.
func NewBuilder() *Builder {
	return &Builder{p: Pipeline{
		renderer:   RendererFunc(render.Render),
		renderOpts: render.DefaultOptions(),
		layoutCfg:  layout.DefaultConfig(),
		progress:   NoOpProgressCallback{},
		delay:      DefaultDelay,
		logger:     slog.Default(),
		now:        time.Now,
	}}
}

// WithRenderer overrides the barcode renderer collaborator.
func (b *Builder) WithRenderer(r Renderer) *Builder {
	if r != nil {
		b.p.renderer = r
	}
	return b
}

// WithRenderOptions sets the symbol rendering options.
func (b *Builder) WithRenderOptions(opts render.Options) *Builder {
	b.p.renderOpts = opts
	return b
}

// WithLayout snapshots the layout configuration for the pipeline's lifetime.
func (b *Builder) WithLayout(cfg layout.Config) *Builder {
	if err := cfg.Validate(); err != nil {
		b.err = err
		return b
	}
	b.p.layoutCfg = cfg
	return b
}

// WithOverlay snapshots the overlay image reference. nil disables the overlay.
func (b *Builder) WithOverlay(o *layout.Overlay) *Builder {
	b.p.overlay = o
	return b
}

// WithProgressCallback sets the progress sink.
func (b *Builder) WithProgressCallback(cb ProgressCallback) *Builder {
	if cb != nil {
		b.p.progress = cb
	}
	return b
}

// WithSink sets the file-save collaborator.
func (b *Builder) WithSink(s export.Sink) *Builder {
	b.p.sink = s
	return b
}

// WithDelay sets the inter-item pacing for individual exports.
func (b *Builder) WithDelay(d time.Duration) *Builder {
	if d >= 0 {
		b.p.delay = d
	}
	return b
}

// WithLogger sets the structured logger.
func (b *Builder) WithLogger(l *slog.Logger) *Builder {
	if l != nil {
		b.p.logger = l
	}
	return b
}

// Build validates and returns the pipeline.
func (b *Builder) Build() (*Pipeline, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.p.sink == nil {
		return nil, ErrNoSink
	}
	p := b.p
	return &p, nil
}

// Process runs the full pipeline for a single record and returns the
// encoded blob with its derived filename.
func (p *Pipeline) Process(rec Record) (*Result, error) {
	opts := p.renderOpts
	if rec.Symbology != "" {
		opts.Format = rec.Symbology
	}

	rendered, err := p.renderer.Render(rec.Text, opts)
	if err != nil {
		return nil, fmt.Errorf("record %d: %w", rec.ID, err)
	}

	placement := layout.Compute(rendered.Width, rendered.Height, p.overlay, p.layoutCfg)

	surface, err := compose.Compose(placement, rendered.Image, rendered.Width, rendered.Height,
		p.overlay, p.layoutCfg.RotationDegrees)
	if err != nil {
		return nil, fmt.Errorf("record %d: %w", rec.ID, err)
	}

	surface = compose.Resample(surface, p.layoutCfg.ScaleFactor)

	blob, err := export.EncodePNG(surface)
	if err != nil {
		return nil, fmt.Errorf("record %d: %w", rec.ID, err)
	}

	return &Result{Record: rec, Filename: export.Filename(rec.Text), Blob: blob}, nil
}

// Save hands a finished result to the save sink.
func (p *Pipeline) Save(res *Result) error {
	return p.sink.Save(res.Blob, res.Filename)
}
