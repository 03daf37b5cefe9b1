package config

import (
	"fmt"
	"time"

	"github.com/codecraft128/codecraft/internal/layout"
	"github.com/codecraft128/codecraft/internal/render"
)

// Config is the complete configuration for the codecraft application,
// loaded from configuration files, environment variables and CLI flags.
type Config struct {
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	Barcode BarcodeConfig `mapstructure:"barcode" yaml:"barcode" json:"barcode"`
	Layout  LayoutConfig  `mapstructure:"layout" yaml:"layout" json:"layout"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output" json:"output"`
	Batch   BatchConfig   `mapstructure:"batch" yaml:"batch" json:"batch"`
}

// BarcodeConfig contains symbol rendering settings.
type BarcodeConfig struct {
	Format      string `mapstructure:"format" yaml:"format" json:"format"`
	ModuleWidth int    `mapstructure:"module_width" yaml:"module_width" json:"module_width"`
	Height      int    `mapstructure:"height" yaml:"height" json:"height"`
	ShowText    bool   `mapstructure:"show_text" yaml:"show_text" json:"show_text"`
	FontSize    int    `mapstructure:"font_size" yaml:"font_size" json:"font_size"`
	Margin      int    `mapstructure:"margin" yaml:"margin" json:"margin"`
}

// LayoutConfig contains compositing settings.
type LayoutConfig struct {
	ImagePosition string  `mapstructure:"image_position" yaml:"image_position" json:"image_position"`
	ImageSize     int     `mapstructure:"image_size" yaml:"image_size" json:"image_size"`
	Rotation      int     `mapstructure:"rotation" yaml:"rotation" json:"rotation"`
	Scale         float64 `mapstructure:"scale" yaml:"scale" json:"scale"`
	OverlayPath   string  `mapstructure:"overlay_path" yaml:"overlay_path" json:"overlay_path"`
}

// OutputConfig contains export destination settings.
type OutputConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir" json:"dir"`
}

// BatchConfig contains batch export settings.
type BatchConfig struct {
	Delay        time.Duration `mapstructure:"delay" yaml:"delay" json:"delay"`
	ShowProgress bool          `mapstructure:"show_progress" yaml:"show_progress" json:"show_progress"`
	Quiet        bool          `mapstructure:"quiet" yaml:"quiet" json:"quiet"`
}

// DefaultConfig returns the configuration defaults, matching the original
// generator's settings.
func DefaultConfig() *Config {
	ropts := render.DefaultOptions()
	lcfg := layout.DefaultConfig()
	return &Config{
		LogLevel: "info",
		Barcode: BarcodeConfig{
			Format:      ropts.Format,
			ModuleWidth: ropts.ModuleWidth,
			Height:      ropts.Height,
			ShowText:    ropts.ShowText,
			FontSize:    ropts.FontSize,
			Margin:      ropts.Margin,
		},
		Layout: LayoutConfig{
			ImagePosition: string(lcfg.Position),
			ImageSize:     lcfg.SizePercent,
			Rotation:      lcfg.RotationDegrees,
			Scale:         lcfg.ScaleFactor,
		},
		Output: OutputConfig{Dir: "."},
		Batch: BatchConfig{
			Delay:        300 * time.Millisecond,
			ShowProgress: true,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q", c.LogLevel)
	}
	if c.Barcode.ModuleWidth <= 0 {
		return fmt.Errorf("barcode module width must be positive, got %d", c.Barcode.ModuleWidth)
	}
	if c.Barcode.Height <= 0 {
		return fmt.Errorf("barcode height must be positive, got %d", c.Barcode.Height)
	}
	if c.Batch.Delay < 0 {
		return fmt.Errorf("batch delay must not be negative, got %v", c.Batch.Delay)
	}
	return c.LayoutConfig().Validate()
}

// LayoutConfig converts the configured layout values into the layout
// package's value type.
func (c *Config) LayoutConfig() layout.Config {
	return layout.Config{
		Position:        layout.Position(c.Layout.ImagePosition),
		SizePercent:     c.Layout.ImageSize,
		RotationDegrees: c.Layout.Rotation,
		ScaleFactor:     c.Layout.Scale,
	}
}

// RenderOptions converts the configured barcode values into render options.
func (c *Config) RenderOptions() render.Options {
	return render.Options{
		Format:      c.Barcode.Format,
		ModuleWidth: c.Barcode.ModuleWidth,
		Height:      c.Barcode.Height,
		ShowText:    c.Barcode.ShowText,
		FontSize:    c.Barcode.FontSize,
		Margin:      c.Barcode.Margin,
	}
}
