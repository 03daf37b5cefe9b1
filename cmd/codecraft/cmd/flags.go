package cmd

import (
	"log/slog"

	"github.com/codecraft128/codecraft/internal/config"
	"github.com/codecraft128/codecraft/internal/export"
	"github.com/codecraft128/codecraft/internal/pipeline"
	"github.com/codecraft128/codecraft/internal/utils"
	"github.com/spf13/cobra"
)

// addRenderFlags registers the barcode rendering flags shared by the
// generate and batch commands.
func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "code128", "barcode symbology: code128, code39, ean")
	cmd.Flags().Int("module-width", 2, "horizontal pixels per narrow module")
	cmd.Flags().Int("height", 100, "bar height in pixels")
	cmd.Flags().Bool("show-text", true, "draw the encoded text under the bars")
	cmd.Flags().Int("font-size", 16, "vertical space for the text line")
	cmd.Flags().Int("margin", 10, "quiet zone around the symbol")
}

// addLayoutFlags registers the compositing flags shared by the generate and
// batch commands.
func addLayoutFlags(cmd *cobra.Command) {
	cmd.Flags().String("image", "", "overlay image file composited next to each barcode")
	cmd.Flags().String("position", "right", "overlay position: left, right, over, under")
	cmd.Flags().Int("image-size", 100, "overlay height as percent of barcode height (25-200)")
	cmd.Flags().Int("rotation", 0, "barcode rotation in degrees: 0, 90, 180, 270")
	cmd.Flags().Float64("scale", 1.0, "output resolution multiplier (0.5-3.0)")
}

// applyFlagOverrides merges explicitly set CLI flags over the loaded
// configuration. Viper precedence handles file and env sources; flags set
// on the command line win.
func applyFlagOverrides(cfg *config.Config, cmd *cobra.Command) {
	if cmd.Flags().Changed("format") {
		cfg.Barcode.Format, _ = cmd.Flags().GetString("format")
	}
	if cmd.Flags().Changed("module-width") {
		cfg.Barcode.ModuleWidth, _ = cmd.Flags().GetInt("module-width")
	}
	if cmd.Flags().Changed("height") {
		cfg.Barcode.Height, _ = cmd.Flags().GetInt("height")
	}
	if cmd.Flags().Changed("show-text") {
		cfg.Barcode.ShowText, _ = cmd.Flags().GetBool("show-text")
	}
	if cmd.Flags().Changed("font-size") {
		cfg.Barcode.FontSize, _ = cmd.Flags().GetInt("font-size")
	}
	if cmd.Flags().Changed("margin") {
		cfg.Barcode.Margin, _ = cmd.Flags().GetInt("margin")
	}

	if cmd.Flags().Changed("image") {
		cfg.Layout.OverlayPath, _ = cmd.Flags().GetString("image")
	}
	if cmd.Flags().Changed("position") {
		cfg.Layout.ImagePosition, _ = cmd.Flags().GetString("position")
	}
	if cmd.Flags().Changed("image-size") {
		cfg.Layout.ImageSize, _ = cmd.Flags().GetInt("image-size")
	}
	if cmd.Flags().Changed("rotation") {
		cfg.Layout.Rotation, _ = cmd.Flags().GetInt("rotation")
	}
	if cmd.Flags().Changed("scale") {
		cfg.Layout.Scale, _ = cmd.Flags().GetFloat64("scale")
	}
}

// buildPipeline assembles an export pipeline from the effective config,
// snapshotting layout settings and loading the overlay image once.
func buildPipeline(cfg *config.Config, progress pipeline.ProgressCallback) (*pipeline.Pipeline, error) {
	b := pipeline.NewBuilder().
		WithRenderOptions(cfg.RenderOptions()).
		WithLayout(cfg.LayoutConfig()).
		WithSink(export.DirSink{Dir: cfg.Output.Dir}).
		WithDelay(cfg.Batch.Delay).
		WithLogger(slog.Default())

	if progress != nil {
		b = b.WithProgressCallback(progress)
	}

	if cfg.Layout.OverlayPath != "" {
		overlay, err := utils.LoadOverlay(cfg.Layout.OverlayPath)
		if err != nil {
			return nil, err
		}
		b = b.WithOverlay(overlay)
	}

	return b.Build()
}
