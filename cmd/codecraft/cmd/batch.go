package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/codecraft128/codecraft/internal/pipeline"
	"github.com/spf13/cobra"
)

// batchCmd exports many barcodes at once, bundled or individually.
var batchCmd = &cobra.Command{
	Use:   "batch [texts...]",
	Short: "Export many barcodes as a zip archive or as individual PNG files",
	Long: `Render a barcode for every input text and export the results. By default
all outputs are bundled into a single timestamped zip archive with a
README.txt manifest; with --individual each barcode is saved as its own
PNG file with a short pause between saves.

Input texts come from the command line arguments or, with --input, one per
line from a file (blank lines are skipped).

Examples:
  codecraft batch "Alpha" "Beta" "Gamma"
  codecraft batch --input skus.txt --output dist/
  codecraft batch --input skus.txt --individual --delay 100ms
  codecraft batch "A" "B" --image logo.png --position over --scale 2.0`,
	SilenceUsage: true,
	RunE:         runBatchCommand,
}

func runBatchCommand(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	applyFlagOverrides(cfg, cmd)
	if cmd.Flags().Changed("delay") {
		cfg.Batch.Delay, _ = cmd.Flags().GetDuration("delay")
	}
	if cmd.Flags().Changed("quiet") {
		cfg.Batch.Quiet, _ = cmd.Flags().GetBool("quiet")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	records, err := collectRecords(cmd, args, cfg.Barcode.Format)
	if err != nil {
		return err
	}

	var progress pipeline.ProgressCallback
	if cfg.Batch.ShowProgress && !cfg.Batch.Quiet {
		progress = pipeline.NewConsoleProgressCallback(os.Stdout, "Exporting: ")
	}

	p, err := buildPipeline(cfg, progress)
	if err != nil {
		return err
	}

	individual, _ := cmd.Flags().GetBool("individual")
	if individual {
		saved, err := p.ExportIndividual(cmd.Context(), records)
		if err != nil {
			return reportBatchError(err)
		}
		if !cfg.Batch.Quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d of %d barcodes to %s\n", saved, len(records), cfg.Output.Dir)
		}
		return nil
	}

	res, err := p.ExportBundle(cmd.Context(), records)
	if err != nil {
		return reportBatchError(err)
	}
	if !cfg.Batch.Quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%d included, %d skipped)\n",
			res.ArchiveName, res.Included, res.Skipped)
	}
	return nil
}

// collectRecords builds the record list from --input or positional args.
func collectRecords(cmd *cobra.Command, args []string, symbology string) ([]pipeline.Record, error) {
	inputFile, _ := cmd.Flags().GetString("input")
	if inputFile != "" {
		data, err := os.ReadFile(inputFile) //nolint:gosec // G304: reading a user-provided input file is expected
		if err != nil {
			return nil, fmt.Errorf("reading input file: %w", err)
		}
		return pipeline.RecordsFromLines(string(data), symbology)
	}
	return pipeline.RecordsFromLines(strings.Join(args, "\n"), symbology)
}

func reportBatchError(err error) error {
	if errors.Is(err, pipeline.ErrNoRecords) {
		return errors.New("no barcodes to export: provide texts as arguments or via --input")
	}
	return err
}

func init() {
	rootCmd.AddCommand(batchCmd)
	addRenderFlags(batchCmd)
	addLayoutFlags(batchCmd)

	batchCmd.Flags().StringP("input", "i", "", "file with one barcode text per line")
	batchCmd.Flags().Bool("individual", false, "save each barcode as its own file instead of a zip archive")
	batchCmd.Flags().Duration("delay", 300*time.Millisecond, "pause between successive individual saves")
	batchCmd.Flags().BoolP("quiet", "q", false, "suppress progress and summary output")
}
