package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/codecraft128/codecraft/internal/export"
)

// ManifestName is the fixed name of the archive manifest entry.
const ManifestName = "README.txt"

// BundleResult summarizes a bundle-mode export.
type BundleResult struct {
	ArchiveName string
	Included    int
	Skipped     int
}

// ExportBundle runs the pipeline over all records in list order, bundles the
// successful outputs plus a manifest into a single zip and hands it to the
// save sink. Per-record failures are logged and skipped; the batch only
// fails fatally on an empty record list or on archive finalization.
// Cancellation is honored between records and discards partial output.
func (p *Pipeline) ExportBundle(ctx context.Context, records []Record) (*BundleResult, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	total := len(records)
	p.progress.OnStart(total)

	entries := make([]export.Entry, 0, total+1)
	var included []Result
	skipped := 0

	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("bundle export canceled: %w", err)
		}

		res, err := p.Process(rec)
		if err != nil {
			p.logger.Warn("skipping record", "id", rec.ID, "text", rec.Text, "error", err)
			p.progress.OnError(i+1, err)
			skipped++
		} else {
			entries = append(entries, export.Entry{Name: res.Filename, Data: res.Blob})
			included = append(included, *res)
		}
		p.progress.OnProgress(i+1, total)
	}

	now := p.now()
	entries = append(entries, export.Entry{Name: ManifestName, Data: []byte(manifest(included, total, now))})

	var buf bytes.Buffer
	opts := export.ArchiveOptions{Compress: false, ModTime: now}
	if err := export.WriteArchive(&buf, entries, opts); err != nil {
		return nil, fmt.Errorf("bundling archive: %w", err)
	}

	name := export.ArchiveName(now)
	if err := p.sink.Save(buf.Bytes(), name); err != nil {
		return nil, fmt.Errorf("saving archive: %w", err)
	}

	p.progress.OnComplete()
	return &BundleResult{ArchiveName: name, Included: len(included), Skipped: skipped}, nil
}

// ExportIndividual runs the pipeline over all records in list order and
// saves each successful output as its own file, pacing successive saves
// with the configured delay. Returns the number of records actually saved.
func (p *Pipeline) ExportIndividual(ctx context.Context, records []Record) (int, error) {
	if len(records) == 0 {
		return 0, ErrNoRecords
	}

	total := len(records)
	p.progress.OnStart(total)

	saved := 0
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return saved, fmt.Errorf("individual export canceled: %w", err)
		}

		res, err := p.Process(rec)
		if err != nil {
			p.logger.Warn("skipping record", "id", rec.ID, "text", rec.Text, "error", err)
			p.progress.OnError(i+1, err)
			p.progress.OnProgress(i+1, total)
			continue
		}

		if saved > 0 && p.delay > 0 {
			select {
			case <-ctx.Done():
				return saved, fmt.Errorf("individual export canceled: %w", ctx.Err())
			case <-time.After(p.delay):
			}
		}

		if err := p.sink.Save(res.Blob, res.Filename); err != nil {
			p.logger.Warn("save failed", "id", rec.ID, "filename", res.Filename, "error", err)
			p.progress.OnError(i+1, err)
		} else {
			saved++
		}
		p.progress.OnProgress(i+1, total)
	}

	p.progress.OnComplete()
	return saved, nil
}

// manifest renders the README.txt content listing every successfully
// included file with its original text.
func manifest(included []Result, total int, now time.Time) string {
	var sb strings.Builder
	sb.WriteString("Code128 Barcode Images\n")
	fmt.Fprintf(&sb, "Generated: %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "Total Files: %d\n\n", total)
	sb.WriteString("This archive contains barcode images in PNG format.\n\n")
	sb.WriteString("Files included:\n")
	for _, r := range included {
		fmt.Fprintf(&sb, "- %s (Text: %s)\n", r.Filename, r.Record.Text)
	}
	return sb.String()
}
