package export

import (
	"archive/zip"
	"fmt"
	"io"
	"time"
)

// Entry is a named blob destined for the archive.
type Entry struct {
	Name string
	Data []byte
}

// ArchiveOptions controls archive creation. The original exporter stores
// entries uncompressed (PNG data does not compress further) with a single
// metadata timestamp for every entry.
type ArchiveOptions struct {
	Compress bool
	ModTime  time.Time
}

// WriteArchive bundles the entries into a single zip stream. Entries with a
// duplicate name overwrite on extraction; last writer wins, as in the
// original behavior.
func WriteArchive(w io.Writer, entries []Entry, opts ArchiveOptions) error {
	zw := zip.NewWriter(w)

	method := zip.Store
	if opts.Compress {
		method = zip.Deflate
	}
	modTime := opts.ModTime
	if modTime.IsZero() {
		modTime = time.Now()
	}

	for _, e := range entries {
		hdr := &zip.FileHeader{
			Name:     e.Name,
			Method:   method,
			Modified: modTime,
		}
		fw, err := zw.CreateHeader(hdr)
		if err != nil {
			return fmt.Errorf("adding archive entry %q: %w", e.Name, err)
		}
		if _, err := fw.Write(e.Data); err != nil {
			return fmt.Errorf("writing archive entry %q: %w", e.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing archive: %w", err)
	}
	return nil
}

// ArchiveName returns the timestamped zip filename for a bundle export.
func ArchiveName(t time.Time) string {
	return fmt.Sprintf("barcodes-%d.zip", t.UnixMilli())
}
