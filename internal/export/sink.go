package export

import (
	"fmt"
	"os"
	"path/filepath"
)

// Sink receives finished blobs for delivery. The pipeline does not care
// where they end up.
type Sink interface {
	Save(data []byte, filename string) error
}

// DirSink saves blobs as files inside a directory, creating it on first use.
type DirSink struct {
	Dir string
}

func (s DirSink) Save(data []byte, filename string) error {
	if err := os.MkdirAll(s.Dir, 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(s.Dir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
