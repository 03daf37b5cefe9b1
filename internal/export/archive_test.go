package export

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteArchive(t *testing.T) {
	entries := []Entry{
		{Name: "bbc-alpha.png", Data: []byte("alpha-bytes")},
		{Name: "bbc-beta.png", Data: []byte("beta-bytes")},
		{Name: "README.txt", Data: []byte("manifest")},
	}
	modTime := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, WriteArchive(&buf, entries, ArchiveOptions{ModTime: modTime}))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 3)

	byName := map[string]*zip.File{}
	for _, f := range zr.File {
		byName[f.Name] = f
	}

	for _, e := range entries {
		f, ok := byName[e.Name]
		require.True(t, ok, "missing entry %s", e.Name)

		// Defaults to stored entries; PNG data does not compress further.
		assert.Equal(t, zip.Store, f.Method)
		assert.WithinDuration(t, modTime, f.Modified, 2*time.Second)

		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		assert.Equal(t, e.Data, data)
	}
}

func TestWriteArchiveCompressed(t *testing.T) {
	var buf bytes.Buffer
	entries := []Entry{{Name: "a.txt", Data: bytes.Repeat([]byte("compressible "), 100)}}
	require.NoError(t, WriteArchive(&buf, entries, ArchiveOptions{Compress: true}))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 1)
	assert.Equal(t, zip.Deflate, zr.File[0].Method)
}

func TestWriteArchiveDuplicateNames(t *testing.T) {
	// Colliding filenames are kept as-is; extraction order decides the winner.
	var buf bytes.Buffer
	entries := []Entry{
		{Name: "bbc-x.png", Data: []byte("first")},
		{Name: "bbc-x.png", Data: []byte("second")},
	}
	require.NoError(t, WriteArchive(&buf, entries, ArchiveOptions{}))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	assert.Len(t, zr.File, 2)
}

func TestArchiveName(t *testing.T) {
	ts := time.UnixMilli(1717243200123)
	assert.Equal(t, "barcodes-1717243200123.zip", ArchiveName(ts))
}
