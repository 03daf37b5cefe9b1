package pipeline

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleProgressCallback(t *testing.T) {
	var buf bytes.Buffer
	cb := NewConsoleProgressCallback(&buf, "Exporting: ").WithUpdateInterval(0)

	cb.OnStart(4)
	cb.OnProgress(1, 4)
	cb.OnProgress(4, 4)
	cb.OnComplete()

	out := buf.String()
	assert.Contains(t, out, "Exporting: 0/4 (0.0%)")
	assert.Contains(t, out, "1/4 (25.0%)")
	assert.Contains(t, out, "4/4 (100.0%)")
	assert.Contains(t, out, "Completed in")
}

func TestConsoleProgressCallbackThrottles(t *testing.T) {
	var buf bytes.Buffer
	cb := NewConsoleProgressCallback(&buf, "").WithUpdateInterval(time.Hour)

	cb.OnStart(10)
	before := buf.Len()
	cb.OnProgress(1, 10)
	cb.OnProgress(2, 10)
	assert.Equal(t, before, buf.Len(), "intermediate updates inside the interval are dropped")

	// The final update always renders.
	cb.OnProgress(10, 10)
	assert.Greater(t, buf.Len(), before)
}

func TestConsoleProgressCallbackError(t *testing.T) {
	var buf bytes.Buffer
	cb := NewConsoleProgressCallback(&buf, "")

	cb.OnError(3, errors.New("boom"))
	assert.Contains(t, buf.String(), "Error at record 3: boom")
}

func TestLogProgressCallback(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	cb := NewLogProgressCallback(logger, slog.LevelInfo, 2)

	cb.OnStart(5)
	cb.OnProgress(1, 5) // below the interval, dropped
	cb.OnProgress(2, 5)
	cb.OnProgress(5, 5) // final, always logged
	cb.OnComplete()

	out := buf.String()
	require.Contains(t, out, "starting export")
	assert.Contains(t, out, "total=5")
	assert.Equal(t, 2, strings.Count(out, "export progress"))
	assert.Contains(t, out, "export completed")
}
