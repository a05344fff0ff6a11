package telemetry

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock handler to inspect log records
type mockHandler struct {
	mu      sync.Mutex
	records []slog.Record
	attrs   []slog.Attr
	group   string
	enabled bool
}

func (h *mockHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.enabled
}

func (h *mockHandler) Handle(ctx context.Context, record slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, record)
	return nil
}

func (h *mockHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h.mu.Lock()
	defer h.mu.Unlock()
	newHandler := &mockHandler{
		records: h.records,
		attrs:   append(h.attrs, attrs...),
		group:   h.group,
		enabled: h.enabled,
	}
	return newHandler
}

func (h *mockHandler) WithGroup(name string) slog.Handler {
	h.mu.Lock()
	defer h.mu.Unlock()
	newHandler := &mockHandler{
		records: h.records,
		attrs:   h.attrs,
		group:   h.group,
		enabled: h.enabled,
	}
	if newHandler.group == "" {
		newHandler.group = name
	} else {
		newHandler.group = newHandler.group + "." + name
	}
	return newHandler
}

func (h *mockHandler) getRecords() []slog.Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.records
}

func TestMultiHandler(t *testing.T) {
	h1 := &mockHandler{enabled: true}
	h2 := &mockHandler{enabled: false}
	mh := &multiHandler{handlers: []slog.Handler{h1, h2}}

	t.Run("Enabled", func(t *testing.T) {
		assert.True(t, mh.Enabled(context.Background(), slog.LevelInfo))

		allOff := &multiHandler{handlers: []slog.Handler{h2}}
		assert.False(t, allOff.Enabled(context.Background(), slog.LevelInfo))
	})

	t.Run("Handle Fans Out", func(t *testing.T) {
		logger := slog.New(mh)
		logger.Info("case finished", "id", "abc123")

		require.Len(t, h1.getRecords(), 1)
		assert.Equal(t, "case finished", h1.getRecords()[0].Message)
		// Disabled handlers still receive the record once the multi
		// handler accepts it.
		require.Len(t, h2.getRecords(), 1)
	})

	t.Run("WithAttrs And WithGroup Propagate", func(t *testing.T) {
		derived := mh.WithAttrs([]slog.Attr{slog.String("run_id", "r1")})
		grouped := derived.WithGroup("session")

		dm, ok := grouped.(*multiHandler)
		require.True(t, ok)
		assert.Len(t, dm.handlers, 2)
	})
}

func TestInitLogger(t *testing.T) {
	origLogger := slog.Default()
	defer slog.SetDefault(origLogger)

	t.Run("Stderr Only", func(t *testing.T) {
		InitLogger(false, "")
		assert.False(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))
		assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelInfo))
	})

	t.Run("Debug Level", func(t *testing.T) {
		InitLogger(true, "")
		assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))
	})

	t.Run("File Copy", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "run.log")
		InitLogger(false, path)

		slog.Info("benchmark run starting", "cases", 3)

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		line := strings.TrimSpace(string(data))
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		assert.Equal(t, "benchmark run starting", entry["msg"])
		assert.Equal(t, float64(3), entry["cases"])
	})
}
