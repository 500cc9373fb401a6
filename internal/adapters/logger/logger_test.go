package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tzmap/internal/adapters/logger"
	"go.trai.ch/tzmap/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestLogger_Info(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.New()
	lg.SetOutput(&buf)

	lg.Info("some message")

	assert.Contains(t, buf.String(), "some message")
}

func TestLogger_Warn(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.New()
	lg.SetOutput(&buf)

	lg.Warn("careful")

	assert.Contains(t, buf.String(), "! careful")
}

func TestLogger_DebugRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.New()
	lg.SetOutput(&buf)

	lg.Debug("hidden")
	assert.Empty(t, buf.String())

	lg.SetLevel(domain.LogLevelDebug)
	lg.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestLogger_SetLevelSurvivesModeSwitch(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.New()
	lg.SetLevel(domain.LogLevelWarn)
	lg.SetOutput(&buf)
	lg.SetJSON(true)

	lg.Info("dropped")
	assert.Empty(t, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.New()
	lg.SetOutput(&buf)
	lg.SetJSON(true)

	lg.Info("structured")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "structured", record["msg"])
	assert.Equal(t, "INFO", record["level"])
}

func TestLogger_JSONError(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.New()
	lg.SetOutput(&buf)
	lg.SetJSON(true)

	lg.Error(errors.New("boom"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "operation failed", record["msg"])
	assert.Equal(t, "boom", record["error"])
}

func TestLogger_ErrorChain(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.New()
	lg.SetOutput(&buf)

	lg.Error(zerr.Wrap(errors.New("connection refused"), "failed to fetch mapping document"))

	out := buf.String()
	assert.Contains(t, out, "Error: failed to fetch mapping document")
	assert.Contains(t, out, "Caused by:")
	assert.Contains(t, out, "→ connection refused")
}

func TestLogger_NilError(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.New()
	lg.SetOutput(&buf)

	lg.Error(nil)

	assert.Empty(t, buf.String())
}

func TestDiscard(t *testing.T) {
	lg := logger.Discard()
	lg.Info("nothing to see")
	lg.Error(errors.New("nothing to see"))
}

func TestLogger_Concurrent(t *testing.T) {
	var buf safeBuffer
	lg := logger.New()
	lg.SetOutput(&buf)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			lg.Info("line")
		}()
		go func() {
			defer wg.Done()
			lg.SetJSON(false)
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, strings.Count(buf.String(), "line"))
}

type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type annotated struct {
	msg   string
	meta  map[string]any
	cause error
}

func (e *annotated) Error() string            { return e.msg }
func (e *annotated) Message() string          { return e.msg }
func (e *annotated) Metadata() map[string]any { return e.meta }
func (e *annotated) Unwrap() error            { return e.cause }

func TestCollectErrorEntries(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantMessages []string
	}{
		{name: "standard error", err: errors.New("simple error"), wantMessages: []string{"simple error"}},
		{
			name:         "zerr wrapped chain",
			err:          zerr.Wrap(zerr.Wrap(errors.New("root cause"), "middle layer"), "outer layer"),
			wantMessages: []string{"outer layer", "middle layer", "root cause"},
		},
		{name: "nil", err: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := logger.CollectErrorEntries(tt.err)
			msgs := make([]string, 0, len(entries))
			for _, e := range entries {
				msgs = append(msgs, e.Message)
			}
			if tt.wantMessages == nil {
				assert.Empty(t, msgs)
				return
			}
			assert.Equal(t, tt.wantMessages, msgs)
		})
	}
}

func TestCollectErrorEntries_Metadata(t *testing.T) {
	err := &annotated{
		msg:   "outer",
		meta:  map[string]any{"uri": "https://example.test"},
		cause: errors.New("inner"),
	}

	entries := logger.CollectErrorEntries(err)
	require.Len(t, entries, 2)
	assert.Equal(t, map[string]any{"uri": "https://example.test"}, entries[0].Metadata)
	assert.Nil(t, entries[1].Metadata)
}

func TestFormatErrorEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []logger.ErrorEntry
		want    string
	}{
		{name: "single entry", entries: []logger.ErrorEntry{{Message: "single error"}}, want: "Error: single error"},
		{
			name:    "two entries with caused by",
			entries: []logger.ErrorEntry{{Message: "outer error"}, {Message: "inner error"}},
			want:    "Error: outer error\n\n  Caused by:\n    → inner error",
		},
		{
			name:    "metadata on main error",
			entries: []logger.ErrorEntry{{Message: "main error", Metadata: map[string]any{"key": "value"}}},
			want:    "Error: main error\n       key: value",
		},
		{
			name: "metadata on cause",
			entries: []logger.ErrorEntry{
				{Message: "main"},
				{Message: "cause", Metadata: map[string]any{"cause_key": "cause_val"}},
			},
			want: "Error: main\n\n  Caused by:\n    → cause\n      cause_key: cause_val",
		},
		{
			name:    "multiline cause message",
			entries: []logger.ErrorEntry{{Message: "main"}, {Message: "cause line1\ncause line2"}},
			want:    "Error: main\n\n  Caused by:\n    → cause line1\n      cause line2",
		},
		{
			name: "metadata sorted alphabetically",
			entries: []logger.ErrorEntry{{
				Message:  "error",
				Metadata: map[string]any{"zebra": "z", "alpha": "a", "mike": "m"},
			}},
			want: "Error: error\n       alpha: a\n       mike: m\n       zebra: z",
		},
		{name: "empty", entries: []logger.ErrorEntry{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.FormatErrorEntries(tt.entries))
		})
	}
}
