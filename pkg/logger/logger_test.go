package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/require"
)

func TestSetupReturnsSameInstanceOnSubsequentCalls(t *testing.T) {
	logger1 := Setup(Options{Level: 0, Sink: &bytes.Buffer{}})
	logger2 := Setup(Options{Level: -1})
	require.NotNil(t, logger1)
	require.Same(t, logger1, logger2)
}

func TestNewWritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	log := New(0, &buf)
	log.Info("search failed", "query", "tolkien")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "search failed", entry[MessageKey])
	require.Equal(t, "tolkien", entry["query"])
	require.Contains(t, entry, TimeStampKey)
	require.Contains(t, entry, VersionKey)
}

func TestNewHonoursLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(2, &buf) // error only
	log.Info("dropped")
	require.Zero(t, buf.Len())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    int8
		wantErr bool
	}{
		{in: "", want: 0},
		{in: "debug", want: -1},
		{in: "info", want: 0},
		{in: "warn", want: 1},
		{in: "error", want: 2},
		{in: "loud", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestOpenSink(t *testing.T) {
	fallback := &bytes.Buffer{}
	w, closeFn, err := OpenSink("", fallback)
	require.NoError(t, err)
	require.Same(t, fallback, w)
	require.NoError(t, closeFn())

	path := filepath.Join(t.TempDir(), "shelf.log")
	w, closeFn, err = OpenSink(path, fallback)
	require.NoError(t, err)
	require.NotSame(t, fallback, w)
	require.NoError(t, closeFn())

	_, _, err = OpenSink(filepath.Join(t.TempDir(), "missing", "shelf.log"), fallback)
	require.Error(t, err)
}

func TestWithLogger(t *testing.T) {
	ctx := context.Background()
	l := logr.Discard()
	ctxWithLogger := WithLogger(ctx, &l)
	require.Same(t, &l, FromContext(ctxWithLogger))
	require.Equal(t, ctxWithLogger, WithLogger(ctxWithLogger, &l))

	other := logr.Discard()
	replaced := WithLogger(ctxWithLogger, &other)
	require.Same(t, &other, FromContext(replaced))
}

func TestFromContextFallsBackToNoop(t *testing.T) {
	orig := globalLogrLogger
	globalLogrLogger = nil
	defer func() { globalLogrLogger = orig }()

	require.Same(t, &defaultNoopLogger, FromContext(context.Background()))
	require.Same(t, &defaultNoopLogger, GetGlobalLogger())
	require.Same(t, &defaultNoopLogger, GetNoopLogger())
}

func TestSyncDoesNotPanicWhenGlobalZapLoggerIsNil(t *testing.T) {
	orig := globalZapLogger
	globalZapLogger = nil
	defer func() { globalZapLogger = orig }()

	require.NotPanics(t, Sync)
}

func TestWithValuesReturnsNewLogger(t *testing.T) {
	base := logr.Discard()
	got := WithValues(&base, "component", "suggest")
	require.NotNil(t, got)
	require.NotSame(t, &base, got)
}
