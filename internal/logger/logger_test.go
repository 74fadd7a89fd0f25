package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelWarn, false},
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{" warning ", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"trace", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVerboseLowersLevel(t *testing.T) {
	var stderr bytes.Buffer
	l, err := New(Config{Level: "error", Verbose: true, Stderr: &stderr})
	require.NoError(t, err)
	defer func() { _ = l.Close() }()

	assert.Equal(t, slog.LevelDebug, l.Level())
	l.Debug("probing", "service", "gofile")
	assert.Contains(t, stderr.String(), "service=gofile")
}

func TestDefaultLevelHidesInfo(t *testing.T) {
	var stderr bytes.Buffer
	l, err := New(Config{Stderr: &stderr})
	require.NoError(t, err)

	l.Info("hidden")
	l.Warn("shown")
	assert.NotContains(t, stderr.String(), "hidden")
	assert.Contains(t, stderr.String(), "shown")
}

func TestFileSinkWritesJSON(t *testing.T) {
	var stderr bytes.Buffer
	path := filepath.Join(t.TempDir(), "uploadgen.log")

	l, err := New(Config{File: path, Stderr: &stderr})
	require.NoError(t, err)
	l.Debug("upload finished", "service", "uguu")
	require.NoError(t, l.Close())

	assert.Empty(t, stderr.String(), "debug records stay out of stderr at the default level")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &record))
	assert.Equal(t, "upload finished", record["msg"])
	assert.Equal(t, "uguu", record["service"])
}

func TestInvalidLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}
