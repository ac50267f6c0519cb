package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/geange/kleene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.NoError(t, cfg.validate())

	n, err := cfg.notation()
	require.NoError(t, err)
	assert.Equal(t, kleene.POSIX, n)

	level, err := cfg.level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "kleene.yaml", "notation: formal-latex\nlog_level: debug\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "formal-latex", cfg.Notation)
	assert.Equal(t, formatText, cfg.Format)

	level, err := cfg.level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		msg     string
	}{
		{"bad yaml", "notation: [", "failed to parse"},
		{"bad notation", "notation: ascii", "unknown notation"},
		{"bad level", "log_level: loud", "invalid log level"},
		{"bad format", "format: json", "unknown format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeFile(t, "kleene.yaml", tt.content))
			assert.ErrorContains(t, err, tt.msg)
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
