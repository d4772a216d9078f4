package iologger_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/herbolive/herbdb/internal/iologger"
	"github.com/herbolive/herbdb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	dir := t.TempDir()
	cfg := config.LogConfig{Format: "json", Level: "info", Destination: "file"}
	path := filepath.Join(dir, iologger.LogFile)

	require.NoError(t, iologger.Init(dir, cfg, false))
	slog.Info("first run")
	require.NoError(t, iologger.Init(dir, cfg, true))
	slog.Info("second run")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "first run")
	assert.Contains(t, string(data), "second run")

	require.NoError(t, iologger.Init(dir, cfg, false))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "first run")
}

func TestInitBadDir(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	dir := filepath.Join(t.TempDir(), "missing")
	cfg := config.LogConfig{Destination: "file"}
	assert.Error(t, iologger.Init(dir, cfg, false))
}

func TestInitStreams(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	dir := t.TempDir()
	for _, dest := range []string{"stdout", "stderr", ""} {
		cfg := config.LogConfig{Destination: dest}
		require.NoError(t, iologger.Init(dir, cfg, false), dest)
	}
	assert.NoFileExists(t, filepath.Join(dir, iologger.LogFile))
}
