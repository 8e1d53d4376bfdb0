package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"sitemap-urls/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestNew_ConsoleOnly(t *testing.T) {
	var console bytes.Buffer
	log, closer, err := newLogger(config.LoggingConfig{Level: "warn"}, &console)
	require.NoError(t, err)
	defer closer.Close()

	log.Info("hidden")
	log.Warn("shown", slog.Int("count", 3))

	assert.NotContains(t, console.String(), "hidden")
	assert.Contains(t, console.String(), "msg=shown")
	assert.Contains(t, console.String(), "count=3")
}

func TestNew_AlsoWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crawl_log.log")

	var console bytes.Buffer
	log, closer, err := newLogger(config.LoggingConfig{Level: "info", File: path}, &console)
	require.NoError(t, err)

	log.Info("Found URLs in sitemap", slog.Int("count", 2))
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Found URLs in sitemap")
	assert.Contains(t, console.String(), "Found URLs in sitemap")
}

func TestNew_BadFile(t *testing.T) {
	_, _, err := newLogger(config.LoggingConfig{File: filepath.Join(t.TempDir(), "missing", "x.log")}, &bytes.Buffer{})
	assert.Error(t, err)
}
