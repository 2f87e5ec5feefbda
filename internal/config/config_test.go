package config_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-product-analytics/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "analytics.db", cfg.DBPath)
	assert.Equal(t, "exports", cfg.ExportDir)
	assert.Equal(t, 64, cfg.MaxUploadMB)
	assert.Equal(t, int64(64<<20), cfg.MaxUploadBytes())
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analytics.yaml")
	want := &config.Config{
		ListenAddr:  ":9090",
		DBPath:      "custom.db",
		ExportDir:   "out",
		MaxUploadMB: 8,
	}
	require.NoError(t, config.Save(want, path))

	got, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
