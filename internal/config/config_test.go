package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadReturnsDefaultsWhenNoFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "timekeeper.db", cfg.DatabaseFile)
	assert.NotEmpty(t, cfg.DataDir)
	assert.Equal(t, filepath.Join(cfg.DataDir, "exports"), cfg.ExportsDir)
	assert.Equal(t, filepath.Join(cfg.DataDir, "backups"), cfg.BackupsDir)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.DataDir = "/srv/timekeeper"
	require.NoError(t, cfg.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/srv/timekeeper", loaded.DataDir)
	assert.Equal(t, "timekeeper.db", loaded.DatabaseFile)
}

func TestLoadFillsMissingFieldsFromDefaults(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	dir := filepath.Join(configHome, "timekeeper")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"),
		[]byte("data_dir: /data/tk\n"), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/data/tk", cfg.DataDir)
	assert.Equal(t, "timekeeper.db", cfg.DatabaseFile)
	assert.Equal(t, filepath.Join("/data/tk", "exports"), cfg.ExportsDir)
}

func TestDatabasePath(t *testing.T) {
	cfg := &Config{DataDir: "/data/tk", DatabaseFile: "x.db"}
	assert.Equal(t, filepath.Join("/data/tk", "x.db"), cfg.DatabasePath())
}
