package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("MissingFileGivesDefaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")

		cfg := Default()
		cfg.DataFile = "my_projects.json"
		cfg.CountdownDefault = 25 * time.Minute
		require.NoError(t, cfg.Save(path))

		got, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, cfg, got)
	})

	t.Run("PartialFileKeepsDefaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("data_file: custom.json\n"), 0644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "custom.json", cfg.DataFile)
		assert.Equal(t, Default().SessionDB, cfg.SessionDB)
		assert.Equal(t, Default().TickInterval, cfg.TickInterval)
	})

	t.Run("LoadOrCreateWritesDefaultsOnFirstRun", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")

		cfg, err := LoadOrCreate(path)
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)

		// The file now exists and loads back to the same defaults.
		_, statErr := os.Stat(path)
		require.NoError(t, statErr)
		again, err := LoadOrCreate(path)
		require.NoError(t, err)
		assert.Equal(t, Default(), again)
	})

	t.Run("LoadOrCreateFailedWriteStillGivesDefaults", func(t *testing.T) {
		// The parent directory does not exist, so the write fails.
		path := filepath.Join(t.TempDir(), "missing", "config.yaml")

		cfg, err := LoadOrCreate(path)
		assert.Error(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("BadYamlGivesDefaultsAndError", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))

		cfg, err := Load(path)
		assert.Error(t, err)
		assert.Equal(t, Default(), cfg)
	})
}
