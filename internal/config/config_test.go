package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendCSV, cfg.Backend)
	assert.NotEmpty(t, cfg.DataDir)
	assert.NotEmpty(t, cfg.DatabasePath)
	assert.Equal(t, path, cfg.Path())
}

func TestLoad_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := "backend: sqlite\ndatabase_path: /tmp/books.db\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "/tmp/books.db", cfg.DatabasePath)
	// unset keys keep their defaults
	assert.NotEmpty(t, cfg.DataDir)
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("backend: postgres\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid backend")
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yml")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Set("backend", "sqlite"))
	require.NoError(t, cfg.Set("data_dir", filepath.Join(dir, "data")))
	require.NoError(t, cfg.Save())

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, got.Backend)
	assert.Equal(t, filepath.Join(dir, "data"), got.DataDir)
}

func TestConfig_SetValidation(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yml"))
	require.NoError(t, err)

	assert.Error(t, cfg.Set("backend", "postgres"))
	assert.Error(t, cfg.Set("colour", "blue"))
	assert.NoError(t, cfg.Set("database_path", "/tmp/x.db"))
}
