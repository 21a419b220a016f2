package app

import (
	"os"
	"path/filepath"
	"testing"

	"heat-optimizer/internal/config"
	"heat-optimizer/internal/ledger"
	"heat-optimizer/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithMissingInputs(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Catalog.Paths = []string{filepath.Join(dir, "units.json")}
	cfg.Catalog.DefaultsPaths = []string{filepath.Join(dir, "defaults.json")}
	cfg.Demand.Paths = []string{filepath.Join(dir, "demand.csv")}
	cfg.Results.Backend = "sqlite"
	cfg.Results.Path = filepath.Join(dir, "results.db")

	a, err := New(cfg)
	require.NoError(t, err)
	defer func() { assert.NoError(t, a.Close()) }()

	assert.Empty(t, a.Catalog.List())
	assert.Empty(t, a.Demand.Winter())
	assert.IsType(t, &ledger.SQLiteStore{}, a.Store)

	res, err := a.Engine.Optimize(model.DefaultSettings())
	require.NoError(t, err)
	assert.Empty(t, res.Entries)
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Results.Backend = "parquet"
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("results:\n  backend: sqlite\n"), 0o644))
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Results.Backend)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
