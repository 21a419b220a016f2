package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "units.json"), []byte("[]"), 0o644))

	path := filepath.Join(dir, "config.yaml")
	data := `catalog:
  paths:
    - units.json
    - missing/units.json
demand:
  paths: ["/abs/heat_demand.csv"]
results:
  backend: sqlite
server:
  port: "9090"
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	checks := []struct {
		name string
		got  any
		want any
	}{
		{"catalog resolved", cfg.Catalog.Paths[0], filepath.Join(dir, "units.json")},
		{"catalog fallback kept", cfg.Catalog.Paths[1], "missing/units.json"},
		{"absolute demand", cfg.Demand.Paths, []string{"/abs/heat_demand.csv"}},
		{"backend", cfg.Results.Backend, "sqlite"},
		{"sqlite default path", cfg.Results.Path, "Data/result_data.db"},
		{"port", cfg.Server.Port, "9090"},
		{"origins default", cfg.Server.AllowedOrigins, []string{"*"}},
		{"level", cfg.Logging.Level, "debug"},
		{"format default", cfg.Logging.Format, "json"},
		{"defaults paths", len(cfg.Catalog.DefaultsPaths), 2},
	}
	for _, c := range checks {
		assert.Equal(t, c.want, c.got, c.name)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "csv", cfg.Results.Backend)
	assert.Equal(t, "Data/result_data.csv", cfg.Results.Path)
	assert.Equal(t, []string{"DanfossHeating/Data/heat_demand.csv", "Data/heat_demand.csv"}, cfg.Demand.Paths)
}

func TestValidateRejectsUnknownBackend(t *testing.T) {
	cfg := Default()
	cfg.Results.Backend = "parquet"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())

	var nilCfg *Config
	assert.Error(t, nilCfg.Validate())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("catalog: [unclosed"), 0o644))
	_, err = LoadUnchecked(path)
	assert.Error(t, err)
}
