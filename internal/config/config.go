package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Catalog CatalogConfig `yaml:"catalog"`
	Demand  DemandConfig  `yaml:"demand"`
	Results ResultsConfig `yaml:"results"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

type CatalogConfig struct {
	// Paths are probed in order; the first existing file wins.
	Paths []string `yaml:"paths"`
	// DefaultsPaths locate the read-only default-values reference.
	DefaultsPaths []string `yaml:"defaults_paths"`
}

type DemandConfig struct {
	Paths []string `yaml:"paths"`
}

type ResultsConfig struct {
	// Backend selects the result store type: "csv" or "sqlite".
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

type ServerConfig struct {
	Port           string   `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the desktop data layout:
// the solution-root data folder first, then the app-relative one.
func Default() *Config {
	c := &Config{}
	c.SetDefaults()
	return c
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked reads the file and resolves relative paths, but does not
// apply defaults or validate.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	dir := filepath.Dir(path)
	c.Catalog.Paths = resolveAll(dir, c.Catalog.Paths)
	c.Catalog.DefaultsPaths = resolveAll(dir, c.Catalog.DefaultsPaths)
	c.Demand.Paths = resolveAll(dir, c.Demand.Paths)
	if c.Results.Path != "" {
		c.Results.Path = resolve(dir, c.Results.Path)
	}
	return &c, nil
}

// SetDefaults fills every unset field.
func (c *Config) SetDefaults() {
	if len(c.Catalog.Paths) == 0 {
		c.Catalog.Paths = []string{"DanfossHeating/Data/production_units.json", "Data/production_units.json"}
	}
	if len(c.Catalog.DefaultsPaths) == 0 {
		c.Catalog.DefaultsPaths = []string{"DanfossHeating/Data/default_units.json", "Data/default_units.json"}
	}
	if len(c.Demand.Paths) == 0 {
		c.Demand.Paths = []string{"DanfossHeating/Data/heat_demand.csv", "Data/heat_demand.csv"}
	}
	if c.Results.Backend == "" {
		c.Results.Backend = "csv"
	}
	if c.Results.Path == "" {
		if c.Results.Backend == "sqlite" {
			c.Results.Path = "Data/result_data.db"
		} else {
			c.Results.Path = "Data/result_data.csv"
		}
	}
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Results.Backend != "csv" && c.Results.Backend != "sqlite" {
		return fmt.Errorf("results.backend: unknown backend %q", c.Results.Backend)
	}
	if c.Results.Path == "" {
		return errors.New("results.path is required")
	}
	if len(c.Catalog.Paths) == 0 {
		return errors.New("catalog.paths is required")
	}
	if len(c.Demand.Paths) == 0 {
		return errors.New("demand.paths is required")
	}
	if f := strings.ToLower(c.Logging.Format); f != "json" && f != "console" {
		return fmt.Errorf("logging.format: unknown format %q", c.Logging.Format)
	}
	return nil
}

func resolveAll(dir string, paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, resolve(dir, p))
		}
	}
	return out
}

// resolve prefers interpreting relative paths as relative to the config file
// directory, but falls back to the provided path (relative to cwd) if that
// candidate doesn't exist.
func resolve(dir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	cand := filepath.Join(dir, p)
	if _, err := os.Stat(cand); err == nil {
		return cand
	}
	return p
}
