package app

import (
	"fmt"

	"heat-optimizer/internal/catalog"
	"heat-optimizer/internal/config"
	"heat-optimizer/internal/demand"
	"heat-optimizer/internal/ledger"
	"heat-optimizer/internal/logger"
	"heat-optimizer/internal/optimizer"
)

// App wires the catalog, demand series, result store and engine from a
// configuration.
type App struct {
	Config   *config.Config
	Catalog  *catalog.Catalog
	Defaults *catalog.Defaults
	Demand   *demand.Series
	Store    ledger.Store
	Engine   *optimizer.Engine
}

// New loads every data source. Missing catalog or demand files are not
// errors; only an unusable result store is.
func New(cfg *config.Config, opts ...optimizer.Option) (*App, error) {
	cat := catalog.New(cfg.Catalog.Paths, logger.New("catalog"))
	cat.Load()
	defaults := catalog.LoadDefaults(cfg.Catalog.DefaultsPaths, logger.New("catalog"))

	series := demand.New(cfg.Demand.Paths, logger.New("demand"))
	series.Load()

	store, err := ledger.Open(cfg.Results.Backend, cfg.Results.Path, logger.New("ledger"))
	if err != nil {
		return nil, fmt.Errorf("open result store: %w", err)
	}

	return &App{
		Config:   cfg,
		Catalog:  cat,
		Defaults: defaults,
		Demand:   series,
		Store:    store,
		Engine:   optimizer.New(cat, series, store, logger.New("optimizer"), opts...),
	}, nil
}

// LoadConfig reads path, or returns the built-in defaults when path is empty.
func LoadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (a *App) Close() error {
	return a.Store.Close()
}
