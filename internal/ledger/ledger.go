package ledger

import (
	"fmt"

	"heat-optimizer/internal/model"

	"github.com/rs/zerolog"
)

// Header is the column layout of the result store.
var Header = []string{
	"UnitName",
	"Timestamp",
	"HeatProduced",
	"ElectricityProduced",
	"ProductionCost",
	"FuelConsumption",
	"CO2Emissions",
}

// Store persists the rows of the latest optimisation run.
type Store interface {
	// Save replaces the stored rows with exactly rows.
	Save(rows []model.ResultEntry) error
	// Load returns the stored rows. A missing store yields no rows and no
	// error; malformed rows are logged and skipped.
	Load() ([]model.ResultEntry, error)
	Close() error
}

// Open returns the store for backend ("csv" or "sqlite") at path.
func Open(backend, path string, log zerolog.Logger) (Store, error) {
	switch backend {
	case "", "csv":
		return NewCSVStore(path, log), nil
	case "sqlite":
		return NewSQLiteStore(path, log)
	default:
		return nil, fmt.Errorf("unknown result backend %q", backend)
	}
}
