package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"heat-optimizer/internal/model"

	"github.com/rs/zerolog"
)

// firstExisting returns the first path that exists, or "" when none do.
func firstExisting(paths []string) string {
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// readUnits loads a unit list from the first existing path. Any failure is
// logged and yields an empty list.
func readUnits(paths []string, log zerolog.Logger) ([]model.ProductionUnit, string) {
	path := firstExisting(paths)
	if path == "" {
		log.Warn().Strs("paths", paths).Msg("unit file not found")
		return []model.ProductionUnit{}, ""
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("read unit file")
		return []model.ProductionUnit{}, path
	}
	var units []model.ProductionUnit
	if err := json.Unmarshal(raw, &units); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			log.Error().Err(err).Int64("offset", syntaxErr.Offset).Str("path", path).Msg("parse unit file")
		} else {
			log.Error().Err(err).Str("path", path).Msg("decode unit file")
		}
		return []model.ProductionUnit{}, path
	}
	if err := checkUnits(units); err != nil {
		log.Error().Err(err).Str("path", path).Msg("invalid unit file")
		return []model.ProductionUnit{}, path
	}
	if units == nil {
		units = []model.ProductionUnit{}
	}
	return units, path
}

// checkUnits requires every unit to be valid and every name unique.
func checkUnits(units []model.ProductionUnit) error {
	seen := make(map[string]bool, len(units))
	for i, u := range units {
		if err := u.Validate(); err != nil {
			return fmt.Errorf("unit %d: %w", i, err)
		}
		if seen[u.Name] {
			return fmt.Errorf("unit %d: duplicate name %q", i, u.Name)
		}
		seen[u.Name] = true
	}
	return nil
}

// writeUnits serialises the full list, creating the directory if needed.
func writeUnits(path string, units []model.ProductionUnit) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	raw, err := json.MarshalIndent(units, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal units: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write units file: %w", err)
	}
	return nil
}
