package catalog

import (
	"errors"
	"fmt"

	"heat-optimizer/internal/model"

	"github.com/rs/zerolog"
)

var ErrUnknownUnit = errors.New("unknown production unit")

// Catalog owns the fleet's unit list and its backing JSON file.
// It is not safe for concurrent writers.
type Catalog struct {
	paths []string
	log   zerolog.Logger

	units  []model.ProductionUnit
	source string
}

// New returns an empty catalog probing paths in order. Call Load to read it.
func New(paths []string, log zerolog.Logger) *Catalog {
	return &Catalog{
		paths: append([]string(nil), paths...),
		log:   log,
		units: []model.ProductionUnit{},
	}
}

// Load reads the unit list from the first existing path. On any failure the
// catalog is left empty; the error is only logged.
func (c *Catalog) Load() {
	c.units, c.source = readUnits(c.paths, c.log)
	c.log.Info().Int("units", len(c.units)).Str("path", c.source).Msg("catalog loaded")
}

// List returns a copy of the units in load order.
func (c *Catalog) List() []model.ProductionUnit {
	return append([]model.ProductionUnit(nil), c.units...)
}

func (c *Catalog) Get(name string) (model.ProductionUnit, bool) {
	i := c.index(name)
	if i < 0 {
		return model.ProductionUnit{}, false
	}
	return c.units[i], true
}

// Save replaces the unit with the same name and rewrites the whole backing
// file. Units not already in the catalog are rejected.
func (c *Catalog) Save(u model.ProductionUnit) error {
	i := c.index(u.Name)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownUnit, u.Name)
	}
	if err := u.Validate(); err != nil {
		return fmt.Errorf("unit invalid: %w", err)
	}
	prev := c.units[i]
	c.units[i] = u

	path := c.target()
	if path == "" {
		c.units[i] = prev
		return errors.New("catalog has no backing path")
	}
	if err := writeUnits(path, c.units); err != nil {
		c.units[i] = prev
		c.log.Error().Err(err).Str("unit", u.Name).Str("path", path).Msg("save production unit")
		return err
	}
	c.source = path
	c.log.Info().Str("unit", u.Name).Str("path", path).Msg("saved production unit")
	return nil
}

// Path is the file the catalog was loaded from or last saved to.
func (c *Catalog) Path() string {
	return c.source
}

// target is the first existing probe path, or the last one when none exist.
func (c *Catalog) target() string {
	if p := firstExisting(c.paths); p != "" {
		return p
	}
	if len(c.paths) == 0 {
		return ""
	}
	return c.paths[len(c.paths)-1]
}

func (c *Catalog) index(name string) int {
	for i, u := range c.units {
		if u.Name == name {
			return i
		}
	}
	return -1
}
