package catalog

import (
	"fmt"

	"heat-optimizer/internal/model"

	"github.com/rs/zerolog"
)

// preset holds the numeric fields of a unit, without identity.
type preset struct {
	MaxHeat         model.Rate
	MaxElectricity  model.Rate
	ProductionCosts model.Rate
	CO2Emissions    model.Rate
	FuelConsumption model.Rate
}

func (p preset) applyTo(u model.ProductionUnit) model.ProductionUnit {
	u.MaxHeat = p.MaxHeat
	u.MaxElectricity = p.MaxElectricity
	u.ProductionCosts = p.ProductionCosts
	u.CO2Emissions = p.CO2Emissions
	u.FuelConsumption = p.FuelConsumption
	return u
}

var (
	gb1 = preset{model.Applicable(4.0), model.NotApplicable, model.Applicable(520), model.Applicable(175), model.Applicable(0.9)}
	gb2 = preset{model.Applicable(3.0), model.NotApplicable, model.Applicable(560), model.Applicable(130), model.Applicable(0.7)}
	ob1 = preset{model.Applicable(4.0), model.NotApplicable, model.Applicable(670), model.Applicable(330), model.Applicable(1.5)}
	gm1 = preset{model.Applicable(3.5), model.Applicable(2.6), model.Applicable(990), model.Applicable(650), model.Applicable(1.8)}
	hp1 = preset{model.Applicable(6.0), model.Applicable(-6.0), model.Applicable(60), model.NotApplicable, model.NotApplicable}

	disabled = preset{model.Applicable(0), model.Applicable(0), model.Applicable(0), model.Applicable(0), model.Applicable(0)}
)

var scenarioPresets = map[model.Scenario]map[string]preset{
	model.ScenarioA: {"GB1": gb1, "GB2": gb2, "OB1": ob1},
	model.ScenarioB: {"GB1": gb1, "OB1": ob1, "GM1": gm1, "HP1": hp1},
}

// ApplyScenario resets every unit to the scenario's preset values; units
// outside the scenario are zeroed. Each unit is committed through Save.
func (c *Catalog) ApplyScenario(s model.Scenario) error {
	presets, ok := scenarioPresets[s]
	if !ok {
		return fmt.Errorf("%w: %q", model.ErrInvalidScenario, s)
	}
	for _, u := range c.List() {
		p, ok := presets[u.Name]
		if !ok {
			p = disabled
		}
		if err := c.Save(p.applyTo(u)); err != nil {
			return fmt.Errorf("apply scenario %s: %w", s, err)
		}
	}
	c.log.Info().Str("scenario", string(s)).Msg("loaded scenario values")
	return nil
}

// Disable zeroes every numeric field of the named unit.
func (c *Catalog) Disable(name string) (model.ProductionUnit, error) {
	u, ok := c.Get(name)
	if !ok {
		return model.ProductionUnit{}, fmt.Errorf("%w: %q", ErrUnknownUnit, name)
	}
	u = disabled.applyTo(u)
	if err := c.Save(u); err != nil {
		return model.ProductionUnit{}, err
	}
	return u, nil
}

// Enable re-activates the named unit. With defaults, numeric fields are
// copied from the default-values reference, including their applicability;
// otherwise the current values are kept.
func (c *Catalog) Enable(name string, defaults *Defaults) (model.ProductionUnit, error) {
	u, ok := c.Get(name)
	if !ok {
		return model.ProductionUnit{}, fmt.Errorf("%w: %q", ErrUnknownUnit, name)
	}
	if defaults != nil {
		if d, ok := defaults.Get(name); ok {
			u = preset{d.MaxHeat, d.MaxElectricity, d.ProductionCosts, d.CO2Emissions, d.FuelConsumption}.applyTo(u)
		} else {
			c.log.Warn().Str("unit", name).Msg("no default values for unit")
		}
	}
	if err := c.Save(u); err != nil {
		return model.ProductionUnit{}, err
	}
	return u, nil
}

// Defaults is the read-only default-values reference.
type Defaults struct {
	units []model.ProductionUnit
}

// LoadDefaults reads the reference like the catalog: first existing path,
// empty on any failure.
func LoadDefaults(paths []string, log zerolog.Logger) *Defaults {
	units, path := readUnits(paths, log)
	log.Info().Int("units", len(units)).Str("path", path).Msg("loaded default units")
	return &Defaults{units: units}
}

func (d *Defaults) Get(name string) (model.ProductionUnit, bool) {
	for _, u := range d.units {
		if u.Name == name {
			return u, true
		}
	}
	return model.ProductionUnit{}, false
}

func (d *Defaults) List() []model.ProductionUnit {
	return append([]model.ProductionUnit(nil), d.units...)
}
