package model

import (
	"errors"
	"fmt"
)

// ProductionUnit is one heat production asset in the fleet.
// Units:
// - MaxHeat: MW heat per interval
// - MaxElectricity: MW electricity per interval (negative = consumer, positive = producer)
// - ProductionCosts: DKK per MWh heat
// - CO2Emissions: kg per MWh heat
// - FuelConsumption: MWh fuel per MWh heat
type ProductionUnit struct {
	Name            string `json:"name"`
	MaxHeat         Rate   `json:"maxHeat"`
	MaxElectricity  Rate   `json:"maxElectricity"`
	ProductionCosts Rate   `json:"productionCosts"`
	CO2Emissions    Rate   `json:"co2Emissions"`
	FuelConsumption Rate   `json:"fuelConsumption"`
	ImagePath       string `json:"imagePath,omitempty"`
}

func (u ProductionUnit) Validate() error {
	if u.Name == "" {
		return errors.New("name is required")
	}
	checks := []struct {
		field string
		rate  Rate
	}{
		{"maxHeat", u.MaxHeat},
		{"productionCosts", u.ProductionCosts},
		{"co2Emissions", u.CO2Emissions},
		{"fuelConsumption", u.FuelConsumption},
	}
	for _, c := range checks {
		if c.rate.Applicable && c.rate.Value < 0 {
			return fmt.Errorf("%s: %s must be >= 0", u.Name, c.field)
		}
	}
	return nil
}

// ElectricityRole classifies a unit by the sign of its electricity rating.
func (u ProductionUnit) ElectricityRole() string {
	switch {
	case !u.MaxElectricity.Applicable || u.MaxElectricity.Value == 0:
		return "inert"
	case u.MaxElectricity.Value < 0:
		return "consumer"
	default:
		return "producer"
	}
}

// Disabled reports whether the unit has been zeroed out.
func (u ProductionUnit) Disabled() bool {
	return u.MaxHeat.Or(0) == 0
}
