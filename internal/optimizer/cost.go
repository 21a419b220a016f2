package optimizer

import (
	"math"

	"heat-optimizer/internal/model"
)

// ElectricityImpact is the cost effect of the electricity a unit consumes or
// produces while making q MWh of heat. Consumers pay (positive), producers
// earn (negative). Only scenarios that trade electricity have an impact.
func ElectricityImpact(u model.ProductionUnit, d model.HeatDemand, q float64, s model.Scenario) float64 {
	if !s.TradesElectricity() || !u.MaxElectricity.Applicable {
		return 0
	}
	maxHeat := u.MaxHeat.Or(1)
	perMWh := 0.0
	if maxHeat != 0 {
		perMWh = u.MaxElectricity.Value / maxHeat
	}
	total := perMWh * q * d.ElectricityPrice
	if u.MaxElectricity.Value < 0 {
		return math.Abs(total)
	}
	return -total
}

// NetCost is the production cost of q MWh of heat adjusted by the
// electricity impact.
func NetCost(u model.ProductionUnit, d model.HeatDemand, q float64, s model.Scenario) float64 {
	return u.ProductionCosts.Or(0)*q + ElectricityImpact(u, d, q, s)
}
