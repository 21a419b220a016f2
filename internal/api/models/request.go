package models

import "heat-optimizer/internal/model"

// OptimizeRequest selects the run. Empty fields fall back to
// winter / cost / scenario A.
type OptimizeRequest struct {
	Profile        string `json:"profile"`
	Criterion      string `json:"criterion"`
	Scenario       string `json:"scenario"`
	IncludeEntries bool   `json:"include_entries,omitempty"`
}

// UnitRequest carries the editable fields of a production unit; the name
// comes from the path. A null or missing field means "not applicable".
type UnitRequest struct {
	MaxHeat         model.Rate `json:"maxHeat"`
	MaxElectricity  model.Rate `json:"maxElectricity"`
	ProductionCosts model.Rate `json:"productionCosts"`
	CO2Emissions    model.Rate `json:"co2Emissions"`
	FuelConsumption model.Rate `json:"fuelConsumption"`
	ImagePath       *string    `json:"imagePath,omitempty"`
}
