package model

import "time"

// ResultEntry is one row of allocation output for a (unit, interval) pair.
// This is the artifact persisted to the result store.
type ResultEntry struct {
	UnitName  string
	Timestamp time.Time

	HeatProduced        float64
	ElectricityProduced float64

	// ProductionCost is negative when electricity sales exceed the cost.
	ProductionCost  float64
	FuelConsumption float64
	CO2Emissions    float64
}

// ProductionSchedule groups a run's entries by unit, in allocation order.
type ProductionSchedule struct {
	UnitName string
	Entries  []ResultEntry
}

// GroupByUnit builds schedules in order of each unit's first appearance.
func GroupByUnit(entries []ResultEntry) []ProductionSchedule {
	out := []ProductionSchedule{}
	idx := map[string]int{}
	for _, e := range entries {
		i, ok := idx[e.UnitName]
		if !ok {
			i = len(out)
			idx[e.UnitName] = i
			out = append(out, ProductionSchedule{UnitName: e.UnitName})
		}
		out[i].Entries = append(out[i].Entries, e)
	}
	return out
}

// Shortfall records an interval where the participating fleet could not
// cover the demand. It is reported with a run but never persisted.
type Shortfall struct {
	Start  time.Time
	Demand float64
	Unmet  float64
}
