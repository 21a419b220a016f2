package analysis

import (
	"time"

	"heat-optimizer/internal/model"

	"gonum.org/v1/gonum/floats"
)

// UnitTotals aggregates one unit's rows over a run.
type UnitTotals struct {
	UnitName    string
	Intervals   int
	Heat        float64
	Electricity float64
	Cost        float64
	Fuel        float64
	CO2         float64
}

// IntervalTotals is the fleet-wide output of one interval; this is the
// series behind the stacked production charts.
type IntervalTotals struct {
	Start time.Time
	Heat  float64
	Cost  float64
	CO2   float64
	Unmet float64
}

// Summary is a run-level roll-up of the result rows.
type Summary struct {
	Intervals int

	TotalHeat        float64
	TotalElectricity float64
	TotalCost        float64
	TotalFuel        float64
	TotalCO2         float64
	UnmetHeat        float64

	Units    []UnitTotals
	Timeline []IntervalTotals
}

// Summarize rolls up entries in allocation order. Units appear in order of
// first allocation; the timeline is in interval order.
func Summarize(entries []model.ResultEntry, shortfalls []model.Shortfall) Summary {
	s := Summary{Units: []UnitTotals{}, Timeline: []IntervalTotals{}}

	n := len(entries)
	heat := make([]float64, n)
	elec := make([]float64, n)
	cost := make([]float64, n)
	fuel := make([]float64, n)
	co2 := make([]float64, n)

	unitIdx := map[string]int{}
	slotIdx := map[time.Time]int{}
	slot := func(ts time.Time) *IntervalTotals {
		i, ok := slotIdx[ts]
		if !ok {
			i = len(s.Timeline)
			slotIdx[ts] = i
			s.Timeline = append(s.Timeline, IntervalTotals{Start: ts})
		}
		return &s.Timeline[i]
	}

	for i, e := range entries {
		heat[i], elec[i], cost[i], fuel[i], co2[i] = e.HeatProduced, e.ElectricityProduced, e.ProductionCost, e.FuelConsumption, e.CO2Emissions

		ui, ok := unitIdx[e.UnitName]
		if !ok {
			ui = len(s.Units)
			unitIdx[e.UnitName] = ui
			s.Units = append(s.Units, UnitTotals{UnitName: e.UnitName})
		}
		u := &s.Units[ui]
		u.Intervals++
		u.Heat += e.HeatProduced
		u.Electricity += e.ElectricityProduced
		u.Cost += e.ProductionCost
		u.Fuel += e.FuelConsumption
		u.CO2 += e.CO2Emissions

		t := slot(e.Timestamp)
		t.Heat += e.HeatProduced
		t.Cost += e.ProductionCost
		t.CO2 += e.CO2Emissions
	}

	unmet := make([]float64, len(shortfalls))
	for i, sf := range shortfalls {
		unmet[i] = sf.Unmet
		slot(sf.Start).Unmet += sf.Unmet
	}
	sortTimeline(s.Timeline)

	s.Intervals = len(s.Timeline)
	s.TotalHeat = floats.Sum(heat)
	s.TotalElectricity = floats.Sum(elec)
	s.TotalCost = floats.Sum(cost)
	s.TotalFuel = floats.Sum(fuel)
	s.TotalCO2 = floats.Sum(co2)
	s.UnmetHeat = floats.Sum(unmet)
	return s
}
