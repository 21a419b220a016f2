package analysis

import (
	"testing"
	"time"

	"heat-optimizer/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func TestSummarize(t *testing.T) {
	entries := []model.ResultEntry{
		{UnitName: "HP1", Timestamp: t0, HeatProduced: 6, ElectricityProduced: -6, ProductionCost: 3000, CO2Emissions: 0},
		{UnitName: "GB1", Timestamp: t0, HeatProduced: 1, ProductionCost: 520, FuelConsumption: 0.9, CO2Emissions: 175},
		{UnitName: "HP1", Timestamp: t0.Add(time.Hour), HeatProduced: 5, ElectricityProduced: -5, ProductionCost: 2000},
	}
	shortfalls := []model.Shortfall{{Start: t0.Add(2 * time.Hour), Demand: 20, Unmet: 2.5}}

	s := Summarize(entries, shortfalls)

	assert.Equal(t, 3, s.Intervals)
	assert.InDelta(t, 12, s.TotalHeat, 1e-9)
	assert.InDelta(t, -11, s.TotalElectricity, 1e-9)
	assert.InDelta(t, 5520, s.TotalCost, 1e-9)
	assert.InDelta(t, 0.9, s.TotalFuel, 1e-9)
	assert.InDelta(t, 175, s.TotalCO2, 1e-9)
	assert.InDelta(t, 2.5, s.UnmetHeat, 1e-9)

	require.Len(t, s.Units, 2)
	assert.Equal(t, "HP1", s.Units[0].UnitName)
	assert.Equal(t, 2, s.Units[0].Intervals)
	assert.InDelta(t, 11, s.Units[0].Heat, 1e-9)

	require.Len(t, s.Timeline, 3)
	assert.InDelta(t, 7, s.Timeline[0].Heat, 1e-9)
	assert.Equal(t, t0.Add(2*time.Hour), s.Timeline[2].Start)
	assert.InDelta(t, 2.5, s.Timeline[2].Unmet, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, nil)
	assert.Zero(t, s.Intervals)
	assert.Zero(t, s.TotalHeat)
	assert.NotNil(t, s.Units)
	assert.NotNil(t, s.Timeline)
}

func TestDescribeDemand(t *testing.T) {
	var intervals []model.HeatDemand
	for i, p := range []float64{500, 100, 300, 200, 400} {
		start := t0.Add(time.Duration(i) * time.Hour)
		intervals = append(intervals, model.HeatDemand{
			TimeFrom: start, TimeTo: start.Add(time.Hour),
			Heat: float64(i + 1), ElectricityPrice: p,
		})
	}

	d := DescribeDemand(intervals)
	assert.Equal(t, 5, d.Count)
	assert.Equal(t, t0, d.Start)
	assert.Equal(t, t0.Add(5*time.Hour), d.End)
	assert.InDelta(t, 15, d.TotalHeat, 1e-9)
	assert.InDelta(t, 5, d.PeakHeat, 1e-9)
	assert.InDelta(t, 100, d.MinPrice, 1e-9)
	assert.InDelta(t, 500, d.MaxPrice, 1e-9)
	assert.InDelta(t, 300, d.MeanPrice, 1e-9)
	assert.InDelta(t, 120, d.P05Price, 1e-9)
	assert.InDelta(t, 480, d.P95Price, 1e-9)

	assert.Equal(t, DemandStats{}, DescribeDemand(nil))
}
