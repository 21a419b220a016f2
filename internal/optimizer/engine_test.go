package optimizer

import (
	"errors"
	"testing"
	"time"

	"heat-optimizer/internal/analysis"
	"heat-optimizer/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fleet []model.ProductionUnit

func (f fleet) List() []model.ProductionUnit { return append([]model.ProductionUnit(nil), f...) }

type series map[model.Profile][]model.HeatDemand

func (s series) Profile(p model.Profile) []model.HeatDemand { return s[p] }

type memStore struct {
	rows  []model.ResultEntry
	saves int
	err   error
}

func (m *memStore) Save(rows []model.ResultEntry) error {
	if m.err != nil {
		return m.err
	}
	m.saves++
	m.rows = append([]model.ResultEntry(nil), rows...)
	return nil
}

type countingRecorder struct {
	runs    int
	summary analysis.Summary
}

func (c *countingRecorder) ObserveRun(_ model.RunSettings, _ time.Duration, s analysis.Summary) {
	c.runs++
	c.summary = s
}

var t0 = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func interval(i int, heat, price float64) model.HeatDemand {
	start := t0.Add(time.Duration(i) * time.Hour)
	return model.HeatDemand{TimeFrom: start, TimeTo: start.Add(time.Hour), Heat: heat, ElectricityPrice: price}
}

func unit(name string, maxHeat, maxElec, cost, co2, fuel model.Rate) model.ProductionUnit {
	return model.ProductionUnit{Name: name, MaxHeat: maxHeat, MaxElectricity: maxElec, ProductionCosts: cost, CO2Emissions: co2, FuelConsumption: fuel}
}

var a = model.Applicable

func standardFleet() fleet {
	return fleet{
		unit("GB1", a(4.0), model.NotApplicable, a(520), a(175), a(0.9)),
		unit("GB2", a(3.0), model.NotApplicable, a(560), a(130), a(0.7)),
		unit("OB1", a(4.0), model.NotApplicable, a(670), a(330), a(1.5)),
		unit("GM1", a(3.5), a(2.6), a(990), a(650), a(1.8)),
		unit("HP1", a(6.0), a(-6.0), a(60), model.NotApplicable, model.NotApplicable),
	}
}

func settings(p model.Profile, c model.Criterion, s model.Scenario) model.RunSettings {
	return model.RunSettings{Profile: p, Criterion: c, Scenario: s}
}

func TestScenarioACheapestFirst(t *testing.T) {
	store := &memStore{}
	e := New(standardFleet(), series{model.ProfileWinter: {interval(0, 5, 1000)}}, store, zerolog.Nop())

	res, err := e.Optimize(settings(model.ProfileWinter, model.CriterionCost, model.ScenarioA))
	require.NoError(t, err)

	require.Len(t, res.Entries, 2, "OB1 is never reached")
	assert.Equal(t, "GB1", res.Entries[0].UnitName)
	assert.Equal(t, 4.0, res.Entries[0].HeatProduced)
	assert.Equal(t, 2080.0, res.Entries[0].ProductionCost)
	assert.Equal(t, 3.6, res.Entries[0].FuelConsumption)
	assert.Equal(t, 700.0, res.Entries[0].CO2Emissions)
	assert.Equal(t, 0.0, res.Entries[0].ElectricityProduced)

	assert.Equal(t, "GB2", res.Entries[1].UnitName)
	assert.Equal(t, 1.0, res.Entries[1].HeatProduced)
	assert.Equal(t, 560.0, res.Entries[1].ProductionCost)

	assert.Equal(t, res.Entries, store.rows)
	assert.Empty(t, res.Shortfalls)
	assert.NotEmpty(t, res.ID)
	require.Len(t, res.Schedules, 2)
	assert.Equal(t, "GB1", res.Schedules[0].UnitName)
	assert.InDelta(t, 2640, res.Summary.TotalCost, 1e-9)
}

func TestElectricityImpact(t *testing.T) {
	hp1 := unit("HP1", a(6.0), a(-6.0), a(60), model.NotApplicable, model.NotApplicable)
	d := interval(0, 3, 2.0)

	assert.InDelta(t, 6.0, ElectricityImpact(hp1, d, 3, model.ScenarioB), 1e-9)
	assert.InDelta(t, 60*3+6.0, NetCost(hp1, d, 3, model.ScenarioB), 1e-9)
	assert.Zero(t, ElectricityImpact(hp1, d, 3, model.ScenarioA))

	gm1 := unit("GM1", a(3.5), a(2.6), a(990), a(650), a(1.8))
	assert.InDelta(t, -(2.6/3.5)*3.5*2.0, ElectricityImpact(gm1, d, 3.5, model.ScenarioB), 1e-9)

	inert := unit("GB1", a(4.0), model.NotApplicable, a(520), a(175), a(0.9))
	assert.Zero(t, ElectricityImpact(inert, d, 3, model.ScenarioB))

	zeroHeat := unit("X", a(0), a(-6.0), a(1), a(0), a(0))
	assert.Zero(t, ElectricityImpact(zeroHeat, d, 3, model.ScenarioB))

	noRating := unit("Y", model.NotApplicable, a(-2.0), a(1), a(0), a(0))
	assert.InDelta(t, 2*3*2.0, ElectricityImpact(noRating, d, 3, model.ScenarioB), 1e-9)
}

func TestScenarioBRecordsElectricity(t *testing.T) {
	store := &memStore{}
	e := New(standardFleet(), series{model.ProfileSummer: {interval(0, 16, 1500)}}, store, zerolog.Nop())

	res, err := e.Optimize(settings(model.ProfileSummer, model.CriterionCost, model.ScenarioB))
	require.NoError(t, err)

	// At this price the gas motor earns more than it costs; the heat pump is dearest.
	require.Len(t, res.Entries, 4)
	got := []string{}
	for _, r := range res.Entries {
		got = append(got, r.UnitName)
	}
	assert.Equal(t, []string{"GM1", "GB1", "OB1", "HP1"}, got)

	gm1 := res.Entries[0]
	assert.Equal(t, 3.5, gm1.HeatProduced)
	assert.Equal(t, 2.6, gm1.ElectricityProduced)
	assert.InDelta(t, -435, gm1.ProductionCost, 0.01)

	assert.Equal(t, 0.0, res.Entries[1].ElectricityProduced)

	hp1 := res.Entries[3]
	assert.Equal(t, 4.5, hp1.HeatProduced)
	assert.Equal(t, -6.0, hp1.ElectricityProduced)
	assert.InDelta(t, 7020, hp1.ProductionCost, 0.01)
	assert.Empty(t, res.Shortfalls)
}

func TestInvariantsAcrossIntervals(t *testing.T) {
	var intervals []model.HeatDemand
	for i, h := range []float64{0.4, 3, 5.55, 7.2, 10.01, 12.3, 6.66} {
		intervals = append(intervals, interval(i, h, float64(100*(i+1))))
	}
	units := standardFleet()
	maxHeat := map[string]float64{}
	for _, u := range units {
		maxHeat[u.Name] = u.MaxHeat.Value
	}

	for _, sc := range []model.Scenario{model.ScenarioA, model.ScenarioB} {
		for _, cr := range []model.Criterion{model.CriterionCost, model.CriterionCO2} {
			e := New(units, series{model.ProfileWinter: intervals}, &memStore{}, zerolog.Nop())
			res, err := e.Optimize(settings(model.ProfileWinter, cr, sc))
			require.NoError(t, err)

			byStart := map[time.Time][]model.ResultEntry{}
			for _, r := range res.Entries {
				assert.True(t, sc.Allows(r.UnitName), "%s not in scenario %s", r.UnitName, sc)
				assert.LessOrEqual(t, r.HeatProduced, maxHeat[r.UnitName])
				byStart[r.Timestamp] = append(byStart[r.Timestamp], r)
			}

			for _, d := range intervals {
				rows := byStart[d.TimeFrom]
				sum := 0.0
				for _, r := range rows {
					sum += r.HeatProduced
				}
				capacity := 0.0
				for _, name := range sc.Units() {
					capacity += maxHeat[name]
				}
				if capacity >= d.Heat {
					assert.InDelta(t, d.Heat, sum, 0.01, "%s/%s %v", sc, cr, d.TimeFrom)
				}

				// Scores along the allocation order never decrease.
				ranker, _ := RankerFor(cr)
				score := map[string]float64{}
				for _, r := range ranker.Rank(participants(units, sc), d, sc) {
					score[r.Unit.Name] = r.Score
				}
				for i := 1; i < len(rows); i++ {
					assert.LessOrEqual(t, score[rows[i-1].UnitName], score[rows[i].UnitName])
				}
			}
		}
	}
}

func TestOptimizeIsIdempotent(t *testing.T) {
	demand := series{model.ProfileWinter: {interval(0, 5.55, 800), interval(1, 9.1, 1200)}}
	s := settings(model.ProfileWinter, model.CriterionCost, model.ScenarioB)

	first, second := &memStore{}, &memStore{}
	_, err := New(standardFleet(), demand, first, zerolog.Nop()).Optimize(s)
	require.NoError(t, err)
	_, err = New(standardFleet(), demand, second, zerolog.Nop()).Optimize(s)
	require.NoError(t, err)
	assert.Equal(t, first.rows, second.rows)
}

func TestEmissionsCriterion(t *testing.T) {
	e := New(standardFleet(), series{model.ProfileWinter: {interval(0, 9, 100)}}, &memStore{}, zerolog.Nop())
	res, err := e.Optimize(settings(model.ProfileWinter, model.CriterionCO2, model.ScenarioB))
	require.NoError(t, err)

	// HP1 has no emissions rating and goes first.
	require.Len(t, res.Entries, 2)
	assert.Equal(t, "HP1", res.Entries[0].UnitName)
	assert.Equal(t, 6.0, res.Entries[0].HeatProduced)
	assert.Equal(t, -6.0, res.Entries[0].ElectricityProduced)
	assert.Equal(t, 0.0, res.Entries[0].CO2Emissions)
	assert.Equal(t, "GB1", res.Entries[1].UnitName)
	assert.Equal(t, 3.0, res.Entries[1].HeatProduced)
}

func TestZeroCapacityUnitReachedGetsRow(t *testing.T) {
	units := standardFleet()
	units[0] = unit("GB1", a(0), a(0), a(0), a(0), a(0))
	e := New(units, series{model.ProfileWinter: {interval(0, 2, 100)}}, &memStore{}, zerolog.Nop())

	res, err := e.Optimize(settings(model.ProfileWinter, model.CriterionCost, model.ScenarioA))
	require.NoError(t, err)
	require.Len(t, res.Entries, 2)
	assert.Equal(t, "GB1", res.Entries[0].UnitName)
	assert.Equal(t, 0.0, res.Entries[0].HeatProduced)
	assert.Equal(t, "GB2", res.Entries[1].UnitName)
}

func TestShortfallIsReported(t *testing.T) {
	rec := &countingRecorder{}
	e := New(standardFleet(), series{model.ProfileWinter: {interval(0, 20, 100), interval(1, 2, 100)}}, &memStore{}, zerolog.Nop(), WithRecorder(rec))

	res, err := e.Optimize(settings(model.ProfileWinter, model.CriterionCost, model.ScenarioA))
	require.NoError(t, err)
	require.Len(t, res.Shortfalls, 1)
	assert.Equal(t, model.Shortfall{Start: t0, Demand: 20, Unmet: 9}, res.Shortfalls[0])
	assert.InDelta(t, 9, res.Summary.UnmetHeat, 1e-9)
	assert.Len(t, res.Entries, 4)

	assert.Equal(t, 1, rec.runs)
	assert.Equal(t, res.Summary, rec.summary)
}

func TestEmptyDemandDoesNotPersist(t *testing.T) {
	store := &memStore{}
	rec := &countingRecorder{}
	e := New(standardFleet(), series{}, store, zerolog.Nop(), WithRecorder(rec))

	res, err := e.Optimize(settings(model.ProfileSummer, model.CriterionCost, model.ScenarioA))
	require.NoError(t, err)
	assert.Empty(t, res.Entries)
	assert.Empty(t, res.Schedules)
	assert.Zero(t, store.saves)
	assert.Zero(t, rec.runs)
}

func TestSaveErrorPropagates(t *testing.T) {
	boom := errors.New("disk full")
	e := New(standardFleet(), series{model.ProfileWinter: {interval(0, 1, 1)}}, &memStore{err: boom}, zerolog.Nop())
	_, err := e.Optimize(settings(model.ProfileWinter, model.CriterionCost, model.ScenarioA))
	assert.ErrorIs(t, err, boom)
}

func TestInvalidSettings(t *testing.T) {
	e := New(standardFleet(), series{}, &memStore{}, zerolog.Nop())
	_, err := e.Optimize(settings(model.ProfileWinter, "price", model.ScenarioA))
	assert.ErrorIs(t, err, model.ErrInvalidCriterion)
	_, err = e.Optimize(settings("spring", model.CriterionCost, model.ScenarioA))
	assert.ErrorIs(t, err, model.ErrInvalidProfile)
}

func TestRankIsStable(t *testing.T) {
	units := []model.ProductionUnit{
		unit("U1", a(1), model.NotApplicable, a(5), a(10), a(0)),
		unit("U2", a(1), model.NotApplicable, a(5), a(10), a(0)),
		unit("U3", a(1), model.NotApplicable, a(1), a(10), a(0)),
	}
	got := CostRanker{}.Rank(units, interval(0, 1, 0), model.ScenarioA)
	assert.Equal(t, []string{"U3", "U1", "U2"}, []string{got[0].Unit.Name, got[1].Unit.Name, got[2].Unit.Name})

	got = EmissionsRanker{}.Rank(units, interval(0, 1, 0), model.ScenarioA)
	assert.Equal(t, []string{"U1", "U2", "U3"}, []string{got[0].Unit.Name, got[1].Unit.Name, got[2].Unit.Name})

	_, err := RankerFor("speed")
	assert.ErrorIs(t, err, model.ErrInvalidCriterion)
}

func TestOptimizeNormalizesSettingAliases(t *testing.T) {
	demand := series{model.ProfileWinter: {interval(0, 5, 1000)}}

	canonical := &memStore{}
	_, err := New(standardFleet(), demand, canonical, zerolog.Nop()).
		Optimize(settings(model.ProfileWinter, model.CriterionCO2, model.ScenarioA))
	require.NoError(t, err)

	for _, s := range []model.RunSettings{
		{Profile: "Winter", Criterion: "2", Scenario: "a"},
		{Profile: " WINTER ", Criterion: "co2emissions", Scenario: "scenario 1"},
	} {
		store := &memStore{}
		res, err := New(standardFleet(), demand, store, zerolog.Nop()).Optimize(s)
		require.NoError(t, err, "%+v", s)
		assert.Equal(t, settings(model.ProfileWinter, model.CriterionCO2, model.ScenarioA), res.Settings)
		assert.Empty(t, res.Shortfalls, "%+v", s)
		assert.Equal(t, canonical.rows, store.rows, "%+v", s)
	}
}

func TestSavedDistinguishesEmptyDemandFromEmptyFleet(t *testing.T) {
	demand := series{model.ProfileWinter: {interval(0, 5, 1000)}}
	s := settings(model.ProfileWinter, model.CriterionCost, model.ScenarioA)

	store := &memStore{}
	res, err := New(fleet{}, demand, store, zerolog.Nop()).Optimize(s)
	require.NoError(t, err)
	assert.True(t, res.Saved)
	assert.Equal(t, 1, store.saves)
	assert.Empty(t, res.Entries)
	require.Len(t, res.Shortfalls, 1)
	assert.Equal(t, 5.0, res.Shortfalls[0].Unmet)

	store = &memStore{}
	res, err = New(standardFleet(), series{}, store, zerolog.Nop()).Optimize(s)
	require.NoError(t, err)
	assert.False(t, res.Saved)
	assert.Zero(t, store.saves)
}
