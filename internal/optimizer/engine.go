package optimizer

import (
	"fmt"
	"math"
	"time"

	"heat-optimizer/internal/analysis"
	"heat-optimizer/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// UnitSource supplies the fleet in catalog order.
type UnitSource interface {
	List() []model.ProductionUnit
}

// DemandSource supplies the intervals of a demand profile.
type DemandSource interface {
	Profile(p model.Profile) []model.HeatDemand
}

// ResultSaver replaces the stored result set.
type ResultSaver interface {
	Save(rows []model.ResultEntry) error
}

// Result is the in-memory outcome of one run.
type Result struct {
	ID         string
	Settings   model.RunSettings
	Entries    []model.ResultEntry
	Schedules  []model.ProductionSchedule
	Shortfalls []model.Shortfall
	Summary    analysis.Summary

	// Saved is false only when the profile had no demand and the result
	// store was left untouched.
	Saved bool
}

type Engine struct {
	units    UnitSource
	demand   DemandSource
	store    ResultSaver
	log      zerolog.Logger
	recorder Recorder
}

type Option func(*Engine)

func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		if r != nil {
			e.recorder = r
		}
	}
}

func New(units UnitSource, demand DemandSource, store ResultSaver, log zerolog.Logger, opts ...Option) *Engine {
	e := &Engine{
		units:    units,
		demand:   demand,
		store:    store,
		log:      log,
		recorder: NopRecorder{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Optimize allocates every interval of the selected profile across the
// scenario's units and overwrites the result store with the rows.
// Optimize is a blocking call and is not safe for concurrent use.
func (e *Engine) Optimize(s model.RunSettings) (*Result, error) {
	s, err := s.Normalize()
	if err != nil {
		return nil, err
	}
	ranker, err := RankerFor(s.Criterion)
	if err != nil {
		return nil, err
	}

	res := &Result{
		ID:         uuid.NewString(),
		Settings:   s,
		Entries:    []model.ResultEntry{},
		Schedules:  []model.ProductionSchedule{},
		Shortfalls: []model.Shortfall{},
	}

	intervals := e.demand.Profile(s.Profile)
	if len(intervals) == 0 {
		e.log.Info().Str("profile", string(s.Profile)).Msg("no demand data, nothing to optimize")
		res.Summary = analysis.Summarize(nil, nil)
		return res, nil
	}

	started := time.Now()
	fleet := participants(e.units.List(), s.Scenario)
	e.log.Debug().Str("run", res.ID).Stringer("settings", s).Int("units", len(fleet)).Int("intervals", len(intervals)).Msg("optimizing")

	for _, d := range intervals {
		remaining := d.Heat
		for _, r := range ranker.Rank(fleet, d, s.Scenario) {
			if remaining <= 0 {
				break
			}
			q := math.Min(remaining, r.Unit.MaxHeat.Or(0))
			res.Entries = append(res.Entries, entry(r.Unit, d, q, s.Scenario))
			remaining -= q
		}
		if unmet := round2(remaining); unmet > 0 {
			e.log.Warn().Time("interval", d.TimeFrom).Float64("demand", d.Heat).Float64("unmet", unmet).Msg("fleet capacity below demand")
			res.Shortfalls = append(res.Shortfalls, model.Shortfall{Start: d.TimeFrom, Demand: d.Heat, Unmet: unmet})
		}
	}

	if err := e.store.Save(res.Entries); err != nil {
		e.log.Error().Err(err).Str("run", res.ID).Msg("save results")
		return nil, fmt.Errorf("save results: %w", err)
	}
	res.Saved = true

	res.Schedules = model.GroupByUnit(res.Entries)
	res.Summary = analysis.Summarize(res.Entries, res.Shortfalls)
	elapsed := time.Since(started)
	e.recorder.ObserveRun(s, elapsed, res.Summary)

	e.log.Info().
		Str("run", res.ID).
		Stringer("settings", s).
		Int("rows", len(res.Entries)).
		Int("shortfalls", len(res.Shortfalls)).
		Float64("total_cost", res.Summary.TotalCost).
		Dur("elapsed", elapsed).
		Msg("optimization complete")
	return res, nil
}

// participants keeps the scenario's units in catalog order.
func participants(units []model.ProductionUnit, s model.Scenario) []model.ProductionUnit {
	out := make([]model.ProductionUnit, 0, len(units))
	for _, u := range units {
		if s.Allows(u.Name) {
			out = append(out, u)
		}
	}
	return out
}

func entry(u model.ProductionUnit, d model.HeatDemand, q float64, s model.Scenario) model.ResultEntry {
	elec := 0.0
	if s.TradesElectricity() {
		elec = u.MaxElectricity.Or(0)
	}
	return model.ResultEntry{
		UnitName:            u.Name,
		Timestamp:           d.TimeFrom,
		HeatProduced:        round2(q),
		ElectricityProduced: round2(elec),
		ProductionCost:      round2(NetCost(u, d, q, s)),
		FuelConsumption:     round2(u.FuelConsumption.Or(0) * q),
		CO2Emissions:        round2(u.CO2Emissions.Or(0) * q),
	}
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).RoundBank(2).InexactFloat64()
}
