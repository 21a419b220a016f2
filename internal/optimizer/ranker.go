package optimizer

import (
	"fmt"
	"sort"

	"heat-optimizer/internal/model"
)

// Ranked pairs a unit with its ranking score. Lower scores are dispatched
// first.
type Ranked struct {
	Unit  model.ProductionUnit
	Score float64
}

// Ranker orders the participating units for one interval.
type Ranker interface {
	Name() string
	Rank(units []model.ProductionUnit, d model.HeatDemand, s model.Scenario) []Ranked
}

// CostRanker orders by net cost of serving the whole interval demand.
type CostRanker struct{}

func (CostRanker) Name() string { return string(model.CriterionCost) }

func (CostRanker) Rank(units []model.ProductionUnit, d model.HeatDemand, s model.Scenario) []Ranked {
	return rank(units, func(u model.ProductionUnit) float64 {
		return NetCost(u, d, d.Heat, s)
	})
}

// EmissionsRanker orders by CO2 per MWh of heat; the order does not depend
// on the interval.
type EmissionsRanker struct{}

func (EmissionsRanker) Name() string { return string(model.CriterionCO2) }

func (EmissionsRanker) Rank(units []model.ProductionUnit, _ model.HeatDemand, _ model.Scenario) []Ranked {
	return rank(units, func(u model.ProductionUnit) float64 {
		return u.CO2Emissions.Or(0)
	})
}

func RankerFor(c model.Criterion) (Ranker, error) {
	switch c {
	case model.CriterionCost:
		return CostRanker{}, nil
	case model.CriterionCO2:
		return EmissionsRanker{}, nil
	}
	return nil, fmt.Errorf("%w: %q", model.ErrInvalidCriterion, c)
}

// rank is a stable ascending sort on score; equal scores keep catalog order.
func rank(units []model.ProductionUnit, score func(model.ProductionUnit) float64) []Ranked {
	out := make([]Ranked, len(units))
	for i, u := range units {
		out[i] = Ranked{Unit: u, Score: score(u)}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score < out[j].Score
	})
	return out
}
