package analysis

import (
	"math"
	"sort"
	"time"

	"heat-optimizer/internal/model"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DemandStats describes a demand series: heat volume and the electricity
// price distribution that drives scenario B ranking.
type DemandStats struct {
	Count int

	Start time.Time
	End   time.Time

	TotalHeat float64
	PeakHeat  float64

	MinPrice  float64
	MaxPrice  float64
	MeanPrice float64
	P05Price  float64
	P95Price  float64
}

func DescribeDemand(intervals []model.HeatDemand) DemandStats {
	d := DemandStats{}
	if len(intervals) == 0 {
		return d
	}
	d.Count = len(intervals)
	d.Start = intervals[0].TimeFrom
	d.End = intervals[len(intervals)-1].TimeTo

	heat := make([]float64, 0, len(intervals))
	prices := make([]float64, 0, len(intervals))
	for _, it := range intervals {
		heat = append(heat, it.Heat)
		prices = append(prices, it.ElectricityPrice)
	}
	d.TotalHeat = floats.Sum(heat)
	d.PeakHeat = floats.Max(heat)

	sort.Float64s(prices)
	d.MinPrice = prices[0]
	d.MaxPrice = prices[len(prices)-1]
	d.MeanPrice = stat.Mean(prices, nil)
	d.P05Price = percentileSorted(prices, 0.05)
	d.P95Price = percentileSorted(prices, 0.95)
	return d
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

func sortTimeline(tl []IntervalTotals) {
	sort.SliceStable(tl, func(i, j int) bool {
		return tl[i].Start.Before(tl[j].Start)
	})
}
