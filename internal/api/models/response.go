package models

import (
	"time"

	"heat-optimizer/internal/analysis"
	"heat-optimizer/internal/model"
)

// OptimizeResponse represents the result of an optimisation run
type OptimizeResponse struct {
	ID         string              `json:"id"`
	Status     string              `json:"status"`
	Settings   model.RunSettings   `json:"settings"`
	Summary    SummaryResponse     `json:"summary"`
	Schedules  []ScheduleResponse  `json:"schedules"`
	Shortfalls []ShortfallResponse `json:"shortfalls"`
	Entries    []EntryResponse     `json:"entries,omitempty"`
}

// SummaryResponse contains run totals
type SummaryResponse struct {
	Intervals        int                  `json:"intervals"`
	TotalHeat        float64              `json:"total_heat_mwh"`
	TotalElectricity float64              `json:"total_electricity_mwh"`
	TotalCost        float64              `json:"total_cost_dkk"`
	TotalFuel        float64              `json:"total_fuel_mwh"`
	TotalCO2         float64              `json:"total_co2_kg"`
	UnmetHeat        float64              `json:"unmet_heat_mwh"`
	Units            []UnitTotalsResponse `json:"units"`
}

// UnitTotalsResponse contains per-unit totals
type UnitTotalsResponse struct {
	UnitName    string  `json:"unit_name"`
	Intervals   int     `json:"intervals"`
	Heat        float64 `json:"heat_mwh"`
	Electricity float64 `json:"electricity_mwh"`
	Cost        float64 `json:"cost_dkk"`
	Fuel        float64 `json:"fuel_mwh"`
	CO2         float64 `json:"co2_kg"`
}

// ScheduleResponse is one unit's rows in allocation order
type ScheduleResponse struct {
	UnitName string          `json:"unit_name"`
	Entries  []EntryResponse `json:"entries"`
}

// EntryResponse represents a single result row
type EntryResponse struct {
	UnitName            string    `json:"unit_name"`
	Timestamp           time.Time `json:"timestamp"`
	HeatProduced        float64   `json:"heat_produced"`
	ElectricityProduced float64   `json:"electricity_produced"`
	ProductionCost      float64   `json:"production_cost"`
	FuelConsumption     float64   `json:"fuel_consumption"`
	CO2Emissions        float64   `json:"co2_emissions"`
}

type ShortfallResponse struct {
	Start  time.Time `json:"start"`
	Demand float64   `json:"demand_mwh"`
	Unmet  float64   `json:"unmet_mwh"`
}

// ResultsResponse is the stored result set
type ResultsResponse struct {
	Count   int             `json:"count"`
	Entries []EntryResponse `json:"entries"`
}

type UnitsResponse struct {
	Units []model.ProductionUnit `json:"units"`
}

// ScenarioInfo describes a fixed fleet subset
type ScenarioInfo struct {
	ID                string   `json:"id"`
	Units             []string `json:"units"`
	TradesElectricity bool     `json:"trades_electricity"`
}

type ScenariosResponse struct {
	Scenarios []ScenarioInfo `json:"scenarios"`
}

// DemandResponse is a slice of the demand series with its statistics
type DemandResponse struct {
	Profile   string              `json:"profile,omitempty"`
	Count     int                 `json:"count"`
	Stats     DemandStatsResponse `json:"stats"`
	Intervals []model.HeatDemand  `json:"intervals"`
}

type DemandStatsResponse struct {
	TotalHeat float64 `json:"total_heat_mwh"`
	PeakHeat  float64 `json:"peak_heat_mwh"`
	MinPrice  float64 `json:"min_price"`
	MaxPrice  float64 `json:"max_price"`
	MeanPrice float64 `json:"mean_price"`
	P05Price  float64 `json:"p05_price"`
	P95Price  float64 `json:"p95_price"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func NewError(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

func Entries(rows []model.ResultEntry) []EntryResponse {
	out := make([]EntryResponse, len(rows))
	for i, r := range rows {
		out[i] = EntryResponse{
			UnitName:            r.UnitName,
			Timestamp:           r.Timestamp,
			HeatProduced:        r.HeatProduced,
			ElectricityProduced: r.ElectricityProduced,
			ProductionCost:      r.ProductionCost,
			FuelConsumption:     r.FuelConsumption,
			CO2Emissions:        r.CO2Emissions,
		}
	}
	return out
}

func Summary(s analysis.Summary) SummaryResponse {
	units := make([]UnitTotalsResponse, len(s.Units))
	for i, u := range s.Units {
		units[i] = UnitTotalsResponse{
			UnitName:    u.UnitName,
			Intervals:   u.Intervals,
			Heat:        u.Heat,
			Electricity: u.Electricity,
			Cost:        u.Cost,
			Fuel:        u.Fuel,
			CO2:         u.CO2,
		}
	}
	return SummaryResponse{
		Intervals:        s.Intervals,
		TotalHeat:        s.TotalHeat,
		TotalElectricity: s.TotalElectricity,
		TotalCost:        s.TotalCost,
		TotalFuel:        s.TotalFuel,
		TotalCO2:         s.TotalCO2,
		UnmetHeat:        s.UnmetHeat,
		Units:            units,
	}
}

func DemandStats(d analysis.DemandStats) DemandStatsResponse {
	return DemandStatsResponse{
		TotalHeat: d.TotalHeat,
		PeakHeat:  d.PeakHeat,
		MinPrice:  d.MinPrice,
		MaxPrice:  d.MaxPrice,
		MeanPrice: d.MeanPrice,
		P05Price:  d.P05Price,
		P95Price:  d.P95Price,
	}
}
