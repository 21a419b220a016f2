package model

import (
	"errors"
	"time"
)

// HeatDemand is one interval row of the demand source.
type HeatDemand struct {
	TimeFrom time.Time `json:"time_from"`
	TimeTo   time.Time `json:"time_to"`

	// Heat in MWh for the interval.
	Heat float64 `json:"heat"`
	// ElectricityPrice in DKK per MWh electricity.
	ElectricityPrice float64 `json:"electricity_price"`
}

func (d HeatDemand) Validate() error {
	if !d.TimeFrom.Before(d.TimeTo) {
		return errors.New("interval start must be before end")
	}
	if d.Heat < 0 {
		return errors.New("heat demand must be >= 0")
	}
	if d.ElectricityPrice < 0 {
		return errors.New("electricity price must be >= 0")
	}
	return nil
}

func (d HeatDemand) Duration() time.Duration {
	return d.TimeTo.Sub(d.TimeFrom)
}

// Within reports whether both bounds of the interval fall in [start, end].
func (d HeatDemand) Within(start, end time.Time) bool {
	return !d.TimeFrom.Before(start) && !d.TimeTo.After(end)
}
