package model

import (
	"errors"
	"fmt"
	"strings"
)

// Profile selects one of the two demand series.
// Keep these values stable; they are used in config, CLI flags and the API.
type Profile string

const (
	ProfileWinter Profile = "winter"
	ProfileSummer Profile = "summer"
)

// Criterion is the ranking objective for allocation.
type Criterion string

const (
	CriterionCost Criterion = "cost"
	CriterionCO2  Criterion = "co2"
)

// Scenario is a fixed allow-list of unit names.
type Scenario string

const (
	ScenarioA Scenario = "A"
	ScenarioB Scenario = "B"
)

var (
	ErrInvalidProfile   = errors.New("invalid profile")
	ErrInvalidCriterion = errors.New("invalid criterion")
	ErrInvalidScenario  = errors.New("invalid scenario")
)

var scenarioUnits = map[Scenario][]string{
	ScenarioA: {"GB1", "GB2", "OB1"},
	ScenarioB: {"GB1", "OB1", "HP1", "GM1"},
}

// Units returns the allow-list for the scenario.
func (s Scenario) Units() []string {
	return append([]string(nil), scenarioUnits[s]...)
}

// Allows reports whether the named unit participates in the scenario.
func (s Scenario) Allows(name string) bool {
	for _, n := range scenarioUnits[s] {
		if n == name {
			return true
		}
	}
	return false
}

// TradesElectricity reports whether electricity sale/purchase affects cost.
func (s Scenario) TradesElectricity() bool {
	return s == ScenarioB
}

// RunSettings is the caller's selection for one optimisation run.
type RunSettings struct {
	Profile   Profile   `json:"profile"`
	Criterion Criterion `json:"criterion"`
	Scenario  Scenario  `json:"scenario"`
}

// DefaultSettings is winter / cost / scenario A.
func DefaultSettings() RunSettings {
	return RunSettings{Profile: ProfileWinter, Criterion: CriterionCost, Scenario: ScenarioA}
}

func (s RunSettings) Validate() error {
	_, err := s.Normalize()
	return err
}

// Normalize returns the settings with every field mapped to its canonical
// constant, so "a", "Winter" or "2" select the same run as "A", "winter"
// and "co2".
func (s RunSettings) Normalize() (RunSettings, error) {
	var (
		out RunSettings
		err error
	)
	if out.Profile, err = ParseProfile(string(s.Profile)); err != nil {
		return RunSettings{}, err
	}
	if out.Criterion, err = ParseCriterion(string(s.Criterion)); err != nil {
		return RunSettings{}, err
	}
	if out.Scenario, err = ParseScenario(string(s.Scenario)); err != nil {
		return RunSettings{}, err
	}
	return out, nil
}

func (s RunSettings) String() string {
	return fmt.Sprintf("profile=%s criterion=%s scenario=%s", s.Profile, s.Criterion, s.Scenario)
}

func ParseProfile(v string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "winter":
		return ProfileWinter, nil
	case "summer":
		return ProfileSummer, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidProfile, v)
}

func ParseCriterion(v string) (Criterion, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "cost", "1":
		return CriterionCost, nil
	case "co2", "co2emissions", "emissions", "2":
		return CriterionCO2, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCriterion, v)
}

func ParseScenario(v string) (Scenario, error) {
	s := strings.ToLower(strings.TrimSpace(v))
	s = strings.TrimPrefix(s, "scenario")
	switch strings.TrimSpace(s) {
	case "a", "1":
		return ScenarioA, nil
	case "b", "2":
		return ScenarioB, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidScenario, v)
}
