package mdp

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Layout describes a grid topology before construction: a rectangular
// grid of uniquely labeled cells, the goal label, the hazard and
// obstacle label sets, and the three reward levels.
type Layout struct {
	Cells        [][]string `yaml:"cells"`
	Goal         string     `yaml:"goal"`
	Hazards      []string   `yaml:"hazards"`
	Obstacles    []string   `yaml:"obstacles"`
	GoalReward   float64    `yaml:"goalReward"`
	HazardReward float64    `yaml:"hazardReward"`
	StepReward   float64    `yaml:"stepReward"`
}

// DefaultLayout returns the built-in 6x8 robot navigation map: one goal
// worth +10, four hazard cells at -0.5, ten obstacles, and a -0.1
// living cost everywhere else.
func DefaultLayout() Layout {
	return Layout{
		Cells: [][]string{
			{"S0", "S1", "P1", "O1", "S3", "O2", "S4", "S5"},
			{"O3", "S6", "S7", "S8", "S9", "S10", "S11", "O4"},
			{"S12", "P2", "S14", "O5", "S15", "P3", "S17", "S18"},
			{"S19", "S20", "S21", "S22", "M", "S24", "S25", "O6"},
			{"S26", "O7", "O8", "S27", "S28", "S29", "P4", "S31"},
			{"S32", "O9", "S33", "S34", "O10", "S35", "S36", "S37"},
		},
		Goal:         "M",
		Hazards:      []string{"P1", "P2", "P3", "P4"},
		Obstacles:    []string{"O1", "O2", "O3", "O4", "O5", "O6", "O7", "O8", "O9", "O10"},
		GoalReward:   10.0,
		HazardReward: -0.5,
		StepReward:   -0.1,
	}
}

// LoadLayout decodes a YAML layout. Unknown fields are rejected so
// typos in config files surface as errors instead of silent defaults.
func LoadLayout(r io.Reader) (Layout, error) {
	var l Layout
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&l); err != nil {
		return Layout{}, fmt.Errorf("decode layout: %w", err)
	}
	return l, nil
}
