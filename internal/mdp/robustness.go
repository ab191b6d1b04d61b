package mdp

import "fmt"

// NoiseTriple parameterizes a transition model by its left-deviation,
// intended-success, and right-deviation probabilities.
type NoiseTriple struct {
	Left   float64
	Center float64
	Right  float64
}

// Label names the triple by its success probability, e.g. "80%".
func (t NoiseTriple) Label() string {
	return fmt.Sprintf("%d%%", int(t.Center*100))
}

// Model builds the triple's transition model.
func (t NoiseTriple) Model() (*TransitionModel, error) {
	return NewNoiseModel(t.Left, t.Center, t.Right)
}

// DefaultNoiseCatalogue is the fixed set of alternative noise models a
// policy is stress-tested against, ordered as reported.
var DefaultNoiseCatalogue = []NoiseTriple{
	{0.10, 0.80, 0.10},
	{0.05, 0.90, 0.05},
	{0.15, 0.70, 0.15},
	{0.25, 0.50, 0.25},
}

// RobustnessReport counts, for one noise model, the states whose
// prescribed action differs from the baseline policy.
type RobustnessReport struct {
	Label   string
	Triple  NoiseTriple
	Changes int
}

// RobustnessEvaluator re-solves the world under alternative noise
// models and measures how far each adapted policy drifts from a
// baseline. A nil Models slice means the default catalogue.
type RobustnessEvaluator struct {
	World   *GridWorld
	Gamma   float64
	Epsilon float64
	Models  []NoiseTriple
}

// Evaluate runs value iteration once per noise model, with the same
// discount as the baseline, and reports one entry per model in
// catalogue order. The baseline is never mutated.
func (e *RobustnessEvaluator) Evaluate(base *Result) ([]RobustnessReport, error) {
	models := e.Models
	if models == nil {
		models = DefaultNoiseCatalogue
	}
	reports := make([]RobustnessReport, 0, len(models))
	for _, triple := range models {
		model, err := triple.Model()
		if err != nil {
			return nil, fmt.Errorf("noise model %s: %w", triple.Label(), err)
		}
		solver := &Solver{World: e.World, Model: model, Gamma: e.Gamma, Epsilon: e.Epsilon}
		adapted, err := solver.ValueIteration()
		if err != nil {
			return nil, fmt.Errorf("noise model %s: %w", triple.Label(), err)
		}
		reports = append(reports, RobustnessReport{
			Label:   triple.Label(),
			Triple:  triple,
			Changes: PolicyChanges(base, adapted),
		})
	}
	return reports, nil
}

// PolicyChanges counts the baseline states whose prescribed action
// differs in the adapted policy. A baseline state with no adapted
// action counts as changed.
func PolicyChanges(base, adapted *Result) int {
	changes := 0
	for st, act := range base.Policy {
		if act == NoAction {
			continue
		}
		if st >= len(adapted.Policy) || adapted.Policy[st] != act {
			changes++
		}
	}
	return changes
}
