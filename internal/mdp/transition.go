package mdp

import (
	"fmt"
	"math"
)

const probTolerance = 1e-9

// TransitionModel maps each attempted action to a probability
// distribution over the effective movement direction. Entries never set
// stay at 0, which doubles as the lookup fallback for directions an
// action cannot produce.
type TransitionModel struct {
	probs [numDirections][numDirections]float64
}

// DefaultTransitionModel is the standard noisy actuator: 0.8 for the
// intended direction and 0.1 for each perpendicular deviation.
func DefaultTransitionModel() *TransitionModel {
	m, err := NewNoiseModel(0.1, 0.8, 0.1)
	if err != nil {
		panic(err) // constant triple, cannot fail
	}
	return m
}

// NewNoiseModel builds a model from a (left, center, right) deviation
// triple that must sum to 1. The center probability goes to the
// intended direction; left and right go to the perpendicular pair under
// the fixed convention: West/East for North and South, North/South for
// East and West.
func NewNoiseModel(left, center, right float64) (*TransitionModel, error) {
	if sum := left + center + right; math.Abs(sum-1) > probTolerance {
		return nil, fmt.Errorf("noise triple (%v, %v, %v) sums to %v, want 1", left, center, right, sum)
	}
	m := &TransitionModel{}
	m.probs[North][North] = center
	m.probs[North][West] = left
	m.probs[North][East] = right

	m.probs[South][South] = center
	m.probs[South][West] = left
	m.probs[South][East] = right

	m.probs[East][East] = center
	m.probs[East][North] = left
	m.probs[East][South] = right

	m.probs[West][West] = center
	m.probs[West][North] = left
	m.probs[West][South] = right
	return m, nil
}

// Prob returns P(effective direction d | attempted action a). Unknown
// actions or directions have probability 0.
func (m *TransitionModel) Prob(a, d Action) float64 {
	if a < 0 || int(a) >= numDirections || d < 0 || int(d) >= numDirections {
		return 0
	}
	return m.probs[a][d]
}
