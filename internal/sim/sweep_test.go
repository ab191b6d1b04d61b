package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSweepGridOrder(t *testing.T) {
	world := corridorWorld(t, "B", nil)

	cfg := SweepConfig{
		Gammas:       []float64{0.9, 0.95},
		SuccessProbs: []float64{0.8, 1.0},
		Episodes:     20,
		MaxSteps:     30,
		Epsilon:      0.001,
		Seed:         1,
	}
	points, err := RunSweep(world, cfg)
	require.NoError(t, err)
	require.Len(t, points, 4)

	// Gamma-major ordering, success probability cycling fastest.
	assert.Equal(t, 0.9, points[0].Gamma)
	assert.Equal(t, 0.8, points[0].SuccessProb)
	assert.Equal(t, 0.9, points[1].Gamma)
	assert.Equal(t, 1.0, points[1].SuccessProb)
	assert.Equal(t, 0.95, points[2].Gamma)
	assert.Equal(t, 0.95, points[3].Gamma)

	for _, pt := range points {
		assert.Greater(t, pt.AvgReward, 0.0, "every episode on the corridor ends at the goal")
	}
}

func TestRunSweepRejectsBadGamma(t *testing.T) {
	world := corridorWorld(t, "B", nil)

	_, err := RunSweep(world, SweepConfig{
		Gammas:       []float64{1.5},
		SuccessProbs: []float64{0.8},
	})
	assert.Error(t, err)
}
