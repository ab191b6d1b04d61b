package mdp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueIterationScenario(t *testing.T) {
	world := defaultWorld(t)
	solver := &Solver{World: world, Gamma: 0.9, Epsilon: 0.001}

	res, err := solver.ValueIteration()
	require.NoError(t, err)
	require.Greater(t, res.Sweeps, 1)

	// The goal's value is pinned to its reward, never backed up.
	assert.Equal(t, 10.0, res.Value("M"))

	// Every cell adjacent to the goal must walk into it.
	adjacent := map[string]Action{
		"S15": South, // (2,4), goal below
		"S28": North, // (4,4), goal above
		"S22": East,  // (3,3), goal to the right
		"S24": West,  // (3,5), goal to the left
	}
	for label, want := range adjacent {
		act, ok := res.ActionFor(label)
		require.True(t, ok, "state %s", label)
		assert.Equal(t, want, act, "state %s", label)
	}

	// One value per state, one action per non-goal state.
	assert.Len(t, res.ValueMap(), world.NumStates())
	assert.Len(t, res.PolicyMap(), world.NumStates()-1)
	_, ok := res.ActionFor("M")
	assert.False(t, ok, "the goal has no action")
}

func TestValueIterationConvergesAcrossGammas(t *testing.T) {
	world := defaultWorld(t)
	for _, gamma := range []float64{0.5, 0.86, 0.94, 0.99} {
		solver := &Solver{World: world, Gamma: gamma, Epsilon: 0.001}
		res, err := solver.ValueIteration()
		require.NoError(t, err, "gamma %v", gamma)
		assert.Less(t, res.Sweeps, DefaultMaxSweeps, "gamma %v", gamma)
		assert.Equal(t, 10.0, res.Value("M"), "gamma %v", gamma)
	}
}

func TestValueIterationSweepBudget(t *testing.T) {
	world := defaultWorld(t)
	solver := &Solver{World: world, Gamma: 0.99, Epsilon: 0.001, MaxSweeps: 1}
	_, err := solver.ValueIteration()
	require.ErrorIs(t, err, ErrDidNotConverge)

	solver = &Solver{World: world, Gamma: 0.99, Epsilon: 0.001, MaxSweeps: 2}
	_, err = solver.QValueIteration()
	require.ErrorIs(t, err, ErrDidNotConverge)
}

func TestSolverValidatesInputs(t *testing.T) {
	world := defaultWorld(t)
	cases := []struct {
		name   string
		solver Solver
	}{
		{"nil world", Solver{Gamma: 0.9, Epsilon: 0.001}},
		{"gamma zero", Solver{World: world, Gamma: 0, Epsilon: 0.001}},
		{"gamma one", Solver{World: world, Gamma: 1, Epsilon: 0.001}},
		{"epsilon zero", Solver{World: world, Gamma: 0.9, Epsilon: 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.solver.ValueIteration()
			require.Error(t, err)
			_, err = tc.solver.QValueIteration()
			require.Error(t, err)
		})
	}
}

func TestQValueIterationMatchesValueIteration(t *testing.T) {
	world := defaultWorld(t)
	solver := &Solver{World: world, Gamma: 0.9, Epsilon: 1e-6}

	vi, err := solver.ValueIteration()
	require.NoError(t, err)
	qvi, err := solver.QValueIteration()
	require.NoError(t, err)

	for _, label := range world.Labels() {
		assert.InDelta(t, vi.Value(label), qvi.Value(label), 1e-2, "state %s", label)
	}
}

func TestQValueIterationGoalPinned(t *testing.T) {
	world := defaultWorld(t)
	solver := &Solver{World: world, Gamma: 0.9, Epsilon: 0.001}

	res, err := solver.QValueIteration()
	require.NoError(t, err)
	for _, a := range Directions {
		assert.Equal(t, 10.0, res.QValue("M", a), "action %s", a)
	}
	assert.Equal(t, 10.0, res.Value("M"))
	_, ok := res.ActionFor("M")
	assert.False(t, ok)

	// Fallback lookups outside the table.
	assert.Equal(t, 0.0, res.QValue("nope", North))
	assert.Equal(t, 0.0, res.QValue("S0", Action(7)))
}

func TestQValueIterationDerivesGoalSeekingPolicy(t *testing.T) {
	world := defaultWorld(t)
	solver := &Solver{World: world, Gamma: 0.9, Epsilon: 0.001}

	res, err := solver.QValueIteration()
	require.NoError(t, err)
	act, ok := res.ActionFor("S22")
	require.True(t, ok)
	assert.Equal(t, East, act)
	act, ok = res.ActionFor("S24")
	require.True(t, ok)
	assert.Equal(t, West, act)
}

func TestValueIterationHonorsExternalModel(t *testing.T) {
	world := defaultWorld(t)
	model, err := NewNoiseModel(0, 1, 0)
	require.NoError(t, err)
	solver := &Solver{World: world, Model: model, Gamma: 0.9, Epsilon: 1e-6}

	res, err := solver.ValueIteration()
	require.NoError(t, err)

	// With deterministic moves the cell next to the goal is worth
	// exactly reward(s) + gamma * reward(goal).
	assert.InDelta(t, -0.1+0.9*10.0, res.Value("S22"), 1e-4)
}
