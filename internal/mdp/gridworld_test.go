package mdp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultWorld(t *testing.T) *GridWorld {
	t.Helper()
	world, err := NewGridWorld(DefaultLayout())
	require.NoError(t, err)
	return world
}

func TestNewGridWorldValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Layout)
	}{
		{"no rows", func(l *Layout) { l.Cells = nil }},
		{"ragged row", func(l *Layout) { l.Cells[2] = l.Cells[2][:5] }},
		{"missing goal", func(l *Layout) { l.Goal = "XX" }},
		{"empty goal", func(l *Layout) { l.Goal = "" }},
		{"duplicate label", func(l *Layout) { l.Cells[0][0] = "S1" }},
		{"goal listed as obstacle", func(l *Layout) { l.Obstacles = append(l.Obstacles, "M") }},
		{"goal listed as hazard", func(l *Layout) { l.Hazards = append(l.Hazards, "M") }},
		{"unknown hazard label", func(l *Layout) { l.Hazards = append(l.Hazards, "P99") }},
		{"unknown obstacle label", func(l *Layout) { l.Obstacles = append(l.Obstacles, "O99") }},
		{"goal reward below hazard", func(l *Layout) { l.GoalReward = -1.0 }},
		{"hazard reward above step", func(l *Layout) { l.HazardReward = 0.5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			layout := DefaultLayout()
			tc.mutate(&layout)
			_, err := NewGridWorld(layout)
			require.Error(t, err)
		})
	}
}

func TestPositionOf(t *testing.T) {
	world := defaultWorld(t)

	row, col, err := world.PositionOf("M")
	require.NoError(t, err)
	assert.Equal(t, 3, row)
	assert.Equal(t, 4, col)

	// Obstacles keep their coordinate slot even though they are not states.
	row, col, err = world.PositionOf("O5")
	require.NoError(t, err)
	assert.Equal(t, 2, row)
	assert.Equal(t, 3, col)

	_, _, err = world.PositionOf("nope")
	require.ErrorIs(t, err, ErrStateNotFound)
}

func TestStateAt(t *testing.T) {
	world := defaultWorld(t)

	label, ok := world.StateAt(0, 0)
	require.True(t, ok)
	assert.Equal(t, "S0", label)

	_, ok = world.StateAt(-1, 0)
	assert.False(t, ok)
	_, ok = world.StateAt(0, 8)
	assert.False(t, ok)

	// (0,3) holds obstacle O1.
	_, ok = world.StateAt(0, 3)
	assert.False(t, ok)
}

func TestStepIsPureArithmetic(t *testing.T) {
	world := defaultWorld(t)

	row, col := world.Step(0, 0, North)
	assert.Equal(t, -1, row, "no bounds checking on Step")
	assert.Equal(t, 0, col)

	row, col = world.Step(2, 3, South)
	assert.Equal(t, 3, row)
	assert.Equal(t, 3, col)

	row, col = world.Step(2, 3, East)
	assert.Equal(t, 2, row)
	assert.Equal(t, 4, col)

	row, col = world.Step(2, 3, West)
	assert.Equal(t, 2, row)
	assert.Equal(t, 2, col)

	// Out-of-range actions are a documented no-op, not an error.
	row, col = world.Step(2, 3, Action(42))
	assert.Equal(t, 2, row)
	assert.Equal(t, 3, col)
}

func TestRewardFallsBackToZero(t *testing.T) {
	world := defaultWorld(t)

	assert.Equal(t, 10.0, world.Reward("M"))
	assert.Equal(t, -0.5, world.Reward("P1"))
	assert.Equal(t, -0.1, world.Reward("S0"))
	assert.Equal(t, 0.0, world.Reward("nope"))
	assert.Equal(t, 0.0, world.Reward("O1"), "obstacles are not states and have no reward")
}

func TestDenseEnumeration(t *testing.T) {
	world := defaultWorld(t)

	// 6x8 cells minus 10 obstacles.
	require.Equal(t, 38, world.NumStates())

	labels := world.Labels()
	require.Len(t, labels, 38)
	for i, label := range labels {
		idx, ok := world.Index(label)
		require.True(t, ok, "label %q", label)
		assert.Equal(t, i, idx)
		assert.Equal(t, label, world.Label(idx))
	}

	// Row-major enumeration starts at the top-left free cell.
	idx, ok := world.Index("S0")
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	_, ok = world.Index("O1")
	assert.False(t, ok)
}

func TestCategories(t *testing.T) {
	world := defaultWorld(t)

	assert.Equal(t, Goal, world.CategoryAt(3, 4))
	assert.Equal(t, Hazard, world.CategoryAt(0, 2))
	assert.Equal(t, Obstacle, world.CategoryAt(0, 3))
	assert.Equal(t, Normal, world.CategoryAt(0, 0))
	assert.Equal(t, Obstacle, world.CategoryAt(-1, 0), "out of bounds reads as obstacle")

	cat, ok := world.CategoryOf("P3")
	require.True(t, ok)
	assert.Equal(t, Hazard, cat)
	_, ok = world.CategoryOf("nope")
	assert.False(t, ok)

	assert.Equal(t, "M", world.GoalLabel())
}

func TestParseAction(t *testing.T) {
	for _, a := range Directions {
		parsed, ok := ParseAction(a.String())
		require.True(t, ok)
		assert.Equal(t, a, parsed)
	}
	_, ok := ParseAction("X")
	assert.False(t, ok)
	assert.Equal(t, "?", Action(42).String())
	assert.Equal(t, "?", NoAction.String())
}
