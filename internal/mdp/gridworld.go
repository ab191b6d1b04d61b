package mdp

import (
	"errors"
	"fmt"
)

// ErrStateNotFound is returned when a label is absent from the topology.
var ErrStateNotFound = errors.New("state not found")

// Category tags what kind of cell a label occupies.
type Category int

const (
	Normal Category = iota
	Hazard
	Obstacle
	Goal
)

type position struct {
	row int
	col int
}

type cell struct {
	label string
	row   int
	col   int
	cat   Category
}

// GridWorld is the immutable topology: a rectangular grid of labeled
// cells plus the reward function over them. Obstacle cells keep their
// coordinate slot but are excluded from the dense state enumeration, so
// every table indexed by state (values, policies, matrices) covers
// exactly the non-obstacle cells in row-major order.
type GridWorld struct {
	rows, cols int
	labels     [][]string
	cats       [][]Category
	positions  map[string]position // every label, obstacles included
	index      map[string]int      // non-obstacle label -> dense state index
	states     []cell              // dense state index -> cell
	rewards    []float64           // dense state index -> reward
	neighbors  [][numDirections]int
	goal       int // dense state index of the goal
}

// NewGridWorld validates a layout and builds the state arena. Besides
// shape checks it enforces the reward ordering the solvers assume: the
// goal attracts (reward above hazards) and hazards repel (reward below
// normal cells).
func NewGridWorld(l Layout) (*GridWorld, error) {
	rows := len(l.Cells)
	if rows == 0 {
		return nil, errors.New("gridworld: layout has no rows")
	}
	cols := len(l.Cells[0])
	if cols == 0 {
		return nil, errors.New("gridworld: layout has no columns")
	}
	for r, rowCells := range l.Cells {
		if len(rowCells) != cols {
			return nil, fmt.Errorf("gridworld: row %d has %d cells, want %d", r, len(rowCells), cols)
		}
	}
	if l.Goal == "" {
		return nil, errors.New("gridworld: no goal label")
	}
	if !(l.GoalReward > l.HazardReward) {
		return nil, fmt.Errorf("gridworld: goal reward %v must exceed hazard reward %v", l.GoalReward, l.HazardReward)
	}
	if !(l.StepReward > l.HazardReward) {
		return nil, fmt.Errorf("gridworld: hazard reward %v must be below the step reward %v", l.HazardReward, l.StepReward)
	}

	hazards := make(map[string]bool, len(l.Hazards))
	for _, label := range l.Hazards {
		hazards[label] = true
	}
	obstacles := make(map[string]bool, len(l.Obstacles))
	for _, label := range l.Obstacles {
		obstacles[label] = true
	}
	if obstacles[l.Goal] {
		return nil, fmt.Errorf("gridworld: goal %q is listed as an obstacle", l.Goal)
	}
	if hazards[l.Goal] {
		return nil, fmt.Errorf("gridworld: goal %q is listed as a hazard", l.Goal)
	}

	g := &GridWorld{
		rows:      rows,
		cols:      cols,
		labels:    make([][]string, rows),
		cats:      make([][]Category, rows),
		positions: make(map[string]position, rows*cols),
		index:     make(map[string]int, rows*cols),
		goal:      -1,
	}
	for r := 0; r < rows; r++ {
		g.labels[r] = make([]string, cols)
		g.cats[r] = make([]Category, cols)
		copy(g.labels[r], l.Cells[r])
		for c, label := range l.Cells[r] {
			if label == "" {
				return nil, fmt.Errorf("gridworld: empty label at (%d,%d)", r, c)
			}
			if _, dup := g.positions[label]; dup {
				return nil, fmt.Errorf("gridworld: duplicate label %q", label)
			}
			g.positions[label] = position{row: r, col: c}

			cat := Normal
			reward := l.StepReward
			switch {
			case label == l.Goal:
				cat = Goal
				reward = l.GoalReward
			case obstacles[label]:
				cat = Obstacle
			case hazards[label]:
				cat = Hazard
				reward = l.HazardReward
			}
			g.cats[r][c] = cat
			if cat == Obstacle {
				continue
			}
			idx := len(g.states)
			g.index[label] = idx
			g.states = append(g.states, cell{label: label, row: r, col: c, cat: cat})
			g.rewards = append(g.rewards, reward)
			if cat == Goal {
				g.goal = idx
			}
		}
	}
	if g.goal < 0 {
		return nil, fmt.Errorf("gridworld: goal %q does not appear in the grid: %w", l.Goal, ErrStateNotFound)
	}
	for _, label := range l.Hazards {
		if _, ok := g.positions[label]; !ok {
			return nil, fmt.Errorf("gridworld: hazard %q does not appear in the grid: %w", label, ErrStateNotFound)
		}
	}
	for _, label := range l.Obstacles {
		if _, ok := g.positions[label]; !ok {
			return nil, fmt.Errorf("gridworld: obstacle %q does not appear in the grid: %w", label, ErrStateNotFound)
		}
	}

	// Destination table, computed once and shared by the solvers and the
	// matrix builder: one step in each direction from every state, with
	// out-of-bounds and obstacle destinations folded back to the state
	// itself (the agent does not move).
	g.neighbors = make([][numDirections]int, len(g.states))
	for idx, st := range g.states {
		for _, d := range Directions {
			r2, c2 := g.Step(st.row, st.col, d)
			dst := idx
			if label, ok := g.StateAt(r2, c2); ok {
				dst = g.index[label]
			}
			g.neighbors[idx][d] = dst
		}
	}
	return g, nil
}

// Rows returns the number of grid rows, obstacles included.
func (g *GridWorld) Rows() int { return g.rows }

// Cols returns the number of grid columns, obstacles included.
func (g *GridWorld) Cols() int { return g.cols }

// NumStates returns the number of non-obstacle states.
func (g *GridWorld) NumStates() int { return len(g.states) }

// Labels returns the non-obstacle state labels in dense enumeration
// order (row-major).
func (g *GridWorld) Labels() []string {
	out := make([]string, len(g.states))
	for i, st := range g.states {
		out[i] = st.label
	}
	return out
}

// GoalLabel returns the label of the single goal state.
func (g *GridWorld) GoalLabel() string { return g.states[g.goal].label }

// PositionOf returns the (row, col) coordinate of a label anywhere in
// the topology, obstacles included. Unknown labels yield
// ErrStateNotFound.
func (g *GridWorld) PositionOf(label string) (row, col int, err error) {
	pos, ok := g.positions[label]
	if !ok {
		return 0, 0, fmt.Errorf("%q: %w", label, ErrStateNotFound)
	}
	return pos.row, pos.col, nil
}

// StateAt returns the label at (row, col), or false when the coordinate
// is out of bounds or occupied by an obstacle.
func (g *GridWorld) StateAt(row, col int) (string, bool) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return "", false
	}
	if g.cats[row][col] == Obstacle {
		return "", false
	}
	return g.labels[row][col], true
}

// Step is pure coordinate arithmetic: one cell in the given direction,
// with no bounds or obstacle checking. Unknown directions leave the
// coordinate unchanged.
func (g *GridWorld) Step(row, col int, dir Action) (int, int) {
	dr, dc := dir.delta()
	return row + dr, col + dc
}

// Reward returns the reward of a labeled state. Unknown labels and
// obstacles yield 0.
func (g *GridWorld) Reward(label string) float64 {
	if idx, ok := g.index[label]; ok {
		return g.rewards[idx]
	}
	return 0
}

// Index returns the dense state index of a non-obstacle label.
func (g *GridWorld) Index(label string) (int, bool) {
	idx, ok := g.index[label]
	return idx, ok
}

// Label returns the label of the dense state index i.
func (g *GridWorld) Label(i int) string { return g.states[i].label }

// CategoryAt returns the category of the cell at (row, col).
// Out-of-bounds coordinates read as obstacles.
func (g *GridWorld) CategoryAt(row, col int) Category {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return Obstacle
	}
	return g.cats[row][col]
}

// CategoryOf returns the category of a labeled cell.
func (g *GridWorld) CategoryOf(label string) (Category, bool) {
	pos, ok := g.positions[label]
	if !ok {
		return Normal, false
	}
	return g.cats[pos.row][pos.col], true
}
