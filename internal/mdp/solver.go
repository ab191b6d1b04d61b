package mdp

import (
	"errors"
	"fmt"
	"math"
)

// ErrDidNotConverge is returned when a solver exhausts its sweep budget
// before the sup-norm delta drops to epsilon.
var ErrDidNotConverge = errors.New("did not converge")

// DefaultMaxSweeps bounds the convergence loop so ill-conditioned
// inputs (gamma near 1, tiny epsilon) fail loudly instead of spinning.
const DefaultMaxSweeps = 10000

// Solver runs value iteration or Q-value iteration over a world and
// transition model. A nil Model means the default 0.8/0.1/0.1 model; a
// zero MaxSweeps means DefaultMaxSweeps. The solver owns no shared
// state: World and Model are read-only for the duration of a call, so
// one world can back many solver runs.
type Solver struct {
	World     *GridWorld
	Model     *TransitionModel
	Gamma     float64
	Epsilon   float64
	MaxSweeps int
}

func (s *Solver) prepare() (*TransitionModel, int, error) {
	if s.World == nil {
		return nil, 0, errors.New("solver: nil world")
	}
	if s.Gamma <= 0 || s.Gamma >= 1 {
		return nil, 0, fmt.Errorf("solver: gamma must be in (0,1), got %v", s.Gamma)
	}
	if s.Epsilon <= 0 {
		return nil, 0, fmt.Errorf("solver: epsilon must be positive, got %v", s.Epsilon)
	}
	model := s.Model
	if model == nil {
		model = DefaultTransitionModel()
	}
	maxSweeps := s.MaxSweeps
	if maxSweeps <= 0 {
		maxSweeps = DefaultMaxSweeps
	}
	return model, maxSweeps, nil
}

// ValueIteration computes the optimal value function and a
// deterministic policy by synchronous Bellman sweeps. Each sweep reads
// the previous sweep's values only (double buffering) and terminates
// once the largest per-state change is at most Epsilon. The goal's
// value is pinned to its reward and gets no action; everywhere else the
// argmax keeps the first action in the fixed direction order on ties.
func (s *Solver) ValueIteration() (*Result, error) {
	model, maxSweeps, err := s.prepare()
	if err != nil {
		return nil, err
	}
	w := s.World
	n := w.NumStates()
	values := make([]float64, n)
	next := make([]float64, n)
	policy := make([]Action, n)

	for sweep := 1; sweep <= maxSweeps; sweep++ {
		delta := 0.0
		for st := 0; st < n; st++ {
			if st == w.goal {
				next[st] = w.rewards[st]
				policy[st] = NoAction
				if d := math.Abs(next[st] - values[st]); d > delta {
					delta = d
				}
				continue
			}
			best := math.Inf(-1)
			bestAct := NoAction
			for _, a := range Directions {
				q := s.backup(model, values, st, a)
				if q > best {
					best = q
					bestAct = a
				}
			}
			next[st] = best
			policy[st] = bestAct
			if d := math.Abs(best - values[st]); d > delta {
				delta = d
			}
		}
		values, next = next, values
		if delta <= s.Epsilon {
			return &Result{world: w, Values: values, Policy: policy, Sweeps: sweep}, nil
		}
	}
	return nil, fmt.Errorf("value iteration: %w after %d sweeps", ErrDidNotConverge, maxSweeps)
}

// backup computes reward(s) + gamma * E[V(dest)] for one state-action
// pair, reading the destination table that already folds invalid moves
// back onto the state itself.
func (s *Solver) backup(model *TransitionModel, values []float64, st int, a Action) float64 {
	w := s.World
	expected := 0.0
	for _, d := range Directions {
		p := model.Prob(a, d)
		if p == 0 {
			continue
		}
		expected += p * values[w.neighbors[st][d]]
	}
	return w.rewards[st] + s.Gamma*expected
}

// QValueIteration computes the same fixed point over Q(s,a) directly.
// The goal's row is pinned to its reward every sweep and excluded from
// the convergence delta. After convergence, V and the policy are
// derived with the same fixed direction-order tie-break as
// ValueIteration, so the two solvers are comparable state by state.
func (s *Solver) QValueIteration() (*QResult, error) {
	model, maxSweeps, err := s.prepare()
	if err != nil {
		return nil, err
	}
	w := s.World
	n := w.NumStates()
	q := make([][numDirections]float64, n)
	next := make([][numDirections]float64, n)

	for sweep := 1; sweep <= maxSweeps; sweep++ {
		delta := 0.0
		for st := 0; st < n; st++ {
			if st == w.goal {
				for _, a := range Directions {
					next[st][a] = w.rewards[st]
				}
				continue
			}
			for _, a := range Directions {
				expected := 0.0
				for _, d := range Directions {
					p := model.Prob(a, d)
					if p == 0 {
						continue
					}
					expected += p * maxOver(q[w.neighbors[st][d]])
				}
				nv := w.rewards[st] + s.Gamma*expected
				next[st][a] = nv
				if d := math.Abs(nv - q[st][a]); d > delta {
					delta = d
				}
			}
		}
		q, next = next, q
		if delta <= s.Epsilon {
			return s.deriveQResult(q, sweep), nil
		}
	}
	return nil, fmt.Errorf("q-value iteration: %w after %d sweeps", ErrDidNotConverge, maxSweeps)
}

func (s *Solver) deriveQResult(q [][numDirections]float64, sweeps int) *QResult {
	w := s.World
	n := w.NumStates()
	values := make([]float64, n)
	policy := make([]Action, n)
	for st := 0; st < n; st++ {
		if st == w.goal {
			values[st] = w.rewards[st]
			policy[st] = NoAction
			continue
		}
		best := math.Inf(-1)
		bestAct := NoAction
		for _, a := range Directions {
			if q[st][a] > best {
				best = q[st][a]
				bestAct = a
			}
		}
		values[st] = best
		policy[st] = bestAct
	}
	return &QResult{
		Result: Result{world: w, Values: values, Policy: policy, Sweeps: sweeps},
		Q:      q,
	}
}

func maxOver(row [numDirections]float64) float64 {
	best := row[0]
	for i := 1; i < numDirections; i++ {
		if row[i] > best {
			best = row[i]
		}
	}
	return best
}
