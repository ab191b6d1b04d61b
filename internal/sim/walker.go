// Package sim replays solved policies as episodic walks. All randomness
// lives here, behind an injected source; the solver package never
// consumes one.
package sim

import (
	"math/rand"

	"grid-mdp-go/internal/mdp"
)

// Walker follows a policy across a grid for a fixed number of steps,
// respawning at a fresh random start whenever it reaches the goal or
// falls into a hazard. A nil Model makes movement deterministic (the
// intended direction always succeeds); otherwise the effective
// direction of each move is sampled from the model.
type Walker struct {
	World *mdp.GridWorld
	Model *mdp.TransitionModel
	Rng   *rand.Rand
}

// WalkStats tallies one fixed-step walk.
type WalkStats struct {
	GoalsReached int
	HazardFalls  int
	TotalReward  float64
}

// Walk runs steps iterations from a random non-goal start. Each
// iteration collects the current state's reward before anything else,
// so goal arrivals and hazard falls are paid for exactly once.
func (w *Walker) Walk(policy *mdp.Result, steps int) WalkStats {
	var stats WalkStats
	starts := startLabels(w.World)
	if len(starts) == 0 {
		return stats
	}
	cur := starts[w.Rng.Intn(len(starts))]
	for i := 0; i < steps; i++ {
		stats.TotalReward += w.World.Reward(cur)
		if cat, _ := w.World.CategoryOf(cur); cat == mdp.Goal {
			stats.GoalsReached++
			cur = starts[w.Rng.Intn(len(starts))]
			continue
		} else if cat == mdp.Hazard {
			stats.HazardFalls++
			cur = starts[w.Rng.Intn(len(starts))]
			continue
		}
		act, ok := policy.ActionFor(cur)
		if !ok {
			break
		}
		row, col, err := w.World.PositionOf(cur)
		if err != nil {
			break
		}
		nr, nc := w.World.Step(row, col, w.effective(act))
		if next, ok := w.World.StateAt(nr, nc); ok {
			cur = next
		}
	}
	return stats
}

// effective samples the direction a move actually takes.
func (w *Walker) effective(a mdp.Action) mdp.Action {
	if w.Model == nil || w.Rng == nil {
		return a
	}
	r := w.Rng.Float64()
	acc := 0.0
	for _, d := range mdp.Directions {
		acc += w.Model.Prob(a, d)
		if r < acc {
			return d
		}
	}
	return a
}

// startLabels lists every non-goal state a walk may start from.
// Hazards are included: falling into one is an outcome worth counting,
// starting on one simply respawns.
func startLabels(world *mdp.GridWorld) []string {
	labels := world.Labels()
	out := make([]string, 0, len(labels))
	for _, label := range labels {
		if label == world.GoalLabel() {
			continue
		}
		out = append(out, label)
	}
	return out
}
