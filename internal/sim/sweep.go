package sim

import (
	"fmt"
	"math/rand"

	"grid-mdp-go/internal/mdp"
)

// SweepConfig drives a (discount factor x success probability) grid of
// experiments. Zero values fall back to defaults the same way the
// solver config does.
type SweepConfig struct {
	Gammas       []float64
	SuccessProbs []float64
	Episodes     int
	MaxSteps     int
	Epsilon      float64
	Seed         int64
}

// SweepPoint is the average episodic reward measured for one
// (gamma, success probability) pair.
type SweepPoint struct {
	Gamma       float64
	SuccessProb float64
	AvgReward   float64
}

// RunSweep solves the world by Q-value iteration for every parameter
// pair, splitting the failure probability evenly across the two
// perpendicular deviations, then follows each policy through a batch of
// episodes from random starts and averages the reward. Points come back
// in gamma-major order.
func RunSweep(world *mdp.GridWorld, cfg SweepConfig) ([]SweepPoint, error) {
	episodes := cfg.Episodes
	if episodes <= 0 {
		episodes = 1000
	}
	maxSteps := cfg.MaxSteps
	if maxSteps <= 0 {
		maxSteps = 100
	}
	epsilon := cfg.Epsilon
	if epsilon <= 0 {
		epsilon = 0.001
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = 1
	}
	rng := rand.New(rand.NewSource(seed))

	points := make([]SweepPoint, 0, len(cfg.Gammas)*len(cfg.SuccessProbs))
	for _, gamma := range cfg.Gammas {
		for _, p := range cfg.SuccessProbs {
			side := (1 - p) / 2
			model, err := mdp.NewNoiseModel(side, p, side)
			if err != nil {
				return nil, fmt.Errorf("success probability %v: %w", p, err)
			}
			solver := &mdp.Solver{World: world, Model: model, Gamma: gamma, Epsilon: epsilon}
			res, err := solver.QValueIteration()
			if err != nil {
				return nil, fmt.Errorf("gamma %v, success %v: %w", gamma, p, err)
			}
			total := 0.0
			for ep := 0; ep < episodes; ep++ {
				total += runEpisode(world, &res.Result, rng, maxSteps)
			}
			points = append(points, SweepPoint{
				Gamma:       gamma,
				SuccessProb: p,
				AvgReward:   total / float64(episodes),
			})
		}
	}
	return points, nil
}

// runEpisode follows the policy deterministically from a random start,
// accumulating the reward of every state entered (the origin again when
// a move is invalid), until the goal, a missing action, or the step cap
// ends it.
func runEpisode(world *mdp.GridWorld, policy *mdp.Result, rng *rand.Rand, maxSteps int) float64 {
	starts := startLabels(world)
	if len(starts) == 0 {
		return 0
	}
	cur := starts[rng.Intn(len(starts))]
	reward := world.Reward(cur)
	for i := 0; i < maxSteps; i++ {
		if cur == world.GoalLabel() {
			break
		}
		act, ok := policy.ActionFor(cur)
		if !ok {
			break
		}
		row, col, err := world.PositionOf(cur)
		if err != nil {
			break
		}
		nr, nc := world.Step(row, col, act)
		if next, ok := world.StateAt(nr, nc); ok {
			cur = next
		}
		reward += world.Reward(cur)
		if cur == world.GoalLabel() {
			break
		}
	}
	return reward
}
