package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"grid-mdp-go/internal/mdp"
	"grid-mdp-go/internal/report"
	"grid-mdp-go/internal/sim"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "gridmdp: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return errors.New("missing subcommand; try 'solve', 'robustness', 'matrices' or 'sweep'")
	}

	switch os.Args[1] {
	case "solve":
		return runSolve(os.Args[2:])
	case "robustness":
		return runRobustness(os.Args[2:])
	case "matrices":
		return runMatrices(os.Args[2:])
	case "sweep":
		return runSweep(os.Args[2:])
	default:
		return fmt.Errorf("unknown subcommand %q", os.Args[1])
	}
}

func loadWorld(path string) (*mdp.GridWorld, error) {
	layout := mdp.DefaultLayout()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		layout, err = mdp.LoadLayout(f)
		if err != nil {
			return nil, fmt.Errorf("layout %s: %w", path, err)
		}
	}
	return mdp.NewGridWorld(layout)
}

// noiseOverride builds a symmetric noise model for a success
// probability, or nil for the default model.
func noiseOverride(success float64) (*mdp.TransitionModel, error) {
	if success == 0 {
		return nil, nil
	}
	if success <= 0 || success > 1 {
		return nil, fmt.Errorf("success probability must be in (0,1] (got %.2f)", success)
	}
	side := (1 - success) / 2
	return mdp.NewNoiseModel(side, success, side)
}

func runSolve(args []string) error {
	fs := flag.NewFlagSet("solve", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	gamma := fs.Float64("gamma", 0.9, "discount factor, exclusive (0,1)")
	epsilon := fs.Float64("epsilon", 0.001, "convergence threshold")
	layoutPath := fs.String("layout", "", "YAML layout file (empty for the built-in map)")
	success := fs.Float64("success", 0, "intended-direction success probability (0 for the default 0.8/0.1/0.1 model)")
	useQ := fs.Bool("q", false, "solve by Q-value iteration instead of value iteration")

	if err := fs.Parse(args); err != nil {
		return err
	}

	world, err := loadWorld(*layoutPath)
	if err != nil {
		return err
	}
	model, err := noiseOverride(*success)
	if err != nil {
		return err
	}
	solver := &mdp.Solver{World: world, Model: model, Gamma: *gamma, Epsilon: *epsilon}

	var res *mdp.Result
	if *useQ {
		qres, err := solver.QValueIteration()
		if err != nil {
			return err
		}
		res = &qres.Result
	} else {
		res, err = solver.ValueIteration()
		if err != nil {
			return err
		}
	}

	fmt.Printf("converged in %d sweeps (gamma=%.2f epsilon=%g)\n\n", res.Sweeps, *gamma, *epsilon)
	printValues(res)
	fmt.Println()
	printPolicyMap(world, res)
	return nil
}

func runRobustness(args []string) error {
	fs := flag.NewFlagSet("robustness", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	gamma := fs.Float64("gamma", 0.9, "discount factor, exclusive (0,1)")
	epsilon := fs.Float64("epsilon", 0.001, "convergence threshold")
	layoutPath := fs.String("layout", "", "YAML layout file (empty for the built-in map)")
	chartPath := fs.String("chart", "", "optional PNG path for a bar chart of the results")

	if err := fs.Parse(args); err != nil {
		return err
	}

	world, err := loadWorld(*layoutPath)
	if err != nil {
		return err
	}
	solver := &mdp.Solver{World: world, Gamma: *gamma, Epsilon: *epsilon}
	base, err := solver.ValueIteration()
	if err != nil {
		return err
	}

	ev := &mdp.RobustnessEvaluator{World: world, Gamma: *gamma, Epsilon: *epsilon}
	reports, err := ev.Evaluate(base)
	if err != nil {
		return err
	}
	fmt.Printf("baseline: gamma=%.2f, %d states\n", *gamma, world.NumStates())
	for _, rep := range reports {
		fmt.Printf("noise %s: %d changes\n", rep.Label, rep.Changes)
	}
	if *chartPath != "" {
		if err := report.SaveRobustnessChart(*chartPath, reports); err != nil {
			return err
		}
		fmt.Printf("chart saved to %s\n", *chartPath)
	}
	return nil
}

func runMatrices(args []string) error {
	fs := flag.NewFlagSet("matrices", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	layoutPath := fs.String("layout", "", "YAML layout file (empty for the built-in map)")
	outDir := fs.String("out", ".", "directory for the per-action CSV files")
	success := fs.Float64("success", 0, "intended-direction success probability (0 for the default model)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	world, err := loadWorld(*layoutPath)
	if err != nil {
		return err
	}
	model, err := noiseOverride(*success)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}
	if err := report.SaveTransitionMatrices(*outDir, world, model); err != nil {
		return err
	}
	for _, a := range mdp.Directions {
		fmt.Printf("saved transition_matrix_%s.csv (%d states)\n", a, world.NumStates())
	}
	return nil
}

func runSweep(args []string) error {
	fs := flag.NewFlagSet("sweep", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	layoutPath := fs.String("layout", "", "YAML layout file (empty for the built-in map)")
	gammas := fs.String("gammas", "0.86,0.90,0.94,0.98", "comma-separated discount factors")
	probs := fs.String("probs", "0.5,0.7,0.8,0.9", "comma-separated success probabilities")
	episodes := fs.Int("episodes", 1000, "episodes per parameter pair")
	steps := fs.Int("steps", 100, "step cap per episode")
	seed := fs.Int64("seed", 0, "deterministic seed (0 for default)")
	outPath := fs.String("out", "sweep_results.csv", "CSV output path")
	chartPath := fs.String("chart", "", "optional PNG path for a bar chart of the results")

	if err := fs.Parse(args); err != nil {
		return err
	}

	world, err := loadWorld(*layoutPath)
	if err != nil {
		return err
	}
	gammaVals, err := parseFloats(*gammas)
	if err != nil {
		return fmt.Errorf("gammas: %w", err)
	}
	probVals, err := parseFloats(*probs)
	if err != nil {
		return fmt.Errorf("probs: %w", err)
	}

	points, err := sim.RunSweep(world, sim.SweepConfig{
		Gammas:       gammaVals,
		SuccessProbs: probVals,
		Episodes:     *episodes,
		MaxSteps:     *steps,
		Seed:         *seed,
	})
	if err != nil {
		return err
	}
	for _, pt := range points {
		fmt.Printf("gamma=%.2f success=%.2f avg_reward=%.4f\n", pt.Gamma, pt.SuccessProb, pt.AvgReward)
	}
	if err := report.SaveSweepCSV(*outPath, points); err != nil {
		return err
	}
	fmt.Printf("results saved to %s\n", *outPath)
	if *chartPath != "" {
		if err := report.SaveRewardChart(*chartPath, points); err != nil {
			return err
		}
		fmt.Printf("chart saved to %s\n", *chartPath)
	}
	return nil
}

func parseFloats(csv string) ([]float64, error) {
	parts := strings.Split(csv, ",")
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func printValues(res *mdp.Result) {
	values := res.ValueMap()
	labels := make([]string, 0, len(values))
	for label := range values {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	fmt.Println("state values:")
	for _, label := range labels {
		fmt.Printf("%s: %.2f\n", label, values[label])
	}
}
