package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"grid-mdp-go/internal/mdp"
	"grid-mdp-go/internal/sim"
)

// SaveRobustnessChart draws one bar per noise model showing how many
// states changed their prescribed action relative to the baseline.
func SaveRobustnessChart(path string, reports []mdp.RobustnessReport) error {
	values := make(plotter.Values, len(reports))
	labels := make([]string, len(reports))
	for i, r := range reports {
		values[i] = float64(r.Changes)
		labels[i] = r.Label
	}
	return saveBarChart(path, "Policy changes per noise model", "changed states", values, labels)
}

// SaveRewardChart draws the average episodic reward of every sweep
// point, labeled gamma/success.
func SaveRewardChart(path string, points []sim.SweepPoint) error {
	values := make(plotter.Values, len(points))
	labels := make([]string, len(points))
	for i, pt := range points {
		values[i] = pt.AvgReward
		labels[i] = fmt.Sprintf("%.2f/%.2f", pt.Gamma, pt.SuccessProb)
	}
	return saveBarChart(path, "Average reward per sweep point", "avg reward", values, labels)
}

func saveBarChart(path, title, yLabel string, values plotter.Values, labels []string) error {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = yLabel
	bars, err := plotter.NewBarChart(values, vg.Points(28))
	if err != nil {
		return fmt.Errorf("bar chart: %w", err)
	}
	p.Add(bars)
	p.NominalX(labels...)
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save chart %s: %w", path, err)
	}
	return nil
}
