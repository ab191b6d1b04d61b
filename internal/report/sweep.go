package report

import (
	"fmt"
	"os"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"

	"grid-mdp-go/internal/sim"
)

// SweepTable converts sweep points into an etable for downstream
// aggregation or plotting.
func SweepTable(points []sim.SweepPoint) *etable.Table {
	dt := &etable.Table{}
	dt.SetMetaData("name", "SweepLog")
	dt.SetMetaData("desc", "average episodic reward per (discount, success probability) pair")
	dt.SetMetaData("precision", "6")
	sch := etable.Schema{
		{Name: "discount_factor", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "success_probability", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "total_reward", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
	}
	dt.SetFromSchema(sch, len(points))
	for i, pt := range points {
		dt.SetCellFloat("discount_factor", i, pt.Gamma)
		dt.SetCellFloat("success_probability", i, pt.SuccessProb)
		dt.SetCellFloat("total_reward", i, pt.AvgReward)
	}
	return dt
}

// SaveSweepCSV writes the sweep table to path with a header row.
func SaveSweepCSV(path string, points []sim.SweepPoint) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	err = SweepTable(points).WriteCSV(f, etable.Comma, etable.Headers)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
