// Package report serializes solver and simulation outputs: transition
// matrices and sweep results as CSV, difference counts and rewards as
// bar charts.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/mat"

	"grid-mdp-go/internal/mdp"
)

// WriteMatrixCSV writes one row per origin state, probabilities at two
// decimal places, columns comma-separated.
func WriteMatrixCSV(w io.Writer, m *mat.Dense) error {
	rows, cols := m.Dims()
	fields := make([]string, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			fields[c] = fmt.Sprintf("%.2f", m.At(r, c))
		}
		if _, err := fmt.Fprintln(w, strings.Join(fields, ",")); err != nil {
			return err
		}
	}
	return nil
}

// SaveTransitionMatrices writes one CSV per action into dir, named
// transition_matrix_<ACTION>.csv after the action it describes.
func SaveTransitionMatrices(dir string, world *mdp.GridWorld, model *mdp.TransitionModel) error {
	for _, a := range mdp.Directions {
		matrix := mdp.TransitionMatrix(world, model, a)
		path := filepath.Join(dir, fmt.Sprintf("transition_matrix_%s.csv", a))
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		err = WriteMatrixCSV(f, matrix)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}
