package mdp

import "gonum.org/v1/gonum/mat"

// TransitionMatrix materializes P(s' | s, a) as a dense stochastic
// matrix over the world's state enumeration. Probability mass of moves
// that would leave the grid or enter an obstacle is folded into the
// origin's self-loop, so accumulation is additive: two walls hit from a
// corner both land on the diagonal. Every row sums to 1.
func TransitionMatrix(w *GridWorld, model *TransitionModel, a Action) *mat.Dense {
	if model == nil {
		model = DefaultTransitionModel()
	}
	n := w.NumStates()
	matrix := mat.NewDense(n, n, nil)
	for st := 0; st < n; st++ {
		for _, d := range Directions {
			p := model.Prob(a, d)
			if p == 0 {
				continue
			}
			dst := w.neighbors[st][d]
			matrix.Set(st, dst, matrix.At(st, dst)+p)
		}
	}
	return matrix
}

// TransitionMatrices builds one matrix per action, indexed by the
// action value in the fixed direction order.
func TransitionMatrices(w *GridWorld, model *TransitionModel) []*mat.Dense {
	out := make([]*mat.Dense, numDirections)
	for _, a := range Directions {
		out[a] = TransitionMatrix(w, model, a)
	}
	return out
}
