package mdp

// Result holds a converged value function and policy, indexed by the
// world's dense state enumeration. The goal's policy entry is NoAction.
type Result struct {
	world  *GridWorld
	Values []float64
	Policy []Action
	Sweeps int
}

// Value returns the converged value of a labeled state, 0 for labels
// outside the state set.
func (r *Result) Value(label string) float64 {
	if i, ok := r.world.Index(label); ok {
		return r.Values[i]
	}
	return 0
}

// ActionFor returns the prescribed action for a labeled state. The goal
// and unknown labels have none.
func (r *Result) ActionFor(label string) (Action, bool) {
	i, ok := r.world.Index(label)
	if !ok || r.Policy[i] == NoAction {
		return NoAction, false
	}
	return r.Policy[i], true
}

// ValueMap renders the value function as a label-keyed map, the goal
// included.
func (r *Result) ValueMap() map[string]float64 {
	out := make(map[string]float64, len(r.Values))
	for i, v := range r.Values {
		out[r.world.Label(i)] = v
	}
	return out
}

// PolicyMap renders the policy as label -> action-name, omitting the
// goal.
func (r *Result) PolicyMap() map[string]string {
	out := make(map[string]string, len(r.Policy))
	for i, a := range r.Policy {
		if a == NoAction {
			continue
		}
		out[r.world.Label(i)] = a.String()
	}
	return out
}

// QResult extends Result with the converged state-action table.
type QResult struct {
	Result
	Q [][numDirections]float64
}

// QValue returns the converged Q(state, action), 0 for unknown labels
// or actions.
func (q *QResult) QValue(label string, a Action) float64 {
	i, ok := q.world.Index(label)
	if !ok || a < 0 || int(a) >= numDirections {
		return 0
	}
	return q.Q[i][a]
}
