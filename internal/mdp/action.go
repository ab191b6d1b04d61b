package mdp

// Action is one of the four cardinal moves an agent can attempt.
type Action int

const (
	North Action = iota
	South
	East
	West
)

// NoAction marks states with no prescribed move (the goal).
const NoAction Action = -1

// Directions fixes the action order used for Bellman backups and for
// breaking argmax ties: the first action reaching the maximum wins, in
// both solvers.
var Directions = [...]Action{North, South, East, West}

const numDirections = len(Directions)

var actionNames = [...]string{"N", "S", "E", "W"}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "?"
	}
	return actionNames[a]
}

// ParseAction maps an action name back to its Action. Unknown names
// return NoAction and false.
func ParseAction(s string) (Action, bool) {
	for _, a := range Directions {
		if actionNames[a] == s {
			return a, true
		}
	}
	return NoAction, false
}

// delta returns the row/column offset of one step in direction a.
// Out-of-range actions move nowhere; GridWorld.Step relies on this for
// permissive handling of bad action values.
func (a Action) delta() (dr, dc int) {
	switch a {
	case North:
		return -1, 0
	case South:
		return 1, 0
	case East:
		return 0, 1
	case West:
		return 0, -1
	}
	return 0, 0
}
