package main

import (
	"fmt"

	"grid-mdp-go/internal/mdp"
)

// printPolicyMap renders the grid with the prescribed move per cell.
func printPolicyMap(world *mdp.GridWorld, res *mdp.Result) {
	fmt.Println("policy map:")
	for r := 0; r < world.Rows(); r++ {
		for c := 0; c < world.Cols(); c++ {
			fmt.Printf("%s ", cellSymbol(world, res, r, c))
		}
		fmt.Println()
	}
	fmt.Println("legend: # obstacle | G goal | ! hazard | ^ v > < prescribed move")
}

func cellSymbol(world *mdp.GridWorld, res *mdp.Result, row, col int) string {
	switch world.CategoryAt(row, col) {
	case mdp.Obstacle:
		return "#"
	case mdp.Goal:
		return "G"
	case mdp.Hazard:
		return "!"
	}
	label, ok := world.StateAt(row, col)
	if !ok {
		return " "
	}
	act, ok := res.ActionFor(label)
	if !ok {
		return "."
	}
	switch act {
	case mdp.North:
		return "^"
	case mdp.South:
		return "v"
	case mdp.East:
		return ">"
	case mdp.West:
		return "<"
	}
	return "?"
}
