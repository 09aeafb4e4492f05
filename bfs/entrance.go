package bfs

import (
	"github.com/katalvlaran/mazerunner/gridgraph"
)

// FindEntrance returns the first Open boundary cell in this order:
//
//  1. top row, left → right
//  2. bottom row, left → right
//  3. left column, top → bottom, corners excluded
//  4. right column, top → bottom, corners excluded
//
// The order decides which opening is "the" entrance when several exist.
// Returns ErrGridNil for a nil grid and ErrEntranceNotFound when no boundary
// cell is Open.
// Complexity: O(R + C).
func FindEntrance(g *gridgraph.Grid) (gridgraph.Position, error) {
	if g == nil {
		return gridgraph.Position{}, ErrGridNil
	}
	rows, cols := g.Rows(), g.Cols()
	open := func(r, c int) bool {
		return g.At(gridgraph.Position{Row: r, Col: c}) == gridgraph.Open
	}

	for c := 0; c < cols; c++ {
		if open(0, c) {
			return gridgraph.Position{Row: 0, Col: c}, nil
		}
	}
	for c := 0; c < cols; c++ {
		if open(rows-1, c) {
			return gridgraph.Position{Row: rows - 1, Col: c}, nil
		}
	}
	for r := 1; r < rows-1; r++ {
		if open(r, 0) {
			return gridgraph.Position{Row: r, Col: 0}, nil
		}
	}
	for r := 1; r < rows-1; r++ {
		if open(r, cols-1) {
			return gridgraph.Position{Row: r, Col: cols - 1}, nil
		}
	}

	return gridgraph.Position{}, ErrEntranceNotFound
}
