// Package gridgraph provides the maze grid used by the solver.
//
//   - Rectangular shape, validated once at construction
//   - Row-major cell storage with O(1) index/position conversion
//   - Boundary tests for entrance and exit detection
//
// Cells outside the grid read as Wall.
package gridgraph

import (
	"strings"
)

// NewGrid constructs a Grid from a non-empty, rectangular 2D slice.
// It deep-copies the input to ensure later changes to cells do not leak in.
// Returns ErrEmptyGrid if cells has no rows or no columns,
// ErrNonRectangular if any row length differs.
// Algorithmic complexity: O(R×C) time and memory.
func NewGrid(cells [][]CellState) (*Grid, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	rows, cols := len(cells), len(cells[0])
	for _, row := range cells {
		if len(row) != cols {
			return nil, ErrNonRectangular
		}
	}
	flat := make([]CellState, 0, rows*cols)
	for _, row := range cells {
		flat = append(flat, row...)
	}

	return &Grid{rows: rows, cols: cols, cells: flat}, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Size returns rows×cols.
func (g *Grid) Size() int { return len(g.cells) }

// InBounds reports whether p lies within the grid boundaries.
// Complexity: O(1).
func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// IsBoundary reports whether p is an in-bounds cell on the outer edge.
// Complexity: O(1).
func (g *Grid) IsBoundary(p Position) bool {
	if !g.InBounds(p) {
		return false
	}
	return p.Row == 0 || p.Row == g.rows-1 || p.Col == 0 || p.Col == g.cols-1
}

// At returns the state of the cell at p, or Wall when p is out of bounds.
func (g *Grid) At(p Position) CellState {
	if !g.InBounds(p) {
		return Wall
	}
	return g.cells[g.Index(p)]
}

// Index maps p to its row-major index: Row*Cols + Col.
// The caller is responsible for p being in bounds.
// Complexity: O(1).
func (g *Grid) Index(p Position) int {
	return p.Row*g.cols + p.Col
}

// PositionOf converts a row-major index back to a Position.
// Complexity: O(1).
func (g *Grid) PositionOf(idx int) Position {
	return Position{Row: idx / g.cols, Col: idx % g.cols}
}

// Clone returns an independent copy of g.
func (g *Grid) Clone() *Grid {
	cells := make([]CellState, len(g.cells))
	copy(cells, g.cells)
	return &Grid{rows: g.rows, cols: g.cols, cells: cells}
}

// Cells returns a fresh 2D copy of the cell states.
func (g *Grid) Cells() [][]CellState {
	out := make([][]CellState, g.rows)
	for r := 0; r < g.rows; r++ {
		out[r] = make([]CellState, g.cols)
		copy(out[r], g.cells[r*g.cols:(r+1)*g.cols])
	}
	return out
}

// Count returns how many cells are in state s.
func (g *Grid) Count(s CellState) int {
	n := 0
	for _, c := range g.cells {
		if c == s {
			n++
		}
	}
	return n
}

// String renders the grid in its textual form without a trailing newline.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(len(g.cells) * 2)
	for r := 0; r < g.rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < g.cols; c++ {
			if c > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(g.cells[r*g.cols+c].String())
		}
	}
	return sb.String()
}
