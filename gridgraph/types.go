// Package gridgraph defines core types and sentinel errors
// for the maze grid of github.com/katalvlaran/mazerunner.
package gridgraph

import (
	"errors"
	"fmt"
)

// Sentinel errors for grid construction.
var (
	// ErrMalformedGrid is the root error for any input that cannot form a grid.
	ErrMalformedGrid = errors.New("gridgraph: malformed grid")
	// ErrEmptyGrid indicates input grid has no rows or no columns.
	ErrEmptyGrid = fmt.Errorf("%w: input grid must have at least one row and one column", ErrMalformedGrid)
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = fmt.Errorf("%w: all rows must have the same length", ErrMalformedGrid)
)

// CellState is the state of a single maze cell.
type CellState uint8

const (
	// Wall is not traversable.
	Wall CellState = iota
	// Open is traversable.
	Open
	// Solved marks a cell on the discovered path.
	Solved
)

// Cell tokens of the textual grid format.
const (
	TokenWall   = "0"
	TokenOpen   = "1"
	TokenSolved = "2"
)

// String returns the textual token for s.
func (s CellState) String() string {
	switch s {
	case Open:
		return TokenOpen
	case Solved:
		return TokenSolved
	default:
		return TokenWall
	}
}

// StateFromToken maps a textual token to its CellState.
// Anything that is neither the open nor the solved marker is a Wall.
func StateFromToken(tok string) CellState {
	switch tok {
	case TokenOpen:
		return Open
	case TokenSolved:
		return Solved
	default:
		return Wall
	}
}

// Position identifies a cell by 0-indexed row and column.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// String formats p as "(row,col)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Grid is a rectangular maze. Its shape is fixed once built;
// cell states change only through MarkPath.
// cells holds states in row-major order: index = row*cols + col.
type Grid struct {
	rows, cols int
	cells      []CellState
}
