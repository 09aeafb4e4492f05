package bfs_test

import (
	"testing"

	"github.com/katalvlaran/mazerunner/bfs"
	"github.com/katalvlaran/mazerunner/gridgraph"
)

// serpentine builds an n×n maze (n odd) whose only route snakes row by row
// from the top-left opening to the bottom row.
func serpentine(n int) *gridgraph.Grid {
	cells := make([][]gridgraph.CellState, n)
	for r := range cells {
		cells[r] = make([]gridgraph.CellState, n)
	}
	cells[0][1] = gridgraph.Open
	for r := 1; r < n-1; r += 2 {
		for c := 1; c < n-1; c++ {
			cells[r][c] = gridgraph.Open
		}
		if r+1 < n-1 {
			// connector alternates between the right and left ends
			if (r/2)%2 == 0 {
				cells[r+1][n-2] = gridgraph.Open
			} else {
				cells[r+1][1] = gridgraph.Open
			}
		}
	}
	cells[n-1][n-2] = gridgraph.Open
	g, _ := gridgraph.NewGrid(cells)
	return g
}

// BenchmarkSolve_Serpentine measures BFS on a long single-route maze.
// Complexity: O(N) where N = n×n.
func BenchmarkSolve_Serpentine(b *testing.B) {
	g := serpentine(501)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = bfs.Solve(g)
	}
}

// BenchmarkSolve_OpenRoom measures BFS on a wide open room, the worst case
// for duplicate enqueues.
func BenchmarkSolve_OpenRoom(b *testing.B) {
	const n = 500
	cells := make([][]gridgraph.CellState, n)
	for r := range cells {
		cells[r] = make([]gridgraph.CellState, n)
		for c := range cells[r] {
			if r > 0 && r < n-1 && c > 0 && c < n-1 {
				cells[r][c] = gridgraph.Open
			}
		}
	}
	cells[0][1] = gridgraph.Open
	cells[n-1][n-2] = gridgraph.Open
	g, _ := gridgraph.NewGrid(cells)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = bfs.Solve(g)
	}
}
