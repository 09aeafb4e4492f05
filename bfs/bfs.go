// Package bfs provides breadth-first maze solving over a gridgraph.Grid,
// returning the entrance, the first reachable exit, the path between them,
// and the number of steps the search took.
//
// BFS explores cells in increasing distance from the entrance,
// with a fixed neighbor order, a step ceiling, and an optional visit hook.
package bfs

import (
	"fmt"

	"github.com/katalvlaran/mazerunner/gridgraph"
)

// neighborOffsets lists (dRow, dCol) in exploration order: left, down, up, right.
var neighborOffsets = [4][2]int{{0, -1}, {1, 0}, {-1, 0}, {0, 1}}

// noParent marks the entrance in the parent arena.
const noParent = -1

// queueItem pairs a cell index with the index of the cell that enqueued it.
type queueItem struct {
	cell   int
	parent int
}

// walker encapsulates mutable BFS state for a single solve.
// visited and parent are flat arenas indexed by gridgraph.Grid.Index.
type walker struct {
	grid     *gridgraph.Grid
	opts     Options
	entrance int
	queue    []queueItem
	head     int
	visited  []bool
	parent   []int
	steps    int
}

// Solve locates the entrance of g and runs breadth-first search from it
// until a boundary cell other than the entrance is dequeued.
// Returns ErrGridNil, ErrOptionViolation or ErrEntranceNotFound for invalid
// input, ErrSolveLimitExceeded when the step ceiling is reached, and
// ErrExitNotFound when the frontier empties first.
//
// Re-running Solve on an unchanged grid yields an identical Result.
func Solve(g *gridgraph.Grid, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGridNil
	}
	// Build options and catch any invalid ones immediately
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	start, err := FindEntrance(g)
	if err != nil {
		return nil, err
	}

	n := g.Size()
	w := &walker{
		grid:     g,
		opts:     o,
		entrance: g.Index(start),
		queue:    make([]queueItem, 0, n),
		visited:  make([]bool, n),
		parent:   make([]int, n),
	}
	// Seed queue with the entrance (no parent)
	w.enqueue(w.entrance, noParent)

	exit, err := w.loop()
	if err != nil {
		return nil, err
	}

	return &Result{
		Entrance: start,
		Exit:     g.PositionOf(exit),
		Path:     w.pathTo(exit),
		Steps:    w.steps,
	}, nil
}

// loop processes the queue until an exit is dequeued, the step ceiling is
// reached, or the frontier is empty. It returns the exit's cell index.
//
// Cells are marked visited on dequeue, not on enqueue, so a cell may sit in
// the queue several times when more than one parent reaches it. Only the
// first copy is processed; later copies are discarded. The queue is FIFO
// and every edge has unit weight, so the first copy is the one enqueued by
// a parent at minimal depth, and the recorded parent chain is a shortest path.
func (w *walker) loop() (int, error) {
	for w.head < len(w.queue) {
		w.steps++
		if w.steps >= w.opts.StepLimit {
			return noParent, fmt.Errorf("%w: could not solve in %d iterations", ErrSolveLimitExceeded, w.opts.StepLimit)
		}

		item := w.dequeue()
		if w.visited[item.cell] {
			continue
		}
		w.visit(item)

		if item.cell != w.entrance && w.grid.IsBoundary(w.grid.PositionOf(item.cell)) {
			return item.cell, nil
		}
		w.enqueueNeighbors(item.cell)
	}

	return noParent, fmt.Errorf("%w: frontier exhausted after %d steps", ErrExitNotFound, w.steps)
}

// enqueue appends a (cell, parent) pair to the frontier.
func (w *walker) enqueue(cell, parent int) {
	w.queue = append(w.queue, queueItem{cell: cell, parent: parent})
}

// dequeue pops the head of the frontier.
func (w *walker) dequeue() queueItem {
	item := w.queue[w.head]
	w.head++
	return item
}

// visit marks the cell, commits its parent link, and calls OnVisit.
func (w *walker) visit(item queueItem) {
	w.visited[item.cell] = true
	w.parent[item.cell] = item.parent
	w.opts.OnVisit(w.grid.PositionOf(item.cell), w.steps)
}

// enqueueNeighbors enqueues every in-bounds, Open, not yet visited neighbor
// of cell in the fixed left, down, up, right order.
func (w *walker) enqueueNeighbors(cell int) {
	p := w.grid.PositionOf(cell)
	for _, d := range neighborOffsets {
		nb := gridgraph.Position{Row: p.Row + d[0], Col: p.Col + d[1]}
		if w.grid.At(nb) != gridgraph.Open {
			continue // walls, solved cells and out-of-bounds
		}
		idx := w.grid.Index(nb)
		if !w.visited[idx] {
			w.enqueue(idx, cell)
		}
	}
}

// pathTo reconstructs entrance → exit by walking parent links backward.
func (w *walker) pathTo(exit int) []gridgraph.Position {
	path := []gridgraph.Position{}
	for at := exit; at != noParent; at = w.parent[at] {
		path = append(path, w.grid.PositionOf(at))
	}
	// reverse to get entrance → exit
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}
