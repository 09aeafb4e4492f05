// Package bfs solves a maze grid with breadth-first search,
// returning the entrance, the first reachable exit, the shortest path between
// them, and the number of steps explored.
//
// What
//
//   - FindEntrance picks the first Open boundary cell in a fixed scan order:
//     top row, bottom row, left column, right column (corners checked once).
//   - Solve runs BFS from that entrance and stops at the first dequeued
//     boundary cell that is not the entrance.
//   - Returns a Result containing:
//     • Entrance and Exit positions
//     • Path: entrance → exit inclusive
//     • Steps: number of dequeue operations
//   - Result.Metrics exposes steps and path length for recording.
//
// Determinism
//
//	The frontier is FIFO and neighbors are generated in the fixed order
//	left, down, up, right. Exit, path and step count are therefore a pure
//	function of the grid.
//
// Visited marking
//
//	A cell is marked visited when it is dequeued. The same cell may be
//	enqueued by several parents; the first dequeue wins and later copies are
//	skipped (they still count as steps). Under FIFO order with unit edges the
//	first copy always arrives over a shortest path.
//
// Memory
//
//	The frontier carries (cell, parent) pairs only. Parent links are kept in a
//	flat rows×cols arena and the path is rebuilt once, from the exit backward.
//
// Complexity (N = rows×cols)
//
//   - Time:   O(N) cells processed, each enqueued at most 4 times.
//   - Memory: O(N) for visited, parent and queue.
//
// Usage
//
//	g, err := gridgraph.ParseString(csv)
//	res, err := bfs.Solve(g, bfs.WithStepLimit(1_000_000))
//	if errors.Is(err, bfs.ErrExitNotFound) {
//	    // entrance found, but no second opening is reachable
//	}
//	g.MarkPath(res.Path)
//
// Errors
//
//   - ErrGridNil             if the grid pointer is nil.
//   - ErrOptionViolation     if an Option is invalid (e.g. non-positive StepLimit).
//   - ErrEntranceNotFound    if no boundary cell is Open.
//   - ErrSolveLimitExceeded  if the step counter reaches StepLimit.
//   - ErrExitNotFound        if the frontier empties before an exit is reached.
package bfs
