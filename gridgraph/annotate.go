package gridgraph

// MarkPath rewrites every Open cell on path to Solved and returns how many
// cells changed. Cells in any other state and out-of-bounds positions are
// left alone, so marking the same path twice changes nothing the second time.
// Complexity: O(len(path)).
func (g *Grid) MarkPath(path []Position) int {
	changed := 0
	for _, p := range path {
		if !g.InBounds(p) {
			continue
		}
		i := g.Index(p)
		if g.cells[i] == Open {
			g.cells[i] = Solved
			changed++
		}
	}
	return changed
}
