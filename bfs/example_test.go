package bfs_test

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/mazerunner/bfs"
	"github.com/katalvlaran/mazerunner/gridgraph"
)

// ExampleSolve walks a single-route 5×5 maze from the top opening to the
// bottom one and prints the annotated grid.
func ExampleSolve() {
	g, err := gridgraph.ParseString(`0,1,0,0,0
0,1,1,1,0
0,0,0,1,0
0,1,1,1,0
0,1,0,0,0`)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	res, err := bfs.Solve(g)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	g.MarkPath(res.Path)

	m := res.Metrics()
	fmt.Println("entrance:", res.Entrance, "exit:", res.Exit)
	fmt.Println("steps:", m.Steps, "length:", m.PathLength)
	fmt.Print(g.EncodeString())
	// Output:
	// entrance: (0,1) exit: (4,1)
	// steps: 9 length: 9
	// 0,2,0,0,0
	// 0,2,2,2,0
	// 0,0,0,2,0
	// 0,2,2,2,0
	// 0,2,0,0,0
}

// ExampleSolve_noExit shows the explicit outcome for a maze whose only
// opening is the entrance.
func ExampleSolve_noExit() {
	g, _ := gridgraph.ParseString("0,1,0\n0,1,0\n0,0,0")
	_, err := bfs.Solve(g)
	fmt.Println(errors.Is(err, bfs.ErrExitNotFound))
	// Output:
	// true
}

// ExampleFindEntrance demonstrates that the top row wins over the others.
func ExampleFindEntrance() {
	g, _ := gridgraph.ParseString("0,0,1\n1,0,1\n0,1,0")
	p, _ := bfs.FindEntrance(g)
	fmt.Println(p)
	// Output:
	// (0,2)
}
