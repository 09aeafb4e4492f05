// Package mazerunner solves grid mazes with breadth-first search and runs
// the solver as an event-driven pipeline.
//
// What is mazerunner?
//
//	A small set of packages that take a CSV maze from object storage to an
//	annotated, solved copy plus a metadata record:
//		• gridgraph: parse, inspect, annotate and encode rectangular grids
//		• bfs:       entrance detection and breadth-first path search
//		• storage:   object and record stores (memory, filesystem, S3, DynamoDB)
//		• pipeline:  notification → solve → record → upload, with metrics and tracing
//		• records:   CRUD API over solve records (net/http and API Gateway)
//		• trigger:   S3 events, socket.io subscriptions and an HTTP endpoint
//		• config:    HCL and environment configuration, slog setup
//
// Maze format
//
//	One row per line, cells separated by commas. "1" is an open cell,
//	"2" is a cell on the solved path, anything else is a wall:
//
//		0,1,0,0,0
//		0,1,1,1,0
//		0,0,0,1,0
//
// Binaries
//
//	cmd/mazesolve       solve a local file from the command line
//	cmd/mazed           daemon: records API, notifications, /metrics
//	cmd/solver-lambda   AWS Lambda handler for S3 object-created events
//	cmd/records-lambda  AWS Lambda handler for the records API
//
// Quick start:
//
//	g, _ := gridgraph.ParseString("0,1,0\n0,1,1\n0,0,0")
//	res, err := bfs.Solve(g)
//	if err != nil { /* ErrEntranceNotFound, ErrExitNotFound, ... */ }
//	g.MarkPath(res.Path)
//	fmt.Print(g.EncodeString())
package mazerunner
