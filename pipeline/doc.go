// Package pipeline turns object-created notifications into solved mazes.
//
// For every Notification a Processor:
//
//  1. reads the CSV object from the ObjectStore,
//  2. parses it into a gridgraph.Grid,
//  3. solves it with bfs.Solve,
//  4. marks the path and re-encodes the grid,
//  5. inserts a metadata record keyed by the target key,
//  6. uploads the annotated grid under the target key.
//
// The target key is the source key prefixed with "<prefix>_". The record
// insert is the idempotency gate: when a record for the target key already
// exists the notification is Skipped and nothing is uploaded.
//
// ProcessBatch runs notifications one after another and never lets one
// failure stop the rest. There are no retries.
//
// Each Process call emits one OpenTelemetry span ("pipeline.Process") and
// updates the Prometheus collectors registered through WithRegisterer.
package pipeline
