// Package store provides SQLite-backed storage for hookrt lifecycle traces.
//
// A Store implements engine.Recorder. Every mount, update, unmount, effect
// run, cleanup and dropped task of a root is appended to trace_events under
// the root's session id; harness runs also store host snapshots.
//
// # Patterns
//
// Logical time:
//   - All ordering uses seq (the root's logical clock), never timestamps
//   - Queries ORDER BY seq ASC so reads are reproducible
//
// Idempotent writes:
//   - (session, seq) is the primary key; rewriting an event is a no-op
//
// Leak detection:
//   - LiveInstances returns instances mounted but never unmounted, which is
//     how tests check that every hook store entry is eventually released
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait on lock contention
package store
