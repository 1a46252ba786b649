// Package store provides SQLite-backed journaling for table sessions.
//
// A session is recorded as:
//   - Sessions: one record per run, holding a snapshot of the initial rows
//     and the sort mode in effect
//   - Events: the edits and sorts that were applied, in the order they
//     were applied
//
// Only applied operations are journaled. Rejected edits never reach the
// store, so replaying a session's events onto its snapshot must succeed
// and reproduce the final table exactly.
//
// # Ordering
//
//   - Events are ordered by seq, a per-session logical clock, never by
//     wall time
//   - All event queries use ORDER BY seq ASC
//   - (session_id, seq) is the primary key, so re-appending an event is a
//     no-op
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Events must reference a recorded session
//
// The journal is a debugging and replay aid. Product data itself is never
// loaded from it: every run starts from its dataset.
package store
