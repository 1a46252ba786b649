// Package table implements the editable product table: an ordered row list,
// its active sort state, and the aggregate totals derived from it.
//
// # Invariants
//
//   - Every row's Subtotal equals Price * Quantity between edits. Subtotal is
//     never set directly.
//   - Rows are fixed for the lifetime of a Store. Edits and sorts never add or
//     remove rows.
//   - The sort state changes only through ApplySort. The initial state is
//     {name, asc}.
//   - Sorting is stable: rows with equal sort values keep their relative input
//     order in both directions.
//
// Totals are a read-side projection: Aggregate recomputes them from scratch and
// holds no state.
//
// Free-text numeric input is coerced at the boundary by ParsePrice and
// ParseQuantity, which default to 0 instead of failing.
package table
