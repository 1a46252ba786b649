// Package harness runs scripted table scenarios and checks their outcome.
//
// A scenario starts a fresh session over a dataset, applies a list of steps
// the way a user would (free-text edits, header clicks, explicit sorts),
// journals them to an in-memory store, and evaluates assertions against the
// final table and the journal.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	dataset: products.cue        # optional, relative to the scenario file
//	sort_mode: shared            # optional: shared | column
//	steps:
//	  - edit: { row: "Nintendo switch", price: "250", quantity: "2" }
//	  - click: price
//	  - sort: { key: subtotal, direction: desc }
//	  - edit: { row: gamecube, price: "1", quantity: "1" }
//	    expect_error: NOT_FOUND
//	assertions:
//	  - type: order
//	    names: ["Nintendo switch", "Nintendo 3DS", "playstation 4"]
//	  - type: totals
//	    price: 749
//	    quantity: 2
//	    subtotal: 500
//	  - type: row
//	    row: "Nintendo switch"
//	    subtotal: 500
//	  - type: sort_state
//	    key: subtotal
//	    direction: desc
//	  - type: journal_count
//	    kind: edit
//	    count: 1
//
// Rows without ids get row-1, row-2, ... in dataset order, so traces are
// deterministic and can be compared against golden files (see RunWithGolden).
package harness
