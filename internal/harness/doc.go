// Package harness runs scripted scenarios against the demo applications.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: counter_increments
//	description: "Clicking the button three times shows Count: 3"
//	app: counter
//	max_steps: 200
//	steps:
//	  - click: button
//	    expect:
//	      - type: text_equals
//	        selector: p.count
//	        value: "Count: 1"
//	  - input: "input[name=title]"
//	    value: hello
//	  - submit: form
//	  - flush: true
//	assertions:
//	  - type: count
//	    selector: li.note
//	    count: 2
//	  - type: no_leaks
//
// Every step dispatches one host event and then flushes the root, so the
// snapshot taken after a step reflects all renders and effects it caused.
//
// # Assertion Types
//
//   - text_equals: text content of the first match of selector
//   - html_contains: the container's HTML contains value
//   - count: number of elements matching selector
//   - store_size: number of live hook store entries
//   - trace_count: occurrences of a trace kind, optionally for one component
//   - no_leaks: after teardown the store, listeners and container are empty
//     and every mounted instance has an unmount event
//
// trace_count and no_leaks are evaluated after the root is unmounted, so
// trace counts include teardown events. The others are evaluated on the
// final document before teardown.
//
// # Deterministic Runs
//
// Each run uses sequential instance ids ("i-1", "i-2", ...), the scenario
// name as session id and a fresh in-memory trace store unless one is
// supplied with WithStore. Two runs of a scenario therefore produce the
// same HTML and trace, which is what golden comparison relies on.
package harness
