// Package harness runs scripted HTTP scenarios against an http.Handler and
// checks the resulting request/response trace.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	setup:
//	  - request: POST /strings
//	    body: { value: racecar }
//	flow:
//	  - request: GET /strings?is_palindrome=true
//	    expect:
//	      status: 200
//	      body: { count: 1 }
//	assertions:
//	  - type: trace_contains
//	    request: GET /strings?is_palindrome=true
//	    status: 200
//
// Setup steps must succeed (2xx) and are not traced. Flow steps are traced
// in order; an expect clause checks the status and a subset of the decoded
// response body. raw_body sends a literal request body instead of body.
//
// # Assertion Types
//
//   - trace_contains: a request appears in the trace, optionally with a status
//   - trace_order: requests appear in the given order
//   - trace_count: a request appears exactly N times
//
// # Golden Snapshots
//
// RunWithGolden serializes the trace as canonical JSON and compares it with
// testdata/golden/{name}.golden. Regenerate with:
//
//	go test ./... -update
//
// Snapshots are only stable when the handler under test uses a
// deterministic clock and request id generator.
package harness
