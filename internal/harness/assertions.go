package harness

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string     // Assertion type for categorization
	Expected string     // Human-readable expected outcome
	Actual   string     // Human-readable actual outcome
	Trace    []Exchange // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, ex := range e.Trace {
		fmt.Fprintf(&buf, "  [%d] %s -> %d\n", ex.Seq, ex.Request, ex.Status)
	}

	return buf.String()
}

// EvaluateAssertions checks every assertion against the result's trace and
// returns the failure messages.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var failures []string
	for _, a := range assertions {
		var err error
		switch a.Type {
		case AssertTraceContains:
			err = assertTraceContains(result.Trace, a)
		case AssertTraceOrder:
			err = assertTraceOrder(result.Trace, a)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, a)
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}
		if err != nil {
			failures = append(failures, err.Error())
		}
	}
	return failures
}

// assertTraceContains checks that the request appears in the trace, with
// the given status when one is set.
func assertTraceContains(trace []Exchange, a Assertion) error {
	for _, ex := range trace {
		if ex.Request == a.Request && (a.Status == 0 || ex.Status == a.Status) {
			return nil
		}
	}

	expected := a.Request
	if a.Status != 0 {
		expected = fmt.Sprintf("%s with status %d", a.Request, a.Status)
	}
	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: expected,
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// assertTraceOrder checks that requests first appear in the given order.
// Intervening requests are allowed.
func assertTraceOrder(trace []Exchange, a Assertion) error {
	positions := make(map[string]int)
	for i, ex := range trace {
		if _, seen := positions[ex.Request]; !seen {
			positions[ex.Request] = i + 1
		}
	}

	for _, req := range a.Requests {
		if positions[req] == 0 {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("all requests present: %v", a.Requests),
				Actual:   fmt.Sprintf("missing request: %s", req),
				Trace:    trace,
			}
		}
	}

	for i := 1; i < len(a.Requests); i++ {
		prev, curr := a.Requests[i-1], a.Requests[i]
		if positions[prev] >= positions[curr] {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("requests in order: %v", a.Requests),
				Actual: fmt.Sprintf("%s (pos %d) should be before %s (pos %d)",
					prev, positions[prev], curr, positions[curr]),
				Trace: trace,
			}
		}
	}

	return nil
}

// assertTraceCount checks that the request appears exactly Count times.
func assertTraceCount(trace []Exchange, a Assertion) error {
	count := 0
	for _, ex := range trace {
		if ex.Request == a.Request {
			count++
		}
	}

	if count != a.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d occurrences of %s", a.Count, a.Request),
			Actual:   fmt.Sprintf("%d occurrences", count),
			Trace:    trace,
		}
	}
	return nil
}

// valuesEqual compares normalized values. Maps in expected match as
// subsets; everything else must be equal.
func valuesEqual(actual, expected any) bool {
	if want, ok := expected.(map[string]any); ok {
		got, ok := actual.(map[string]any)
		if !ok {
			return false
		}
		for k, w := range want {
			g, ok := got[k]
			if !ok || !valuesEqual(g, w) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(actual, expected)
}

// normalize converts decoded JSON or YAML values to the forms
// MarshalCanonical accepts: integers become int64, maps become
// map[string]any.
func normalize(v any) (any, error) {
	switch val := v.(type) {
	case nil, string, bool, int64:
		return val, nil
	case int:
		return int64(val), nil
	case uint64:
		return int64(val), nil
	case json.Number:
		n, err := val.Int64()
		if err != nil {
			return nil, fmt.Errorf("non-integer number %s", val)
		}
		return n, nil
	case float64:
		if val != float64(int64(val)) {
			return nil, fmt.Errorf("non-integer number %v", val)
		}
		return int64(val), nil
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			n, err := normalize(elem)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = n
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			n, err := normalize(elem)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			out[k] = n
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}
