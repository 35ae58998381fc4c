package harness

import (
	"net/http"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/strand/internal/model"
)

// snapshot converts a trace to a map[string]any for canonical JSON
// serialization.
func snapshot(name string, trace []Exchange) map[string]any {
	exchanges := make([]any, len(trace))
	for i, ex := range trace {
		m := map[string]any{
			"seq":     ex.Seq,
			"request": ex.Request,
			"status":  ex.Status,
		}
		if ex.Body != nil {
			m["body"] = ex.Body
		}
		if ex.Response != nil {
			m["response"] = ex.Response
		}
		exchanges[i] = m
	}
	return map[string]any{
		"scenario_name": name,
		"trace":         exchanges,
	}
}

// RunWithGolden executes a scenario and compares the trace against
// testdata/golden/{scenario.Name}.golden.
//
// Returns the result so callers can also check Pass and Errors.
func RunWithGolden(t *testing.T, handler http.Handler, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(handler, scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result's trace against a golden file.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	traceJSON, err := model.MarshalCanonical(snapshot(name, result.Trace))
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, traceJSON)
	return nil
}
