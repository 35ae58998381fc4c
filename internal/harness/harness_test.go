package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Pass(t *testing.T) {
	scenario := &Scenario{
		Name:        "pass",
		Description: "all expectations hold",
		Setup: []Step{
			{Request: "POST /echo", Body: map[string]any{"seed": true}},
		},
		Flow: []Step{
			{Request: "GET /items", Expect: &ExpectClause{Status: 200, Body: map[string]any{"count": 2}}},
			{Request: "DELETE /items/1", Expect: &ExpectClause{Status: 204}},
		},
	}

	result, err := Run(newFakeHandler(), scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	require.Len(t, result.Trace, 2, "setup steps are not traced")
	assert.Equal(t, int64(1), result.Trace[0].Seq)
	assert.Equal(t, int64(2), result.Trace[1].Seq)
	assert.Equal(t, "GET /items", result.Trace[0].Request)
	assert.Equal(t, map[string]any{"count": int64(2), "items": []any{int64(1), int64(2)}}, result.Trace[0].Response)
	assert.Nil(t, result.Trace[1].Response)
}

func TestRun_StatusMismatch(t *testing.T) {
	scenario := &Scenario{
		Name:        "status",
		Description: "wrong status",
		Flow: []Step{
			{Request: "GET /fail", Expect: &ExpectClause{Status: 200}},
		},
	}

	result, err := Run(newFakeHandler(), scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "flow[0] GET /fail: expected status 200, got 500", result.Errors[0])
}

func TestRun_BodyMismatch(t *testing.T) {
	scenario := &Scenario{
		Name:        "body",
		Description: "wrong body",
		Flow: []Step{
			{Request: "GET /items", Expect: &ExpectClause{Status: 200, Body: map[string]any{"count": 3}}},
		},
	}

	result, err := Run(newFakeHandler(), scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "expected body to contain")
}

func TestRun_RawBody(t *testing.T) {
	scenario := &Scenario{
		Name:        "raw",
		Description: "malformed body",
		Flow: []Step{
			{Request: "POST /echo", RawBody: "{", Expect: &ExpectClause{Status: 400}},
		},
	}

	result, err := Run(newFakeHandler(), scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, "{", result.Trace[0].Body)
	assert.Equal(t, map[string]any{"error": "bad json"}, result.Trace[0].Response)
}

func TestRun_NonJSONResponseKeptAsText(t *testing.T) {
	scenario := &Scenario{
		Name:        "text",
		Description: "mux 404",
		Flow:        []Step{{Request: "GET /nowhere"}},
	}

	result, err := Run(newFakeHandler(), scenario)
	require.NoError(t, err)
	assert.Equal(t, 404, result.Trace[0].Status)
	assert.Equal(t, "404 page not found", result.Trace[0].Response)
}

func TestRun_SetupFailure(t *testing.T) {
	scenario := &Scenario{
		Name:        "setup",
		Description: "setup fails",
		Setup:       []Step{{Request: "GET /fail"}},
		Flow:        []Step{{Request: "GET /items"}},
	}

	_, err := Run(newFakeHandler(), scenario)
	require.Error(t, err)
	assert.Equal(t, "setup[0]: GET /fail returned status 500", err.Error())
}

func TestRun_AssertionFailuresReported(t *testing.T) {
	scenario := &Scenario{
		Name:        "assert",
		Description: "assertion fails",
		Flow:        []Step{{Request: "GET /items"}},
		Assertions:  []Assertion{{Type: AssertTraceCount, Request: "GET /items", Count: 2}},
	}

	result, err := Run(newFakeHandler(), scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "trace_count")
}
