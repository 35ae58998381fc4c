package harness

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
)

// Run executes a scenario against handler and returns the result.
//
// Execution flow:
// 1. Execute setup steps (each must return 2xx)
// 2. Execute flow steps, tracing each exchange and checking expect clauses
// 3. Evaluate assertions against the trace
//
// An error is returned only when the scenario cannot be executed; failed
// expectations are reported through Result.
func Run(handler http.Handler, scenario *Scenario) (*Result, error) {
	for i, step := range scenario.Setup {
		ex, err := execute(handler, step)
		if err != nil {
			return nil, fmt.Errorf("setup[%d]: %w", i, err)
		}
		if ex.Status < 200 || ex.Status > 299 {
			return nil, fmt.Errorf("setup[%d]: %s returned status %d", i, ex.Request, ex.Status)
		}
	}

	result := NewResult()
	for i, step := range scenario.Flow {
		ex, err := execute(handler, step)
		if err != nil {
			return nil, fmt.Errorf("flow[%d]: %w", i, err)
		}
		result.AddExchange(ex)

		if step.Expect != nil {
			checkExpect(result, i, step.Expect, ex)
		}
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	return result, nil
}

// execute performs one request and captures the exchange.
func execute(handler http.Handler, step Step) (Exchange, error) {
	method, target, err := splitRequest(step.Request)
	if err != nil {
		return Exchange{}, err
	}

	var (
		body    io.Reader
		reqBody any
	)
	switch {
	case step.Body != nil:
		data, err := json.Marshal(step.Body)
		if err != nil {
			return Exchange{}, fmt.Errorf("encode request body: %w", err)
		}
		if reqBody, err = decodeJSON(data); err != nil {
			return Exchange{}, fmt.Errorf("normalize request body: %w", err)
		}
		body = bytes.NewReader(data)
	case step.RawBody != "":
		body = strings.NewReader(step.RawBody)
		reqBody = step.RawBody
	}

	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	ex := Exchange{
		Request: method + " " + target,
		Body:    reqBody,
		Status:  rec.Code,
	}
	if rec.Body.Len() > 0 {
		resp, err := decodeJSON(rec.Body.Bytes())
		if err != nil {
			// Non-JSON bodies (e.g. the mux's plain-text 405) are kept verbatim.
			resp = strings.TrimSpace(rec.Body.String())
		}
		ex.Response = resp
	}
	return ex, nil
}

func checkExpect(result *Result, index int, expect *ExpectClause, ex Exchange) {
	if ex.Status != expect.Status {
		result.AddError(fmt.Sprintf("flow[%d] %s: expected status %d, got %d",
			index, ex.Request, expect.Status, ex.Status))
	}
	if expect.Body == nil {
		return
	}

	want, err := normalize(expect.Body)
	if err != nil {
		result.AddError(fmt.Sprintf("flow[%d] %s: invalid expected body: %v", index, ex.Request, err))
		return
	}
	if !valuesEqual(ex.Response, want) {
		result.AddError(fmt.Sprintf("flow[%d] %s: expected body to contain %v, got %v",
			index, ex.Request, want, ex.Response))
	}
}

// decodeJSON decodes data into plain values with integers as int64.
func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing data after JSON value")
	}
	return normalize(v)
}
