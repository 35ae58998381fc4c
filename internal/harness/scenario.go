package harness

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scenario is a scripted sequence of HTTP requests with expectations.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Setup contains requests that establish initial state.
	Setup []Step `yaml:"setup,omitempty"`

	// Flow contains the traced requests.
	Flow []Step `yaml:"flow"`

	// Assertions validate the trace after the flow completes.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is a single HTTP request.
type Step struct {
	// Request is "METHOD /path?query".
	Request string `yaml:"request"`

	// Body is encoded as JSON and sent with Content-Type application/json.
	Body map[string]any `yaml:"body,omitempty"`

	// RawBody is sent verbatim. Mutually exclusive with Body.
	RawBody string `yaml:"raw_body,omitempty"`

	// Expect checks the response. If nil, any status is accepted.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies the expected response.
type ExpectClause struct {
	// Status is the expected HTTP status code.
	Status int `yaml:"status"`

	// Body is a subset of the decoded JSON response that must match.
	Body map[string]any `yaml:"body,omitempty"`
}

// Assertion validates the trace.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Request is the "METHOD /path?query" (trace_contains, trace_count).
	Request string `yaml:"request,omitempty"`

	// Status optionally narrows trace_contains to a response status.
	Status int `yaml:"status,omitempty"`

	// Count is the expected number of occurrences (trace_count).
	Count int `yaml:"count,omitempty"`

	// Requests is the expected order (trace_order).
	Requests []string `yaml:"requests,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Flow) == 0 {
		return fmt.Errorf("flow list is required and must be non-empty")
	}

	for i, step := range s.Setup {
		if err := validateStep(step); err != nil {
			return fmt.Errorf("setup[%d]: %w", i, err)
		}
	}
	for i, step := range s.Flow {
		if err := validateStep(step); err != nil {
			return fmt.Errorf("flow[%d]: %w", i, err)
		}
		if step.Expect != nil && step.Expect.Status == 0 {
			return fmt.Errorf("flow[%d].expect: status is required", i)
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

var knownMethods = []string{
	http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
	http.MethodDelete, http.MethodHead, http.MethodOptions,
}

func validateStep(step Step) error {
	if _, _, err := splitRequest(step.Request); err != nil {
		return err
	}
	if step.Body != nil && step.RawBody != "" {
		return fmt.Errorf("body and raw_body are mutually exclusive")
	}
	return nil
}

// splitRequest parses "METHOD /path".
func splitRequest(req string) (method, target string, err error) {
	method, target, ok := strings.Cut(strings.TrimSpace(req), " ")
	if !ok || target == "" {
		return "", "", fmt.Errorf("request must be \"METHOD /path\", got %q", req)
	}
	if !slices.Contains(knownMethods, method) {
		return "", "", fmt.Errorf("unknown method %q", method)
	}
	if !strings.HasPrefix(target, "/") {
		return "", "", fmt.Errorf("request path must start with '/', got %q", target)
	}
	return method, target, nil
}

func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertTraceContains:
		if a.Request == "" {
			return fmt.Errorf("assertions[%d]: request is required for trace_contains", index)
		}
	case AssertTraceOrder:
		if len(a.Requests) == 0 {
			return fmt.Errorf("assertions[%d]: requests list is required for trace_order", index)
		}
	case AssertTraceCount:
		if a.Request == "" {
			return fmt.Errorf("assertions[%d]: request is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
