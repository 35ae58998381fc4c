package harness

// Exchange is one traced request and its response.
type Exchange struct {
	Seq      int64  `json:"seq"`
	Request  string `json:"request"` // "METHOD /path?query"
	Body     any    `json:"body,omitempty"`
	Status   int    `json:"status"`
	Response any    `json:"response,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expect clause and assertion held.
	Pass bool `json:"pass"`

	// Trace holds the flow exchanges in execution order.
	Trace []Exchange `json:"trace"`

	// Errors contains expectation and assertion failures.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []Exchange{},
		Errors: []string{},
	}
}

// AddError records a failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddExchange appends an exchange with the next sequence number.
func (r *Result) AddExchange(ex Exchange) {
	ex.Seq = int64(len(r.Trace) + 1)
	r.Trace = append(r.Trace, ex)
}
