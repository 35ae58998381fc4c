package queryir

import (
	"errors"
	"fmt"
	"slices"
)

// Validate checks that q only references known columns, uses supported
// operators and carries supported literal types. All problems are reported
// together.
//
// Validate is a pure function with no side effects.
func Validate(q Query) error {
	v := &validator{}
	v.validateQuery(q)
	return errors.Join(v.problems...)
}

// validator accumulates problems during traversal.
type validator struct {
	problems []error
}

func (v *validator) addProblem(format string, args ...any) {
	v.problems = append(v.problems, fmt.Errorf(format, args...))
}

func (v *validator) validateQuery(q Query) {
	if q == nil {
		v.addProblem("nil query")
		return
	}

	switch query := q.(type) {
	case Select:
		v.validateSelect(query)
	case *Select:
		v.validateSelect(*query)
	default:
		v.addProblem("unknown query type %T", q)
	}
}

func (v *validator) validateSelect(sel Select) {
	if sel.From == "" {
		v.addProblem("select: missing table")
	}
	for _, col := range sel.Columns {
		v.validateField(col)
	}
	if sel.Filter != nil {
		v.validatePredicate(sel.Filter)
	}
}

func (v *validator) validatePredicate(p Predicate) {
	switch pred := p.(type) {
	case Equals:
		v.validateEquals(pred)
	case *Equals:
		v.validateEquals(*pred)
	case Compare:
		v.validateCompare(pred)
	case *Compare:
		v.validateCompare(*pred)
	case Contains:
		v.validateField(pred.Field)
	case *Contains:
		v.validateField(pred.Field)
	case And:
		for _, sub := range pred.Predicates {
			v.validatePredicate(sub)
		}
	case *And:
		for _, sub := range pred.Predicates {
			v.validatePredicate(sub)
		}
	default:
		v.addProblem("unknown predicate type %T", p)
	}
}

func (v *validator) validateEquals(eq Equals) {
	v.validateField(eq.Field)
	switch eq.Value.(type) {
	case string, int, bool:
	default:
		v.addProblem("field %q compared to unsupported value type %T", eq.Field, eq.Value)
	}
}

func (v *validator) validateCompare(c Compare) {
	v.validateField(c.Field)
	if c.Op != OpAtLeast && c.Op != OpAtMost {
		v.addProblem("field %q: unsupported operator %q", c.Field, c.Op)
	}
}

func (v *validator) validateField(field string) {
	if !slices.Contains(StringColumns, field) {
		v.addProblem("unknown column %q", field)
	}
}
