package queryir

import "github.com/roach88/strand/internal/model"

// Query represents an abstract query over stored strings.
//
// Sealed: only types in this package implement it.
type Query interface {
	queryNode()
}

// Predicate represents a filter condition on a Select.
//
// Sealed: only types in this package implement it.
type Predicate interface {
	predicateNode()
}

// Select represents table access with filtering.
//
// Semantics:
//
//	SELECT <columns> FROM <from> WHERE <filter>
//
// Empty Columns selects every column of the strings table in schema order.
type Select struct {
	From    string    // Table name
	Columns []string  // Projected columns (empty = all)
	Filter  Predicate // WHERE conditions (nil = no filter)
}

func (Select) queryNode() {}

// Equals is the predicate "<field> = <value>". Value must be a string, an
// int or a bool.
type Equals struct {
	Field string
	Value any
}

func (Equals) predicateNode() {}

// CompareOp is an ordering operator usable in Compare.
type CompareOp string

const (
	OpAtLeast CompareOp = ">="
	OpAtMost  CompareOp = "<="
)

// Compare is the predicate "<field> <op> <value>" over an integer column.
type Compare struct {
	Field string
	Op    CompareOp
	Value int
}

func (Compare) predicateNode() {}

// Contains is true when Substring occurs anywhere in the text column Field.
// Matching is case-sensitive.
type Contains struct {
	Field     string
	Substring string
}

func (Contains) predicateNode() {}

// And is a conjunction. An empty And is always true.
type And struct {
	Predicates []Predicate
}

func (And) predicateNode() {}

// Columns of the strings table, in schema order.
const (
	ColumnID                 = "id"
	ColumnValue              = "value"
	ColumnLength             = "length"
	ColumnIsPalindrome       = "is_palindrome"
	ColumnUniqueCharacters   = "unique_characters"
	ColumnWordCount          = "word_count"
	ColumnCharacterFrequency = "character_frequency_map"
	ColumnCreatedAt          = "created_at"
)

// StringColumns lists every column of the strings table in schema order.
var StringColumns = []string{
	ColumnID,
	ColumnValue,
	ColumnLength,
	ColumnIsPalindrome,
	ColumnUniqueCharacters,
	ColumnWordCount,
	ColumnCharacterFrequency,
	ColumnCreatedAt,
}

// FromFilterSet builds the Select that lists records of table matching f.
// Predicates appear in a fixed order so compiled SQL is stable.
func FromFilterSet(table string, f model.FilterSet) Select {
	var preds []Predicate
	if f.IsPalindrome != nil {
		preds = append(preds, Equals{Field: ColumnIsPalindrome, Value: *f.IsPalindrome})
	}
	if f.MinLength != nil {
		preds = append(preds, Compare{Field: ColumnLength, Op: OpAtLeast, Value: *f.MinLength})
	}
	if f.MaxLength != nil {
		preds = append(preds, Compare{Field: ColumnLength, Op: OpAtMost, Value: *f.MaxLength})
	}
	if f.WordCount != nil {
		preds = append(preds, Equals{Field: ColumnWordCount, Value: *f.WordCount})
	}
	if f.ContainsCharacter != nil {
		preds = append(preds, Contains{Field: ColumnValue, Substring: *f.ContainsCharacter})
	}

	sel := Select{From: table, Columns: StringColumns}
	if len(preds) > 0 {
		sel.Filter = And{Predicates: preds}
	}
	return sel
}
