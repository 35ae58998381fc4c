package model

import "strings"

// FilterSet is a conjunction of optional predicates over stored records.
// A nil field means the predicate is not applied; an empty FilterSet
// matches every record.
type FilterSet struct {
	IsPalindrome      *bool   `json:"is_palindrome,omitempty" yaml:"is_palindrome,omitempty"`
	MinLength         *int    `json:"min_length,omitempty" yaml:"min_length,omitempty"`
	MaxLength         *int    `json:"max_length,omitempty" yaml:"max_length,omitempty"`
	WordCount         *int    `json:"word_count,omitempty" yaml:"word_count,omitempty"`
	ContainsCharacter *string `json:"contains_character,omitempty" yaml:"contains_character,omitempty"`
}

// IsEmpty reports whether no predicate is set.
func (f FilterSet) IsEmpty() bool {
	return f.IsPalindrome == nil &&
		f.MinLength == nil &&
		f.MaxLength == nil &&
		f.WordCount == nil &&
		f.ContainsCharacter == nil
}

// Matches evaluates the filter set against a record in memory. It applies
// the same semantics the store applies in SQL.
func (f FilterSet) Matches(r Record) bool {
	p := r.Properties
	if f.IsPalindrome != nil && p.IsPalindrome != *f.IsPalindrome {
		return false
	}
	if f.MinLength != nil && p.Length < *f.MinLength {
		return false
	}
	if f.MaxLength != nil && p.Length > *f.MaxLength {
		return false
	}
	if f.WordCount != nil && p.WordCount != *f.WordCount {
		return false
	}
	if f.ContainsCharacter != nil && !strings.Contains(r.Value, *f.ContainsCharacter) {
		return false
	}
	return true
}

// Object converts the set fields into a plain map suitable for
// MarshalCanonical. Unset fields are omitted.
func (f FilterSet) Object() map[string]any {
	obj := make(map[string]any)
	if f.IsPalindrome != nil {
		obj["is_palindrome"] = *f.IsPalindrome
	}
	if f.MinLength != nil {
		obj["min_length"] = *f.MinLength
	}
	if f.MaxLength != nil {
		obj["max_length"] = *f.MaxLength
	}
	if f.WordCount != nil {
		obj["word_count"] = *f.WordCount
	}
	if f.ContainsCharacter != nil {
		obj["contains_character"] = *f.ContainsCharacter
	}
	return obj
}

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to n.
func Int(n int) *int { return &n }

// String returns a pointer to s.
func String(s string) *string { return &s }
