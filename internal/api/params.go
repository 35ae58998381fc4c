package api

import (
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/roach88/strand/internal/model"
)

// parseFilters reads the structured listing filters from query parameters.
//
// is_palindrome is true only for the literal "true". Numeric parameters must
// be non-negative integers and contains_character exactly one character.
func parseFilters(q url.Values) (model.FilterSet, *Error) {
	var f model.FilterSet

	if q.Has("is_palindrome") {
		f.IsPalindrome = model.Bool(q.Get("is_palindrome") == "true")
	}

	var err *Error
	if f.MinLength, err = parseCount(q, "min_length"); err != nil {
		return model.FilterSet{}, err
	}
	if f.MaxLength, err = parseCount(q, "max_length"); err != nil {
		return model.FilterSet{}, err
	}
	if f.WordCount, err = parseCount(q, "word_count"); err != nil {
		return model.FilterSet{}, err
	}

	if q.Has("contains_character") {
		c := q.Get("contains_character")
		if utf8.RuneCountInString(c) != 1 {
			return model.FilterSet{}, validationError("Invalid 'contains_character': must be a single character")
		}
		f.ContainsCharacter = model.String(c)
	}

	if f.MinLength != nil && f.MaxLength != nil && *f.MinLength > *f.MaxLength {
		return model.FilterSet{}, validationError("Invalid range: 'min_length' must not exceed 'max_length'")
	}

	return f, nil
}

func parseCount(q url.Values, name string) (*int, *Error) {
	if !q.Has(name) {
		return nil, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(q.Get(name)))
	if err != nil || n < 0 {
		return nil, validationError("Invalid '%s': must be a non-negative integer", name)
	}
	return &n, nil
}
