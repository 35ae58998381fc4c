package translator

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/roach88/strand/internal/model"
)

var (
	wordCountPattern  = regexp.MustCompile(`(\d+) words?`)
	longerThanPattern = regexp.MustCompile(`longer than (\d+)`)
	containsPattern   = regexp.MustCompile(`contain(?:ing)? the letter (\w)`)
)

// Interpretation pairs a free-text query with the filters derived from it.
type Interpretation struct {
	Original      string          `json:"original" yaml:"original"`
	ParsedFilters model.FilterSet `json:"parsed_filters" yaml:"parsed_filters"`
}

// Interpret translates query and keeps the original text alongside.
func Interpret(query string) Interpretation {
	return Interpretation{
		Original:      query,
		ParsedFilters: Translate(query),
	}
}

// Translate maps the recognized phrases in query to filters.
func Translate(query string) model.FilterSet {
	var filters model.FilterSet
	lower := strings.ToLower(query)

	if strings.Contains(lower, "palindromic") {
		filters.IsPalindrome = model.Bool(true)
	}

	if strings.Contains(lower, "single word") {
		filters.WordCount = model.Int(1)
	}

	if n, ok := matchInt(wordCountPattern, lower); ok {
		filters.WordCount = model.Int(n)
	}

	if n, ok := matchInt(longerThanPattern, lower); ok && n < math.MaxInt {
		filters.MinLength = model.Int(n + 1)
	}

	if m := containsPattern.FindStringSubmatch(lower); m != nil {
		filters.ContainsCharacter = model.String(m[1])
	}

	return filters
}

// matchInt returns the first capture group of re in s as an int. Numbers
// too large for an int do not match.
func matchInt(re *regexp.Regexp, s string) (int, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
