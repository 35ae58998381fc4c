// Package translator turns a free-text query into a model.FilterSet.
//
// Translation is literal pattern matching over the lower-cased query. Each
// rule below is applied independently, in order; a later rule overwrites a
// field set by an earlier one:
//
//	"palindromic"                    → is_palindrome = true
//	"single word"                    → word_count = 1
//	"<N> word" / "<N> words"         → word_count = N
//	"longer than <N>"                → min_length = N + 1
//	"contain(ing) the letter <c>"    → contains_character = c
//
// Text matching no rule yields an empty FilterSet, which matches every
// record. There is no synonym expansion and no negation handling: "not
// palindromic" still sets is_palindrome = true.
package translator
