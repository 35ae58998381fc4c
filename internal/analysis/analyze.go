package analysis

import (
	"slices"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/roach88/strand/internal/model"
)

// Analyze computes every derived property of value.
func Analyze(value string) model.Properties {
	freq := CharacterFrequency(value)
	return model.Properties{
		Length:             Length(value),
		IsPalindrome:       IsPalindrome(value),
		UniqueCharacters:   len(freq),
		WordCount:          WordCount(value),
		SHA256Hash:         ContentHash(value),
		CharacterFrequency: freq,
	}
}

// Length returns the number of UTF-16 code units in value.
func Length(value string) int {
	n := 0
	for _, r := range value {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}

// IsPalindrome reports whether the lower-cased value reads the same
// reversed. Empty and single-character strings are palindromes.
func IsPalindrome(value string) bool {
	// A Caser is stateful; build one per call.
	lower := []rune(cases.Lower(language.Und).String(value))
	reversed := slices.Clone(lower)
	slices.Reverse(reversed)
	return slices.Equal(lower, reversed)
}

// WordCount returns the number of whitespace-separated tokens in value.
func WordCount(value string) int {
	return len(strings.Fields(value))
}

// CharacterFrequency maps each code point in value to its occurrence count.
func CharacterFrequency(value string) map[string]int {
	freq := make(map[string]int)
	for _, r := range value {
		freq[string(r)]++
	}
	return freq
}
