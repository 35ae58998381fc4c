// Package analysis derives the properties strand stores for every string.
//
// Analyze is a pure function: no I/O, no shared state, no failure modes.
// The same input always produces the same Properties, including the content
// hash used as the record identifier.
//
// Counting rules:
//   - length counts UTF-16 code units, so clients written against the JSON
//     API see the same number their own string length reports
//   - unique_characters and character_frequency_map count Unicode code points
//   - word_count counts whitespace-separated tokens; empty or whitespace-only
//     input has zero words
//   - is_palindrome compares the lower-cased input with its code-point
//     reversal without stripping spaces or punctuation
package analysis
