package model

import (
	"encoding/json"
	"time"
)

// TimestampLayout is the wire format of Record.CreatedAt: RFC 3339, UTC,
// millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Properties holds the values derived from a string by the analyzer.
type Properties struct {
	Length             int            `json:"length" yaml:"length"`
	IsPalindrome       bool           `json:"is_palindrome" yaml:"is_palindrome"`
	UniqueCharacters   int            `json:"unique_characters" yaml:"unique_characters"`
	WordCount          int            `json:"word_count" yaml:"word_count"`
	SHA256Hash         string         `json:"sha256_hash" yaml:"sha256_hash"`
	CharacterFrequency map[string]int `json:"character_frequency_map" yaml:"character_frequency_map"`
}

// Record is a stored string together with its analysis.
//
// ID equals Properties.SHA256Hash. CreatedAt is assigned once, at insertion.
type Record struct {
	ID         string     `json:"id"`
	Value      string     `json:"value"`
	Properties Properties `json:"properties"`
	CreatedAt  time.Time  `json:"created_at"`
}

// recordJSON mirrors Record with CreatedAt rendered in TimestampLayout.
type recordJSON struct {
	ID         string     `json:"id"`
	Value      string     `json:"value"`
	Properties Properties `json:"properties"`
	CreatedAt  string     `json:"created_at"`
}

// MarshalJSON implements json.Marshaler.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(recordJSON{
		ID:         r.ID,
		Value:      r.Value,
		Properties: r.Properties,
		CreatedAt:  FormatTimestamp(r.CreatedAt),
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw recordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	createdAt, err := ParseTimestamp(raw.CreatedAt)
	if err != nil {
		return err
	}
	*r = Record{
		ID:         raw.ID,
		Value:      raw.Value,
		Properties: raw.Properties,
		CreatedAt:  createdAt,
	}
	return nil
}

// FormatTimestamp renders t in TimestampLayout after converting to UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses a timestamp written by FormatTimestamp. Any RFC 3339
// value is accepted.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
