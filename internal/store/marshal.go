package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/strand/internal/model"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// marshalFrequency converts a character frequency map to canonical JSON
// TEXT for storage.
func marshalFrequency(freq map[string]int) (string, error) {
	if freq == nil {
		return "{}", nil
	}
	data, err := model.MarshalCanonical(freq)
	if err != nil {
		return "", fmt.Errorf("marshal character frequency: %w", err)
	}
	return string(data), nil
}

// unmarshalFrequency parses the stored character frequency TEXT.
// Always returns a non-nil map.
func unmarshalFrequency(data string) (map[string]int, error) {
	freq := map[string]int{}
	if data == "" || data == "{}" {
		return freq, nil
	}
	if err := json.Unmarshal([]byte(data), &freq); err != nil {
		return nil, fmt.Errorf("unmarshal character frequency: %w", err)
	}
	return freq, nil
}

// scanRecord scans a row selected with queryir.StringColumns.
func scanRecord(row rowScanner) (model.Record, error) {
	var (
		rec        model.Record
		palindrome int64
		freqJSON   string
		createdAt  string
	)

	if err := row.Scan(
		&rec.ID, &rec.Value, &rec.Properties.Length, &palindrome,
		&rec.Properties.UniqueCharacters, &rec.Properties.WordCount,
		&freqJSON, &createdAt,
	); err != nil {
		return model.Record{}, err
	}

	freq, err := unmarshalFrequency(freqJSON)
	if err != nil {
		return model.Record{}, err
	}
	ts, err := model.ParseTimestamp(createdAt)
	if err != nil {
		return model.Record{}, fmt.Errorf("parse created_at: %w", err)
	}

	rec.Properties.IsPalindrome = palindrome != 0
	rec.Properties.SHA256Hash = rec.ID
	rec.Properties.CharacterFrequency = freq
	rec.CreatedAt = ts
	return rec, nil
}
