package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/strand/internal/model"
)

// Insert stores rec. Returns ErrConflict when a record with the same value
// or id already exists; nothing is written in that case.
//
// The uniqueness check and the write are one statement, so concurrent
// inserts of the same value cannot both succeed.
func (s *Store) Insert(ctx context.Context, rec model.Record) error {
	if rec.ID == "" {
		return errors.New("insert string: empty id")
	}

	freqJSON, err := marshalFrequency(rec.Properties.CharacterFrequency)
	if err != nil {
		return fmt.Errorf("insert string: %w", err)
	}

	palindrome := 0
	if rec.Properties.IsPalindrome {
		palindrome = 1
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO strings
		(id, value, length, is_palindrome, unique_characters, word_count, character_frequency_map, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`,
		rec.ID,
		rec.Value,
		rec.Properties.Length,
		palindrome,
		rec.Properties.UniqueCharacters,
		rec.Properties.WordCount,
		freqJSON,
		model.FormatTimestamp(rec.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert string: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert string: rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrConflict
	}

	return nil
}

// DeleteByValue removes the record holding value. Reports whether a record
// was removed.
func (s *Store) DeleteByValue(ctx context.Context, value string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM strings WHERE value = ?`, value)
	if err != nil {
		return false, fmt.Errorf("delete string: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete string: rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}
