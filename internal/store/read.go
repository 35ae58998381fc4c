package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/strand/internal/model"
	"github.com/roach88/strand/internal/queryir"
	"github.com/roach88/strand/internal/querysql"
)

// GetByValue retrieves the record holding value.
// Returns ErrNotFound if no such record exists.
func (s *Store) GetByValue(ctx context.Context, value string) (model.Record, error) {
	query := fmt.Sprintf(`SELECT %s FROM strings WHERE value = ?`, strings.Join(queryir.StringColumns, ", "))
	rec, err := scanRecord(s.db.QueryRowContext(ctx, query, value))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Record{}, ErrNotFound
	}
	if err != nil {
		return model.Record{}, fmt.Errorf("get string: %w", err)
	}
	return rec, nil
}

// List returns every record matching filters, in insertion order.
//
// Returns an empty slice (not nil) when nothing matches.
func (s *Store) List(ctx context.Context, filters model.FilterSet) ([]model.Record, error) {
	query, params, err := querysql.NewSQLCompiler().Compile(queryir.FromFilterSet(tableName, filters))
	if err != nil {
		return nil, fmt.Errorf("list strings: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("list strings: %w", err)
	}
	defer rows.Close()

	records := []model.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("list strings: scan: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list strings: iterate: %w", err)
	}

	return records, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM strings`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count strings: %w", err)
	}
	return n, nil
}
