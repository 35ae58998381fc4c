// Package store provides SQLite-backed durable storage for analyzed strings.
//
// The store holds a single table, strings, keyed by the SHA-256 content
// hash of each value:
//   - id: content hash (PRIMARY KEY)
//   - value: the raw string (UNIQUE)
//   - derived properties as columns, character frequency as canonical JSON
//   - created_at: RFC 3339 UTC text with millisecond precision
//
// # Guarantees
//
// Insert is a single INSERT ... ON CONFLICT DO NOTHING statement, so
// uniqueness is decided atomically by SQLite; a duplicate surfaces as
// ErrConflict. DeleteByValue is a single DELETE whose affected-row count
// decides the result. Records are never updated.
//
// List results are ordered by created_at, then id (COLLATE BINARY). Order is
// stable across repeated calls with no intervening writes.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - one open connection: SQLite allows a single writer
package store
