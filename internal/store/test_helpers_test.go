package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/strand/internal/analysis"
	"github.com/roach88/strand/internal/model"
	"github.com/roach88/strand/internal/testutil"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// newTestRecord analyzes value and stamps it with the next clock instant.
func newTestRecord(clock *testutil.DeterministicClock, value string) model.Record {
	props := analysis.Analyze(value)
	return model.Record{
		ID:         props.SHA256Hash,
		Value:      value,
		Properties: props,
		CreatedAt:  clock.Now(),
	}
}

// values extracts record values in order.
func values(records []model.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Value
	}
	return out
}
