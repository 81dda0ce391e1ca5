package repository

import (
	"database/sql"
	"errors"
	"strings"
	"time"
)

// ErrNotFound is returned when a lookup by primary key matches no row.
var ErrNotFound = errors.New("not found")

// nullableString converts a sql.NullString into a *string.
func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// nullableFloat converts a sql.NullFloat64 into a *float64.
func nullableFloat(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}

// nullableStringToValue returns nil (SQL NULL) for a nil pointer.
func nullableStringToValue(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

// nullableFloatToValue returns nil (SQL NULL) for a nil pointer.
func nullableFloatToValue(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}

// inPlaceholders returns "?,?,?" for n ids along with the args slice.
func inPlaceholders(ids []string) (string, []interface{}) {
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return strings.TrimSuffix(strings.Repeat("?,", len(ids)), ","), args
}

// parseCreatedAt parses an RFC3339 created_at column, returning the zero
// time for legacy rows that carry something else.
func parseCreatedAt(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// formatCreatedAt stores a timestamp as RFC3339 UTC, defaulting to now.
func formatCreatedAt(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(time.RFC3339)
}
