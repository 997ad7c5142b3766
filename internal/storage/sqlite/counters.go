package sqlite

import (
	"context"
	"fmt"
)

// NextSerialID increments and returns the counter for the given kind.
// The upsert-and-return runs as one statement, so concurrent callers can
// never observe the same value; the counter row is created lazily on first use.
func (s *SQLiteStore) NextSerialID(ctx context.Context, kind string) (int64, error) {
	query := `
		INSERT INTO counters (kind, count) VALUES (?, 1)
		ON CONFLICT(kind) DO UPDATE SET count = count + 1
		RETURNING count
	`

	var count int64
	if err := s.db.QueryRowContext(ctx, query, kind).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to increment counter for %s: %w", kind, err)
	}

	return count, nil
}
