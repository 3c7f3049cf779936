package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/daily-reading/internal/types"
)

var sourceIndexColumns = []string{"level", "day", "content_id", "type", "source_type", "source_path", "source_title"}

// ReplaceSourceIndex replaces the whole source index in one transaction
func (db *DB) ReplaceSourceIndex(ctx context.Context, entries []types.SourceIndexEntry) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM source_index`); err != nil {
		return fmt.Errorf("failed to clear source index: %w", err)
	}

	_, err = tx.CopyFrom(ctx, pgx.Identifier{"source_index"}, sourceIndexColumns,
		pgx.CopyFromSlice(len(entries), func(i int) ([]any, error) {
			e := entries[i]
			return []any{e.Level, e.Day, e.ContentID, e.Type, e.SourceType, e.SourcePath, e.SourceTitle}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to copy source index: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit source index: %w", err)
	}
	return nil
}

// ListSourceIndex returns the source index ordered by level and day
func (db *DB) ListSourceIndex(ctx context.Context) ([]types.SourceIndexEntry, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT level, day, content_id, type, source_type, source_path, source_title
		 FROM source_index ORDER BY level, day`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list source index: %w", err)
	}
	defer rows.Close()

	var entries []types.SourceIndexEntry
	for rows.Next() {
		var e types.SourceIndexEntry
		if err := rows.Scan(&e.Level, &e.Day, &e.ContentID, &e.Type, &e.SourceType, &e.SourcePath, &e.SourceTitle); err != nil {
			return nil, fmt.Errorf("failed to scan source index entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
