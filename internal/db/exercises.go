package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/daily-reading/internal/types"
)

// SaveExercise archives a compiled exercise, replacing any earlier version of the same
// content id. runID may be uuid.Nil.
func (db *DB) SaveExercise(ctx context.Context, runID uuid.UUID, level string, day int, ex *types.Exercise) error {
	content, err := json.Marshal(ex)
	if err != nil {
		return fmt.Errorf("failed to marshal exercise: %w", err)
	}

	var run *uuid.UUID
	if runID != uuid.Nil {
		run = &runID
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO exercises (content_id, level, day, sub_area, run_id, content)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (content_id) DO UPDATE
		 SET level = $2, day = $3, sub_area = $4, run_id = $5, content = $6, updated_at = NOW()`,
		ex.ContentID, level, day, ex.SubArea, run, content,
	)
	if err != nil {
		return fmt.Errorf("failed to save exercise %s: %w", ex.ContentID, err)
	}
	return nil
}

// GetExercise retrieves an archived exercise by content id
func (db *DB) GetExercise(ctx context.Context, contentID string) (*ExerciseRecord, error) {
	var rec ExerciseRecord
	err := db.pool.QueryRow(ctx,
		`SELECT content_id, level, day, sub_area, run_id, content, updated_at
		 FROM exercises WHERE content_id = $1`,
		contentID,
	).Scan(&rec.ContentID, &rec.Level, &rec.Day, &rec.SubArea, &rec.RunID, &rec.Content, &rec.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get exercise: %w", err)
	}
	return &rec, nil
}

// CountExercises returns the number of archived exercises per level
func (db *DB) CountExercises(ctx context.Context) (map[string]int, error) {
	rows, err := db.pool.Query(ctx, `SELECT level, COUNT(*) FROM exercises GROUP BY level`)
	if err != nil {
		return nil, fmt.Errorf("failed to count exercises: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var level string
		var n int
		if err := rows.Scan(&level, &n); err != nil {
			return nil, fmt.Errorf("failed to scan exercise count: %w", err)
		}
		counts[level] = n
	}
	return counts, rows.Err()
}
