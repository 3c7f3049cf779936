package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const levelStepColumns = `id, run_id, level, status, written, skipped, started_at, completed_at,
	duration_ms, error_message, created_at`

func scanLevelStep(row pgx.Row) (*LevelStep, error) {
	var step LevelStep
	err := row.Scan(&step.ID, &step.RunID, &step.Level, &step.Status, &step.Written, &step.Skipped,
		&step.StartedAt, &step.CompletedAt, &step.DurationMs, &step.ErrorMessage, &step.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &step, nil
}

// StartLevel records that generation of level began within a run
func (db *DB) StartLevel(ctx context.Context, runID uuid.UUID, level string) (*LevelStep, error) {
	step, err := scanLevelStep(db.pool.QueryRow(ctx,
		`INSERT INTO run_levels (id, run_id, level, status, started_at)
		 VALUES ($1, $2, $3, $4, NOW())
		 ON CONFLICT (run_id, level) DO UPDATE
		 SET status = EXCLUDED.status, started_at = NOW(), completed_at = NULL, error_message = NULL
		 RETURNING `+levelStepColumns,
		uuid.New(), runID, level, LevelStatusInProgress,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to start level %s: %w", level, err)
	}
	return step, nil
}

// GetLevelStep retrieves a level step by run and level name
func (db *DB) GetLevelStep(ctx context.Context, runID uuid.UUID, level string) (*LevelStep, error) {
	step, err := scanLevelStep(db.pool.QueryRow(ctx,
		`SELECT `+levelStepColumns+` FROM run_levels WHERE run_id = $1 AND level = $2`,
		runID, level,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get level step: %w", err)
	}
	return step, nil
}

// ListLevelSteps retrieves all level steps of a run in creation order
func (db *DB) ListLevelSteps(ctx context.Context, runID uuid.UUID) ([]LevelStep, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+levelStepColumns+` FROM run_levels WHERE run_id = $1 ORDER BY created_at`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list level steps: %w", err)
	}
	defer rows.Close()

	var steps []LevelStep
	for rows.Next() {
		step, err := scanLevelStep(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan level step: %w", err)
		}
		steps = append(steps, *step)
	}
	return steps, rows.Err()
}

// FinishLevel marks a level step completed or failed and stores its counters
func (db *DB) FinishLevel(ctx context.Context, runID uuid.UUID, level string, written, skipped int, errorMsg *string) error {
	current, err := db.GetLevelStep(ctx, runID, level)
	if err != nil {
		return err
	}
	if current == nil {
		return fmt.Errorf("level step not found: %s", level)
	}

	now := time.Now()
	var durationMs *int
	if current.StartedAt != nil {
		dur := int(now.Sub(*current.StartedAt).Milliseconds())
		durationMs = &dur
	}

	status := LevelStatusCompleted
	if errorMsg != nil {
		status = LevelStatusFailed
	}

	_, err = db.pool.Exec(ctx,
		`UPDATE run_levels
		 SET status = $1, written = $2, skipped = $3, completed_at = $4,
		     duration_ms = $5, error_message = $6
		 WHERE run_id = $7 AND level = $8`,
		status, written, skipped, now, durationMs, errorMsg, runID, level,
	)
	if err != nil {
		return fmt.Errorf("failed to finish level %s: %w", level, err)
	}
	return nil
}
