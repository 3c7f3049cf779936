package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Run status constants
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// Level step status constants
const (
	LevelStatusPending    = "pending"
	LevelStatusInProgress = "in_progress"
	LevelStatusCompleted  = "completed"
	LevelStatusFailed     = "failed"
)

// Run represents a generation run record
type Run struct {
	ID          uuid.UUID  `json:"id"`
	Seed        int64      `json:"seed"`
	OutputDir   string     `json:"output_dir"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// LevelStep tracks the generation of one level within a run
type LevelStep struct {
	ID           uuid.UUID  `json:"id"`
	RunID        uuid.UUID  `json:"run_id"`
	Level        string     `json:"level"`
	Status       string     `json:"status"`
	Written      int        `json:"written"`
	Skipped      int        `json:"skipped"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	DurationMs   *int       `json:"duration_ms,omitempty"`
	ErrorMessage *string    `json:"error_message,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ExerciseRecord is an archived compiled exercise
type ExerciseRecord struct {
	ContentID string          `json:"content_id"`
	Level     string          `json:"level"`
	Day       int             `json:"day"`
	SubArea   string          `json:"sub_area"`
	RunID     *uuid.UUID      `json:"run_id,omitempty"`
	Content   json.RawMessage `json:"content"`
	UpdatedAt time.Time       `json:"updated_at"`
}
