package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-enhancer/internal/types"
)

// ProcessingRun is one recorded document-processing outcome.
type ProcessingRun struct {
	ID            uuid.UUID  `json:"id"`
	RequirementID *uuid.UUID `json:"requirement_id,omitempty"`
	Filename      string     `json:"filename"`
	Success       bool       `json:"success"`
	PointsAdded   int        `json:"points_added"`
	ProjectsUsed  int        `json:"projects_used"`
	Error         string     `json:"error,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// RecordRun stores the outcome of one processing result and returns the
// run id. requirementID may be nil for ad-hoc runs.
func (db *DB) RecordRun(ctx context.Context, requirementID *uuid.UUID, result *types.ProcessResult) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO processing_runs (requirement_id, filename, success, points_added, projects_used, error)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		requirementID, result.Filename, result.Success, result.PointsAdded, result.ProjectsUsed, result.Error,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to record run: %w", err)
	}
	return id, nil
}

// ListRuns returns recent runs newest first, up to limit. A zero limit
// defaults to 50.
func (db *DB) ListRuns(ctx context.Context, limit int) ([]ProcessingRun, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, requirement_id, filename, success, points_added, projects_used, error, created_at
		 FROM processing_runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var out []ProcessingRun
	for rows.Next() {
		var r ProcessingRun
		if err := rows.Scan(&r.ID, &r.RequirementID, &r.Filename, &r.Success, &r.PointsAdded, &r.ProjectsUsed, &r.Error, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
