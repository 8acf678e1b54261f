package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-enhancer/internal/types"
)

// CreateRequirement stores a new requirement and returns the full record.
func (db *DB) CreateRequirement(ctx context.Context, req *types.CreateRequirementRequest) (*types.Requirement, error) {
	stacks, err := json.Marshal(req.TechStacks)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tech stacks: %w", err)
	}
	status := req.Status
	if status == "" {
		status = "open"
	}

	var r types.Requirement
	var raw []byte
	err = db.pool.QueryRow(ctx,
		`INSERT INTO requirements (title, company, tech_stacks, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, title, company, tech_stacks, status, created_at, updated_at`,
		req.Title, req.Company, stacks, status,
	).Scan(&r.ID, &r.Title, &r.Company, &raw, &r.Status, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create requirement: %w", err)
	}
	if err := json.Unmarshal(raw, &r.TechStacks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tech stacks: %w", err)
	}
	return &r, nil
}

// GetRequirement retrieves a requirement by id. Returns nil when no row
// matches.
func (db *DB) GetRequirement(ctx context.Context, id uuid.UUID) (*types.Requirement, error) {
	var r types.Requirement
	var raw []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, title, company, tech_stacks, status, created_at, updated_at
		 FROM requirements WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.Title, &r.Company, &raw, &r.Status, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get requirement: %w", err)
	}
	if err := json.Unmarshal(raw, &r.TechStacks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tech stacks: %w", err)
	}
	return &r, nil
}

// ListRequirements returns requirements newest first, optionally filtered
// by status.
func (db *DB) ListRequirements(ctx context.Context, status string) ([]types.Requirement, error) {
	query := `SELECT id, title, company, tech_stacks, status, created_at, updated_at
		 FROM requirements`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list requirements: %w", err)
	}
	defer rows.Close()

	var out []types.Requirement
	for rows.Next() {
		var r types.Requirement
		var raw []byte
		if err := rows.Scan(&r.ID, &r.Title, &r.Company, &raw, &r.Status, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan requirement: %w", err)
		}
		if err := json.Unmarshal(raw, &r.TechStacks); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tech stacks: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// UpdateRequirement applies a partial update and returns the new record.
// Returns nil when the id does not exist.
func (db *DB) UpdateRequirement(ctx context.Context, id uuid.UUID, req *types.UpdateRequirementRequest) (*types.Requirement, error) {
	current, err := db.GetRequirement(ctx, id)
	if err != nil || current == nil {
		return current, err
	}

	if req.Title != nil {
		current.Title = *req.Title
	}
	if req.Company != nil {
		current.Company = *req.Company
	}
	if req.TechStacks != nil {
		current.TechStacks = req.TechStacks
	}
	if req.Status != nil {
		current.Status = *req.Status
	}

	stacks, err := json.Marshal(current.TechStacks)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tech stacks: %w", err)
	}

	var r types.Requirement
	var raw []byte
	err = db.pool.QueryRow(ctx,
		`UPDATE requirements
		 SET title = $1, company = $2, tech_stacks = $3, status = $4, updated_at = NOW()
		 WHERE id = $5
		 RETURNING id, title, company, tech_stacks, status, created_at, updated_at`,
		current.Title, current.Company, stacks, current.Status, id,
	).Scan(&r.ID, &r.Title, &r.Company, &raw, &r.Status, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update requirement: %w", err)
	}
	if err := json.Unmarshal(raw, &r.TechStacks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tech stacks: %w", err)
	}
	return &r, nil
}

// DeleteRequirement removes a requirement. Reports whether a row was
// deleted.
func (db *DB) DeleteRequirement(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM requirements WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete requirement: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
