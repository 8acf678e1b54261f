//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Requirement is a saved job-requirement record: the tech stacks a client
// asked for, reusable across processing runs.
type Requirement struct {
	ID         uuid.UUID   `json:"id"`
	Title      string      `json:"title"`
	Company    string      `json:"company,omitempty"`
	TechStacks []TechStack `json:"tech_stacks"`
	Status     string      `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// CreateRequirementRequest represents the request to save a requirement.
type CreateRequirementRequest struct {
	Title      string      `json:"title" validate:"required,min=1"`
	Company    string      `json:"company,omitempty"`
	TechStacks []TechStack `json:"tech_stacks" validate:"required,min=1,dive"`
	Status     string      `json:"status,omitempty" validate:"omitempty,oneof=open applied closed"`
}

// UpdateRequirementRequest represents a partial requirement update.
type UpdateRequirementRequest struct {
	Title      *string     `json:"title,omitempty" validate:"omitempty,min=1"`
	Company    *string     `json:"company,omitempty"`
	TechStacks []TechStack `json:"tech_stacks,omitempty" validate:"omitempty,min=1,dive"`
	Status     *string     `json:"status,omitempty" validate:"omitempty,oneof=open applied closed"`
}

// Validate validates the CreateRequirementRequest using the validator.
func (r *CreateRequirementRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdateRequirementRequest using the validator.
func (r *UpdateRequirementRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
