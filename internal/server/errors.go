// Package server provides the HTTP REST API for the resume enhancer.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/resume-enhancer/internal/docx"
	"github.com/jonathan/resume-enhancer/internal/processor"
)

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrRequirementNotFound indicates the requirement record was not found
type ErrRequirementNotFound struct {
	ID uuid.UUID
}

func (e *ErrRequirementNotFound) Error() string {
	return fmt.Sprintf("requirement not found: %s", e.ID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrInvalidCredentials:
		return http.StatusUnauthorized
	case *ErrRequirementNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	}
	switch {
	case errors.Is(err, docx.ErrInvalidDocument):
		return http.StatusBadRequest
	case errors.Is(err, processor.ErrNoProjects):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
