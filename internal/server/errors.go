package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/nikhil/job-portal/internal/db"
)

// ErrJobNotFound indicates the job listing was not found
type ErrJobNotFound struct {
	JobID uuid.UUID
}

func (e *ErrJobNotFound) Error() string {
	return fmt.Sprintf("job not found: %s", e.JobID)
}

// ErrCandidateNotFound indicates the candidate profile was not found
type ErrCandidateNotFound struct {
	CandidateID uuid.UUID
}

func (e *ErrCandidateNotFound) Error() string {
	return fmt.Sprintf("candidate not found: %s", e.CandidateID)
}

// ErrApplicationNotFound indicates the application was not found
type ErrApplicationNotFound struct {
	ApplicationID uuid.UUID
}

func (e *ErrApplicationNotFound) Error() string {
	return fmt.Sprintf("application not found: %s", e.ApplicationID)
}

// ErrJobNotOpen indicates the job is not accepting applications
type ErrJobNotOpen struct {
	JobID  uuid.UUID
	Status string
}

func (e *ErrJobNotOpen) Error() string {
	return fmt.Sprintf("job %s is not accepting applications (status: %s)", e.JobID, e.Status)
}

// ErrInvalidTransition indicates a disallowed status change
type ErrInvalidTransition struct {
	From string
	To   string
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("cannot transition from %s to %s", e.From, e.To)
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
	if errors.Is(err, db.ErrDuplicateApplication) {
		return http.StatusConflict
	}
	switch err.(type) {
	case *ErrJobNotFound, *ErrCandidateNotFound, *ErrApplicationNotFound:
		return http.StatusNotFound
	case *ErrJobNotOpen, *ErrInvalidTransition:
		return http.StatusConflict
	case *ErrValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
