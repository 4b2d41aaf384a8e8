package problem

import "errors"

var (
	ErrMissingPatientID   = errors.New("patient id is required")
	ErrMissingCategory    = errors.New("problem category is required")
	ErrMissingDescription = errors.New("problem description is required")
	ErrInvalidCategory    = errors.New("invalid problem category")
	ErrInvalidSeverity    = errors.New("invalid severity")
	ErrInvalidStatus      = errors.New("invalid problem status")
	ErrProblemNotFound    = errors.New("problem not found")
)
