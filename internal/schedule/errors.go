package schedule

import "errors"

var (
	ErrMissingPatientID = errors.New("patient id is required")
	ErrMissingType      = errors.New("schedule type is required")
	ErrMissingDate      = errors.New("scheduled date is required")
	ErrInvalidStatus    = errors.New("invalid schedule status")
	ErrScheduleNotFound = errors.New("schedule not found")
)
