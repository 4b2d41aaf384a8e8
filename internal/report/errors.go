package report

import "errors"

var (
	ErrMissingPatientID = errors.New("patient id is required")
	ErrMissingHandler   = errors.New("handler id is required")
	ErrMissingAction    = errors.New("handling action is required")
	ErrReportNotFound   = errors.New("report not found")
	ErrAlreadyHandled   = errors.New("alert already handled")
)
