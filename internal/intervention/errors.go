package intervention

import "errors"

var (
	ErrMissingPatientID = errors.New("patient id is required")
	ErrMissingType      = errors.New("intervention type is required")
	ErrInvalidOutcome   = errors.New("invalid outcome")
)
