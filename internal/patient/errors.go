package patient

import "errors"

var (
	ErrMissingFullName    = errors.New("full name is required")
	ErrMissingSurgeryDate = errors.New("surgery date is required")
	ErrInvalidStatus      = errors.New("invalid patient status")
	ErrInvalidRiskLevel   = errors.New("invalid risk level")
	ErrPatientNotFound    = errors.New("patient not found")
)
