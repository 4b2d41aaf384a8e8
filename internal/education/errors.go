package education

import "errors"

var (
	ErrMissingPatientID  = errors.New("patient id is required")
	ErrMissingMaterialID = errors.New("material id is required")
	ErrUnknownMaterial   = errors.New("unknown education material")
	ErrInvalidPushType   = errors.New("invalid push type")
	ErrPushNotFound      = errors.New("education push not found")
	ErrAlreadyRead       = errors.New("education push already marked read")
)
