package entity

import "errors"

var (
	ErrSignatureInvalid = errors.New("invalid signature")
	ErrMalformedRequest = errors.New("malformed request")
	ErrExtractionFailed = errors.New("failed to extract data")
	ErrValidationFailed = errors.New("validation failed")
	ErrStoreFailure     = errors.New("failed to store data")
)
