package webhook

import (
	"fmt"

	"github.com/yz4230/repowatch/internal/entity"
)

// requiredFields is checked in order so the reported field is deterministic.
var requiredFields = []string{"author", "pushed_to", "on", "sample"}

// ValidationError names the first required field that is missing or has
// the wrong type.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func (e *ValidationError) Unwrap() error { return entity.ErrValidationFailed }

// Validate checks a record document before it is persisted. timestamp is not
// required; the store assigns it when absent.
func Validate(doc map[string]any) error {
	for _, field := range requiredFields {
		value, ok := doc[field]
		if !ok || value == nil {
			return &ValidationError{Field: field, Reason: fmt.Sprintf("Missing required field: %s", field)}
		}
		s, ok := value.(string)
		if !ok {
			return &ValidationError{Field: field, Reason: fmt.Sprintf("Field %s must be of type string", field)}
		}
		if s == "" {
			return &ValidationError{Field: field, Reason: fmt.Sprintf("Missing required field: %s", field)}
		}
	}
	return nil
}

func ValidateRecord(r *entity.Record) error {
	if r == nil {
		return &ValidationError{Field: requiredFields[0], Reason: fmt.Sprintf("Missing required field: %s", requiredFields[0])}
	}
	return Validate(r.Document())
}
