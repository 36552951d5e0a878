package entity

import "errors"

// Workflow error kinds. Operations wrap them with a message, so match with errors.Is.
var (
	ErrValidation        = errors.New("validation failed")
	ErrDuplicateName     = errors.New("duplicate name")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrConsistency       = errors.New("consistency failure")
)

// IsDomainError reports whether err already carries one of the workflow kinds.
func IsDomainError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrDuplicateName) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrConsistency)
}
