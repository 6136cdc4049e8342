package usecase

import (
	"errors"
	"fmt"
)

// Error kinds returned by every operation. Callers match them with
// errors.Is; the HTTP layer maps each kind to a status code.
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("unauthorized to perform that action")
	ErrNotFound        = errors.New("not found")
	ErrHasDependents   = errors.New("still referenced by other records")
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
