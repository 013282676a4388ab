package service

import (
	"errors"
	"fmt"

	"github.com/editorial-backoffice/internal/validation"
)

var (
	// ErrUnauthenticated is raised before any repository access when an
	// operation runs without an authenticated actor. Callers treat it as a
	// redirect-to-login signal, not a data error.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrImmutableField rejects patches that try to edit title or slug.
	ErrImmutableField = errors.New("title and slug cannot be edited")

	// ErrShipUnvalidated rejects shipping an article that has not been
	// validated. Raised before any write.
	ErrShipUnvalidated = errors.New("article must be validated before shipping")
)

// ValidationFailed carries per-field input errors.
type ValidationFailed struct {
	Errors []validation.ValidationError
}

func (e *ValidationFailed) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Errors))
}
