package posts

import (
	"errors"
	"fmt"
)

// Sentinel errors for common post operations
var (
	// ErrNotFound is returned when a post lookup finds no matching record
	ErrNotFound = errors.New("post not found")

	// ErrCommentNotFound is returned when a comment id is absent from the post
	ErrCommentNotFound = errors.New("comment not found")

	// ErrNotAuthorized is returned when the actor lacks rights for a mutation
	// (not the post author, or neither comment nor post author)
	ErrNotAuthorized = errors.New("not authorized")

	// ErrActorRequired is returned when a gated operation is called without
	// an authenticated actor. Handlers normally reject this earlier; the
	// service check is defense in depth.
	ErrActorRequired = errors.New("authentication required")
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// IsNotFound checks if error is a post or comment not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrCommentNotFound)
}
