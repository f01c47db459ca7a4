package users

import (
	"errors"
	"fmt"
)

// Sentinel errors for common user operations
var (
	// ErrUserNotFound is returned when a user lookup finds no matching record
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameTaken is returned when the username belongs to another account
	ErrUsernameTaken = errors.New("username already taken")

	// ErrEmailTaken is returned when the email belongs to another account
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned for unknown email or wrong password.
	// The two cases are deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// InvalidUsernameError is returned when a username fails format validation
type InvalidUsernameError struct {
	Username string
	Reason   string
}

func (e *InvalidUsernameError) Error() string {
	return fmt.Sprintf("invalid username %q: %s", e.Username, e.Reason)
}

// InvalidEmailError is returned when an email fails format validation
type InvalidEmailError struct {
	Email string
}

func (e *InvalidEmailError) Error() string {
	return fmt.Sprintf("invalid email address: %q", e.Email)
}

// WeakPasswordError is returned when a password fails strength requirements
type WeakPasswordError struct {
	Reason string
}

func (e *WeakPasswordError) Error() string {
	return fmt.Sprintf("password does not meet strength requirements: %s", e.Reason)
}

// IsValidationError checks if an error is a register/login input validation error
func IsValidationError(err error) bool {
	var usernameErr *InvalidUsernameError
	var emailErr *InvalidEmailError
	var passwordErr *WeakPasswordError
	return errors.As(err, &usernameErr) ||
		errors.As(err, &emailErr) ||
		errors.As(err, &passwordErr)
}

// IsConflict checks if an error is a duplicate username/email error
func IsConflict(err error) bool {
	return errors.Is(err, ErrUsernameTaken) || errors.Is(err, ErrEmailTaken)
}
