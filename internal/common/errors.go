// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common application errors.
var (
	// Session errors.
	ErrNoSession = errors.New("no active session")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// NetworkNotice is shown for any request that never produced a response.
const NetworkNotice = "Network error, please try again"

// ValidationError carries field-level messages that blocked a submission.
// It never reaches the network.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AuthError means the credential is missing or was rejected by the server.
type AuthError struct {
	Err     error
	Message string
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// APIError means the server answered with a non-success shape or status.
type APIError struct {
	Message string
	Status  int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// NetworkError means the request itself failed and no response arrived.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// BusinessRuleError is a local rejection issued before any network call.
type BusinessRuleError struct {
	Message string
}

func (e *BusinessRuleError) Error() string {
	return e.Message
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// Notice converts an operation error into the general notice shown to the user.
// Validation errors are rendered inline next to their fields, so they map to a
// short summary only.
func Notice(err error) string {
	if err == nil {
		return ""
	}

	var (
		validationErr *ValidationError
		authErr       *AuthError
		apiErr        *APIError
		networkErr    *NetworkError
		ruleErr       *BusinessRuleError
		userErr       *UserError
	)

	switch {
	case errors.As(err, &validationErr):
		return "Please fix the highlighted fields"
	case errors.As(err, &authErr):
		return authErr.Message
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.As(err, &networkErr):
		return NetworkNotice
	case errors.As(err, &ruleErr):
		return ruleErr.Message
	case errors.As(err, &userErr):
		return userErr.UserMessage
	case errors.Is(err, ErrNoSession):
		return "Please log in first"
	default:
		return err.Error()
	}
}
