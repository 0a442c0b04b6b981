package repositories

import (
	"errors"
	"fmt"
)

// Common repository errors
var (
	// ErrNotConfigured is returned when the data API URL or key is missing
	ErrNotConfigured = errors.New("data API not configured")

	// ErrInvalidFilter is returned when a required filter is missing
	ErrInvalidFilter = errors.New("invalid filter")

	// ErrUpstream is returned when the data API answers with an error status
	ErrUpstream = errors.New("upstream request failed")

	// ErrConnection is returned when the data API cannot be reached
	ErrConnection = errors.New("data API connection error")

	// ErrDecode is returned when the data API response cannot be parsed
	ErrDecode = errors.New("invalid upstream response")
)

// RepositoryError represents a repository-specific error with additional context
type RepositoryError struct {
	Op         string // Operation that failed
	Entity     string // Entity type
	StatusCode int    // Upstream HTTP status, when there was one
	Body       string // Upstream error text, when there was one
	Err        error  // Underlying error
	Message    string // Human-readable message
}

// Error implements the error interface
func (e *RepositoryError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s operation failed: %v", e.Entity, e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// NewRepositoryError creates a new repository error
func NewRepositoryError(op, entity string, err error) *RepositoryError {
	return &RepositoryError{
		Op:     op,
		Entity: entity,
		Err:    err,
	}
}

// UpstreamError creates an error for a non-2xx data API response.
// The upstream body is kept as the message so callers can surface it.
func UpstreamError(op, entity string, statusCode int, body string) *RepositoryError {
	message := body
	if message == "" {
		message = fmt.Sprintf("upstream returned status %d", statusCode)
	}
	return &RepositoryError{
		Op:         op,
		Entity:     entity,
		StatusCode: statusCode,
		Body:       body,
		Err:        ErrUpstream,
		Message:    message,
	}
}

// ConnectionError creates a "connection" repository error
func ConnectionError(op, entity string, err error) *RepositoryError {
	return &RepositoryError{
		Op:      op,
		Entity:  entity,
		Err:     ErrConnection,
		Message: fmt.Sprintf("%s %s failed: %v", entity, op, err),
	}
}

// IsNotConfigured checks if an error is a "not configured" error
func IsNotConfigured(err error) bool {
	return errors.Is(err, ErrNotConfigured)
}

// IsUpstream checks if an error came from an upstream error status
func IsUpstream(err error) bool {
	return errors.Is(err, ErrUpstream)
}

// IsConnection checks if an error is a "connection" error
func IsConnection(err error) bool {
	return errors.Is(err, ErrConnection)
}
