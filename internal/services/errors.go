package services

import (
	"errors"
	"net/http"
)

// Kind classifies service failures; handlers map it to a status code
type Kind string

const (
	KindConfig       Kind = "config_error"
	KindBadRequest   Kind = "bad_request"
	KindUnauthorized Kind = "unauthorized"
	KindUpstream     Kind = "upstream_failure"
	KindNotFound     Kind = "not_found"
	KindUnavailable  Kind = "unavailable"
	KindInternal     Kind = "internal_error"
)

// Client-facing messages
const (
	MsgServerConfig       = "Server configuration error"
	MsgInvalidJSON        = "Invalid JSON body"
	MsgMissingCredentials = "Username and password are required"
	MsgInvalidCredentials = "Invalid credentials"
	MsgMissingIP          = "Missing required parameter: ip"
	MsgInvalidFilename    = "Invalid filename"
	MsgImageNotFound      = "Image not found"
	MsgStorageUnavailable = "Image storage is not configured"
	MsgMethodNotAllowed   = "Method not allowed"
)

// Error is a classified service failure. Message is safe to return to the
// client; Err keeps the cause for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status for the error kind
func (e *Error) StatusCode() int {
	return StatusCode(e.Kind)
}

func newError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// NewConfigError never names the missing setting
func NewConfigError(err error) *Error {
	return newError(KindConfig, MsgServerConfig, err)
}

func NewBadRequestError(message string, err error) *Error {
	return newError(KindBadRequest, message, err)
}

func NewUnauthorizedError(message string) *Error {
	return newError(KindUnauthorized, message, nil)
}

// NewUpstreamError carries the upstream error text to the client
func NewUpstreamError(err error) *Error {
	return newError(KindUpstream, err.Error(), err)
}

func NewNotFoundError(message string, err error) *Error {
	return newError(KindNotFound, message, err)
}

func NewUnavailableError(message string, err error) *Error {
	return newError(KindUnavailable, message, err)
}

// NewInternalError echoes the cause's message to the client
func NewInternalError(err error) *Error {
	return newError(KindInternal, err.Error(), err)
}

// KindOf returns the kind of err; unclassified errors are internal
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindInternal
}

// StatusCode maps an error kind to an HTTP status
func StatusCode(kind Kind) int {
	switch kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
