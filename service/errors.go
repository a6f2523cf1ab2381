package service

import (
	"errors"
	"fmt"
)

const (
	// ErrBackendUnreachable means full discovery exhausted every candidate without finding a live backend (strict fallback mode).
	ErrBackendUnreachable = "backend_unreachable"
	// ErrStorageUnavailable means the persistent key-value storage failed a read, write or delete. Discovery callers absorb it as cache miss.
	ErrStorageUnavailable = "storage_unavailable"
	// ErrNetwork means a transport-level request failure: connection refused, DNS failure, timeout at the HTTP layer — distinct from an HTTP error status.
	ErrNetwork = "network_error"
	// ErrRemote means the backend answered with a non-2xx HTTP status; Status and Body on the error carry the response.
	ErrRemote = "remote_error"
	// ErrNotInitialized means the client could not bind a backend address (discovery failed on first use).
	ErrNotInitialized = "not_initialized"
	// ErrBadParameter means that a provided parameter does not match what was declared.
	ErrBadParameter = "bad_parameter"
	// ErrInternalServerError means that an internal server error has occurred.
	ErrInternalServerError = "internal_server_error"
)

// LinkError represents an error within the context of backendlink components.
type LinkError struct {
	// Code is a machine-readable code.
	Code string `json:"code,omitempty"`
	// Message is a human-readable message.
	Message string `json:"message"`
	// Inner is a wrapped error that is never shown to API consumers.
	Inner error `json:"-"`
	// Status is the backend HTTP status; set only for remote_error.
	Status int `json:"status,omitempty"`
	// Body is the raw backend response body; set only for remote_error.
	Body []byte `json:"-"`
}

// NewLinkError creates a new LinkError.
func NewLinkError(code string, message string, inner error) *LinkError {
	return &LinkError{
		Code:    code,
		Message: message,
		Inner:   inner,
	}
}

func NewBackendUnreachableError(message string, inner error) *LinkError {
	return NewLinkError(ErrBackendUnreachable, message, inner)
}

func NewStorageUnavailableError(message string, inner error) *LinkError {
	return NewLinkError(ErrStorageUnavailable, message, inner)
}

func NewNetworkError(message string, inner error) *LinkError {
	return NewLinkError(ErrNetwork, message, inner)
}

// NewRemoteError creates a remote_error carrying the backend HTTP status and raw body.
func NewRemoteError(status int, body []byte) *LinkError {
	e := NewLinkError(ErrRemote, fmt.Sprintf("backend returned %d", status), nil)
	e.Status = status
	e.Body = body
	return e
}

func NewNotInitializedError(message string, inner error) *LinkError {
	return NewLinkError(ErrNotInitialized, message, inner)
}

func NewBadParameterError(message string, inner error) *LinkError {
	return NewLinkError(ErrBadParameter, message, inner)
}

func NewInternalServerError(message string, inner error) *LinkError {
	return NewLinkError(ErrInternalServerError, message, inner)
}

func (e LinkError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("%s %s: %v", e.Code, e.Message, e.Inner)
	}

	return fmt.Sprintf("%s %s", e.Code, e.Message)
}

// Unwrap the error returning the error's reason.
func (e LinkError) Unwrap() error {
	return e.Inner
}

// ToLinkError returns a pointer to a backendlink error, or nil if it is not a backendlink error.
func ToLinkError(err error) *LinkError {
	var e *LinkError
	if errors.As(err, &e) {
		return e
	}

	return nil
}

// ToLinkErrorCode returns the code of the error, if available.
func ToLinkErrorCode(err error) string {
	linkerror := ToLinkError(err)
	if linkerror != nil {
		return linkerror.Code
	}
	return ""
}

func IsLinkError(err error, code string) bool {
	linkerror := ToLinkError(err)
	if linkerror != nil {
		return linkerror.Code == code
	}
	return false
}

func IsBackendUnreachableError(err error) bool {
	return IsLinkError(err, ErrBackendUnreachable)
}

func IsStorageUnavailableError(err error) bool {
	return IsLinkError(err, ErrStorageUnavailable)
}

func IsNetworkError(err error) bool {
	return IsLinkError(err, ErrNetwork)
}

func IsRemoteError(err error) bool {
	return IsLinkError(err, ErrRemote)
}

func IsNotInitializedError(err error) bool {
	return IsLinkError(err, ErrNotInitialized)
}

func IsBadParameterError(err error) bool {
	return IsLinkError(err, ErrBadParameter)
}

func IsInternalServerError(err error) bool {
	return IsLinkError(err, ErrInternalServerError)
}
