package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateID indicates an invoice with the same id already exists.
	ErrDuplicateID = errors.New("duplicate invoice id")
	// ErrValidation indicates a record is missing required fields.
	ErrValidation = errors.New("validation failed")
	// ErrRemoteUnavailable indicates the remote bill store could not be reached.
	ErrRemoteUnavailable = errors.New("remote store unavailable")
	// ErrNotAllowed indicates the remote endpoint does not support the request shape.
	ErrNotAllowed = errors.New("method not allowed")
)
