package domain

import "errors"

// Sentinel errors for domain-level error discrimination. Services wrap these
// and handlers map them to HTTP status codes.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
	ErrUnavailable  = errors.New("unavailable")
)
