package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrDataCorrupted marks a stored payload that no longer matches its expected shape.
	ErrDataCorrupted = errors.New("data corrupted")
	// ErrStoreUnavailable marks a transient storage failure. Retrying is the caller's call.
	ErrStoreUnavailable = errors.New("store unavailable")
)
