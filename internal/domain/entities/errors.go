package entities

import "errors"

// Error taxonomy shared by services and adapters. Adapters wrap backend failures
// with these so callers can branch with errors.Is.
var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrNotFound           = errors.New("not found")
	ErrBackendUnavailable = errors.New("backend unavailable")
)
