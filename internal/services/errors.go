package services

import "errors"

// Engine error taxonomy. Handlers translate these to HTTP status codes;
// nothing in the services retries or suppresses them.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrPermissionDenied = errors.New("permission denied")
	ErrConflict         = errors.New("conflict")
)
