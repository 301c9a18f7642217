package repositories

import "errors"

// Sentinel errors shared by all repositories. Callers map these onto
// transport-level status codes.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)
