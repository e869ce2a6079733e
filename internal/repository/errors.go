package repository

import "errors"

// Sentinel errors shared by all repositories so callers can map them
// to HTTP statuses without string matching.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidID         = errors.New("invalid id")
	ErrDuplicateUsername = errors.New("username already exists")
)
