package repository

import "errors"

// Sentinel errors translated to HTTP statuses by the controllers.
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
)
