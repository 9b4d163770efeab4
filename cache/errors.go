package cache

import "errors"

var (
	// ErrNotFound indicates no snapshot is cached for the requested key.
	ErrNotFound = errors.New("cache: snapshot not found")

	// ErrNilParam indicates a required parameter is nil.
	ErrNilParam = errors.New("cache: required parameter is nil")
)
