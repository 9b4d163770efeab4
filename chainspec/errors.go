package chainspec

import "errors"

var (
	// ErrUnknownSpec indicates no spec is registered under the given name.
	ErrUnknownSpec = errors.New("chainspec: unknown chain spec")

	// ErrDuplicateSpec indicates a spec name was registered twice.
	ErrDuplicateSpec = errors.New("chainspec: duplicate chain spec")

	// ErrEmptyName indicates a spec with an empty name was supplied.
	ErrEmptyName = errors.New("chainspec: spec name must not be empty")
)
