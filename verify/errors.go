package verify

import "errors"

var (
	// ErrNilReader indicates no ledger reader was supplied.
	ErrNilReader = errors.New("verify: ledger reader is nil")
)
