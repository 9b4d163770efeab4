package ledger

import "errors"

var (
	// ErrReadFailed indicates a balance or supply read could not be resolved.
	ErrReadFailed = errors.New("ledger: read failed")

	// ErrUnknownToken indicates the reader is not bound to the requested token.
	ErrUnknownToken = errors.New("ledger: reader not bound to token")

	// ErrChainMismatch indicates the endpoint's chain ID does not match the
	// configured chain spec.
	ErrChainMismatch = errors.New("ledger: endpoint chain id does not match spec")

	// ErrBadReturnData indicates a contract call returned data that is not a
	// single 256-bit word.
	ErrBadReturnData = errors.New("ledger: malformed contract return data")
)
