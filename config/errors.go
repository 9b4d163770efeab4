package config

import "errors"

var (
	// ErrEmptyChainSpec indicates no chain spec name was configured.
	ErrEmptyChainSpec = errors.New("config: chain spec must not be empty")

	// ErrInvalidToken indicates the token contract is not a hex address.
	ErrInvalidToken = errors.New("config: invalid token contract address")

	// ErrInvalidSubgraphURL indicates the subgraph endpoint is malformed.
	ErrInvalidSubgraphURL = errors.New("config: invalid subgraph url")

	// ErrInvalidRPCURL indicates the RPC endpoint is malformed.
	ErrInvalidRPCURL = errors.New("config: invalid rpc url")

	// ErrInvalidN indicates the requested ranking size is not positive.
	ErrInvalidN = errors.New("config: n must be positive")

	// ErrInvalidLogLevel indicates the log level is not recognized.
	ErrInvalidLogLevel = errors.New("config: invalid log level (must be \"debug\", \"info\", \"warn\", or \"error\")")
)
