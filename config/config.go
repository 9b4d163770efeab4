// Package config defines the host configuration for a proof run and its
// validation. Loading (flags, environment) is the binary's concern; this
// package only knows what a well-formed configuration looks like.
package config

// Config holds everything one proof run needs: where the untrusted
// candidates come from, which ledger endpoint to verify against, and
// what claim to prove.
type Config struct {
	// ChainSpec names the network parameter set, e.g. "eth-mainnet".
	ChainSpec string

	// TokenContract is the hex address of the ERC20 contract.
	TokenContract string

	// SubgraphURL is the GraphQL endpoint serving holder candidates.
	SubgraphURL string

	// RPCURL is the EVM JSON-RPC endpoint for verified reads.
	RPCURL string

	// BlockNumber pins the proof session's state; 0 means the endpoint's
	// current head at startup.
	BlockNumber uint64

	// N is the size of the ranking to prove.
	N int

	// CachePath is the bbolt snapshot cache file; empty disables caching.
	CachePath string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// Default returns a configuration with defaults applied; the caller
// still has to fill in the token, endpoints and N.
func Default() Config {
	return Config{
		ChainSpec: "eth-mainnet",
		N:         10,
		LogLevel:  "info",
	}
}
