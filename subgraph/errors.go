package subgraph

import "errors"

var (
	// ErrTokenNotFound indicates the subgraph does not index the token.
	ErrTokenNotFound = errors.New("subgraph: token not found")

	// ErrRequestFailed indicates the HTTP request could not be completed.
	ErrRequestFailed = errors.New("subgraph: request failed")

	// ErrQueryFailed indicates the GraphQL server returned query errors.
	ErrQueryFailed = errors.New("subgraph: query failed")

	// ErrBadResponse indicates the response body could not be parsed.
	ErrBadResponse = errors.New("subgraph: malformed response")
)
