package ledger

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/chebykin/top-n-holders-go/topn"
)

// Snapshot is a deterministic in-memory Reader over a fixed balance map
// for a single token. It backs the verifier's tests and the planner's
// advisory self-check; values are copied in and out, so callers cannot
// mutate the snapshot after construction.
type Snapshot struct {
	token    common.Address
	supply   *uint256.Int
	balances map[common.Address]*uint256.Int
}

// Compile-time interface check.
var _ Reader = (*Snapshot)(nil)

// NewSnapshot builds a snapshot for token with the given total supply
// and holder balances. Later duplicates of an address overwrite earlier
// ones. The supply is taken as given; it is the caller's job to pass
// the ledger-reported value, not a sum of the holders.
func NewSnapshot(token common.Address, supply *uint256.Int, holders []topn.Holder) *Snapshot {
	balances := make(map[common.Address]*uint256.Int, len(holders))
	for _, h := range holders {
		balances[h.Address] = new(uint256.Int).Set(h.Balance)
	}
	return &Snapshot{
		token:    token,
		supply:   new(uint256.Int).Set(supply),
		balances: balances,
	}
}

// TotalSupply returns the snapshot's total supply.
func (s *Snapshot) TotalSupply(_ context.Context, token common.Address) (*uint256.Int, error) {
	if token != s.token {
		return nil, fmt.Errorf("%w: %s", ErrUnknownToken, token)
	}
	return new(uint256.Int).Set(s.supply), nil
}

// BalanceOf returns the balance of account, zero if the account is not
// in the snapshot.
func (s *Snapshot) BalanceOf(_ context.Context, token common.Address, account common.Address) (*uint256.Int, error) {
	if token != s.token {
		return nil, fmt.Errorf("%w: %s", ErrUnknownToken, token)
	}
	bal, ok := s.balances[account]
	if !ok {
		return uint256.NewInt(0), nil
	}
	return new(uint256.Int).Set(bal), nil
}
