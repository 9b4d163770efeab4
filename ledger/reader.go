// Package ledger provides the verified ledger reader boundary: balance
// and total-supply reads whose authenticity is anchored to one fixed,
// already-verified chain state per proof session. The verifier treats a
// Reader as deterministic and side-effect-free; if the backing state
// cannot be authenticated, the reader fails before any scan begins.
package ledger

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Reader resolves token state against one fixed, pre-verified snapshot.
// Both operations are pure with respect to that snapshot: the same call
// always yields the same value for the lifetime of the reader.
type Reader interface {
	// TotalSupply returns the token's total supply as reported by the
	// ledger itself.
	TotalSupply(ctx context.Context, token common.Address) (*uint256.Int, error)

	// BalanceOf returns the token balance of account. Accounts the
	// ledger has never seen hold a zero balance.
	BalanceOf(ctx context.Context, token common.Address, account common.Address) (*uint256.Int, error)
}
