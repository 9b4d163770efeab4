// Package verify implements the trusted side of the bounded top-N proof
// protocol: a single deterministic pass that re-derives the claimed
// ranking from verified ledger reads and proves it complete with a
// supply-conservation bound.
//
// The verification chain for a claim is:
//  1. Input shape: candidates non-empty, 0 < N <= len, no duplicates.
//     Violations are fatal; no proof output exists.
//  2. Monotonicity: verified balances along the candidate order never
//     increase. A violation rejects the claim (a rejection is still a
//     valid, publishable proof output).
//  3. Completeness: once more than N candidates are read, the scan stops
//     as soon as the un-accounted supply remainder is strictly below the
//     latest balance — no un-enumerated holder can outrank the boundary.
//     If the list runs out first, the claim stands only when the whole
//     supply has been accounted for.
//
// Every outcome is an explicit terminal status; the scan never retries,
// backtracks, or reads an address twice.
package verify

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/chebykin/top-n-holders-go/ledger"
	"github.com/chebykin/top-n-holders-go/topn"
)

// Status is the terminal state the verifier's scan ended in.
type Status int

const (
	// StatusProven: the remainder bound fired past rank N; the first N
	// candidates are provably the true top-N.
	StatusProven Status = iota + 1

	// StatusProvenFullSupply: the candidate list was exhausted with the
	// accumulated sum equal to total supply; no holder exists outside
	// the list, so the first N candidates are the true top-N.
	StatusProvenFullSupply

	// StatusRejectedNonMonotonic: a verified balance exceeded its
	// predecessor; the claimed order is wrong.
	StatusRejectedNonMonotonic

	// StatusRejectedSupplyExceeded: the accumulated sum of verified
	// balances exceeded the verified total supply; the claim is
	// inconsistent with supply conservation.
	StatusRejectedSupplyExceeded

	// StatusRejectedUnproven: the list was exhausted with supply left
	// unaccounted for and the bound never fired; an unlisted holder
	// could outrank a listed one, so completeness is unprovable.
	StatusRejectedUnproven
)

// String returns the status name for logs and audit traces.
func (s Status) String() string {
	switch s {
	case StatusProven:
		return "proven"
	case StatusProvenFullSupply:
		return "proven-full-supply"
	case StatusRejectedNonMonotonic:
		return "rejected-non-monotonic"
	case StatusRejectedSupplyExceeded:
		return "rejected-supply-exceeded"
	case StatusRejectedUnproven:
		return "rejected-unproven"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result is the verifier's outcome. Output is the only part that crosses
// the trust boundary; Status, Reads, Accumulated and TotalSupply expose
// the deterministic trace for auditing and logging.
type Result struct {
	Output      topn.ProofOutput
	Status      Status
	Reads       int
	Accumulated *uint256.Int
	TotalSupply *uint256.Int
}

// Verify authoritatively judges a planner claim. It returns an error only
// when no proof output can exist at all: malformed input, or a ledger
// read that fails to resolve. Every other outcome — acceptance or
// rejection — is a nil-error Result whose Output is fully determined by
// the input and the verified reads.
//
// The scan reads each candidate exactly once, in order, and stops at the
// first terminal transition; a rejected claim performs no reads past the
// violation that rejected it.
func Verify(ctx context.Context, r ledger.Reader, in topn.ProofInput) (*Result, error) {
	if r == nil {
		return nil, ErrNilReader
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	supply, err := r.TotalSupply(ctx, in.TokenContract)
	if err != nil {
		return nil, fmt.Errorf("verify: total supply: %w", err)
	}

	res := &Result{
		Accumulated: uint256.NewInt(0),
		TotalSupply: supply,
	}

	var prev *uint256.Int
	remainder := new(uint256.Int)
	for i, addr := range in.Candidates {
		bal, err := r.BalanceOf(ctx, in.TokenContract, addr)
		if err != nil {
			return nil, fmt.Errorf("verify: balance of %s: %w", addr, err)
		}
		res.Reads++

		// The claimed order must be non-increasing in verified balance.
		if prev != nil && bal.Gt(prev) {
			return res.reject(StatusRejectedNonMonotonic), nil
		}
		prev = bal

		if _, overflow := res.Accumulated.AddOverflow(res.Accumulated, bal); overflow {
			return res.reject(StatusRejectedSupplyExceeded), nil
		}
		if res.Accumulated.Gt(supply) {
			return res.reject(StatusRejectedSupplyExceeded), nil
		}

		// Past rank N the remainder bounds every unread holder's balance.
		// Subtraction cannot underflow: accumulated <= supply was just
		// established.
		if i+1 > in.N {
			remainder.Sub(supply, res.Accumulated)
			if remainder.Lt(bal) {
				return res.accept(StatusProven, in), nil
			}
		}
	}

	if res.Accumulated.Eq(supply) {
		return res.accept(StatusProvenFullSupply, in), nil
	}
	return res.reject(StatusRejectedUnproven), nil
}

// accept finalizes a proven scan. The published ranking is the first N
// candidates, copied so the output shares no memory with the input.
func (res *Result) accept(status Status, in topn.ProofInput) *Result {
	res.Status = status
	top := make([]common.Address, in.N)
	copy(top, in.Candidates[:in.N])
	res.Output = topn.ProofOutput{Succeeded: true, TopN: top}
	return res
}

// reject finalizes a rejected scan. The output is a valid proof of
// rejection: Succeeded is false and no ranking is published.
func (res *Result) reject(status Status) *Result {
	res.Status = status
	res.Output = topn.ProofOutput{Succeeded: false}
	return res
}
