// Package plan implements the untrusted planner side of the bounded
// top-N proof protocol. From a raw, possibly incomplete holder dump and
// the ledger-reported total supply it selects an ordered candidate
// prefix that is sufficient for the trusted verifier to prove the top-N
// complete. The planner is advisory only: it never rejects its own
// input, it just emits its best claim and lets the verifier judge it.
package plan

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/chebykin/top-n-holders-go/topn"
)

// Result is the planner's claim plus the diagnostics of how it was
// reached. Only Input crosses the trust boundary; the rest exists so a
// host can log why a claim is likely (or unlikely) to verify.
type Result struct {
	// Input is the assembled proof input, ready for the verifier.
	Input topn.ProofInput

	// Threshold is the balance at rank N in the planner's ordering,
	// nil when fewer than N holders were supplied.
	Threshold *uint256.Int

	// Accumulated is the sum of the candidate balances.
	Accumulated *uint256.Int

	// BoundReached reports whether the scan stopped because the supply
	// remainder dropped below the last appended balance. When false the
	// raw data was exhausted first, and the claim can only verify
	// through full-supply accounting.
	BoundReached bool
}

// Build assembles a proof input for the top n holders of token on the
// chain named by specName. raw is the untrusted holder dump; totalSupply
// must be the ledger-reported value, never a figure derived from raw.
//
// The candidate list is the shortest prefix of the canonical ordering
// that the planner can justify: the scan runs past rank n until all
// supply not yet accounted for is strictly smaller than the balance of
// the last appended holder, at which point no un-enumerated holder can
// outrank the boundary. If raw runs out first, the whole ordering is
// emitted and sufficiency is left to the verifier's full-supply check.
func Build(raw []topn.Holder, totalSupply *uint256.Int, n int, specName string, token common.Address) Result {
	ordered := dedupe(raw)
	topn.SortByRank(ordered)

	res := Result{
		Input: topn.ProofInput{
			ChainSpecName: specName,
			TokenContract: token,
			N:             n,
		},
		Accumulated: uint256.NewInt(0),
	}
	if n > 0 && len(ordered) >= n {
		res.Threshold = new(uint256.Int).Set(ordered[n-1].Balance)
	}

	remainder := new(uint256.Int)
	for i, h := range ordered {
		res.Accumulated.Add(res.Accumulated, h.Balance)
		res.Input.Candidates = append(res.Input.Candidates, h.Address)

		if i+1 <= n {
			continue
		}
		// Remainder bounds the balance of every holder not yet scanned.
		// An accumulated sum above the trusted supply means the raw data
		// overstates balances; the clamp to zero stops the scan and the
		// verifier settles the claim.
		if _, underflow := remainder.SubOverflow(totalSupply, res.Accumulated); underflow {
			remainder.Clear()
		}
		if remainder.Lt(h.Balance) {
			res.BoundReached = true
			break
		}
	}
	return res
}

// dedupe collapses raw records that repeat an address, keeping the last
// balance estimate seen. Paginated sources overlap pages under load, and
// a double-counted holder would inflate the accumulated sum.
func dedupe(raw []topn.Holder) []topn.Holder {
	out := make([]topn.Holder, 0, len(raw))
	index := make(map[common.Address]int, len(raw))
	for _, h := range raw {
		if at, seen := index[h.Address]; seen {
			out[at].Balance = new(uint256.Int).Set(h.Balance)
			continue
		}
		index[h.Address] = len(out)
		out = append(out, topn.Holder{
			Address: h.Address,
			Balance: new(uint256.Int).Set(h.Balance),
		})
	}
	return out
}
