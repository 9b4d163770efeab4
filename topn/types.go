// Package topn defines the shared data model of the bounded top-N holder
// proof protocol: holder records, the canonical ranking order, and the
// immutable input/output contract between the untrusted planner and the
// trusted verifier.
package topn

import (
	"bytes"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Holder pairs an account address with its token balance at a fixed
// chain state. Within one snapshot, addresses are unique.
type Holder struct {
	Address common.Address
	Balance *uint256.Int
}

// ProofInput is the planner's claim handed across the trust boundary.
// It is built exactly once by the planner and consumed exactly once by
// the verifier; neither side mutates it afterwards.
type ProofInput struct {
	ChainSpecName string
	TokenContract common.Address
	Candidates    []common.Address // claimed order: balance desc, address asc on ties
	N             int
}

// ProofOutput is the verifier's public result and the only artifact
// that crosses back over the trust boundary. TopN is empty whenever
// Succeeded is false; rejection is a first-class outcome, not an error.
type ProofOutput struct {
	Succeeded bool
	TopN      []common.Address
}

// RankBefore reports whether a ranks strictly before b in the canonical
// order: balance descending, then address ascending byte-wise. The order
// is total, so any two distinct holders are strictly ordered.
func RankBefore(a, b Holder) bool {
	switch a.Balance.Cmp(b.Balance) {
	case 1:
		return true
	case -1:
		return false
	}
	return bytes.Compare(a.Address[:], b.Address[:]) < 0
}

// SortByRank sorts holders in place into the canonical ranking order.
// The order is total, so the result does not depend on the input order.
func SortByRank(holders []Holder) {
	sort.Slice(holders, func(i, j int) bool {
		return RankBefore(holders[i], holders[j])
	})
}

// Validate checks the structural well-formedness of a proof input.
// Violations are malformed-input errors: the verifier refuses to start
// and no proof output of any kind is produced.
func (in *ProofInput) Validate() error {
	if len(in.Candidates) == 0 {
		return ErrNoCandidates
	}
	if in.N <= 0 {
		return ErrZeroN
	}
	if in.N > len(in.Candidates) {
		return ErrNTooLarge
	}
	seen := make(map[common.Address]struct{}, len(in.Candidates))
	for _, addr := range in.Candidates {
		if _, dup := seen[addr]; dup {
			return ErrDuplicateCandidate
		}
		seen[addr] = struct{}{}
	}
	return nil
}
