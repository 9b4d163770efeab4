// Package receipt is the proof commitment boundary: it encodes the
// verifier's output into a byte-stable journal and binds it to an image
// identifier with a keccak digest, producing the artifact downstream
// consumers check without re-running the protocol. Transport of the
// artifact and any SNARK wrapping live outside this repository.
package receipt

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fxamacker/cbor/v2"

	"github.com/chebykin/top-n-holders-go/topn"
)

// encMode is the canonical CBOR encoder. Canonical ordering makes the
// journal bytes a pure function of the journal contents.
var encMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	encMode = em
}

// Journal is the public payload of one proof run: the claim context and
// the verifier's output, nothing else. Two runs over the same input and
// ledger state encode to identical bytes.
type Journal struct {
	ChainSpec string     `cbor:"1,keyasint"`
	Token     [20]byte   `cbor:"2,keyasint"`
	Block     uint64     `cbor:"3,keyasint"`
	N         int        `cbor:"4,keyasint"`
	Succeeded bool       `cbor:"5,keyasint"`
	TopN      [][20]byte `cbor:"6,keyasint"`
}

// NewJournal assembles a journal from the proof input, the pinned block
// and the verifier's output.
func NewJournal(in topn.ProofInput, block uint64, out topn.ProofOutput) Journal {
	j := Journal{
		ChainSpec: in.ChainSpecName,
		Token:     in.TokenContract,
		Block:     block,
		N:         in.N,
		Succeeded: out.Succeeded,
		TopN:      make([][20]byte, 0, len(out.TopN)),
	}
	for _, addr := range out.TopN {
		j.TopN = append(j.TopN, addr)
	}
	return j
}

// TopAddresses returns the journal's ranking as addresses.
func (j Journal) TopAddresses() []common.Address {
	out := make([]common.Address, 0, len(j.TopN))
	for _, a := range j.TopN {
		out = append(out, common.Address(a))
	}
	return out
}

// Encode serializes the journal to canonical CBOR.
func (j Journal) Encode() ([]byte, error) {
	data, err := encMode.Marshal(j)
	if err != nil {
		return nil, fmt.Errorf("receipt: encode journal: %w", err)
	}
	return data, nil
}

// DecodeJournal parses canonical CBOR journal bytes.
func DecodeJournal(data []byte) (Journal, error) {
	var j Journal
	if err := cbor.Unmarshal(data, &j); err != nil {
		return Journal{}, fmt.Errorf("%w: %w", ErrBadJournal, err)
	}
	return j, nil
}
