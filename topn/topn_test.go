package topn

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Helper functions ---

func addr(seed byte) common.Address {
	var a common.Address
	for i := range a {
		a[i] = seed
	}
	return a
}

func holder(seed byte, balance uint64) Holder {
	return Holder{Address: addr(seed), Balance: uint256.NewInt(balance)}
}

// --- RankBefore tests ---

func TestRankBefore(t *testing.T) {
	tests := []struct {
		name string
		a, b Holder
		want bool
	}{
		{"larger balance first", holder(2, 100), holder(1, 50), true},
		{"smaller balance last", holder(1, 50), holder(2, 100), false},
		{"tie broken by lower address", holder(1, 50), holder(2, 50), true},
		{"tie broken by higher address", holder(2, 50), holder(1, 50), false},
		{"identical holder not before itself", holder(1, 50), holder(1, 50), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RankBefore(tt.a, tt.b))
		})
	}
}

func TestSortByRank(t *testing.T) {
	holders := []Holder{
		holder(4, 6),
		holder(1, 45),
		holder(6, 2),
		holder(5, 6),
		holder(3, 14),
		holder(2, 25),
	}
	SortByRank(holders)

	got := make([]common.Address, 0, len(holders))
	for _, h := range holders {
		got = append(got, h.Address)
	}
	want := []common.Address{addr(1), addr(2), addr(3), addr(4), addr(5), addr(6)}
	assert.Equal(t, want, got)
}

func TestSortByRank_InputOrderIrrelevant(t *testing.T) {
	a := []Holder{holder(1, 10), holder(2, 10), holder(3, 20)}
	b := []Holder{holder(3, 20), holder(2, 10), holder(1, 10)}

	SortByRank(a)
	SortByRank(b)
	assert.Equal(t, a, b, "canonical order must not depend on input order")
}

// --- ProofInput.Validate tests ---

func TestProofInputValidate(t *testing.T) {
	candidates := []common.Address{addr(1), addr(2), addr(3)}

	tests := []struct {
		name    string
		input   ProofInput
		wantErr error
	}{
		{"valid", ProofInput{Candidates: candidates, N: 3}, nil},
		{"valid n below length", ProofInput{Candidates: candidates, N: 1}, nil},
		{"empty candidates", ProofInput{N: 1}, ErrNoCandidates},
		{"zero n", ProofInput{Candidates: candidates, N: 0}, ErrZeroN},
		{"negative n", ProofInput{Candidates: candidates, N: -1}, ErrZeroN},
		{"n too large", ProofInput{Candidates: candidates, N: 4}, ErrNTooLarge},
		{
			"duplicate candidate",
			ProofInput{Candidates: []common.Address{addr(1), addr(2), addr(1)}, N: 2},
			ErrDuplicateCandidate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
