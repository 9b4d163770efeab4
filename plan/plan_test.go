package plan

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chebykin/top-n-holders-go/topn"
)

// --- Helper functions ---

func addr(seed byte) common.Address {
	var a common.Address
	for i := range a {
		a[i] = seed
	}
	return a
}

func holder(seed byte, balance uint64) topn.Holder {
	return topn.Holder{Address: addr(seed), Balance: uint256.NewInt(balance)}
}

var testToken = addr(0xEE)

// referenceHolders is the distribution used throughout: total supply
// 100, holders A..F = 45, 25, 14, 6, 6, 2.
func referenceHolders() []topn.Holder {
	return []topn.Holder{
		holder(4, 6),  // D
		holder(1, 45), // A
		holder(6, 2),  // F
		holder(5, 6),  // E
		holder(3, 14), // C
		holder(2, 25), // B
	}
}

// --- Build tests ---

func TestBuild_BoundedPrefix(t *testing.T) {
	res := Build(referenceHolders(), uint256.NewInt(100), 3, "eth-mainnet", testToken)

	// Rank-3 balance is C's 14.
	require.NotNil(t, res.Threshold)
	assert.Equal(t, uint64(14), res.Threshold.Uint64())

	// After D: remainder 10 > 6, keep scanning. After E: remainder 4 < 6,
	// stop. F is never appended.
	want := []common.Address{addr(1), addr(2), addr(3), addr(4), addr(5)}
	assert.Equal(t, want, res.Input.Candidates)
	assert.True(t, res.BoundReached)
	assert.Equal(t, uint64(96), res.Accumulated.Uint64())

	assert.Equal(t, 3, res.Input.N)
	assert.Equal(t, "eth-mainnet", res.Input.ChainSpecName)
	assert.Equal(t, testToken, res.Input.TokenContract)
	require.NoError(t, res.Input.Validate())
}

func TestBuild_SmallPopulation(t *testing.T) {
	raw := []topn.Holder{holder(1, 30), holder(2, 20)}
	res := Build(raw, uint256.NewInt(50), 2, "eth-mainnet", testToken)

	// Fewer holders than could trip the bound past rank N: the whole raw
	// set is emitted and sufficiency is left to full-supply accounting.
	assert.Equal(t, []common.Address{addr(1), addr(2)}, res.Input.Candidates)
	assert.False(t, res.BoundReached)
	assert.Equal(t, uint64(50), res.Accumulated.Uint64())
}

func TestBuild_FewerHoldersThanN(t *testing.T) {
	raw := []topn.Holder{holder(1, 30), holder(2, 20)}
	res := Build(raw, uint256.NewInt(50), 5, "eth-mainnet", testToken)

	assert.Equal(t, []common.Address{addr(1), addr(2)}, res.Input.Candidates)
	assert.Nil(t, res.Threshold, "threshold is undefined below n holders")
	assert.False(t, res.BoundReached)
}

func TestBuild_TiesOrderedByAddress(t *testing.T) {
	raw := []topn.Holder{holder(9, 10), holder(3, 10), holder(7, 10)}
	res := Build(raw, uint256.NewInt(30), 2, "eth-mainnet", testToken)

	assert.Equal(t, []common.Address{addr(3), addr(7), addr(9)}, res.Input.Candidates)
}

func TestBuild_DeduplicatesRawRecords(t *testing.T) {
	raw := []topn.Holder{
		holder(1, 40),
		holder(2, 30),
		holder(1, 45), // page overlap: later estimate wins
		holder(3, 25),
	}
	res := Build(raw, uint256.NewInt(100), 2, "eth-mainnet", testToken)

	for i, a := range res.Input.Candidates {
		for j, b := range res.Input.Candidates {
			if i != j {
				assert.NotEqual(t, a, b, "candidates must be unique")
			}
		}
	}
	assert.Equal(t, addr(1), res.Input.Candidates[0])
	require.NoError(t, res.Input.Validate())
}

func TestBuild_Deterministic(t *testing.T) {
	supply := uint256.NewInt(100)
	a := Build(referenceHolders(), supply, 3, "eth-mainnet", testToken)
	b := Build(referenceHolders(), supply, 3, "eth-mainnet", testToken)
	assert.Equal(t, a.Input, b.Input)
	assert.Equal(t, a.BoundReached, b.BoundReached)

	// A shuffled raw order must not change the claim.
	shuffled := []topn.Holder{
		holder(2, 25), holder(6, 2), holder(1, 45),
		holder(3, 14), holder(4, 6), holder(5, 6),
	}
	c := Build(shuffled, supply, 3, "eth-mainnet", testToken)
	assert.Equal(t, a.Input, c.Input)
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	raw := referenceHolders()
	first := raw[0].Address
	Build(raw, uint256.NewInt(100), 3, "eth-mainnet", testToken)
	assert.Equal(t, first, raw[0].Address, "raw input order must be preserved")
}

func TestBuild_OverstatedBalancesClampRemainder(t *testing.T) {
	// Raw balances sum past the trusted supply: the remainder clamps to
	// zero and the scan stops instead of running the whole dump.
	raw := []topn.Holder{holder(1, 90), holder(2, 80), holder(3, 70), holder(4, 60)}
	res := Build(raw, uint256.NewInt(100), 1, "eth-mainnet", testToken)

	assert.True(t, res.BoundReached)
	assert.Equal(t, []common.Address{addr(1), addr(2)}, res.Input.Candidates)
}

func TestBuild_EmptyRaw(t *testing.T) {
	res := Build(nil, uint256.NewInt(100), 3, "eth-mainnet", testToken)
	assert.Empty(t, res.Input.Candidates)
	assert.Nil(t, res.Threshold)
	assert.False(t, res.BoundReached)
}
