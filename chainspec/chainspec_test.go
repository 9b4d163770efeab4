package chainspec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupBuiltin(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	spec, err := r.Lookup("eth-mainnet")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), spec.ChainID)

	spec, err = r.Lookup("eth-sepolia")
	require.NoError(t, err)
	assert.Equal(t, uint64(11155111), spec.ChainID)
}

func TestLookupUnknown(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	_, err = r.Lookup("no-such-chain")
	require.ErrorIs(t, err, ErrUnknownSpec)
}

func TestExtraSpecs(t *testing.T) {
	r, err := NewRegistry(Spec{Name: "devnet", ChainID: 1337})
	require.NoError(t, err)

	spec, err := r.Lookup("devnet")
	require.NoError(t, err)
	assert.Equal(t, uint64(1337), spec.ChainID)
}

func TestDuplicateSpecRejected(t *testing.T) {
	_, err := NewRegistry(Spec{Name: "eth-mainnet", ChainID: 999})
	require.ErrorIs(t, err, ErrDuplicateSpec)

	_, err = NewRegistry(
		Spec{Name: "devnet", ChainID: 1337},
		Spec{Name: "devnet", ChainID: 31337},
	)
	require.ErrorIs(t, err, ErrDuplicateSpec)
}

func TestEmptyNameRejected(t *testing.T) {
	_, err := NewRegistry(Spec{ChainID: 1337})
	require.ErrorIs(t, err, ErrEmptyName)
}

func TestNamesListsAllSpecs(t *testing.T) {
	r, err := NewRegistry(Spec{Name: "devnet", ChainID: 1337})
	require.NoError(t, err)
	assert.Contains(t, r.Names(), "eth-mainnet")
	assert.Contains(t, r.Names(), "devnet")
}
