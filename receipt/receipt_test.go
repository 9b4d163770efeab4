package receipt

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
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

func testJournal() Journal {
	in := topn.ProofInput{
		ChainSpecName: "eth-mainnet",
		TokenContract: addr(0xEE),
		Candidates:    []common.Address{addr(1), addr(2), addr(3), addr(4), addr(5)},
		N:             3,
	}
	out := topn.ProofOutput{
		Succeeded: true,
		TopN:      []common.Address{addr(1), addr(2), addr(3)},
	}
	return NewJournal(in, 19_000_000, out)
}

// --- Journal tests ---

func TestJournalEncodeDeterministic(t *testing.T) {
	a, err := testJournal().Encode()
	require.NoError(t, err)
	b, err := testJournal().Encode()
	require.NoError(t, err)
	assert.Equal(t, a, b, "same journal must encode to identical bytes")
}

func TestJournalRoundTrip(t *testing.T) {
	j := testJournal()
	data, err := j.Encode()
	require.NoError(t, err)

	decoded, err := DecodeJournal(data)
	require.NoError(t, err)
	assert.Equal(t, j, decoded)
	assert.Equal(t, []common.Address{addr(1), addr(2), addr(3)}, decoded.TopAddresses())
}

func TestJournalRejection(t *testing.T) {
	in := topn.ProofInput{
		ChainSpecName: "eth-mainnet",
		TokenContract: addr(0xEE),
		Candidates:    []common.Address{addr(1)},
		N:             1,
	}
	j := NewJournal(in, 42, topn.ProofOutput{Succeeded: false})
	assert.False(t, j.Succeeded)
	assert.Empty(t, j.TopN)

	data, err := j.Encode()
	require.NoError(t, err)
	decoded, err := DecodeJournal(data)
	require.NoError(t, err)
	assert.False(t, decoded.Succeeded)
}

func TestDecodeJournalMalformed(t *testing.T) {
	_, err := DecodeJournal([]byte{0xFF, 0x00, 0x01})
	require.ErrorIs(t, err, ErrBadJournal)
}

// --- Commitment tests ---

func TestBindVerify(t *testing.T) {
	id := DeriveImageID("topn-prover/v1")
	journal, err := testJournal().Encode()
	require.NoError(t, err)

	c := Bind(id, journal)
	assert.True(t, c.Verify(id))
}

func TestVerifyWrongImageID(t *testing.T) {
	journal, err := testJournal().Encode()
	require.NoError(t, err)

	c := Bind(DeriveImageID("topn-prover/v1"), journal)
	assert.False(t, c.Verify(DeriveImageID("topn-prover/v2")))
}

func TestVerifyTamperedJournal(t *testing.T) {
	id := DeriveImageID("topn-prover/v1")
	journal, err := testJournal().Encode()
	require.NoError(t, err)

	c := Bind(id, journal)
	c.Journal[0] ^= 0x01
	assert.False(t, c.Verify(id))
}

func TestVerifyTamperedDigest(t *testing.T) {
	id := DeriveImageID("topn-prover/v1")
	journal, err := testJournal().Encode()
	require.NoError(t, err)

	c := Bind(id, journal)
	c.Digest[0] ^= 0x01
	assert.False(t, c.Verify(id))
}

func TestDeriveImageID(t *testing.T) {
	assert.Equal(t, DeriveImageID("a"), DeriveImageID("a"))
	assert.NotEqual(t, DeriveImageID("a"), DeriveImageID("b"))
}

func TestBindCopiesJournal(t *testing.T) {
	id := DeriveImageID("topn-prover/v1")
	journal, err := testJournal().Encode()
	require.NoError(t, err)

	c := Bind(id, journal)
	journal[0] ^= 0x01
	assert.True(t, c.Verify(id), "commitment must not alias the caller's buffer")
}
