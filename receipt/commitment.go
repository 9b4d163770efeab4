package receipt

import (
	"bytes"
	"crypto/subtle"

	"golang.org/x/crypto/sha3"
)

// ImageID identifies the verifier build a commitment is bound to.
// Downstream checkers accept a journal only under the image id they
// trust, so a commitment forged under a different verifier fails the
// binding check.
type ImageID [32]byte

// DeriveImageID derives an image id from a release tag. Hosts that
// receive a real build identifier from their packaging pipeline should
// use that instead.
func DeriveImageID(tag string) ImageID {
	return ImageID(keccak256([]byte(tag)))
}

// Commitment irreversibly binds a journal to an image id.
type Commitment struct {
	ImageID ImageID
	Journal []byte
	Digest  [32]byte
}

// Bind creates the commitment for journal under imageID. The digest is
// keccak-256 over the image id followed by the journal bytes.
func Bind(imageID ImageID, journal []byte) Commitment {
	c := Commitment{
		ImageID: imageID,
		Journal: bytes.Clone(journal),
	}
	c.Digest = bindingDigest(imageID, journal)
	return c
}

// Verify reports whether the commitment is intact and bound to imageID.
func (c Commitment) Verify(imageID ImageID) bool {
	if c.ImageID != imageID {
		return false
	}
	want := bindingDigest(imageID, c.Journal)
	return subtle.ConstantTimeCompare(want[:], c.Digest[:]) == 1
}

func bindingDigest(imageID ImageID, journal []byte) [32]byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(imageID[:])
	h.Write(journal)
	var out [32]byte
	h.Sum(out[:0])
	return out
}

func keccak256(data []byte) [32]byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	var out [32]byte
	h.Sum(out[:0])
	return out
}
