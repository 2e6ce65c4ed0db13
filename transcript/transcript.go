// package transcript derives Fiat-Shamir challenges. Each sigma protocol
// fixes an ordered tuple of points; the challenge is SHA-256 over their
// compressed encodings, read back as a scalar. Prover and verifier must
// absorb the same tuple in the same order, so the tuple layout is part of
// each protocol's definition, not of this package.
package transcript

import (
	"crypto/sha256"

	"github.com/quisquislabs/nummatus/group"
)

// Challenge hashes the given points, in order, into a scalar challenge.
// A digest that reduces to zero or overflows the curve order is rejected
// with group.ErrScalarOutOfRange; with a cryptographic hash this is a
// once-in-forever event and aborting the proof is the only safe answer.
func Challenge(points ...group.Point) (group.Scalar, error) {
	h := sha256.New()
	for _, p := range points {
		h.Write(p.SerializeCompressed())
	}
	var digest [32]byte
	h.Sum(digest[:0])
	return group.ScalarFromBytes(digest)
}
