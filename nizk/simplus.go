package nizk

import (
	"fmt"
	"io"

	"github.com/quisquislabs/nummatus/group"
	"github.com/quisquislabs/nummatus/transcript"
)

// SimplePoK is the Simplus proof: a single Schnorr-style challenge and
// response showing that the prover knows k with pubkey.Y = k*pubkey.X and
// pedersen = v*g + k*h for the same k, with the amount v staying hidden.
type SimplePoK struct {
	E group.Scalar
	S group.Scalar
}

// ProveSimple signs the entry with the spend key. h is the rotating
// per-height generator the Pedersen commitment was built against.
func ProveSimple(pubkey, commitment group.PairPoint, pedersen group.Point,
	key group.Scalar, h group.Point, rng io.Reader) (SimplePoK, error) {

	r1, err := group.RandomScalar(rng)
	if err != nil {
		return SimplePoK{}, err
	}
	defer r1.Zeroize()

	// V1 = r1*P.x
	v1, err := group.SingleBase(pubkey.X, r1)
	if err != nil {
		return SimplePoK{}, fmt.Errorf("error committing to V1: %v", err)
	}

	// V2 = r1*(h - C.x)
	hMinusC, err := group.Ratio(h, commitment.X)
	if err != nil {
		return SimplePoK{}, fmt.Errorf("error forming h - C.x: %v", err)
	}
	v2, err := group.SingleBase(hMinusC, r1)
	if err != nil {
		return SimplePoK{}, fmt.Errorf("error committing to V2: %v", err)
	}

	e, err := transcript.Challenge(h, pubkey.X, pubkey.Y,
		commitment.X, commitment.Y, pedersen, v1, v2)
	if err != nil {
		return SimplePoK{}, fmt.Errorf("error deriving challenge: %v", err)
	}

	return SimplePoK{E: e, S: group.AMinusBX(r1, e, key)}, nil
}

// Verify recomputes the witnesses from the response and checks the
// challenge binds to them.
func (pok SimplePoK) Verify(pubkey, commitment group.PairPoint,
	pedersen, h group.Point) bool {

	// V1 = s*P.x + e*P.y
	v1, err := group.DoubleBase(pubkey.X, pubkey.Y, pok.S, pok.E)
	if err != nil {
		return false
	}

	// V2 = s*(h - C.x) + e*(pedersen - C.y)
	pMinusD, err := group.Ratio(pedersen, commitment.Y)
	if err != nil {
		return false
	}
	hMinusC, err := group.Ratio(h, commitment.X)
	if err != nil {
		return false
	}
	v2, err := group.DoubleBase(hMinusC, pMinusD, pok.S, pok.E)
	if err != nil {
		return false
	}

	e, err := transcript.Challenge(h, pubkey.X, pubkey.Y,
		commitment.X, commitment.Y, pedersen, v1, v2)
	if err != nil {
		return false
	}
	return pok.E.Equal(e)
}
