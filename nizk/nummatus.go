package nizk

import (
	"fmt"
	"io"

	"github.com/quisquislabs/nummatus/group"
	"github.com/quisquislabs/nummatus/transcript"
)

// NummatusPoK is a one-of-two proof over a single anonymity-list entry:
// either the prover knows the spend key k with pubkey.Y = k*pubkey.X and
// pedersen = v*g + k*h (the entry is owned), or it knows gamma with
// pedersen = gamma*h (the entry is a decoy). The two challenges satisfy
// E1 + E2 = H(transcript), so exactly one branch can be simulated.
type NummatusPoK struct {
	E1 group.Scalar
	E2 group.Scalar
	S1 group.Scalar
	S2 group.Scalar
}

// NummatusWitness selects the branch the prover can actually open. Key is
// the spend key for an owned entry; Gamma the surrogate discrete log of
// the Pedersen commitment for a decoy.
type NummatusWitness struct {
	Own   bool
	Key   group.Scalar
	Gamma group.Scalar
}

// Prove dispatches on the witness branch. Both branches produce proofs
// with identical distributions; nothing in the output betrays which arm
// was real.
func (w NummatusWitness) Prove(pubkey, commitment group.PairPoint,
	pedersen, h group.Point, rng io.Reader) (NummatusPoK, error) {

	if w.Own {
		return proveNummatusOwn(pubkey, commitment, pedersen, w.Key, h, rng)
	}
	return proveNummatusDecoy(pubkey, commitment, pedersen, w.Gamma, h, rng)
}

// Zeroize wipes both witness scalars.
func (w *NummatusWitness) Zeroize() {
	w.Key.Zeroize()
	w.Gamma.Zeroize()
}

func proveNummatusOwn(pubkey, commitment group.PairPoint, pedersen group.Point,
	key group.Scalar, h group.Point, rng io.Reader) (NummatusPoK, error) {

	r1, err := group.RandomScalar(rng)
	if err != nil {
		return NummatusPoK{}, err
	}
	defer r1.Zeroize()
	e2, err := group.RandomScalar(rng)
	if err != nil {
		return NummatusPoK{}, err
	}
	s2, err := group.RandomScalar(rng)
	if err != nil {
		return NummatusPoK{}, err
	}

	// V1 = r1*P.x
	v1, err := group.SingleBase(pubkey.X, r1)
	if err != nil {
		return NummatusPoK{}, fmt.Errorf("error committing to V1: %v", err)
	}

	// V2 = r1*(h - C.x)
	hMinusC, err := group.Ratio(h, commitment.X)
	if err != nil {
		return NummatusPoK{}, fmt.Errorf("error forming h - C.x: %v", err)
	}
	v2, err := group.SingleBase(hMinusC, r1)
	if err != nil {
		return NummatusPoK{}, fmt.Errorf("error committing to V2: %v", err)
	}

	// V3 = s2*h + e2*pedersen, the simulated decoy arm
	v3, err := group.DoubleBase(h, pedersen, s2, e2)
	if err != nil {
		return NummatusPoK{}, fmt.Errorf("error simulating V3: %v", err)
	}

	hash, err := transcript.Challenge(h, pubkey.X, pubkey.Y,
		commitment.X, commitment.Y, pedersen, v1, v2, v3)
	if err != nil {
		return NummatusPoK{}, fmt.Errorf("error deriving challenge: %v", err)
	}

	e1 := hash.Sub(e2)
	return NummatusPoK{
		E1: e1,
		E2: e2,
		S1: group.AMinusBX(r1, e1, key),
		S2: s2,
	}, nil
}

func proveNummatusDecoy(pubkey, commitment group.PairPoint, pedersen group.Point,
	gamma group.Scalar, h group.Point, rng io.Reader) (NummatusPoK, error) {

	r2, err := group.RandomScalar(rng)
	if err != nil {
		return NummatusPoK{}, err
	}
	defer r2.Zeroize()
	e1, err := group.RandomScalar(rng)
	if err != nil {
		return NummatusPoK{}, err
	}
	s1, err := group.RandomScalar(rng)
	if err != nil {
		return NummatusPoK{}, err
	}

	// V1 = s1*P.x + e1*P.y, the simulated ownership arm
	v1, err := group.DoubleBase(pubkey.X, pubkey.Y, s1, e1)
	if err != nil {
		return NummatusPoK{}, fmt.Errorf("error simulating V1: %v", err)
	}

	// V2 = s1*(h - C.x) + e1*(pedersen - C.y)
	pMinusD, err := group.Ratio(pedersen, commitment.Y)
	if err != nil {
		return NummatusPoK{}, fmt.Errorf("error forming pedersen - C.y: %v", err)
	}
	hMinusC, err := group.Ratio(h, commitment.X)
	if err != nil {
		return NummatusPoK{}, fmt.Errorf("error forming h - C.x: %v", err)
	}
	v2, err := group.DoubleBase(hMinusC, pMinusD, s1, e1)
	if err != nil {
		return NummatusPoK{}, fmt.Errorf("error simulating V2: %v", err)
	}

	// V3 = r2*h
	v3, err := group.SingleBase(h, r2)
	if err != nil {
		return NummatusPoK{}, fmt.Errorf("error committing to V3: %v", err)
	}

	hash, err := transcript.Challenge(h, pubkey.X, pubkey.Y,
		commitment.X, commitment.Y, pedersen, v1, v2, v3)
	if err != nil {
		return NummatusPoK{}, fmt.Errorf("error deriving challenge: %v", err)
	}

	e2 := hash.Sub(e1)
	return NummatusPoK{
		E1: e1,
		E2: e2,
		S1: s1,
		S2: group.AMinusBX(r2, e2, gamma),
	}, nil
}

// Verify recomputes all three witnesses from the full response and checks
// that E1 + E2 equals the transcript hash.
func (pok NummatusPoK) Verify(pubkey, commitment group.PairPoint,
	pedersen, h group.Point) bool {

	// V1 = s1*P.x + e1*P.y
	v1, err := group.DoubleBase(pubkey.X, pubkey.Y, pok.S1, pok.E1)
	if err != nil {
		return false
	}

	// V2 = s1*(h - C.x) + e1*(pedersen - C.y)
	pMinusD, err := group.Ratio(pedersen, commitment.Y)
	if err != nil {
		return false
	}
	hMinusC, err := group.Ratio(h, commitment.X)
	if err != nil {
		return false
	}
	v2, err := group.DoubleBase(hMinusC, pMinusD, pok.S1, pok.E1)
	if err != nil {
		return false
	}

	// V3 = s2*h + e2*pedersen
	v3, err := group.DoubleBase(h, pedersen, pok.S2, pok.E2)
	if err != nil {
		return false
	}

	hash, err := transcript.Challenge(h, pubkey.X, pubkey.Y,
		commitment.X, commitment.Y, pedersen, v1, v2, v3)
	if err != nil {
		return false
	}
	return pok.E1.Add(pok.E2).Equal(hash)
}
