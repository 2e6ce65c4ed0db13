package nizk

import (
	"fmt"
	"io"

	"github.com/quisquislabs/nummatus/group"
	"github.com/quisquislabs/nummatus/transcript"
)

// ReservesPoK is a plain Schnorr representation proof over the sum of a
// batch's Pedersen commitments: knowledge of K and V with
// sum = V*g + K*h, where V is the exchange's total amount and K the sum
// of its blinding keys. Published next to a Simplus batch it turns the
// per-output signatures into a total-reserves attestation.
type ReservesPoK struct {
	C  group.Scalar
	S1 group.Scalar
	S2 group.Scalar
}

// ProveReserves opens the summed commitment. totalKey is the sum of the
// per-output spend keys, totalAmount the sum of the amounts.
func ProveReserves(sum group.Point, totalKey group.Scalar, totalAmount uint64,
	rng io.Reader) (ReservesPoK, error) {

	amountKey, err := group.AmountToScalar(totalAmount)
	if err != nil {
		return ReservesPoK{}, err
	}
	r1, err := group.RandomScalar(rng)
	if err != nil {
		return ReservesPoK{}, err
	}
	defer r1.Zeroize()
	r2, err := group.RandomScalar(rng)
	if err != nil {
		return ReservesPoK{}, err
	}
	defer r2.Zeroize()

	// V = r2*g + r1*h
	v, err := group.DoubleBase(group.G, group.H, r2, r1)
	if err != nil {
		return ReservesPoK{}, fmt.Errorf("error committing: %v", err)
	}

	c, err := transcript.Challenge(group.G, group.H, sum, v)
	if err != nil {
		return ReservesPoK{}, fmt.Errorf("error deriving challenge: %v", err)
	}

	return ReservesPoK{
		C:  c,
		S1: group.AMinusBX(r1, c, totalKey),
		S2: group.AMinusBX(r2, c, amountKey),
	}, nil
}

// Verify recomputes V = s2*g + s1*h + c*sum and checks the challenge.
func (pok ReservesPoK) Verify(sum group.Point) bool {
	v, err := group.TripleBase(group.G, group.H, sum, pok.S2, pok.S1, pok.C)
	if err != nil {
		return false
	}
	c, err := transcript.Challenge(group.G, group.H, sum, v)
	if err != nil {
		return false
	}
	return pok.C.Equal(c)
}
