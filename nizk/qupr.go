package nizk

import (
	"fmt"
	"io"

	"github.com/quisquislabs/nummatus/group"
	"github.com/quisquislabs/nummatus/transcript"
)

// SpecialVerifyPoK proves, for one anonymity-list entry, that the output
// pair (P', C') is a legitimate Quisquis update of the input pair (P, C):
// either the prover knows the spend key k and a fresh randomizer t with
// P'.x = t*f, P'.y = t*k*f and C' rotated accordingly, or it knows two
// re-randomizers eta1, eta2 turning the opaque input into the output.
type SpecialVerifyPoK struct {
	E1 group.Scalar
	E2 group.Scalar
	S1 group.Scalar
	S2 group.Scalar
	S3 group.Scalar
	S4 group.Scalar
}

// SpecialVerifyWitness selects the update branch. Key and Rand open an
// owned update; Eta1 and Eta2 are the re-randomizers of a decoy update.
type SpecialVerifyWitness struct {
	Own  bool
	Key  group.Scalar
	Rand group.Scalar
	Eta1 group.Scalar
	Eta2 group.Scalar
}

// Prove dispatches on the witness branch.
func (w SpecialVerifyWitness) Prove(pubIn, comIn, pubOut, comOut group.PairPoint,
	rng io.Reader) (SpecialVerifyPoK, error) {

	if w.Own {
		return proveSpecialVerifyOwn(pubIn, comIn, pubOut, comOut, w.Key, w.Rand, rng)
	}
	return proveSpecialVerifyDecoy(pubIn, comIn, pubOut, comOut, w.Eta1, w.Eta2, rng)
}

// Zeroize wipes all four witness scalars.
func (w *SpecialVerifyWitness) Zeroize() {
	w.Key.Zeroize()
	w.Rand.Zeroize()
	w.Eta1.Zeroize()
	w.Eta2.Zeroize()
}

// updateDeltas returns the four entry-specific difference points
// y1 = P'.x - P.x, y2 = P'.y - P.y, z1 = C'.x - C.x, z2 = C'.y - C.y
// shared by prover and verifier.
func updateDeltas(pubIn, comIn, pubOut, comOut group.PairPoint) (
	y1, y2, z1, z2 group.Point, err error) {

	if y1, err = group.Ratio(pubOut.X, pubIn.X); err != nil {
		return
	}
	if y2, err = group.Ratio(pubOut.Y, pubIn.Y); err != nil {
		return
	}
	if z1, err = group.Ratio(comOut.X, comIn.X); err != nil {
		return
	}
	z2, err = group.Ratio(comOut.Y, comIn.Y)
	return
}

func specialVerifyChallenge(pubIn, comIn, pubOut, comOut group.PairPoint,
	y1, y2, z1, z2 group.Point, v [9]group.Point) (group.Scalar, error) {

	return transcript.Challenge(group.G, group.F, group.H,
		pubIn.X, pubIn.Y, comIn.X, comIn.Y,
		pubOut.X, pubOut.Y, comOut.X, comOut.Y,
		y1, y2, z1, z2,
		v[0], v[1], v[2], v[3], v[4], v[5], v[6], v[7], v[8])
}

func proveSpecialVerifyOwn(pubIn, comIn, pubOut, comOut group.PairPoint,
	key, rand group.Scalar, rng io.Reader) (SpecialVerifyPoK, error) {

	r1, err := group.RandomScalar(rng)
	if err != nil {
		return SpecialVerifyPoK{}, err
	}
	defer r1.Zeroize()
	r2, err := group.RandomScalar(rng)
	if err != nil {
		return SpecialVerifyPoK{}, err
	}
	defer r2.Zeroize()
	e2, err := group.RandomScalar(rng)
	if err != nil {
		return SpecialVerifyPoK{}, err
	}
	s3, err := group.RandomScalar(rng)
	if err != nil {
		return SpecialVerifyPoK{}, err
	}
	s4, err := group.RandomScalar(rng)
	if err != nil {
		return SpecialVerifyPoK{}, err
	}

	y1, y2, z1, z2, err := updateDeltas(pubIn, comIn, pubOut, comOut)
	if err != nil {
		return SpecialVerifyPoK{}, fmt.Errorf("error forming update deltas: %v", err)
	}

	var v [9]group.Point
	// real arm commitments
	if v[0], err = group.SingleBase(pubIn.X, r1); err != nil { // V1 = r1*P.x
		return SpecialVerifyPoK{}, err
	}
	if v[1], err = group.SingleBase(y1, r1); err != nil { // V2 = r1*y1
		return SpecialVerifyPoK{}, err
	}
	if v[2], err = group.SingleBase(z1, r1); err != nil { // V3 = r1*z1
		return SpecialVerifyPoK{}, err
	}
	if v[3], err = group.SingleBase(group.F, r2); err != nil { // V4 = r2*f
		return SpecialVerifyPoK{}, err
	}
	if v[4], err = group.SingleBase(group.H, r2); err != nil { // V5 = r2*h
		return SpecialVerifyPoK{}, err
	}
	// simulated decoy arm
	if v[5], err = group.DoubleBase(pubIn.X, pubOut.X, s3, e2); err != nil { // V6
		return SpecialVerifyPoK{}, err
	}
	if v[6], err = group.DoubleBase(pubIn.Y, pubOut.Y, s3, e2); err != nil { // V7
		return SpecialVerifyPoK{}, err
	}
	if v[7], err = group.DoubleBase(pubIn.X, z1, s4, e2); err != nil { // V8
		return SpecialVerifyPoK{}, err
	}
	if v[8], err = group.DoubleBase(pubIn.Y, z2, s4, e2); err != nil { // V9
		return SpecialVerifyPoK{}, err
	}

	hash, err := specialVerifyChallenge(pubIn, comIn, pubOut, comOut, y1, y2, z1, z2, v)
	if err != nil {
		return SpecialVerifyPoK{}, fmt.Errorf("error deriving challenge: %v", err)
	}

	e1 := hash.Sub(e2)
	return SpecialVerifyPoK{
		E1: e1,
		E2: e2,
		S1: group.AMinusBX(r1, e1, key),
		S2: group.AMinusBX(r2, e1, rand),
		S3: s3,
		S4: s4,
	}, nil
}

func proveSpecialVerifyDecoy(pubIn, comIn, pubOut, comOut group.PairPoint,
	eta1, eta2 group.Scalar, rng io.Reader) (SpecialVerifyPoK, error) {

	r3, err := group.RandomScalar(rng)
	if err != nil {
		return SpecialVerifyPoK{}, err
	}
	defer r3.Zeroize()
	r4, err := group.RandomScalar(rng)
	if err != nil {
		return SpecialVerifyPoK{}, err
	}
	defer r4.Zeroize()
	e1, err := group.RandomScalar(rng)
	if err != nil {
		return SpecialVerifyPoK{}, err
	}
	s1, err := group.RandomScalar(rng)
	if err != nil {
		return SpecialVerifyPoK{}, err
	}
	s2, err := group.RandomScalar(rng)
	if err != nil {
		return SpecialVerifyPoK{}, err
	}

	y1, y2, z1, z2, err := updateDeltas(pubIn, comIn, pubOut, comOut)
	if err != nil {
		return SpecialVerifyPoK{}, fmt.Errorf("error forming update deltas: %v", err)
	}

	var v [9]group.Point
	// simulated real arm
	if v[0], err = group.DoubleBase(pubIn.X, pubIn.Y, s1, e1); err != nil { // V1
		return SpecialVerifyPoK{}, err
	}
	if v[1], err = group.DoubleBase(y1, y2, s1, e1); err != nil { // V2
		return SpecialVerifyPoK{}, err
	}
	if v[2], err = group.DoubleBase(z1, z2, s1, e1); err != nil { // V3
		return SpecialVerifyPoK{}, err
	}
	if v[3], err = group.DoubleBase(group.F, pubOut.X, s2, e1); err != nil { // V4
		return SpecialVerifyPoK{}, err
	}
	if v[4], err = group.DoubleBase(group.H, comOut.X, s2, e1); err != nil { // V5
		return SpecialVerifyPoK{}, err
	}
	// decoy arm commitments
	if v[5], err = group.SingleBase(pubIn.X, r3); err != nil { // V6 = r3*P.x
		return SpecialVerifyPoK{}, err
	}
	if v[6], err = group.SingleBase(pubIn.Y, r3); err != nil { // V7 = r3*P.y
		return SpecialVerifyPoK{}, err
	}
	if v[7], err = group.SingleBase(pubIn.X, r4); err != nil { // V8 = r4*P.x
		return SpecialVerifyPoK{}, err
	}
	if v[8], err = group.SingleBase(pubIn.Y, r4); err != nil { // V9 = r4*P.y
		return SpecialVerifyPoK{}, err
	}

	hash, err := specialVerifyChallenge(pubIn, comIn, pubOut, comOut, y1, y2, z1, z2, v)
	if err != nil {
		return SpecialVerifyPoK{}, fmt.Errorf("error deriving challenge: %v", err)
	}

	e2 := hash.Sub(e1)
	return SpecialVerifyPoK{
		E1: e1,
		E2: e2,
		S1: s1,
		S2: s2,
		S3: group.AMinusBX(r3, e2, eta1),
		S4: group.AMinusBX(r4, e2, eta2),
	}, nil
}

// Verify recomputes the nine witnesses from the full response and checks
// that E1 + E2 equals the transcript hash.
func (pok SpecialVerifyPoK) Verify(pubIn, comIn, pubOut, comOut group.PairPoint) bool {
	y1, y2, z1, z2, err := updateDeltas(pubIn, comIn, pubOut, comOut)
	if err != nil {
		return false
	}

	var v [9]group.Point
	if v[0], err = group.DoubleBase(pubIn.X, pubIn.Y, pok.S1, pok.E1); err != nil {
		return false
	}
	if v[1], err = group.DoubleBase(y1, y2, pok.S1, pok.E1); err != nil {
		return false
	}
	if v[2], err = group.DoubleBase(z1, z2, pok.S1, pok.E1); err != nil {
		return false
	}
	if v[3], err = group.DoubleBase(group.F, pubOut.X, pok.S2, pok.E1); err != nil {
		return false
	}
	if v[4], err = group.DoubleBase(group.H, comOut.X, pok.S2, pok.E1); err != nil {
		return false
	}
	if v[5], err = group.DoubleBase(pubIn.X, pubOut.X, pok.S3, pok.E2); err != nil {
		return false
	}
	if v[6], err = group.DoubleBase(pubIn.Y, pubOut.Y, pok.S3, pok.E2); err != nil {
		return false
	}
	if v[7], err = group.DoubleBase(pubIn.X, z1, pok.S4, pok.E2); err != nil {
		return false
	}
	if v[8], err = group.DoubleBase(pubIn.Y, z2, pok.S4, pok.E2); err != nil {
		return false
	}

	hash, err := specialVerifyChallenge(pubIn, comIn, pubOut, comOut, y1, y2, z1, z2, v)
	if err != nil {
		return false
	}
	return pok.E1.Add(pok.E2).Equal(hash)
}

// QuisquisPRPoK proves, over the output side of an updated entry, that
// either the key-image embeds the committed amount under the known spend
// key (I = v*g + k*f), or the key-image was derived deterministically from
// a decoy seed (I = gamma*f).
type QuisquisPRPoK struct {
	E1 group.Scalar
	E2 group.Scalar
	S1 group.Scalar
	S2 group.Scalar
	S3 group.Scalar
	S4 group.Scalar
}

// PRWitness selects the key-image branch. Key, Amount and Rand open an
// owned key-image; DecoyKey is the hash-derived gamma of a decoy.
type PRWitness struct {
	Own      bool
	Key      group.Scalar
	Amount   uint64
	Rand     group.Scalar
	DecoyKey group.Scalar
}

// Prove dispatches on the witness branch.
func (w PRWitness) Prove(pubkey, commitment group.PairPoint, keyimage group.Point,
	rng io.Reader) (QuisquisPRPoK, error) {

	if w.Own {
		return provePROwn(pubkey, commitment, keyimage, w.Key, w.Amount, w.Rand, rng)
	}
	return provePRDecoy(pubkey, commitment, keyimage, w.DecoyKey, rng)
}

// Zeroize wipes the witness scalars.
func (w *PRWitness) Zeroize() {
	w.Key.Zeroize()
	w.Rand.Zeroize()
	w.DecoyKey.Zeroize()
}

func prChallenge(pubkey, commitment group.PairPoint, keyimage group.Point,
	v [4]group.Point) (group.Scalar, error) {

	return transcript.Challenge(group.G, group.H, group.F,
		pubkey.X, pubkey.Y, commitment.X, commitment.Y, keyimage,
		v[0], v[1], v[2], v[3])
}

func provePROwn(pubkey, commitment group.PairPoint, keyimage group.Point,
	key group.Scalar, amount uint64, rand group.Scalar,
	rng io.Reader) (QuisquisPRPoK, error) {

	amountKey, err := group.AmountToScalar(amount)
	if err != nil {
		return QuisquisPRPoK{}, err
	}
	r1, err := group.RandomScalar(rng)
	if err != nil {
		return QuisquisPRPoK{}, err
	}
	defer r1.Zeroize()
	r2, err := group.RandomScalar(rng)
	if err != nil {
		return QuisquisPRPoK{}, err
	}
	defer r2.Zeroize()
	r3, err := group.RandomScalar(rng)
	if err != nil {
		return QuisquisPRPoK{}, err
	}
	defer r3.Zeroize()
	e2, err := group.RandomScalar(rng)
	if err != nil {
		return QuisquisPRPoK{}, err
	}
	s4, err := group.RandomScalar(rng)
	if err != nil {
		return QuisquisPRPoK{}, err
	}

	var v [4]group.Point
	if v[0], err = group.SingleBase(group.F, r3); err != nil { // V1 = r3*f
		return QuisquisPRPoK{}, err
	}
	if v[1], err = group.DoubleBase(commitment.X, group.G, r1, r2); err != nil { // V2
		return QuisquisPRPoK{}, err
	}
	if v[2], err = group.DoubleBase(group.G, group.F, r2, r1); err != nil { // V3
		return QuisquisPRPoK{}, err
	}
	if v[3], err = group.DoubleBase(group.F, keyimage, s4, e2); err != nil { // V4
		return QuisquisPRPoK{}, err
	}

	hash, err := prChallenge(pubkey, commitment, keyimage, v)
	if err != nil {
		return QuisquisPRPoK{}, fmt.Errorf("error deriving challenge: %v", err)
	}

	e1 := hash.Sub(e2)
	return QuisquisPRPoK{
		E1: e1,
		E2: e2,
		S1: group.AMinusBX(r1, e1, key),
		S2: group.AMinusBX(r2, e1, amountKey),
		S3: group.AMinusBX(r3, e1, rand),
		S4: s4,
	}, nil
}

func provePRDecoy(pubkey, commitment group.PairPoint, keyimage group.Point,
	decoyKey group.Scalar, rng io.Reader) (QuisquisPRPoK, error) {

	r4, err := group.RandomScalar(rng)
	if err != nil {
		return QuisquisPRPoK{}, err
	}
	defer r4.Zeroize()
	e1, err := group.RandomScalar(rng)
	if err != nil {
		return QuisquisPRPoK{}, err
	}
	s1, err := group.RandomScalar(rng)
	if err != nil {
		return QuisquisPRPoK{}, err
	}
	s2, err := group.RandomScalar(rng)
	if err != nil {
		return QuisquisPRPoK{}, err
	}
	s3, err := group.RandomScalar(rng)
	if err != nil {
		return QuisquisPRPoK{}, err
	}

	var v [4]group.Point
	if v[0], err = group.DoubleBase(group.F, pubkey.X, s3, e1); err != nil { // V1
		return QuisquisPRPoK{}, err
	}
	if v[1], err = group.TripleBase(commitment.X, group.G, commitment.Y, s1, s2, e1); err != nil { // V2
		return QuisquisPRPoK{}, err
	}
	if v[2], err = group.TripleBase(group.G, group.F, keyimage, s2, s1, e1); err != nil { // V3
		return QuisquisPRPoK{}, err
	}
	if v[3], err = group.SingleBase(group.F, r4); err != nil { // V4 = r4*f
		return QuisquisPRPoK{}, err
	}

	hash, err := prChallenge(pubkey, commitment, keyimage, v)
	if err != nil {
		return QuisquisPRPoK{}, fmt.Errorf("error deriving challenge: %v", err)
	}

	e2 := hash.Sub(e1)
	return QuisquisPRPoK{
		E1: e1,
		E2: e2,
		S1: s1,
		S2: s2,
		S3: s3,
		S4: group.AMinusBX(r4, e2, decoyKey),
	}, nil
}

// Verify recomputes the four witnesses from the full response and checks
// that E1 + E2 equals the transcript hash.
func (pok QuisquisPRPoK) Verify(pubkey, commitment group.PairPoint,
	keyimage group.Point) bool {

	var v [4]group.Point
	var err error
	if v[0], err = group.DoubleBase(group.F, pubkey.X, pok.S3, pok.E1); err != nil {
		return false
	}
	if v[1], err = group.TripleBase(commitment.X, group.G, commitment.Y,
		pok.S1, pok.S2, pok.E1); err != nil {
		return false
	}
	if v[2], err = group.TripleBase(group.G, group.F, keyimage,
		pok.S2, pok.S1, pok.E1); err != nil {
		return false
	}
	if v[3], err = group.DoubleBase(group.F, keyimage, pok.S4, pok.E2); err != nil {
		return false
	}

	hash, err := prChallenge(pubkey, commitment, keyimage, v)
	if err != nil {
		return false
	}
	return pok.E1.Add(pok.E2).Equal(hash)
}
