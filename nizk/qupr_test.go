package nizk

import (
	"crypto/rand"
	"testing"

	"github.com/quisquislabs/nummatus/group"
	"github.com/quisquislabs/nummatus/testutils"
)

// quprOwnEntry is an owned entry with both sides of the Quisquis update
// and its value-bound key-image.
type quprOwnEntry struct {
	pubIn, comIn   group.PairPoint
	pubOut, comOut group.PairPoint
	keyimage       group.Point
	key            group.Scalar
	rand           group.Scalar
	amount         uint64
}

func makeQuprOwnEntry(t *testing.T, amount uint64) quprOwnEntry {
	t.Helper()
	rng := rand.Reader

	var e quprOwnEntry
	e.amount = amount
	e.key = mustScalar(t, rng)
	e.rand = mustScalar(t, rng)
	r1 := mustScalar(t, rng)
	r2 := mustScalar(t, rng)
	amountKey, err := group.AmountToScalar(amount)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e.pubIn.X = mustSingle(t, group.G, r1)
	e.pubIn.Y = mustSingle(t, e.pubIn.X, e.key)
	e.comIn.X = mustSingle(t, e.pubIn.X, r2)
	e.comIn.Y = mustDouble(t, group.G, e.pubIn.Y, amountKey, r2)

	e.pubOut.X = mustSingle(t, group.F, e.rand)
	e.pubOut.Y = mustSingle(t, e.pubOut.X, e.key)
	e.comOut.X = mustSingle(t, group.H, e.rand)
	e.comOut.Y = mustDouble(t, group.G, e.comOut.X, amountKey, e.key)

	e.keyimage = mustDouble(t, group.G, group.F, amountKey, e.key)
	return e
}

// quprDecoyEntry is a decoy entry: random input pairs re-randomized into
// the output by eta1 and eta2, with a key-image on a surrogate key.
type quprDecoyEntry struct {
	pubIn, comIn   group.PairPoint
	pubOut, comOut group.PairPoint
	keyimage       group.Point
	eta1, eta2     group.Scalar
	decoyKey       group.Scalar
}

func makeQuprDecoyEntry(t *testing.T) quprDecoyEntry {
	t.Helper()
	rng := rand.Reader

	var e quprDecoyEntry
	var err error
	for _, p := range []*group.Point{&e.pubIn.X, &e.pubIn.Y, &e.comIn.X, &e.comIn.Y} {
		if *p, err = group.RandomPoint(rng); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	e.eta1 = mustScalar(t, rng)
	e.eta2 = mustScalar(t, rng)
	e.decoyKey = mustScalar(t, rng)

	e.pubOut.X = mustSingle(t, e.pubIn.X, e.eta1)
	e.pubOut.Y = mustSingle(t, e.pubIn.Y, e.eta1)
	r2g1 := mustSingle(t, e.pubIn.X, e.eta2)
	if e.comOut.X, err = group.Add(e.comIn.X, r2g1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r2h1 := mustSingle(t, e.pubIn.Y, e.eta2)
	if e.comOut.Y, err = group.Add(e.comIn.Y, r2h1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e.keyimage = mustSingle(t, group.F, e.decoyKey)
	return e
}

func TestSpecialVerifyOwnBranch(t *testing.T) {
	e := makeQuprOwnEntry(t, 250)
	w := SpecialVerifyWitness{Own: true, Key: e.key, Rand: e.rand}
	pok, err := w.Prove(e.pubIn, e.comIn, e.pubOut, e.comOut, rand.Reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pok.Verify(e.pubIn, e.comIn, e.pubOut, e.comOut) {
		t.Errorf("honest own-branch update proof rejected")
	}
}

func TestSpecialVerifyDecoyBranch(t *testing.T) {
	e := makeQuprDecoyEntry(t)
	w := SpecialVerifyWitness{Own: false, Eta1: e.eta1, Eta2: e.eta2}
	pok, err := w.Prove(e.pubIn, e.comIn, e.pubOut, e.comOut, rand.Reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pok.Verify(e.pubIn, e.comIn, e.pubOut, e.comOut) {
		t.Errorf("honest decoy-branch update proof rejected")
	}
}

func TestSpecialVerifyCorruptedResponses(t *testing.T) {
	e := makeQuprOwnEntry(t, 77)
	w := SpecialVerifyWitness{Own: true, Key: e.key, Rand: e.rand}
	pok, err := w.Prove(e.pubIn, e.comIn, e.pubOut, e.comOut, rand.Reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	scalars := []*group.Scalar{&pok.E1, &pok.E2, &pok.S1, &pok.S2, &pok.S3, &pok.S4}
	for i := range scalars {
		bad := pok
		badScalars := []*group.Scalar{&bad.E1, &bad.E2, &bad.S1, &bad.S2, &bad.S3, &bad.S4}
		*badScalars[i] = testutils.FlipScalarByte(*scalars[i], 0)
		if bad.Verify(e.pubIn, e.comIn, e.pubOut, e.comOut) {
			t.Errorf("update proof with corrupted scalar %d accepted", i)
		}
	}
}

func TestSpecialVerifyBindsToOutput(t *testing.T) {
	e := makeQuprOwnEntry(t, 12)
	w := SpecialVerifyWitness{Own: true, Key: e.key, Rand: e.rand}
	pok, err := w.Prove(e.pubIn, e.comIn, e.pubOut, e.comOut, rand.Reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	perturbed := e.comOut
	perturbed.Y = addG(t, perturbed.Y)
	if pok.Verify(e.pubIn, e.comIn, e.pubOut, perturbed) {
		t.Errorf("update proof accepted against a perturbed output commitment")
	}
}

func TestPROwnBranch(t *testing.T) {
	e := makeQuprOwnEntry(t, 33)
	w := PRWitness{Own: true, Key: e.key, Amount: e.amount, Rand: e.rand}
	pok, err := w.Prove(e.pubOut, e.comOut, e.keyimage, rand.Reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pok.Verify(e.pubOut, e.comOut, e.keyimage) {
		t.Errorf("honest own-branch key-image proof rejected")
	}
}

func TestPRDecoyBranch(t *testing.T) {
	e := makeQuprDecoyEntry(t)
	w := PRWitness{Own: false, DecoyKey: e.decoyKey}
	pok, err := w.Prove(e.pubOut, e.comOut, e.keyimage, rand.Reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pok.Verify(e.pubOut, e.comOut, e.keyimage) {
		t.Errorf("honest decoy-branch key-image proof rejected")
	}
}

func TestPRCorruptedResponses(t *testing.T) {
	e := makeQuprOwnEntry(t, 500)
	w := PRWitness{Own: true, Key: e.key, Amount: e.amount, Rand: e.rand}
	pok, err := w.Prove(e.pubOut, e.comOut, e.keyimage, rand.Reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	scalars := []group.Scalar{pok.E1, pok.E2, pok.S1, pok.S2, pok.S3, pok.S4}
	for i := range scalars {
		bad := pok
		badScalars := []*group.Scalar{&bad.E1, &bad.E2, &bad.S1, &bad.S2, &bad.S3, &bad.S4}
		*badScalars[i] = testutils.FlipScalarByte(scalars[i], 0)
		if bad.Verify(e.pubOut, e.comOut, e.keyimage) {
			t.Errorf("key-image proof with corrupted scalar %d accepted", i)
		}
	}
}

func TestPRBindsToKeyimage(t *testing.T) {
	e := makeQuprOwnEntry(t, 5)
	w := PRWitness{Own: true, Key: e.key, Amount: e.amount, Rand: e.rand}
	pok, err := w.Prove(e.pubOut, e.comOut, e.keyimage, rand.Reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pok.Verify(e.pubOut, e.comOut, addG(t, e.keyimage)) {
		t.Errorf("key-image proof accepted against a perturbed key-image")
	}
}
