package nizk

import (
	"crypto/rand"
	"testing"

	"github.com/quisquislabs/nummatus/group"
	"github.com/quisquislabs/nummatus/testutils"
)

// makeDecoyEntry assembles a decoy entry: random pair points and a
// Pedersen commitment gamma*h.
func makeDecoyEntry(t *testing.T) (pub, com group.PairPoint, pedersen group.Point, gamma group.Scalar) {
	t.Helper()
	var err error
	if pub.X, err = group.RandomPoint(rand.Reader); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pub.Y, err = group.RandomPoint(rand.Reader); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if com.X, err = group.RandomPoint(rand.Reader); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if com.Y, err = group.RandomPoint(rand.Reader); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gamma = mustScalar(t, rand.Reader)
	pedersen = mustSingle(t, group.H, gamma)
	return pub, com, pedersen, gamma
}

func TestNummatusOwnBranch(t *testing.T) {
	e := makeOwnEntry(t, 100)
	w := NummatusWitness{Own: true, Key: e.key}
	pok, err := w.Prove(e.pubkey, e.commitment, e.pedersen, group.H, rand.Reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pok.Verify(e.pubkey, e.commitment, e.pedersen, group.H) {
		t.Errorf("honest own-branch proof rejected")
	}
}

func TestNummatusDecoyBranch(t *testing.T) {
	pub, com, pedersen, gamma := makeDecoyEntry(t)
	w := NummatusWitness{Own: false, Gamma: gamma}
	pok, err := w.Prove(pub, com, pedersen, group.H, rand.Reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pok.Verify(pub, com, pedersen, group.H) {
		t.Errorf("honest decoy-branch proof rejected")
	}
}

func TestNummatusChallengeSplit(t *testing.T) {
	// tampering with either challenge of the split, or with either
	// response, must break verification
	e := makeOwnEntry(t, 3)
	w := NummatusWitness{Own: true, Key: e.key}
	pok, err := w.Prove(e.pubkey, e.commitment, e.pedersen, group.H, rand.Reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, corrupt := range []NummatusPoK{
		{E1: testutils.FlipScalarByte(pok.E1, 0), E2: pok.E2, S1: pok.S1, S2: pok.S2},
		{E1: pok.E1, E2: testutils.FlipScalarByte(pok.E2, 0), S1: pok.S1, S2: pok.S2},
		{E1: pok.E1, E2: pok.E2, S1: testutils.FlipScalarByte(pok.S1, 0), S2: pok.S2},
		{E1: pok.E1, E2: pok.E2, S1: pok.S1, S2: testutils.FlipScalarByte(pok.S2, 0)},
	} {
		if corrupt.Verify(e.pubkey, e.commitment, e.pedersen, group.H) {
			t.Errorf("corrupted proof %d accepted", i)
		}
	}
}

func TestNummatusDecoyCannotClaimOwnership(t *testing.T) {
	// a decoy witness for an owned statement must not verify: the decoy
	// branch only holds when pedersen has no v*g component
	e := makeOwnEntry(t, 50)
	gamma := mustScalar(t, rand.Reader)
	w := NummatusWitness{Own: false, Gamma: gamma}
	pok, err := w.Prove(e.pubkey, e.commitment, e.pedersen, group.H, rand.Reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pok.Verify(e.pubkey, e.commitment, e.pedersen, group.H) {
		t.Errorf("decoy proof with an unrelated gamma accepted")
	}
}

func TestNummatusPedersenBinding(t *testing.T) {
	pub, com, pedersen, gamma := makeDecoyEntry(t)
	w := NummatusWitness{Own: false, Gamma: gamma}
	pok, err := w.Prove(pub, com, pedersen, group.H, rand.Reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pok.Verify(pub, com, addG(t, pedersen), group.H) {
		t.Errorf("proof accepted against a perturbed pedersen commitment")
	}
}
