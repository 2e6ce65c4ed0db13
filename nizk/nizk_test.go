package nizk

import (
	"crypto/rand"
	"io"
	"testing"

	"github.com/quisquislabs/nummatus/group"
)

// ownEntry is a fully assembled owned anonymity-list entry, the statement
// side plus its witness, shared by the protocol tests.
type ownEntry struct {
	pubkey     group.PairPoint
	commitment group.PairPoint
	pedersen   group.Point
	key        group.Scalar
	amount     uint64
}

func mustScalar(t *testing.T, rng io.Reader) group.Scalar {
	t.Helper()
	s, err := group.RandomScalar(rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func mustSingle(t *testing.T, b group.Point, e group.Scalar) group.Point {
	t.Helper()
	p, err := group.SingleBase(b, e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return p
}

func mustDouble(t *testing.T, b1, b2 group.Point, e1, e2 group.Scalar) group.Point {
	t.Helper()
	p, err := group.DoubleBase(b1, b2, e1, e2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return p
}

// makeOwnEntry assembles an owned entry with pedersen = v*g + k*h.
func makeOwnEntry(t *testing.T, amount uint64) ownEntry {
	t.Helper()
	rng := rand.Reader
	key := mustScalar(t, rng)
	r1 := mustScalar(t, rng)
	r2 := mustScalar(t, rng)
	amountKey, err := group.AmountToScalar(amount)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var e ownEntry
	e.key = key
	e.amount = amount
	e.pubkey.X = mustSingle(t, group.G, r1)
	e.pubkey.Y = mustSingle(t, e.pubkey.X, key)
	e.commitment.X = mustSingle(t, e.pubkey.X, r2)
	e.commitment.Y = mustDouble(t, group.G, e.pubkey.Y, amountKey, r2)
	e.pedersen = mustDouble(t, group.G, group.H, amountKey, key)
	return e
}

// addG perturbs a point by the base generator.
func addG(t *testing.T, p group.Point) group.Point {
	t.Helper()
	q, err := group.Add(p, group.G)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return q
}
