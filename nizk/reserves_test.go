package nizk

import (
	"crypto/rand"
	"testing"

	"github.com/quisquislabs/nummatus/group"
	"github.com/quisquislabs/nummatus/testutils"
)

func TestReservesCompleteness(t *testing.T) {
	// sum three pedersen commitments and open the total
	var totalKey group.Scalar
	var totalAmount uint64
	var sum group.Point

	for i, amount := range []uint64{5, 10, 985} {
		e := makeOwnEntry(t, amount)
		totalKey = totalKey.Add(e.key)
		totalAmount += amount
		if i == 0 {
			sum = e.pedersen
			continue
		}
		var err error
		if sum, err = group.Add(sum, e.pedersen); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	pok, err := ProveReserves(sum, totalKey, totalAmount, rand.Reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pok.Verify(sum) {
		t.Errorf("honest reserves proof rejected")
	}
}

func TestReservesCorruption(t *testing.T) {
	e := makeOwnEntry(t, 123)
	pok, err := ProveReserves(e.pedersen, e.key, e.amount, rand.Reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := pok
	bad.S1 = testutils.FlipScalarByte(pok.S1, 0)
	if bad.Verify(e.pedersen) {
		t.Errorf("reserves proof with corrupted key response accepted")
	}

	bad = pok
	bad.S2 = testutils.FlipScalarByte(pok.S2, 0)
	if bad.Verify(e.pedersen) {
		t.Errorf("reserves proof with corrupted amount response accepted")
	}

	if pok.Verify(addG(t, e.pedersen)) {
		t.Errorf("reserves proof accepted against a perturbed sum")
	}
}

func TestReservesWrongTotal(t *testing.T) {
	e := makeOwnEntry(t, 400)
	pok, err := ProveReserves(e.pedersen, e.key, e.amount+1, rand.Reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pok.Verify(e.pedersen) {
		t.Errorf("reserves proof over the wrong total accepted")
	}
}

func TestReservesZeroTotalRejected(t *testing.T) {
	e := makeOwnEntry(t, 1)
	if _, err := ProveReserves(e.pedersen, e.key, 0, rand.Reader); err != group.ErrInvalidAmount {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
}
