package exchange

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quisquislabs/nummatus/group"
)

func TestNummatusAllOwn(t *testing.T) {
	e, err := NewNummatusExchange(4, 4, rand.Reader)
	require.NoError(t, err)
	defer e.Close()

	for i := 0; i < 4; i++ {
		if e.ownKeys[i].IsZero() {
			t.Fatalf("slot %d is a decoy in an all-own list", i)
		}
		// pedersen[i] = v_i*g + k_i*h holds by construction
		amountKey, err := group.AmountToScalar(e.ownAmounts[i])
		require.NoError(t, err)
		want, err := group.DoubleBase(group.G, group.H, amountKey, e.ownKeys[i])
		require.NoError(t, err)
		if !e.proof.PedersenList[i].Equal(want) {
			t.Errorf("pedersen commitment %d not v*g + k*h", i)
		}
	}

	proof, err := e.GenerateProof()
	require.NoError(t, err)
	ok, err := proof.Verify()
	require.NoError(t, err)
	if !ok {
		t.Errorf("all-own Nummatus proof rejected")
	}
}

func TestNummatusMixedList(t *testing.T) {
	e, err := NewNummatusExchange(8, 3, rand.Reader)
	require.NoError(t, err)
	defer e.Close()

	ownCount := 0
	for i := 0; i < 8; i++ {
		if !e.ownKeys[i].IsZero() {
			ownCount++
		}
	}
	if ownCount != 3 {
		t.Fatalf("expected 3 own slots, got %d", ownCount)
	}

	proof, err := e.GenerateProof()
	require.NoError(t, err)
	ok, err := proof.Verify()
	require.NoError(t, err)
	if !ok {
		t.Errorf("mixed Nummatus proof rejected")
	}

	// corrupting one decoy's pedersen commitment must break the batch
	decoy := -1
	for i := 0; i < 8; i++ {
		if e.ownKeys[i].IsZero() {
			decoy = i
			break
		}
	}
	require.NotEqual(t, -1, decoy)
	perturbed, err := group.Add(proof.PedersenList[decoy], group.G)
	require.NoError(t, err)
	proof.PedersenList[decoy] = perturbed

	ok, err = proof.Verify()
	require.NoError(t, err)
	if ok {
		t.Errorf("proof with a corrupted decoy commitment accepted")
	}
}

func TestNummatusCompletenessGrid(t *testing.T) {
	cases := []struct{ anon, own int }{
		{1, 1}, {2, 1}, {4, 0}, {8, 3}, {16, 16}, {32, 7},
	}
	for _, c := range cases {
		e, err := NewNummatusExchange(c.anon, c.own, rand.Reader)
		require.NoError(t, err)

		proof, err := e.GenerateProof()
		require.NoError(t, err)
		ok, err := proof.Verify()
		require.NoError(t, err)
		if !ok {
			t.Errorf("honest proof rejected for anon=%d own=%d", c.anon, c.own)
		}
		e.Close()
	}
}

func TestNummatusListPreconditions(t *testing.T) {
	var empty Nummatus
	if _, err := empty.Verify(); err != ErrListMismatch {
		t.Errorf("expected ErrListMismatch for empty artifact, got %v", err)
	}

	e, err := NewNummatusExchange(3, 1, rand.Reader)
	require.NoError(t, err)
	defer e.Close()
	proof, err := e.GenerateProof()
	require.NoError(t, err)
	proof.PokList = proof.PokList[:2]
	if _, err := proof.Verify(); err != ErrListMismatch {
		t.Errorf("expected ErrListMismatch for unequal lists, got %v", err)
	}
}

func TestNummatusRejectsBadSizes(t *testing.T) {
	if _, err := NewNummatusExchange(0, 0, rand.Reader); err != ErrListMismatch {
		t.Errorf("expected ErrListMismatch for empty list, got %v", err)
	}
	if _, err := NewNummatusExchange(2, 3, rand.Reader); err != ErrListMismatch {
		t.Errorf("expected ErrListMismatch for own > anon, got %v", err)
	}
}
