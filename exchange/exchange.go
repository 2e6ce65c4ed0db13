// package exchange assembles anonymity lists and drives proof generation
// and batch verification for the three proof-of-assets variants. An
// exchange value owns the secret side of its list (spend keys, amounts,
// blindings, decoy surrogates); the proof artifacts it emits carry only
// the public side and the responses.
package exchange

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/quisquislabs/nummatus/group"
)

// ErrListMismatch is returned when a proof's per-entry lists differ in
// length or the anonymity list is empty.
var ErrListMismatch = errors.New("per-entry lists empty or of unequal length")

// randomAmount draws a simulated output amount uniformly from
// [1, MaxAmountPerOutput).
func randomAmount(rng io.Reader) (uint64, error) {
	n, err := rand.Int(rng, big.NewInt(group.MaxAmountPerOutput-1))
	if err != nil {
		return 0, fmt.Errorf("error drawing amount: %v", err)
	}
	return n.Uint64() + 1, nil
}

// ownKeyVector returns anonSize scalars of which the first ownSize are
// fresh spend keys and the rest are zero sentinels, randomly permuted.
// The permutation is the only thing hiding which slots are owned.
func ownKeyVector(anonSize, ownSize int, rng io.Reader) ([]group.Scalar, error) {
	keys := make([]group.Scalar, anonSize)
	for i := 0; i < ownSize; i++ {
		k, err := group.RandomScalar(rng)
		if err != nil {
			return nil, err
		}
		keys[i] = k
	}
	if err := shuffle(keys, rng); err != nil {
		return nil, err
	}
	return keys, nil
}

// shuffle is a Fisher-Yates permutation driven by the cryptographic rng.
func shuffle(keys []group.Scalar, rng io.Reader) error {
	for i := len(keys) - 1; i > 0; i-- {
		jBig, err := rand.Int(rng, big.NewInt(int64(i+1)))
		if err != nil {
			return fmt.Errorf("error drawing permutation: %v", err)
		}
		j := int(jBig.Int64())
		keys[i], keys[j] = keys[j], keys[i]
	}
	return nil
}

// zeroizeAll wipes a slice of secret scalars.
func zeroizeAll(keys []group.Scalar) {
	for i := range keys {
		keys[i].Zeroize()
	}
}
