package group

import (
	"encoding/binary"
	"fmt"
	"io"

	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Scalar is an element of the secp256k1 scalar field Z_n. The zero value is
// the additive identity; witness builders use it as the "no secret here"
// sentinel for decoy slots.
type Scalar struct {
	v secp256k1.ModNScalar
}

// RandomScalar draws a uniform non-zero scalar from rng by rejection
// sampling 32-byte strings against the curve order.
func RandomScalar(rng io.Reader) (Scalar, error) {
	var buf [32]byte
	defer zeroBytes(buf[:])
	for {
		if _, err := io.ReadFull(rng, buf[:]); err != nil {
			return Scalar{}, fmt.Errorf("error reading randomness: %v", err)
		}
		var s Scalar
		if overflow := s.v.SetBytes(&buf); overflow != 0 || s.v.IsZero() {
			continue
		}
		return s, nil
	}
}

// ScalarFromBytes interprets a 32-byte big-endian string as a scalar.
// Bytes encoding zero or a value not below the curve order are rejected
// with ErrScalarOutOfRange.
func ScalarFromBytes(b [32]byte) (Scalar, error) {
	var s Scalar
	if overflow := s.v.SetBytes(&b); overflow != 0 || s.v.IsZero() {
		return Scalar{}, ErrScalarOutOfRange
	}
	return s, nil
}

// AmountToScalar lifts a non-zero u64 amount to a scalar: the amount is
// big-endian encoded into the low 8 bytes of a 32-byte string.
func AmountToScalar(amount uint64) (Scalar, error) {
	if amount == 0 {
		return Scalar{}, ErrInvalidAmount
	}
	var buf [32]byte
	binary.BigEndian.PutUint64(buf[24:], amount)
	var s Scalar
	s.v.SetBytes(&buf)
	return s, nil
}

// Bytes returns the 32-byte big-endian encoding of the scalar.
func (s Scalar) Bytes() [32]byte {
	return s.v.Bytes()
}

// IsZero reports whether the scalar is the additive identity.
func (s Scalar) IsZero() bool {
	return s.v.IsZero()
}

// Equal reports whether two scalars are the same field element.
func (s Scalar) Equal(t Scalar) bool {
	return s.v.Equals(&t.v)
}

// Add returns s + t mod n.
func (s Scalar) Add(t Scalar) Scalar {
	var r Scalar
	r.v.Set(&s.v)
	r.v.Add(&t.v)
	return r
}

// Sub returns s - t mod n.
func (s Scalar) Sub(t Scalar) Scalar {
	var neg Scalar
	neg.v.Set(&t.v)
	neg.v.Negate()
	return s.Add(neg)
}

// Mul returns s * t mod n.
func (s Scalar) Mul(t Scalar) Scalar {
	var r Scalar
	r.v.Set(&s.v)
	r.v.Mul(&t.v)
	return r
}

// Negate returns -s mod n, i.e. MinusOne * s.
func (s Scalar) Negate() Scalar {
	var r Scalar
	r.v.Set(&s.v)
	r.v.Negate()
	return r
}

// AMinusBX returns a - b*x mod n, the response combination shared by all
// the sigma protocols.
func AMinusBX(a, b, x Scalar) Scalar {
	return a.Sub(b.Mul(x))
}

// Zeroize overwrites the scalar with the additive identity. Witness
// containers call it when a secret goes out of scope.
func (s *Scalar) Zeroize() {
	s.v.Zero()
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
