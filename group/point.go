package group

import (
	"fmt"
	"io"

	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Point is a secp256k1 group element. Points are kept affine-normalized so
// that serialization and equality never depend on the projective
// representation an operation happened to produce.
type Point struct {
	p secp256k1.JacobianPoint
}

// PairPoint is a two-point Quisquis public key or ElGamal commitment.
// X carries the randomizer, Y the payload.
type PairPoint struct {
	X Point
	Y Point
}

// ParsePoint decodes a SEC1 compressed (33-byte) or uncompressed (65-byte)
// point encoding.
func ParsePoint(b []byte) (Point, error) {
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return Point{}, fmt.Errorf("error parsing point: %v", err)
	}
	var pt Point
	pub.AsJacobian(&pt.p)
	return pt, nil
}

// mustParsePoint is for the embedded generator constants; the literals are
// fixed at compile time, so a failure is a build defect, not a runtime one.
func mustParsePoint(b []byte) Point {
	pt, err := ParsePoint(b)
	if err != nil {
		panic(err)
	}
	return pt
}

// RandomPoint returns k*G for a fresh uniform non-zero k, discarding k.
// Decoy slots use it for public keys and commitments nobody can open.
func RandomPoint(rng io.Reader) (Point, error) {
	k, err := RandomScalar(rng)
	if err != nil {
		return Point{}, err
	}
	defer k.Zeroize()
	var pt Point
	secp256k1.ScalarBaseMultNonConst(&k.v, &pt.p)
	pt.p.ToAffine()
	return pt, nil
}

// SerializeCompressed returns the 33-byte SEC1 compressed encoding.
func (p Point) SerializeCompressed() []byte {
	pub := secp256k1.NewPublicKey(&p.p.X, &p.p.Y)
	return pub.SerializeCompressed()
}

// Equal reports whether two points are the same group element.
func (p Point) Equal(q Point) bool {
	return p.p.X.Equals(&q.p.X) && p.p.Y.Equals(&q.p.Y) && p.p.Z.Equals(&q.p.Z)
}

// IsInfinity reports whether the point is the group identity.
func (p Point) IsInfinity() bool {
	return p.p.X.IsZero() && p.p.Y.IsZero()
}

// SingleBase returns e*b.
func SingleBase(b Point, e Scalar) (Point, error) {
	var r Point
	secp256k1.ScalarMultNonConst(&e.v, &b.p, &r.p)
	r.p.ToAffine()
	if r.IsInfinity() {
		return Point{}, ErrPointAtInfinity
	}
	return r, nil
}

// DoubleBase returns e1*b1 + e2*b2.
func DoubleBase(b1, b2 Point, e1, e2 Scalar) (Point, error) {
	var t1, t2, r Point
	secp256k1.ScalarMultNonConst(&e1.v, &b1.p, &t1.p)
	t1.p.ToAffine()
	secp256k1.ScalarMultNonConst(&e2.v, &b2.p, &t2.p)
	t2.p.ToAffine()
	secp256k1.AddNonConst(&t1.p, &t2.p, &r.p)
	r.p.ToAffine()
	if r.IsInfinity() {
		return Point{}, ErrPointAtInfinity
	}
	return r, nil
}

// TripleBase returns e1*b1 + e2*b2 + e3*b3.
func TripleBase(b1, b2, b3 Point, e1, e2, e3 Scalar) (Point, error) {
	r, err := DoubleBase(b1, b2, e1, e2)
	if err != nil {
		return Point{}, err
	}
	var t3, out Point
	secp256k1.ScalarMultNonConst(&e3.v, &b3.p, &t3.p)
	t3.p.ToAffine()
	secp256k1.AddNonConst(&r.p, &t3.p, &out.p)
	out.p.ToAffine()
	if out.IsInfinity() {
		return Point{}, ErrPointAtInfinity
	}
	return out, nil
}

// Add returns a + b.
func Add(a, b Point) (Point, error) {
	var r Point
	secp256k1.AddNonConst(&a.p, &b.p, &r.p)
	r.p.ToAffine()
	if r.IsInfinity() {
		return Point{}, ErrPointAtInfinity
	}
	return r, nil
}

// Ratio returns a - b, the group analogue of a quotient.
func Ratio(a, b Point) (Point, error) {
	minusB, err := SingleBase(b, MinusOne)
	if err != nil {
		return Point{}, err
	}
	return Add(a, minusB)
}
