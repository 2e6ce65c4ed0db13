// package group offers thin scalar and point arithmetic over the secp256k1
// curve as used by the proof-of-assets protocols: fixed-base and multi-base
// products, point ratios, and the scalar combination a - b*x that every
// Fiat-Shamir response is built from
package group

import "errors"

var (
	// ErrInvalidAmount is returned when a zero amount is lifted to a scalar
	ErrInvalidAmount = errors.New("amount must be non-zero")

	// ErrScalarOutOfRange is returned when scalar bytes are zero or not
	// below the curve order
	ErrScalarOutOfRange = errors.New("scalar bytes out of range")

	// ErrPointAtInfinity is returned when a point combination unexpectedly
	// lands on the identity
	ErrPointAtInfinity = errors.New("point at infinity")
)

// MaxAmountPerOutput bounds the amounts drawn for simulated outputs.
// Nothing on the wire enforces it; it only keeps generated witnesses small.
const MaxAmountPerOutput = 1000
