// package testutils contains helpers shared by the package tests:
// deterministic proof corruption and the byte-histogram statistics used
// by the hiding tests.
package testutils

import (
	"github.com/quisquislabs/nummatus/group"
)

// FlipScalarByte returns a copy of s with the low bit of byte i flipped.
// If the flipped encoding is not a valid scalar (possible only near the
// group order) the next byte down is flipped instead.
func FlipScalarByte(s group.Scalar, i int) group.Scalar {
	b := s.Bytes()
	for j := i; ; j = (j + 1) % 32 {
		b[j] ^= 0x01
		if out, err := group.ScalarFromBytes(b); err == nil {
			return out
		}
		b[j] ^= 0x01
	}
}

// ByteHistogram tallies byte frequencies over a set of serialized proofs.
func ByteHistogram(blobs [][]byte) [256]float64 {
	var h [256]float64
	for _, blob := range blobs {
		for _, b := range blob {
			h[b]++
		}
	}
	return h
}

// ChiSquare computes the Pearson chi-square statistic between two byte
// histograms, treating the first as observed and the second as expected.
// Empty expected cells are skipped.
func ChiSquare(observed, expected [256]float64) float64 {
	var total float64
	for i := 0; i < 256; i++ {
		if expected[i] == 0 {
			continue
		}
		d := observed[i] - expected[i]
		total += d * d / expected[i]
	}
	return total
}
