// package nizk implements the Fiat-Shamir transformed sigma protocols
// behind the three proof-of-assets variants: the Simplus signature, the
// Nummatus one-of-two proof, and the two Quisquis proof-of-reserves
// protocols (SpecialVerify and PR), plus the summation proof that binds a
// batch to its total.
//
// Proofs are append-only value types holding only response scalars. The
// points they are verified against travel separately, as the public side
// of an anonymity list. Verification failures of any kind, malformed
// points included, surface as a plain false; errors never escape a
// verifier.
package nizk
