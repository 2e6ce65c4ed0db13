// package nummatus implements non-interactive zero-knowledge proof-of-assets
// protocols for a Quisquis-style privacy ledger. Three variants are
// provided, trading proof size against what is hidden:
//
//   - Simplus: one signature per owned output, no anonymity set
//   - Nummatus: a one-of-two proof per anonymity-list entry
//   - QuPR: a full Quisquis update proof plus a key-image proof per entry
//
// The exchange package assembles anonymity lists and batches, the nizk
// package holds the sigma-protocol provers and verifiers, and the group
// and transcript packages carry the curve arithmetic and Fiat-Shamir
// plumbing they share. This package adds the simulation harness the
// command line binaries are built on.
package nummatus

import (
	"fmt"
	"io"
	"time"

	"github.com/quisquislabs/nummatus/exchange"
)

// Variant names a proof-of-assets protocol for simulation runs.
type Variant string

const (
	Simplus  Variant = "simplus"
	Nummatus Variant = "nummatus"
	QuPR     Variant = "qupr"
)

// SimulationResult aggregates the timings of a simulation run.
type SimulationResult struct {
	Iterations int
	Total      time.Duration
	AvgProve   time.Duration
	AvgVerify  time.Duration
}

// prover is the common face of the three exchanges: repeatedly produce a
// verifiable proof artifact over a fixed anonymity list.
type prover interface {
	prove() (verifier, error)
	close()
}

type verifier interface {
	Verify() (bool, error)
}

type simplusProver struct{ e *exchange.SimplusExchange }

func (p simplusProver) prove() (verifier, error) { return p.e.GenerateProof() }
func (p simplusProver) close()                   { p.e.Close() }

type nummatusProver struct{ e *exchange.NummatusExchange }

func (p nummatusProver) prove() (verifier, error) { return p.e.GenerateProof() }
func (p nummatusProver) close()                   { p.e.Close() }

type quprProver struct{ e *exchange.QuisquisExchange }

func (p quprProver) prove() (verifier, error) { return p.e.GenerateProof() }
func (p quprProver) close()                   { p.e.Close() }

// Simulate assembles one exchange of the given variant and runs numIter
// prove/verify rounds over it, timing each phase. It fails on the first
// round whose proof does not verify.
func Simulate(variant Variant, anonListSize, ownListSize, numIter int,
	rng io.Reader) (*SimulationResult, error) {

	if numIter <= 0 {
		return nil, fmt.Errorf("number of iterations must be positive")
	}

	start := time.Now()

	var p prover
	switch variant {
	case Simplus:
		e, err := exchange.NewSimplusExchange(ownListSize, rng)
		if err != nil {
			return nil, fmt.Errorf("error assembling exchange: %v", err)
		}
		p = simplusProver{e}
	case Nummatus:
		e, err := exchange.NewNummatusExchange(anonListSize, ownListSize, rng)
		if err != nil {
			return nil, fmt.Errorf("error assembling exchange: %v", err)
		}
		p = nummatusProver{e}
	case QuPR:
		e, err := exchange.NewQuisquisExchange(anonListSize, ownListSize, rng)
		if err != nil {
			return nil, fmt.Errorf("error assembling exchange: %v", err)
		}
		p = quprProver{e}
	default:
		return nil, fmt.Errorf("unknown variant: %s", variant)
	}
	defer p.close()

	var proveTotal, verifyTotal time.Duration
	for i := 0; i < numIter; i++ {
		proveStart := time.Now()
		proof, err := p.prove()
		if err != nil {
			return nil, fmt.Errorf("error generating proof: %v", err)
		}
		proveTotal += time.Since(proveStart)

		verifyStart := time.Now()
		ok, err := proof.Verify()
		if err != nil {
			return nil, fmt.Errorf("error verifying proof: %v", err)
		}
		verifyTotal += time.Since(verifyStart)
		if !ok {
			return nil, fmt.Errorf("proof verification failed on iteration %d", i)
		}
	}

	return &SimulationResult{
		Iterations: numIter,
		Total:      time.Since(start),
		AvgProve:   proveTotal / time.Duration(numIter),
		AvgVerify:  verifyTotal / time.Duration(numIter),
	}, nil
}
