package exchange

import (
	"fmt"
	"io"

	"github.com/quisquislabs/nummatus/group"
	"github.com/quisquislabs/nummatus/nizk"
)

// Nummatus is the published Nummatus proof: an anonymity list mixing
// owned outputs and decoys, with a one-of-two proof per entry. The
// Pedersen commitments of owned entries open to v*g + k*h; decoy
// commitments are pure blinding, gamma*h.
type Nummatus struct {
	PubkeyList     []group.PairPoint
	CommitmentList []group.PairPoint
	PedersenList   []group.Point
	PokList        []nizk.NummatusPoK

	// H is the per-height generator of the Pedersen column.
	H group.Point
}

// Verify checks every per-entry one-of-two proof. A malformed artifact is
// an ErrListMismatch; a failing proof is a plain false.
func (p *Nummatus) Verify() (bool, error) {
	n := len(p.PubkeyList)
	if n == 0 || len(p.CommitmentList) != n ||
		len(p.PedersenList) != n || len(p.PokList) != n {
		return false, ErrListMismatch
	}
	for i := 0; i < n; i++ {
		if !p.PokList[i].Verify(p.PubkeyList[i], p.CommitmentList[i],
			p.PedersenList[i], p.H) {
			return false, nil
		}
	}
	return true, nil
}

// NummatusExchange holds the secret side of a Nummatus anonymity list.
// A zero scalar in ownKeys marks a decoy slot; the slot's decoyKeys entry
// then carries the surrogate gamma that opens its Pedersen commitment.
type NummatusExchange struct {
	anonListSize int
	proof        Nummatus
	ownKeys      []group.Scalar
	ownAmounts   []uint64
	decoyKeys    []group.Scalar
	rng          io.Reader
}

// NewNummatusExchange assembles an anonymity list of anonListSize entries
// of which ownListSize, at random positions, are owned.
func NewNummatusExchange(anonListSize, ownListSize int, rng io.Reader) (*NummatusExchange, error) {
	if anonListSize <= 0 || ownListSize < 0 || ownListSize > anonListSize {
		return nil, ErrListMismatch
	}

	keys, err := ownKeyVector(anonListSize, ownListSize, rng)
	if err != nil {
		return nil, err
	}

	e := &NummatusExchange{
		anonListSize: anonListSize,
		proof: Nummatus{
			PubkeyList:     make([]group.PairPoint, anonListSize),
			CommitmentList: make([]group.PairPoint, anonListSize),
			PedersenList:   make([]group.Point, anonListSize),
			PokList:        make([]nizk.NummatusPoK, anonListSize),
			H:              group.H,
		},
		ownKeys:    keys,
		ownAmounts: make([]uint64, anonListSize),
		decoyKeys:  make([]group.Scalar, anonListSize),
		rng:        rng,
	}

	for i := 0; i < anonListSize; i++ {
		if e.ownKeys[i].IsZero() {
			err = e.assembleDecoy(i)
		} else {
			err = e.assembleOwn(i)
		}
		if err != nil {
			return nil, fmt.Errorf("error assembling entry %d: %v", i, err)
		}
	}
	return e, nil
}

// assembleOwn builds slot i from its spend key:
// P.x = r1*g, P.y = k*P.x, C.x = r2*P.x, C.y = v*g + r2*P.y,
// pedersen = v*g + k*h.
func (e *NummatusExchange) assembleOwn(i int) error {
	amount, err := randomAmount(e.rng)
	if err != nil {
		return err
	}
	e.ownAmounts[i] = amount

	r1, err := group.RandomScalar(e.rng)
	if err != nil {
		return err
	}
	defer r1.Zeroize()
	r2, err := group.RandomScalar(e.rng)
	if err != nil {
		return err
	}
	defer r2.Zeroize()

	pub := &e.proof.PubkeyList[i]
	com := &e.proof.CommitmentList[i]

	if pub.X, err = group.SingleBase(group.G, r1); err != nil {
		return err
	}
	if pub.Y, err = group.SingleBase(pub.X, e.ownKeys[i]); err != nil {
		return err
	}
	if com.X, err = group.SingleBase(pub.X, r2); err != nil {
		return err
	}

	amountKey, err := group.AmountToScalar(amount)
	if err != nil {
		return err
	}
	if com.Y, err = group.DoubleBase(group.G, pub.Y, amountKey, r2); err != nil {
		return err
	}
	e.proof.PedersenList[i], err = group.DoubleBase(group.G, group.H,
		amountKey, e.ownKeys[i])
	return err
}

// assembleDecoy builds slot i as noise: uniformly random public key and
// commitment pairs, and a Pedersen commitment gamma*h whose surrogate
// gamma lets the simulator branch succeed later.
func (e *NummatusExchange) assembleDecoy(i int) error {
	pub := &e.proof.PubkeyList[i]
	com := &e.proof.CommitmentList[i]

	var err error
	if pub.X, err = group.RandomPoint(e.rng); err != nil {
		return err
	}
	if pub.Y, err = group.RandomPoint(e.rng); err != nil {
		return err
	}
	if com.X, err = group.RandomPoint(e.rng); err != nil {
		return err
	}
	if com.Y, err = group.RandomPoint(e.rng); err != nil {
		return err
	}

	gamma, err := group.RandomScalar(e.rng)
	if err != nil {
		return err
	}
	e.decoyKeys[i] = gamma
	e.proof.PedersenList[i], err = group.SingleBase(group.H, gamma)
	return err
}

// GenerateProof produces the per-entry one-of-two proofs, dispatching on
// whether each slot is owned.
func (e *NummatusExchange) GenerateProof() (*Nummatus, error) {
	for i := 0; i < e.anonListSize; i++ {
		w := nizk.NummatusWitness{
			Own:   !e.ownKeys[i].IsZero(),
			Key:   e.ownKeys[i],
			Gamma: e.decoyKeys[i],
		}
		pok, err := w.Prove(e.proof.PubkeyList[i], e.proof.CommitmentList[i],
			e.proof.PedersenList[i], e.proof.H, e.rng)
		if err != nil {
			return nil, fmt.Errorf("error proving entry %d: %v", i, err)
		}
		e.proof.PokList[i] = pok
	}

	proof := e.proof
	proof.PubkeyList = append([]group.PairPoint(nil), e.proof.PubkeyList...)
	proof.CommitmentList = append([]group.PairPoint(nil), e.proof.CommitmentList...)
	proof.PedersenList = append([]group.Point(nil), e.proof.PedersenList...)
	proof.PokList = append([]nizk.NummatusPoK(nil), e.proof.PokList...)
	return &proof, nil
}

// Close wipes the exchange's secret scalars.
func (e *NummatusExchange) Close() {
	zeroizeAll(e.ownKeys)
	zeroizeAll(e.decoyKeys)
}
