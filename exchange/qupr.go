package exchange

import (
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/quisquislabs/nummatus/group"
	"github.com/quisquislabs/nummatus/nizk"
)

// QuisquisProof is the published QuPR proof: the anonymity list before and
// after a Quisquis update, a value-bound key-image per entry, and two
// proofs per entry — a SpecialVerify proof that the update is legitimate
// and a PR proof that the key-image is well-formed.
type QuisquisProof struct {
	PubkeyInputList      []group.PairPoint
	PubkeyOutputList     []group.PairPoint
	CommitmentInputList  []group.PairPoint
	CommitmentOutputList []group.PairPoint
	KeyimageList         []group.Point
	PokSuList            []nizk.SpecialVerifyPoK
	PokPrList            []nizk.QuisquisPRPoK
}

// Verify checks every update proof, then every key-image proof. A
// malformed artifact is an ErrListMismatch; a failing proof is a plain
// false.
func (p *QuisquisProof) Verify() (bool, error) {
	n := len(p.PubkeyInputList)
	if n == 0 || len(p.PubkeyOutputList) != n ||
		len(p.CommitmentInputList) != n || len(p.CommitmentOutputList) != n ||
		len(p.KeyimageList) != n || len(p.PokSuList) != n || len(p.PokPrList) != n {
		return false, ErrListMismatch
	}

	for i := 0; i < n; i++ {
		if !p.PokSuList[i].Verify(p.PubkeyInputList[i], p.CommitmentInputList[i],
			p.PubkeyOutputList[i], p.CommitmentOutputList[i]) {
			return false, nil
		}
	}
	for i := 0; i < n; i++ {
		if !p.PokPrList[i].Verify(p.PubkeyOutputList[i], p.CommitmentOutputList[i],
			p.KeyimageList[i]) {
			return false, nil
		}
	}
	return true, nil
}

// QuisquisExchange holds the secret side of a QuPR anonymity list. Owned
// slots carry a spend key, amount and update randomizer; decoy slots
// carry the two re-randomizers of their update and a decoy key derived
// deterministically from the long-term seed.
type QuisquisExchange struct {
	anonListSize  int
	proof         QuisquisProof
	ownKeys       []group.Scalar
	ownAmounts    []uint64
	ownRandomness []group.Scalar
	decoyKeysSeed group.Scalar
	decoyKeys     []group.Scalar
	decoyRand1    []group.Scalar
	decoyRand2    []group.Scalar
	rng           io.Reader
}

// DeriveDecoyKey computes the deterministic decoy key
// SHA256(seed || C.x || C.y) for a decoy's output commitment, so the
// prover can reproduce it at proving time from the long-term seed alone.
func DeriveDecoyKey(seed group.Scalar, commitment group.PairPoint) (group.Scalar, error) {
	h := sha256.New()
	seedBytes := seed.Bytes()
	h.Write(seedBytes[:])
	h.Write(commitment.X.SerializeCompressed())
	h.Write(commitment.Y.SerializeCompressed())
	var digest [32]byte
	h.Sum(digest[:0])
	return group.ScalarFromBytes(digest)
}

// NewQuisquisExchange assembles an anonymity list of anonListSize entries
// of which ownListSize, at random positions, are owned.
func NewQuisquisExchange(anonListSize, ownListSize int, rng io.Reader) (*QuisquisExchange, error) {
	if anonListSize <= 0 || ownListSize < 0 || ownListSize > anonListSize {
		return nil, ErrListMismatch
	}

	keys, err := ownKeyVector(anonListSize, ownListSize, rng)
	if err != nil {
		return nil, err
	}
	seed, err := group.RandomScalar(rng)
	if err != nil {
		return nil, err
	}

	e := &QuisquisExchange{
		anonListSize: anonListSize,
		proof: QuisquisProof{
			PubkeyInputList:      make([]group.PairPoint, anonListSize),
			PubkeyOutputList:     make([]group.PairPoint, anonListSize),
			CommitmentInputList:  make([]group.PairPoint, anonListSize),
			CommitmentOutputList: make([]group.PairPoint, anonListSize),
			KeyimageList:         make([]group.Point, anonListSize),
			PokSuList:            make([]nizk.SpecialVerifyPoK, anonListSize),
			PokPrList:            make([]nizk.QuisquisPRPoK, anonListSize),
		},
		ownKeys:       keys,
		ownAmounts:    make([]uint64, anonListSize),
		ownRandomness: make([]group.Scalar, anonListSize),
		decoyKeysSeed: seed,
		decoyKeys:     make([]group.Scalar, anonListSize),
		decoyRand1:    make([]group.Scalar, anonListSize),
		decoyRand2:    make([]group.Scalar, anonListSize),
		rng:           rng,
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

// assembleOwn builds slot i from its spend key k, amount v and a fresh
// update randomizer t: the input pair lives on g, the updated output pair
// on f and h, and the key-image binds both, I = v*g + k*f.
func (e *QuisquisExchange) assembleOwn(i int) error {
	amount, err := randomAmount(e.rng)
	if err != nil {
		return err
	}
	e.ownAmounts[i] = amount
	amountKey, err := group.AmountToScalar(amount)
	if err != nil {
		return err
	}

	t, err := group.RandomScalar(e.rng)
	if err != nil {
		return err
	}
	e.ownRandomness[i] = t

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

	pubIn := &e.proof.PubkeyInputList[i]
	comIn := &e.proof.CommitmentInputList[i]
	pubOut := &e.proof.PubkeyOutputList[i]
	comOut := &e.proof.CommitmentOutputList[i]

	if pubIn.X, err = group.SingleBase(group.G, r1); err != nil {
		return err
	}
	if pubIn.Y, err = group.SingleBase(pubIn.X, e.ownKeys[i]); err != nil {
		return err
	}
	if comIn.X, err = group.SingleBase(pubIn.X, r2); err != nil {
		return err
	}
	if comIn.Y, err = group.DoubleBase(group.G, pubIn.Y, amountKey, r2); err != nil {
		return err
	}

	if pubOut.X, err = group.SingleBase(group.F, t); err != nil {
		return err
	}
	if pubOut.Y, err = group.SingleBase(pubOut.X, e.ownKeys[i]); err != nil {
		return err
	}
	if comOut.X, err = group.SingleBase(group.H, t); err != nil {
		return err
	}
	if comOut.Y, err = group.DoubleBase(group.G, comOut.X, amountKey, e.ownKeys[i]); err != nil {
		return err
	}

	e.proof.KeyimageList[i], err = group.DoubleBase(group.G, group.F,
		amountKey, e.ownKeys[i])
	return err
}

// assembleDecoy builds slot i as a re-randomization of noise: random
// input pairs, an output produced by the two decoy randomizers, and a
// key-image on the deterministic decoy key.
func (e *QuisquisExchange) assembleDecoy(i int) error {
	pubIn := &e.proof.PubkeyInputList[i]
	comIn := &e.proof.CommitmentInputList[i]
	pubOut := &e.proof.PubkeyOutputList[i]
	comOut := &e.proof.CommitmentOutputList[i]

	var err error
	if pubIn.X, err = group.RandomPoint(e.rng); err != nil {
		return err
	}
	if pubIn.Y, err = group.RandomPoint(e.rng); err != nil {
		return err
	}
	if comIn.X, err = group.RandomPoint(e.rng); err != nil {
		return err
	}
	if comIn.Y, err = group.RandomPoint(e.rng); err != nil {
		return err
	}

	if e.decoyRand1[i], err = group.RandomScalar(e.rng); err != nil {
		return err
	}
	if e.decoyRand2[i], err = group.RandomScalar(e.rng); err != nil {
		return err
	}

	if pubOut.X, err = group.SingleBase(pubIn.X, e.decoyRand1[i]); err != nil {
		return err
	}
	if pubOut.Y, err = group.SingleBase(pubIn.Y, e.decoyRand1[i]); err != nil {
		return err
	}
	r2g1, err := group.SingleBase(pubIn.X, e.decoyRand2[i])
	if err != nil {
		return err
	}
	if comOut.X, err = group.Add(comIn.X, r2g1); err != nil {
		return err
	}
	r2h1, err := group.SingleBase(pubIn.Y, e.decoyRand2[i])
	if err != nil {
		return err
	}
	if comOut.Y, err = group.Add(comIn.Y, r2h1); err != nil {
		return err
	}

	if e.decoyKeys[i], err = DeriveDecoyKey(e.decoyKeysSeed, *comOut); err != nil {
		return err
	}
	e.proof.KeyimageList[i], err = group.SingleBase(group.F, e.decoyKeys[i])
	return err
}

// GenerateProof produces both per-entry proofs for every slot,
// dispatching on whether the slot is owned.
func (e *QuisquisExchange) GenerateProof() (*QuisquisProof, error) {
	for i := 0; i < e.anonListSize; i++ {
		own := !e.ownKeys[i].IsZero()

		su := nizk.SpecialVerifyWitness{
			Own:  own,
			Key:  e.ownKeys[i],
			Rand: e.ownRandomness[i],
			Eta1: e.decoyRand1[i],
			Eta2: e.decoyRand2[i],
		}
		suPok, err := su.Prove(e.proof.PubkeyInputList[i], e.proof.CommitmentInputList[i],
			e.proof.PubkeyOutputList[i], e.proof.CommitmentOutputList[i], e.rng)
		if err != nil {
			return nil, fmt.Errorf("error proving update for entry %d: %v", i, err)
		}
		e.proof.PokSuList[i] = suPok

		pr := nizk.PRWitness{
			Own:      own,
			Key:      e.ownKeys[i],
			Amount:   e.ownAmounts[i],
			Rand:     e.ownRandomness[i],
			DecoyKey: e.decoyKeys[i],
		}
		prPok, err := pr.Prove(e.proof.PubkeyOutputList[i],
			e.proof.CommitmentOutputList[i], e.proof.KeyimageList[i], e.rng)
		if err != nil {
			return nil, fmt.Errorf("error proving key-image for entry %d: %v", i, err)
		}
		e.proof.PokPrList[i] = prPok
	}

	proof := e.proof
	proof.PubkeyInputList = append([]group.PairPoint(nil), e.proof.PubkeyInputList...)
	proof.PubkeyOutputList = append([]group.PairPoint(nil), e.proof.PubkeyOutputList...)
	proof.CommitmentInputList = append([]group.PairPoint(nil), e.proof.CommitmentInputList...)
	proof.CommitmentOutputList = append([]group.PairPoint(nil), e.proof.CommitmentOutputList...)
	proof.KeyimageList = append([]group.Point(nil), e.proof.KeyimageList...)
	proof.PokSuList = append([]nizk.SpecialVerifyPoK(nil), e.proof.PokSuList...)
	proof.PokPrList = append([]nizk.QuisquisPRPoK(nil), e.proof.PokPrList...)
	return &proof, nil
}

// Close wipes the exchange's secret scalars, the long-term seed included.
func (e *QuisquisExchange) Close() {
	zeroizeAll(e.ownKeys)
	zeroizeAll(e.ownRandomness)
	zeroizeAll(e.decoyKeys)
	zeroizeAll(e.decoyRand1)
	zeroizeAll(e.decoyRand2)
	e.decoyKeysSeed.Zeroize()
}
