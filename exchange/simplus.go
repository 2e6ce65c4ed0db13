package exchange

import (
	"fmt"
	"io"

	"github.com/quisquislabs/nummatus/group"
	"github.com/quisquislabs/nummatus/nizk"
)

// Simplus is the published Simplus proof: one signature per owned output
// against the per-height generator, plus a summation proof opening the
// sum of the Pedersen commitments to the exchange's total reserves.
// There is no anonymity set; every listed entry is owned.
type Simplus struct {
	PubkeyList     []group.PairPoint
	CommitmentList []group.PairPoint
	PedersenList   []group.Point
	PokList        []nizk.SimplePoK
	Reserves       nizk.ReservesPoK

	// H is the per-height generator the batch was signed against.
	H group.Point
}

// Verify checks every per-entry signature and the total-reserves proof.
// A malformed artifact (empty or mismatched lists) is an ErrListMismatch;
// a failing proof is a plain false.
func (p *Simplus) Verify() (bool, error) {
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

	sum := p.PedersenList[0]
	for i := 1; i < n; i++ {
		var err error
		if sum, err = group.Add(sum, p.PedersenList[i]); err != nil {
			return false, nil
		}
	}
	return p.Reserves.Verify(sum), nil
}

// SimplusExchange holds the secret side of a Simplus batch: the spend
// keys and amounts of the owned outputs.
type SimplusExchange struct {
	ownListSize int
	proof       Simplus
	ownKeys     []group.Scalar
	ownAmounts  []uint64
	rng         io.Reader
}

// NewSimplusExchange assembles a batch of ownListSize owned outputs with
// fresh keys and random amounts.
func NewSimplusExchange(ownListSize int, rng io.Reader) (*SimplusExchange, error) {
	if ownListSize <= 0 {
		return nil, ErrListMismatch
	}

	e := &SimplusExchange{
		ownListSize: ownListSize,
		proof: Simplus{
			PubkeyList:     make([]group.PairPoint, ownListSize),
			CommitmentList: make([]group.PairPoint, ownListSize),
			PedersenList:   make([]group.Point, ownListSize),
			PokList:        make([]nizk.SimplePoK, ownListSize),
			H:              group.H,
		},
		ownKeys:    make([]group.Scalar, ownListSize),
		ownAmounts: make([]uint64, ownListSize),
		rng:        rng,
	}

	for i := 0; i < ownListSize; i++ {
		key, err := group.RandomScalar(rng)
		if err != nil {
			return nil, err
		}
		e.ownKeys[i] = key
		if e.ownAmounts[i], err = randomAmount(rng); err != nil {
			return nil, err
		}
		if err := e.assembleEntry(i); err != nil {
			return nil, fmt.Errorf("error assembling entry %d: %v", i, err)
		}
	}
	return e, nil
}

// assembleEntry fills the public side of slot i from its witness:
// P.x = r1*g, P.y = k*P.x, C.x = r2*P.x, C.y = v*g + r2*P.y,
// pedersen = v*g + k*h.
func (e *SimplusExchange) assembleEntry(i int) error {
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

	amountKey, err := group.AmountToScalar(e.ownAmounts[i])
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

// GenerateProof signs every entry and attaches the total-reserves proof.
func (e *SimplusExchange) GenerateProof() (*Simplus, error) {
	var totalKey group.Scalar
	var totalAmount uint64
	sum := e.proof.PedersenList[0]

	for i := 0; i < e.ownListSize; i++ {
		pok, err := nizk.ProveSimple(e.proof.PubkeyList[i],
			e.proof.CommitmentList[i], e.proof.PedersenList[i],
			e.ownKeys[i], e.proof.H, e.rng)
		if err != nil {
			return nil, fmt.Errorf("error proving entry %d: %v", i, err)
		}
		e.proof.PokList[i] = pok

		totalKey = totalKey.Add(e.ownKeys[i])
		totalAmount += e.ownAmounts[i]
		if i > 0 {
			if sum, err = group.Add(sum, e.proof.PedersenList[i]); err != nil {
				return nil, fmt.Errorf("error summing commitments: %v", err)
			}
		}
	}

	reserves, err := nizk.ProveReserves(sum, totalKey, totalAmount, e.rng)
	totalKey.Zeroize()
	if err != nil {
		return nil, fmt.Errorf("error proving reserves total: %v", err)
	}
	e.proof.Reserves = reserves

	proof := e.proof
	proof.PubkeyList = append([]group.PairPoint(nil), e.proof.PubkeyList...)
	proof.CommitmentList = append([]group.PairPoint(nil), e.proof.CommitmentList...)
	proof.PedersenList = append([]group.Point(nil), e.proof.PedersenList...)
	proof.PokList = append([]nizk.SimplePoK(nil), e.proof.PokList...)
	return &proof, nil
}

// Close wipes the exchange's secret keys. The exchange must not be used
// afterwards.
func (e *SimplusExchange) Close() {
	zeroizeAll(e.ownKeys)
}
