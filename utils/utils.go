// package utils contains functions to serialize and deserialize proof
// artifacts as binary blobs, so a published proof can be archived or
// handed to an external auditor as a free-standing file.
package utils

import (
	"encoding/binary"
	"fmt"

	"github.com/quisquislabs/nummatus/exchange"
	"github.com/quisquislabs/nummatus/group"
	"github.com/quisquislabs/nummatus/nizk"
)

const (
	pointLen  = 33
	scalarLen = 32
)

// writer accumulates the fixed-width encoding of an artifact.
type writer struct {
	buf []byte
}

func (w *writer) point(p group.Point) {
	w.buf = append(w.buf, p.SerializeCompressed()...)
}

func (w *writer) pair(p group.PairPoint) {
	w.point(p.X)
	w.point(p.Y)
}

func (w *writer) scalar(s group.Scalar) {
	b := s.Bytes()
	w.buf = append(w.buf, b[:]...)
}

func (w *writer) count(n int) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(n))
	w.buf = append(w.buf, b[:]...)
}

// reader consumes the fixed-width encoding of an artifact.
type reader struct {
	buf []byte
	off int
}

func (r *reader) take(n int) ([]byte, error) {
	if r.off+n > len(r.buf) {
		return nil, fmt.Errorf("truncated proof blob at offset %d", r.off)
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *reader) point() (group.Point, error) {
	b, err := r.take(pointLen)
	if err != nil {
		return group.Point{}, err
	}
	return group.ParsePoint(b)
}

func (r *reader) pair() (group.PairPoint, error) {
	x, err := r.point()
	if err != nil {
		return group.PairPoint{}, err
	}
	y, err := r.point()
	if err != nil {
		return group.PairPoint{}, err
	}
	return group.PairPoint{X: x, Y: y}, nil
}

func (r *reader) scalar() (group.Scalar, error) {
	b, err := r.take(scalarLen)
	if err != nil {
		return group.Scalar{}, err
	}
	var raw [32]byte
	copy(raw[:], b)
	return group.ScalarFromBytes(raw)
}

func (r *reader) count() (int, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return int(binary.BigEndian.Uint32(b)), nil
}

func (r *reader) done() error {
	if r.off != len(r.buf) {
		return fmt.Errorf("trailing %d bytes in proof blob", len(r.buf)-r.off)
	}
	return nil
}

// MarshalNummatus encodes a Nummatus proof artifact.
func MarshalNummatus(p *exchange.Nummatus) []byte {
	var w writer
	w.count(len(p.PubkeyList))
	w.point(p.H)
	for i := range p.PubkeyList {
		w.pair(p.PubkeyList[i])
		w.pair(p.CommitmentList[i])
		w.point(p.PedersenList[i])
		w.scalar(p.PokList[i].E1)
		w.scalar(p.PokList[i].E2)
		w.scalar(p.PokList[i].S1)
		w.scalar(p.PokList[i].S2)
	}
	return w.buf
}

// UnmarshalNummatus decodes a Nummatus proof artifact.
func UnmarshalNummatus(data []byte) (*exchange.Nummatus, error) {
	r := reader{buf: data}
	n, err := r.count()
	if err != nil {
		return nil, err
	}
	p := &exchange.Nummatus{
		PubkeyList:     make([]group.PairPoint, n),
		CommitmentList: make([]group.PairPoint, n),
		PedersenList:   make([]group.Point, n),
		PokList:        make([]nizk.NummatusPoK, n),
	}
	if p.H, err = r.point(); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		if p.PubkeyList[i], err = r.pair(); err != nil {
			return nil, err
		}
		if p.CommitmentList[i], err = r.pair(); err != nil {
			return nil, err
		}
		if p.PedersenList[i], err = r.point(); err != nil {
			return nil, err
		}
		pok := &p.PokList[i]
		for _, s := range []*group.Scalar{&pok.E1, &pok.E2, &pok.S1, &pok.S2} {
			if *s, err = r.scalar(); err != nil {
				return nil, err
			}
		}
	}
	return p, r.done()
}

// MarshalSimplus encodes a Simplus proof artifact.
func MarshalSimplus(p *exchange.Simplus) []byte {
	var w writer
	w.count(len(p.PubkeyList))
	w.point(p.H)
	for i := range p.PubkeyList {
		w.pair(p.PubkeyList[i])
		w.pair(p.CommitmentList[i])
		w.point(p.PedersenList[i])
		w.scalar(p.PokList[i].E)
		w.scalar(p.PokList[i].S)
	}
	w.scalar(p.Reserves.C)
	w.scalar(p.Reserves.S1)
	w.scalar(p.Reserves.S2)
	return w.buf
}

// UnmarshalSimplus decodes a Simplus proof artifact.
func UnmarshalSimplus(data []byte) (*exchange.Simplus, error) {
	r := reader{buf: data}
	n, err := r.count()
	if err != nil {
		return nil, err
	}
	p := &exchange.Simplus{
		PubkeyList:     make([]group.PairPoint, n),
		CommitmentList: make([]group.PairPoint, n),
		PedersenList:   make([]group.Point, n),
		PokList:        make([]nizk.SimplePoK, n),
	}
	if p.H, err = r.point(); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		if p.PubkeyList[i], err = r.pair(); err != nil {
			return nil, err
		}
		if p.CommitmentList[i], err = r.pair(); err != nil {
			return nil, err
		}
		if p.PedersenList[i], err = r.point(); err != nil {
			return nil, err
		}
		if p.PokList[i].E, err = r.scalar(); err != nil {
			return nil, err
		}
		if p.PokList[i].S, err = r.scalar(); err != nil {
			return nil, err
		}
	}
	for _, s := range []*group.Scalar{&p.Reserves.C, &p.Reserves.S1, &p.Reserves.S2} {
		if *s, err = r.scalar(); err != nil {
			return nil, err
		}
	}
	return p, r.done()
}

// MarshalQuisquis encodes a QuPR proof artifact.
func MarshalQuisquis(p *exchange.QuisquisProof) []byte {
	var w writer
	w.count(len(p.PubkeyInputList))
	for i := range p.PubkeyInputList {
		w.pair(p.PubkeyInputList[i])
		w.pair(p.CommitmentInputList[i])
		w.pair(p.PubkeyOutputList[i])
		w.pair(p.CommitmentOutputList[i])
		w.point(p.KeyimageList[i])
		su := p.PokSuList[i]
		for _, s := range []group.Scalar{su.E1, su.E2, su.S1, su.S2, su.S3, su.S4} {
			w.scalar(s)
		}
		pr := p.PokPrList[i]
		for _, s := range []group.Scalar{pr.E1, pr.E2, pr.S1, pr.S2, pr.S3, pr.S4} {
			w.scalar(s)
		}
	}
	return w.buf
}

// UnmarshalQuisquis decodes a QuPR proof artifact.
func UnmarshalQuisquis(data []byte) (*exchange.QuisquisProof, error) {
	r := reader{buf: data}
	n, err := r.count()
	if err != nil {
		return nil, err
	}
	p := &exchange.QuisquisProof{
		PubkeyInputList:      make([]group.PairPoint, n),
		PubkeyOutputList:     make([]group.PairPoint, n),
		CommitmentInputList:  make([]group.PairPoint, n),
		CommitmentOutputList: make([]group.PairPoint, n),
		KeyimageList:         make([]group.Point, n),
		PokSuList:            make([]nizk.SpecialVerifyPoK, n),
		PokPrList:            make([]nizk.QuisquisPRPoK, n),
	}
	for i := 0; i < n; i++ {
		if p.PubkeyInputList[i], err = r.pair(); err != nil {
			return nil, err
		}
		if p.CommitmentInputList[i], err = r.pair(); err != nil {
			return nil, err
		}
		if p.PubkeyOutputList[i], err = r.pair(); err != nil {
			return nil, err
		}
		if p.CommitmentOutputList[i], err = r.pair(); err != nil {
			return nil, err
		}
		if p.KeyimageList[i], err = r.point(); err != nil {
			return nil, err
		}
		su := &p.PokSuList[i]
		for _, s := range []*group.Scalar{&su.E1, &su.E2, &su.S1, &su.S2, &su.S3, &su.S4} {
			if *s, err = r.scalar(); err != nil {
				return nil, err
			}
		}
		pr := &p.PokPrList[i]
		for _, s := range []*group.Scalar{&pr.E1, &pr.E2, &pr.S1, &pr.S2, &pr.S3, &pr.S4} {
			if *s, err = r.scalar(); err != nil {
				return nil, err
			}
		}
	}
	return p, r.done()
}
