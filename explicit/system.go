// SPDX-License-Identifier: MIT

package explicit

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvlik/blockindex"
)

// System is an ordered registry of explicit functions over one device.
// The zero value is not usable; call NewSystem.
type System struct {
	nq, nv int
	fns    []Function

	inConfs, inDers   blockindex.Indices
	outConfs, outDers blockindex.Indices

	in, out []float64  // gather scratch
	jf      *mat.Dense // per-function Jacobian scratch
}

// NewSystem returns an empty system for configurations of size configSize
// and velocities of size numberDof.
func NewSystem(configSize, numberDof int) *System {
	return &System{nq: configSize, nv: numberDof}
}

// Add registers f.
//
// Errors: blockindex.ErrOutOfRange, ErrOutputConflict, ErrInputIsOutput.
func (s *System) Add(f Function) error {
	for _, c := range []struct {
		idx blockindex.Indices
		n   int
	}{
		{f.InputConf(), s.nq}, {f.OutputConf(), s.nq},
		{f.InputDerivative(), s.nv}, {f.OutputDerivative(), s.nv},
	} {
		if err := c.idx.CheckRange(c.n); err != nil {
			return err
		}
	}
	if f.OutputConf().Overlaps(s.outConfs) || f.OutputDerivative().Overlaps(s.outDers) {
		return ErrOutputConflict
	}
	outConfs := s.outConfs.Union(f.OutputConf())
	outDers := s.outDers.Union(f.OutputDerivative())
	inConfs := s.inConfs.Union(f.InputConf())
	inDers := s.inDers.Union(f.InputDerivative())
	if inConfs.Overlaps(outConfs) || inDers.Overlaps(outDers) {
		return ErrInputIsOutput
	}

	s.fns = append(s.fns, f)
	s.outConfs, s.outDers = outConfs, outDers
	s.inConfs, s.inDers = inConfs, inDers
	return nil
}

// Len returns the number of registered functions.
func (s *System) Len() int { return len(s.fns) }

// ConfigSize returns the configuration size the system was built for.
func (s *System) ConfigSize() int { return s.nq }

// NumberDof returns the velocity size the system was built for.
func (s *System) NumberDof() int { return s.nv }

// InConfs returns the configuration indices read by the system.
func (s *System) InConfs() blockindex.Indices { return s.inConfs }

// InDers returns the velocity indices read by the system.
func (s *System) InDers() blockindex.Indices { return s.inDers }

// OutConfs returns the configuration indices written by the system.
func (s *System) OutConfs() blockindex.Indices { return s.outConfs }

// OutDers returns the velocity indices written by the system.
func (s *System) OutDers() blockindex.Indices { return s.outDers }

// Solve overwrites the output coordinates of q with their explicit values.
func (s *System) Solve(q []float64) {
	if len(q) != s.nq {
		panic(fmt.Sprintf("explicit: configuration has size %d, want %d", len(q), s.nq))
	}
	for _, f := range s.fns {
		in, out := s.scratch(f.InputConf().Len(), f.OutputConf().Len())
		f.InputConf().Gather(in, q)
		f.Value(in, out)
		f.OutputConf().Scatter(q, out)
	}
}

// Jacobian stores into J the derivative of the outputs with respect to the
// whole velocity vector: row k is OutDers()[k], J is |OutDers| × NumberDof.
// Columns of outputs are zero. It does nothing on an empty system.
func (s *System) Jacobian(q []float64, J *mat.Dense) {
	if s.outDers.Len() == 0 {
		return
	}
	if r, c := J.Dims(); r != s.outDers.Len() || c != s.nv {
		panic(fmt.Sprintf("explicit: jacobian is %d×%d, want %d×%d", r, c, s.outDers.Len(), s.nv))
	}
	J.Zero()
	for _, f := range s.fns {
		inDer, outDer := f.InputDerivative(), f.OutputDerivative()
		if inDer.Len() == 0 {
			continue
		}
		in, _ := s.scratch(f.InputConf().Len(), 0)
		f.InputConf().Gather(in, q)
		s.jf = resize(s.jf, outDer.Len(), inDer.Len())
		f.Jacobian(in, s.jf)
		for i, o := range outDer {
			row := s.outDers.Position(o)
			for j, c := range inDer {
				J.Set(row, c, s.jf.At(i, j))
			}
		}
	}
}

func (s *System) scratch(nIn, nOut int) (in, out []float64) {
	if cap(s.in) < nIn {
		s.in = make([]float64, nIn)
	}
	if cap(s.out) < nOut {
		s.out = make([]float64, nOut)
	}
	return s.in[:nIn], s.out[:nOut]
}

// resize returns m if it is already r×c, a new zeroed matrix otherwise.
func resize(m *mat.Dense, r, c int) *mat.Dense {
	if m != nil {
		if mr, mc := m.Dims(); mr == r && mc == c {
			return m
		}
	}
	return mat.NewDense(r, c, nil)
}
