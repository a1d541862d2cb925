// SPDX-License-Identifier: MIT

package explicit

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvlik/blockindex"
)

// Affine is out = A·in + b. Inputs and outputs must be Euclidean
// coordinates: one configuration entry per velocity entry.
type Affine struct {
	inConf, inDer   blockindex.Indices
	outConf, outDer blockindex.Indices
	a               *mat.Dense // nil when there is no input
	b               []float64
}

var _ Function = (*Affine)(nil)

// NewAffine builds out = A·in + b. A is |out|×|in| and may be nil when in is
// empty, which pins the outputs to b. A and b are copied.
func NewAffine(inConf, inDer, outConf, outDer blockindex.Indices, a mat.Matrix, b []float64) (*Affine, error) {
	if inConf.Len() != inDer.Len() || outConf.Len() != outDer.Len() {
		return nil, fmt.Errorf("%w: configuration and velocity indices differ in size", ErrDimension)
	}
	if outConf.Len() == 0 {
		return nil, fmt.Errorf("%w: no output", ErrDimension)
	}
	if len(b) != outConf.Len() {
		return nil, fmt.Errorf("%w: offset has %d entries, want %d", ErrDimension, len(b), outConf.Len())
	}
	f := &Affine{
		inConf:  inConf,
		inDer:   inDer,
		outConf: outConf,
		outDer:  outDer,
		b:       append([]float64(nil), b...),
	}
	if inConf.Len() == 0 {
		return f, nil
	}
	if a == nil {
		return nil, fmt.Errorf("%w: missing linear part", ErrDimension)
	}
	if r, c := a.Dims(); r != outConf.Len() || c != inConf.Len() {
		return nil, fmt.Errorf("%w: linear part is %d×%d, want %d×%d", ErrDimension, r, c, outConf.Len(), inConf.Len())
	}
	f.a = mat.DenseCopyOf(a)
	return f, nil
}

// InputConf implements Function.
func (f *Affine) InputConf() blockindex.Indices { return f.inConf }

// InputDerivative implements Function.
func (f *Affine) InputDerivative() blockindex.Indices { return f.inDer }

// OutputConf implements Function.
func (f *Affine) OutputConf() blockindex.Indices { return f.outConf }

// OutputDerivative implements Function.
func (f *Affine) OutputDerivative() blockindex.Indices { return f.outDer }

// Value implements Function.
func (f *Affine) Value(in, out []float64) {
	copy(out, f.b)
	if f.a == nil {
		return
	}
	r, c := f.a.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out[i] += f.a.At(i, j) * in[j]
		}
	}
}

// Jacobian implements Function.
func (f *Affine) Jacobian(_ []float64, J *mat.Dense) {
	J.Copy(f.a)
}
