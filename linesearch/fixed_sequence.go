// SPDX-License-Identifier: MIT

package linesearch

import "gonum.org/v1/gonum/floats"

// FixedSequence scales the k-th increment by α_k, with α_{k+1} = αMax - K (αMax - α_k).
type FixedSequence struct {
	alpha0, alphaMax, k float64
	alpha               float64
}

// NewFixedSequence returns the policy with DefaultInitialAlpha,
// DefaultAlphaMax and DefaultDecay unless overridden.
func NewFixedSequence(opts ...FixedSequenceOption) *FixedSequence {
	f := &FixedSequence{alpha0: DefaultInitialAlpha, alphaMax: DefaultAlphaMax, k: DefaultDecay}
	for _, opt := range opts {
		opt(f)
	}
	f.alpha = f.alpha0
	return f
}

// Alpha returns the factor the next step will use.
func (f *FixedSequence) Alpha() float64 { return f.alpha }

// Reset implements Resetter.
func (f *FixedSequence) Reset() { f.alpha = f.alpha0 }

// Step implements Policy.
func (f *FixedSequence) Step(s Solver, arg, dq []float64) bool {
	floats.Scale(f.alpha, dq)
	f.alpha = f.alphaMax - f.k*(f.alphaMax-f.alpha)
	s.Integrate(arg, dq, arg)
	return true
}

func (f *FixedSequence) String() string { return KindFixedSequence.String() }
