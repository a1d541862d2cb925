// SPDX-License-Identifier: MIT

package linesearch

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrorNormBased scales the increment by C - K tanh(a r + b), r being the
// residual over the threshold.
type ErrorNormBased struct {
	alphaMin, delta, rHalf float64
	explicitAB             bool

	c, k, a, b float64
}

// NewErrorNormBased returns the policy with DefaultAlphaMin, DefaultDelta
// and DefaultHalfResidual unless overridden. Panics when δ ≥ 1 - αMin, for
// which no schedule reaches 1 - δ.
func NewErrorNormBased(opts ...ErrorNormBasedOption) *ErrorNormBased {
	e := &ErrorNormBased{alphaMin: DefaultAlphaMin, delta: DefaultDelta, rHalf: DefaultHalfResidual}
	for _, opt := range opts {
		opt(e)
	}
	if !e.explicitAB && e.delta >= 1-e.alphaMin {
		panic(fmt.Sprintf("%v: delta=%g must be below 1 - alpha_min", ErrInvalidParameter, e.delta))
	}
	e.c = 0.5 + e.alphaMin/2
	e.k = (1 - e.alphaMin) / 2
	if !e.explicitAB {
		e.a = math.Atanh((e.delta-1+e.c)/e.k) / (1 - e.rHalf)
		e.b = -e.rHalf * e.a
	}
	return e
}

// Coefficients returns C, K, a and b.
func (e *ErrorNormBased) Coefficients() (c, k, a, b float64) {
	return e.c, e.k, e.a, e.b
}

// Alpha returns the factor used for a squared residual of r times the threshold.
func (e *ErrorNormBased) Alpha(r float64) float64 {
	return e.c - e.k*math.Tanh(e.a*r+e.b)
}

// Step implements Policy.
func (e *ErrorNormBased) Step(s Solver, arg, dq []float64) bool {
	r := s.ResidualError() / s.SquaredErrorThreshold()
	floats.Scale(e.Alpha(r), dq)
	s.Integrate(arg, dq, arg)
	return true
}

func (e *ErrorNormBased) String() string { return KindErrorNormBased.String() }
