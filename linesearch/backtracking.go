// SPDX-License-Identifier: MIT

package linesearch

import (
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

// Backtracking is the Armijo rule on the squared residual f:
// the first α in 1, τ, τ², ... above SmallAlpha with
//
//	f(arg) - f(arg ⊕ α dq) ≥ -2 c α slope
//
// is accepted, slope being the directional derivative of ½f along dq.
type Backtracking struct {
	c, tau, smallAlpha float64
	logger             *zap.Logger

	trial, step []float64
}

// NewBacktracking returns the policy with DefaultSufficientDecrease,
// DefaultShrinkRatio and DefaultSmallAlpha unless overridden.
func NewBacktracking(opts ...BacktrackingOption) *Backtracking {
	b := &Backtracking{
		c:          DefaultSufficientDecrease,
		tau:        DefaultShrinkRatio,
		smallAlpha: DefaultSmallAlpha,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Step implements Policy.
func (b *Backtracking) Step(s Solver, arg, dq []float64) bool {
	b.trial = grow(b.trial, len(arg))
	b.step = grow(b.step, len(dq))

	slope := b.localSlope(s)
	t := 2 * b.c * slope
	f0 := s.ResidualError()

	if t >= 0 {
		b.logger.Warn("line search: not a descent direction",
			zap.Float64("slope", slope), zap.Float64("c", b.c))
	} else {
		for alpha := 1.0; alpha > b.smallAlpha; alpha *= b.tau {
			floats.ScaleTo(b.step, alpha, dq)
			s.Integrate(arg, b.step, b.trial)
			s.EvaluateAt(b.trial)
			if f0-s.ResidualError() >= -alpha*t {
				copy(arg, b.trial)
				copy(dq, b.step)
				return true
			}
		}
		b.logger.Warn("line search: no admissible step length",
			zap.Float64("slope", slope), zap.Float64("c", b.c),
			zap.Float64("small_alpha", b.smallAlpha))
	}

	floats.Scale(b.smallAlpha, dq)
	s.Integrate(arg, dq, arg)
	return false
}

// localSlope returns Σ_i (J_i · dqSmall) · e_i over the stacks, with J_i the
// reduced Jacobian and e_i the active error of stack i.
func (b *Backtracking) localSlope(s Solver) float64 {
	dqs := s.ReducedStep()
	slope := 0.0
	for i := 0; i < s.StackCount(); i++ {
		J := s.ReducedJacobian(i)
		if J == nil {
			continue
		}
		e := s.ActiveError(i)
		r, _ := J.Dims()
		for row := 0; row < r; row++ {
			slope += floats.Dot(J.RawRowView(row), dqs) * e[row]
		}
	}
	return slope
}

func (b *Backtracking) String() string { return KindBacktracking.String() }

func grow(buf []float64, n int) []float64 {
	if cap(buf) < n {
		return make([]float64, n)
	}
	return buf[:n]
}
