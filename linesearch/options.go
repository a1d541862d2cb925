// SPDX-License-Identifier: MIT

package linesearch

import (
	"fmt"

	"go.uber.org/zap"
)

// Default policy constants.
const (
	DefaultSufficientDecrease = 1e-3 // c
	DefaultShrinkRatio        = 0.7  // τ
	DefaultSmallAlpha         = 0.2

	DefaultInitialAlpha = 0.2  // α₀
	DefaultAlphaMax     = 0.95 // αMax
	DefaultDecay        = 0.8  // K

	DefaultAlphaMin     = 0.2
	DefaultDelta        = 0.02
	DefaultHalfResidual = 1e6 // r½
)

func mustBeIn(name string, v, lo, hi float64, loOpen, hiOpen bool) {
	okLo := v > lo || (!loOpen && v == lo)
	okHi := v < hi || (!hiOpen && v == hi)
	if !okLo || !okHi {
		panic(fmt.Sprintf("%v: %s=%g", ErrInvalidParameter, name, v))
	}
}

// BacktrackingOption configures NewBacktracking.
type BacktrackingOption func(*Backtracking)

// WithSufficientDecrease sets c. Panics unless 0 < c < 1.
func WithSufficientDecrease(c float64) BacktrackingOption {
	mustBeIn("c", c, 0, 1, true, true)
	return func(b *Backtracking) { b.c = c }
}

// WithShrinkRatio sets τ. Panics unless 0 < τ < 1.
func WithShrinkRatio(tau float64) BacktrackingOption {
	mustBeIn("tau", tau, 0, 1, true, true)
	return func(b *Backtracking) { b.tau = tau }
}

// WithSmallAlpha sets the smallest step length tried, and the length of the
// fallback step. Panics unless 0 < a < 1.
func WithSmallAlpha(a float64) BacktrackingOption {
	mustBeIn("small_alpha", a, 0, 1, true, true)
	return func(b *Backtracking) { b.smallAlpha = a }
}

// WithLogger sets the logger failures are reported to. nil means zap.NewNop().
func WithLogger(l *zap.Logger) BacktrackingOption {
	return func(b *Backtracking) {
		if l == nil {
			l = zap.NewNop()
		}
		b.logger = l
	}
}

// FixedSequenceOption configures NewFixedSequence.
type FixedSequenceOption func(*FixedSequence)

// WithInitialAlpha sets α₀. Panics unless 0 < α₀ ≤ 1.
func WithInitialAlpha(a float64) FixedSequenceOption {
	mustBeIn("alpha0", a, 0, 1, true, false)
	return func(f *FixedSequence) { f.alpha0 = a }
}

// WithAlphaMax sets the limit of the sequence. Panics unless 0 < αMax ≤ 1.
func WithAlphaMax(a float64) FixedSequenceOption {
	mustBeIn("alpha_max", a, 0, 1, true, false)
	return func(f *FixedSequence) { f.alphaMax = a }
}

// WithDecay sets K. Panics unless 0 ≤ K < 1.
func WithDecay(k float64) FixedSequenceOption {
	mustBeIn("k", k, 0, 1, false, true)
	return func(f *FixedSequence) { f.k = k }
}

// ErrorNormBasedOption configures NewErrorNormBased.
type ErrorNormBasedOption func(*ErrorNormBased)

// WithAlphaMin sets the step factor for very large residuals.
// Panics unless 0 < αMin < 1.
func WithAlphaMin(a float64) ErrorNormBasedOption {
	mustBeIn("alpha_min", a, 0, 1, true, true)
	return func(e *ErrorNormBased) { e.alphaMin = a }
}

// WithDelta sets δ, the distance to a full step at the threshold.
// Panics unless 0 < δ < 1.
func WithDelta(d float64) ErrorNormBasedOption {
	mustBeIn("delta", d, 0, 1, true, true)
	return func(e *ErrorNormBased) { e.delta = d }
}

// WithHalfResidual sets r½, the normalized residual at which α = C.
// Panics unless r½ > 1.
func WithHalfResidual(r float64) ErrorNormBasedOption {
	if !(r > 1) {
		panic(fmt.Sprintf("%v: r_half=%g", ErrInvalidParameter, r))
	}
	return func(e *ErrorNormBased) { e.rHalf = r }
}

// WithCoefficients sets a and b directly; δ and r½ are then ignored.
func WithCoefficients(a, b float64) ErrorNormBasedOption {
	return func(e *ErrorNormBased) {
		e.a, e.b = a, b
		e.explicitAB = true
	}
}
