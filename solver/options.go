// SPDX-License-Identifier: MIT

package solver

import (
	"fmt"

	"go.uber.org/zap"
)

// Defaults.
const (
	DefaultErrorThreshold      = 1e-4
	DefaultMaxIterations       = 20
	DefaultRankThreshold       = 1e-8
	DefaultSaturationThreshold = 1e-10
)

// stallCount is the number of iterations without strict decrease that ends a solve.
const stallCount = 3

// Options configures a Solver.
//
// Fields:
//   - ErrorThreshold: convergence threshold on the residual norm; Solve compares squares.
//   - MaxIterations: iteration cap.
//   - RankThreshold: singular values at or below this fraction of the largest are dropped.
//   - SaturationThreshold: rows with a reduced Jacobian norm at or below it are inactive.
//   - LastIsOptional: exclude the last stack from the residual.
//   - Logger: iteration and status logs at Debug.
type Options struct {
	ErrorThreshold      float64
	MaxIterations       int
	RankThreshold       float64
	SaturationThreshold float64
	LastIsOptional      bool
	Logger              *zap.Logger
}

// Option is a functional option for New.
type Option func(*Options)

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		ErrorThreshold:      DefaultErrorThreshold,
		MaxIterations:       DefaultMaxIterations,
		RankThreshold:       DefaultRankThreshold,
		SaturationThreshold: DefaultSaturationThreshold,
		Logger:              zap.NewNop(),
	}
}

// WithErrorThreshold sets the convergence threshold. Panics unless eps > 0.
func WithErrorThreshold(eps float64) Option {
	if !(eps > 0) {
		panic(fmt.Sprintf("solver: error threshold must be positive, got %g", eps))
	}
	return func(o *Options) { o.ErrorThreshold = eps }
}

// WithMaxIterations sets the iteration cap. Panics if n < 0.
func WithMaxIterations(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("solver: max iterations must be non-negative, got %d", n))
	}
	return func(o *Options) { o.MaxIterations = n }
}

// WithRankThreshold sets the relative SVD truncation. Panics unless 0 ≤ r < 1.
func WithRankThreshold(r float64) Option {
	if !(r >= 0 && r < 1) {
		panic(fmt.Sprintf("solver: rank threshold must be in [0, 1), got %g", r))
	}
	return func(o *Options) { o.RankThreshold = r }
}

// WithSaturationThreshold sets the row-norm saturation limit. Panics if t < 0.
func WithSaturationThreshold(t float64) Option {
	if !(t >= 0) {
		panic(fmt.Sprintf("solver: saturation threshold must be non-negative, got %g", t))
	}
	return func(o *Options) { o.SaturationThreshold = t }
}

// WithLastIsOptional excludes the last stack from the convergence residual.
func WithLastIsOptional(optional bool) Option {
	return func(o *Options) { o.LastIsOptional = optional }
}

// WithLogger sets the logger. nil means zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l == nil {
			l = zap.NewNop()
		}
		o.Logger = l
	}
}
