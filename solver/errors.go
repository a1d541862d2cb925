// SPDX-License-Identifier: MIT

package solver

import "errors"

var (
	// ErrNilFunction is returned by Add for a nil function.
	ErrNilFunction = errors.New("solver: function is nil")

	// ErrDimensionMismatch is returned when a function, right-hand side or
	// explicit system does not match the solver sizes.
	ErrDimensionMismatch = errors.New("solver: dimension mismatch")

	// ErrDuplicateFunction is returned when a function is added twice.
	ErrDuplicateFunction = errors.New("solver: function already added")

	// ErrNegativePriority is returned by Add for a priority below zero.
	ErrNegativePriority = errors.New("solver: priority must be non-negative")

	// ErrComparisonSize is returned when the comparison types match neither
	// one row nor every row of the function.
	ErrComparisonSize = errors.New("solver: comparison types do not match output size")

	// ErrUnknownFunction is returned when a function was never added.
	ErrUnknownFunction = errors.New("solver: unknown function")

	// ErrNilIntegrator is returned by New without an integrator.
	ErrNilIntegrator = errors.New("solver: integrator is nil")

	// ErrNonFiniteConfiguration is the panic value, wrapped, of Solve when
	// the configuration holds NaN or ±Inf.
	ErrNonFiniteConfiguration = errors.New("solver: configuration is not finite")
)
