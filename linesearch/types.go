// SPDX-License-Identifier: MIT

package linesearch

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Solver is what a Policy may read from, and ask of, the iterative solver.
type Solver interface {
	// Integrate stores q ⊕ v into out and re-solves explicit outputs.
	// out may alias q.
	Integrate(q, v, out []float64)

	// ResidualError is the squared residual at the last evaluation.
	ResidualError() float64

	// SquaredErrorThreshold is the convergence threshold on ResidualError.
	SquaredErrorThreshold() float64

	// EvaluateAt recomputes values and errors (not Jacobians) at q.
	EvaluateAt(q []float64)

	// StackCount is the number of priority levels.
	StackCount() int

	// ReducedJacobian returns the Jacobian of stack i over the free
	// variables, nil when it has no row or no column.
	ReducedJacobian(i int) *mat.Dense

	// ActiveError returns the error of stack i with inactive rows zeroed.
	ActiveError(i int) []float64

	// ReducedStep is the last descent direction over the free variables.
	ReducedStep() []float64
}

// Policy scales and applies one Newton increment.
type Policy interface {
	// Step moves arg along dq. dq is overwritten with the applied increment.
	// The result reports whether the step was admissible.
	Step(s Solver, arg, dq []float64) bool
}

// Resetter is implemented by policies carrying state across iterations.
// The solver resets them at the start of every solve.
type Resetter interface {
	Reset()
}

// Kind names a policy in configuration files.
type Kind int

const (
	KindConstant Kind = iota
	KindBacktracking
	KindFixedSequence
	KindErrorNormBased
)

var kindNames = [...]string{"constant", "backtracking", "fixed_sequence", "error_norm_based"}

// String returns the snake_case name of k.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Parse maps a name produced by Kind.String back to its Kind.
func Parse(s string) (Kind, error) {
	for i, n := range kindNames {
		if n == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}
