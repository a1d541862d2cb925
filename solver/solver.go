// SPDX-License-Identifier: MIT

package solver

import (
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvlik/blockindex"
	"github.com/katalvlaran/lvlik/constraint"
	"github.com/katalvlaran/lvlik/explicit"
	"github.com/katalvlaran/lvlik/kinematics"
	"github.com/katalvlaran/lvlik/linesearch"
)

// Solver is a hierarchical iterative solver. Build it with New.
type Solver struct {
	nq, nv     int
	integrator kinematics.Integrator
	opts       Options
	logger     *zap.Logger

	squaredThreshold float64

	stacks  []*stack
	entries map[constraint.Function]*entry

	explicit  *explicit.System
	free      blockindex.Indices
	reduction blockindex.Indices

	je        *mat.Dense // explicit Jacobian, |outputs| × nv
	jeReduced *mat.Dense // its reduction columns, nil when empty

	dq      []float64
	dqSmall []float64

	// scratch sized by updateReduction
	step       []float64  // nr
	small      []float64  // nr
	stacked    *mat.Dense // all reduced Jacobians, nil without rows or unknowns
	stackedDec decomposition

	squaredNorm float64
	sigma       float64
	iterations  int
}

var _ linesearch.Solver = (*Solver)(nil)

// New returns a solver for configurations of size configSize and velocities
// of size numberDof, integrating steps with integrator.
//
// Errors: ErrNilIntegrator, ErrDimensionMismatch.
func New(configSize, numberDof int, integrator kinematics.Integrator, opts ...Option) (*Solver, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if integrator == nil {
		return nil, ErrNilIntegrator
	}
	if configSize <= 0 || numberDof <= 0 {
		return nil, fmt.Errorf("%w: sizes %d and %d", ErrDimensionMismatch, configSize, numberDof)
	}

	s := &Solver{
		nq:               configSize,
		nv:               numberDof,
		integrator:       integrator,
		opts:             cfg,
		logger:           cfg.Logger,
		squaredThreshold: cfg.ErrorThreshold * cfg.ErrorThreshold,
		entries:          make(map[constraint.Function]*entry),
		free:             blockindex.Range(0, numberDof),
		dq:               make([]float64, numberDof),
	}
	s.updateReduction()
	return s, nil
}

// Add registers fn at the given priority. comparison holds either nothing
// (every row is an Equality), one type for every row, or one type per row.
// The right-hand side starts at zero.
//
// Errors: ErrNilFunction, ErrNegativePriority, ErrDimensionMismatch,
// ErrDuplicateFunction, ErrComparisonSize.
func (s *Solver) Add(fn constraint.Function, priority int, comparison ...constraint.ComparisonType) error {
	if fn == nil {
		return ErrNilFunction
	}
	if priority < 0 {
		return fmt.Errorf("%w: %d", ErrNegativePriority, priority)
	}
	if fn.InputSize() != s.nq || fn.InputDerivativeSize() != s.nv {
		return fmt.Errorf("%w: %s has input %d/%d, want %d/%d",
			ErrDimensionMismatch, fn.Name(), fn.InputSize(), fn.InputDerivativeSize(), s.nq, s.nv)
	}
	if _, dup := s.entries[fn]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicateFunction, fn.Name())
	}

	n := fn.OutputSize()
	cmp := make([]constraint.ComparisonType, n)
	switch len(comparison) {
	case 0:
	case 1:
		for i := range cmp {
			cmp[i] = comparison[0]
		}
	case n:
		copy(cmp, comparison)
	default:
		return fmt.Errorf("%w: %s has %d rows, got %d types", ErrComparisonSize, fn.Name(), n, len(comparison))
	}

	for len(s.stacks) <= priority {
		s.stacks = append(s.stacks, &stack{})
	}
	e := &entry{fn: fn, comparison: cmp, rhs: make([]float64, n)}
	s.stacks[priority].add(e)
	s.entries[fn] = e
	s.updateReduction()
	return nil
}

// SetRightHandSide sets the target of fn's rows.
//
// Errors: ErrUnknownFunction, ErrDimensionMismatch.
func (s *Solver) SetRightHandSide(fn constraint.Function, rhs []float64) error {
	e, ok := s.entries[fn]
	if !ok {
		return ErrUnknownFunction
	}
	if len(rhs) != len(e.rhs) {
		return fmt.Errorf("%w: right-hand side has %d entries, want %d", ErrDimensionMismatch, len(rhs), len(e.rhs))
	}
	copy(e.rhs, rhs)
	return nil
}

// RightHandSide returns a copy of the target of fn's rows.
func (s *Solver) RightHandSide(fn constraint.Function) ([]float64, error) {
	e, ok := s.entries[fn]
	if !ok {
		return nil, ErrUnknownFunction
	}
	return append([]float64(nil), e.rhs...), nil
}

// SetExplicitSystem installs sys, or removes the current one when sys is
// nil, and recomputes the reduction. Call it again after adding functions
// to sys.
//
// Errors: ErrDimensionMismatch.
func (s *Solver) SetExplicitSystem(sys *explicit.System) error {
	if sys != nil && (sys.ConfigSize() != s.nq || sys.NumberDof() != s.nv) {
		return fmt.Errorf("%w: explicit system is %d/%d, want %d/%d",
			ErrDimensionMismatch, sys.ConfigSize(), sys.NumberDof(), s.nq, s.nv)
	}
	s.explicit = sys
	s.updateReduction()
	return nil
}

// SetFreeVariables restricts the unknowns to the given velocity indices;
// the others are never moved.
//
// Errors: blockindex.ErrOutOfRange.
func (s *Solver) SetFreeVariables(idx blockindex.Indices) error {
	if err := idx.CheckRange(s.nv); err != nil {
		return err
	}
	s.free = append(blockindex.Indices(nil), idx...)
	s.updateReduction()
	return nil
}

// FreeVariables returns the free velocity indices.
func (s *Solver) FreeVariables() blockindex.Indices { return s.free }

// Reduction returns the unknowns: free variables minus explicit outputs.
func (s *Solver) Reduction() blockindex.Indices { return s.reduction }

// ReducedDimension returns the number of unknowns.
func (s *Solver) ReducedDimension() int { return s.reduction.Len() }

// Sigma returns the smallest singular value kept by the last descent
// direction or kernel projection, 0 when none was kept.
func (s *Solver) Sigma() float64 { return s.sigma }

// Iterations returns the number of iterations of the last Solve.
func (s *Solver) Iterations() int { return s.iterations }

// MaxIterations returns the iteration cap.
func (s *Solver) MaxIterations() int { return s.opts.MaxIterations }

// ErrorThreshold returns the convergence threshold on the residual norm.
func (s *Solver) ErrorThreshold() float64 { return s.opts.ErrorThreshold }

// ConfigSize returns the configuration size.
func (s *Solver) ConfigSize() int { return s.nq }

// NumberDof returns the velocity size.
func (s *Solver) NumberDof() int { return s.nv }

func (s *Solver) updateReduction() {
	outputs := blockindex.Indices(nil)
	if s.explicit != nil {
		outputs = s.explicit.OutDers()
	}
	s.reduction = s.free.Difference(outputs)
	nr, nout := s.reduction.Len(), outputs.Len()
	s.dqSmall = make([]float64, nr)
	s.step = make([]float64, nr)
	s.small = make([]float64, nr)

	s.je, s.jeReduced = nil, nil
	if nout > 0 {
		s.je = mat.NewDense(nout, s.nv, nil)
		if nr > 0 {
			s.jeReduced = mat.NewDense(nout, nr, nil)
		}
	}
	rows := 0
	for _, st := range s.stacks {
		st.resize(s.nv, nr, nout)
		rows += st.rows
	}
	s.stacked, s.stackedDec = nil, decomposition{}
	if rows > 0 && nr > 0 {
		s.stacked = mat.NewDense(rows, nr, nil)
	}
}

// explicitOutputs returns the output velocity indices of the explicit system.
func (s *Solver) explicitOutputs() blockindex.Indices {
	if s.explicit == nil {
		return nil
	}
	return s.explicit.OutDers()
}
