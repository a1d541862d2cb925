// SPDX-License-Identifier: MIT

package solver

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvlik/constraint"
)

// entry is one function inside a stack.
type entry struct {
	fn         constraint.Function
	comparison []constraint.ComparisonType
	rhs        []float64
	row        int // first row inside the stack
}

// stack holds the functions of one priority level and their buffers.
type stack struct {
	entries []*entry
	rows    int

	value     []float64
	err       []float64
	activeErr []float64
	active    []bool

	jacobian *mat.Dense // rows × nv, nil without rows
	reducedJ *mat.Dense // rows × nr, nil without rows or unknowns

	// explicit fold, nil without explicit outputs
	jOut *mat.Dense // rows × outputs
	fold *mat.Dense // rows × nr

	// descent workspace, reused across iterations
	ja        *mat.Dense // reducedJ with inactive rows zeroed
	e         []float64
	x         []float64 // capacity nr
	jp        mat.Dense // ja · projector
	projector mat.Dense // projector · kernel, passed to the next level
	dec       decomposition
}

func (st *stack) add(e *entry) {
	e.row = st.rows
	st.entries = append(st.entries, e)
	st.rows += e.fn.OutputSize()
}

// resize allocates the buffers for nv velocity coordinates, nr unknowns and
// nout explicit outputs.
func (st *stack) resize(nv, nr, nout int) {
	st.value = make([]float64, st.rows)
	st.err = make([]float64, st.rows)
	st.activeErr = make([]float64, st.rows)
	st.active = make([]bool, st.rows)
	st.e = make([]float64, st.rows)
	st.jacobian, st.reducedJ, st.ja = nil, nil, nil
	st.jOut, st.fold, st.x = nil, nil, nil
	st.jp.Reset()
	st.projector.Reset()
	st.dec = decomposition{}
	if st.rows == 0 {
		return
	}
	st.jacobian = mat.NewDense(st.rows, nv, nil)
	if nr == 0 {
		return
	}
	st.reducedJ = mat.NewDense(st.rows, nr, nil)
	st.ja = mat.NewDense(st.rows, nr, nil)
	st.x = make([]float64, nr)
	if nout > 0 {
		st.jOut = mat.NewDense(st.rows, nout, nil)
		st.fold = mat.NewDense(st.rows, nr, nil)
	}
}

// computeValue evaluates every function at q, and their Jacobians when
// withJacobian is set. Jacobians are then reduced and folded.
func (s *Solver) computeValue(q []float64, withJacobian bool) {
	for _, st := range s.stacks {
		for _, e := range st.entries {
			n := e.fn.OutputSize()
			if n == 0 {
				continue
			}
			e.fn.Value(q, st.value[e.row:e.row+n])
			if withJacobian {
				e.fn.Jacobian(q, st.jacobian.Slice(e.row, e.row+n, 0, s.nv).(*mat.Dense))
			}
		}
	}
	if withJacobian {
		s.updateJacobian(q)
	}
}

// updateJacobian builds every reduced Jacobian, folding in the explicit
// system: Jred = J[:, reduction] + J[:, outputs] · Je[:, reduction].
func (s *Solver) updateJacobian(q []float64) {
	outputs := s.explicitOutputs()
	if s.jeReduced != nil {
		s.explicit.Jacobian(q, s.je)
		s.reduction.ColsInto(s.jeReduced, s.je)
	}
	for _, st := range s.stacks {
		if st.reducedJ == nil {
			continue
		}
		s.reduction.ColsInto(st.reducedJ, st.jacobian)
		if s.jeReduced == nil {
			continue
		}
		outputs.ColsInto(st.jOut, st.jacobian)
		st.fold.Mul(st.jOut, s.jeReduced)
		st.reducedJ.Add(st.reducedJ, st.fold)
	}
}

// computeError turns values into errors and sums the squared residual.
func (s *Solver) computeError() {
	s.squaredNorm = 0
	for i, st := range s.stacks {
		for _, e := range st.entries {
			for k, cmp := range e.comparison {
				r := e.row + k
				st.err[r] = rowError(cmp, st.value[r], e.rhs[k])
			}
		}
		if s.opts.LastIsOptional && i == len(s.stacks)-1 {
			continue
		}
		s.squaredNorm += floats.Dot(st.err, st.err)
	}
}

func rowError(cmp constraint.ComparisonType, v, rhs float64) float64 {
	switch cmp {
	case constraint.EqualToZero:
		return v
	case constraint.Superior:
		if v >= rhs {
			return 0
		}
	case constraint.Inferior:
		if v <= rhs {
			return 0
		}
	}
	return v - rhs
}

// computeSaturation marks the rows the next step ignores: satisfied
// inequalities and rows without influence on the unknowns.
func (s *Solver) computeSaturation() {
	for _, st := range s.stacks {
		for _, e := range st.entries {
			for k, cmp := range e.comparison {
				r := e.row + k
				active := !(cmp.IsInequality() && st.err[r] == 0)
				if active && (st.reducedJ == nil || rowNorm(st.reducedJ, r) <= s.opts.SaturationThreshold) {
					active = false
				}
				st.active[r] = active
				st.activeErr[r] = 0
				if active {
					st.activeErr[r] = st.err[r]
				}
			}
		}
	}
}

// activeRows copies reducedJ into ja and zeroes the inactive rows.
func (st *stack) activeRows() {
	st.ja.Copy(st.reducedJ)
	for r, on := range st.active {
		if on {
			continue
		}
		row := st.ja.RawRowView(r)
		for j := range row {
			row[j] = 0
		}
	}
}

func rowNorm(m *mat.Dense, i int) float64 {
	return floats.Norm(m.RawRowView(i), 2)
}

// isFinite reports whether q has no NaN or ±Inf entry, and the first bad index.
func isFinite(q []float64) (int, bool) {
	for i, v := range q {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return i, false
		}
	}
	return -1, true
}
