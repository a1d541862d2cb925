// SPDX-License-Identifier: MIT

package solver

import (
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// decomposition is a truncated full SVD of one matrix. Its storage is kept
// between factorizations of matrices of the same shape.
type decomposition struct {
	svd    mat.SVD
	u, v   mat.Dense
	values []float64
	rank   int
}

// factorize computes the full SVD of m into d and its rank relative to the
// largest singular value. It returns false when the factorization failed.
func (s *Solver) factorize(m mat.Matrix, d *decomposition) bool {
	d.rank = 0
	if !d.svd.Factorize(m, mat.SVDFull) {
		return false
	}
	d.u.Reset()
	d.v.Reset()
	d.svd.UTo(&d.u)
	d.svd.VTo(&d.v)
	r, c := m.Dims()
	d.values = d.svd.Values(reuse(d.values, min(r, c)))
	if len(d.values) > 0 && d.values[0] > 0 {
		limit := s.opts.RankThreshold * d.values[0]
		for d.rank < len(d.values) && d.values[d.rank] > limit {
			d.rank++
		}
		s.recordSigma(d.values[d.rank-1])
	}
	return true
}

func (s *Solver) recordSigma(v float64) {
	if s.sigma == 0 || v < s.sigma {
		s.sigma = v
	}
}

// solve stores in x the minimum-norm least-squares solution of m·x = e,
// Σ_{k<rank} v_k (u_kᵀ e) / σ_k. x must have one entry per column of m.
func (d *decomposition) solve(e, x []float64) {
	for j := range x {
		x[j] = 0
	}
	for k := 0; k < d.rank; k++ {
		c := 0.0
		for r, er := range e {
			c += d.u.At(r, k) * er
		}
		c /= d.values[k]
		for j := range x {
			x[j] += c * d.v.At(j, k)
		}
	}
}

// kernel returns a view of the columns of V past the rank, nil when the
// kernel is trivial. The view is valid until the next factorization.
func (d *decomposition) kernel() mat.Matrix {
	_, p := d.v.Dims()
	if d.rank == p {
		return nil
	}
	return d.v.Slice(0, p, d.rank, p)
}

// computeDescentDirection fills dqSmall with the nested least-squares step
// and dq with its expansion to the velocity space.
func (s *Solver) computeDescentDirection() {
	s.sigma = 0
	for i := range s.dqSmall {
		s.dqSmall[i] = 0
	}

	var projector mat.Matrix // nil: identity
	for level, st := range s.stacks {
		if st.reducedJ == nil {
			continue
		}
		st.activeRows()

		// e = -activeErr - Ja·dqSmall
		for r := range st.e {
			st.e[r] = -st.activeErr[r] - floats.Dot(st.ja.RawRowView(r), s.dqSmall)
		}

		var m mat.Matrix = st.ja
		if projector != nil {
			st.jp.Reset()
			st.jp.Mul(st.ja, projector)
			m = &st.jp
		}
		if !s.factorize(m, &st.dec) {
			s.logger.Warn("solver: svd failed, stack skipped", zap.Int("stack", level))
			continue
		}
		_, c := m.Dims()
		x := st.x[:c]
		st.dec.solve(st.e, x)
		if projector == nil {
			floats.Add(s.dqSmall, x)
		} else {
			// dqSmall += P·x
			for i := range s.step {
				s.step[i] = 0
				for j, xj := range x {
					s.step[i] += projector.At(i, j) * xj
				}
			}
			floats.Add(s.dqSmall, s.step)
		}

		kernel := st.dec.kernel()
		if kernel == nil {
			if level < len(s.stacks)-1 {
				s.logger.Debug("solver: no freedom left for lower priorities", zap.Int("stack", level))
			}
			break
		}
		if projector == nil {
			projector = kernel
		} else {
			st.projector.Reset()
			st.projector.Mul(projector, kernel)
			projector = &st.projector
		}
	}
	s.expandStep(s.dqSmall, s.dq)
}

// expandStep writes the velocity-space step of dqSmall into dq: reduction
// entries are copied, explicit outputs get Je·dqSmall, the rest is zero.
func (s *Solver) expandStep(dqSmall, dq []float64) {
	for i := range dq {
		dq[i] = 0
	}
	s.reduction.Scatter(dq, dqSmall)
	if s.jeReduced == nil {
		return
	}
	outputs := s.explicitOutputs()
	for k, o := range outputs {
		dq[o] = floats.Dot(s.jeReduced.RawRowView(k), dqSmall)
	}
}

// ProjectOnKernel stores into out the component of dq that leaves every
// stack unchanged to first order: the reduction part of dq projected on the
// kernel of the stacked reduced Jacobians at q, expanded like a step.
// out and dq must have NumberDof entries and may alias.
func (s *Solver) ProjectOnKernel(q, dq, out []float64) {
	s.checkSizes(q)
	if len(dq) != s.nv || len(out) != s.nv {
		panic(fmt.Sprintf("solver: velocity buffers have sizes %d and %d, want %d", len(dq), len(out), s.nv))
	}
	s.computeValue(q, true)
	s.sigma = 0

	s.reduction.Gather(s.small, dq)
	if s.factorizeStacked() {
		// small -= V1 V1ᵀ small
		d := &s.stackedDec
		for k := 0; k < d.rank; k++ {
			c := 0.0
			for j, v := range s.small {
				c += d.v.At(j, k) * v
			}
			for j := range s.small {
				s.small[j] -= c * d.v.At(j, k)
			}
		}
	}
	s.expandStep(s.small, out)
}

// factorizeStacked factorizes all reduced Jacobians stacked vertically.
// It returns false when there is nothing to factorize.
func (s *Solver) factorizeStacked() bool {
	if s.stacked == nil {
		return false
	}
	r := 0
	for _, st := range s.stacks {
		if st.reducedJ == nil {
			continue
		}
		for i := 0; i < st.rows; i++ {
			copy(s.stacked.RawRowView(r+i), st.reducedJ.RawRowView(i))
		}
		r += st.rows
	}
	return s.factorize(s.stacked, &s.stackedDec)
}

// reuse returns buf with n entries, reusing its storage when large enough.
func reuse(buf []float64, n int) []float64 {
	if cap(buf) < n {
		return make([]float64, n)
	}
	return buf[:n]
}
