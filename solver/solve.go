// SPDX-License-Identifier: MIT

package solver

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvlik/linesearch"
)

// Solve moves q in place toward a configuration satisfying every stack and
// reports why it stopped. A nil policy means linesearch.Constant.
//
// Panics if q has the wrong size, or wraps ErrNonFiniteConfiguration in a
// panic when q holds NaN or ±Inf on entry or exit.
func (s *Solver) Solve(q []float64, policy linesearch.Policy) Status {
	s.checkSizes(q)
	s.checkFinite(q)
	if policy == nil {
		policy = linesearch.Constant{}
	}
	if r, ok := policy.(linesearch.Resetter); ok {
		r.Reset()
	}
	if s.explicit != nil {
		s.explicit.Solve(q)
	}

	s.iterations = 0
	s.computeValue(q, true)
	s.computeError()

	if s.squaredNorm > s.squaredThreshold && s.reduction.Len() == 0 {
		s.logger.Debug("solver: nothing to move",
			zap.Float64("squared_norm", s.squaredNorm),
			zap.Stringer("status", Infeasible))
		return Infeasible
	}

	stall := stallCount
	previous := math.Inf(1)
	for s.squaredNorm > s.squaredThreshold && stall > 0 && s.iterations < s.opts.MaxIterations {
		s.computeSaturation()
		s.computeDescentDirection()
		accepted := policy.Step(s, q, s.dq)

		s.computeValue(q, true)
		s.computeError()

		stall--
		if s.squaredNorm < previous {
			stall = stallCount
		}
		previous = s.squaredNorm
		s.iterations++

		s.logger.Debug("iteration",
			zap.Int("iteration", s.iterations),
			zap.Float64("squared_norm", s.squaredNorm),
			zap.Float64("sigma", s.sigma),
			zap.Bool("step_accepted", accepted))
	}
	s.checkFinite(q)

	// a stall on the last allowed iteration reports ErrorIncreased
	status := Success
	switch {
	case s.squaredNorm <= s.squaredThreshold:
	case stall == 0:
		status = ErrorIncreased
	default:
		status = MaxIterationReached
	}
	s.logger.Debug("solver: done",
		zap.Stringer("status", status),
		zap.Int("iterations", s.iterations),
		zap.Float64("squared_norm", s.squaredNorm))
	return status
}

// IsSatisfied reports whether q meets the threshold on every counted stack
// and agrees with the explicit system. q is not modified.
func (s *Solver) IsSatisfied(q []float64) bool {
	s.checkSizes(q)
	if s.explicit != nil {
		solved := append([]float64(nil), q...)
		s.explicit.Solve(solved)
		for _, i := range s.explicit.OutConfs() {
			if math.Abs(solved[i]-q[i]) > s.opts.ErrorThreshold {
				return false
			}
		}
	}
	s.EvaluateAt(q)
	return s.squaredNorm <= s.squaredThreshold
}

// ResidualError returns the squared residual of the last evaluation.
func (s *Solver) ResidualError() float64 { return s.squaredNorm }

// SquaredErrorThreshold returns the square of ErrorThreshold.
func (s *Solver) SquaredErrorThreshold() float64 { return s.squaredThreshold }

// Integrate stores q ⊕ v into out and re-solves the explicit outputs.
// out may alias q.
func (s *Solver) Integrate(q, v, out []float64) {
	s.integrator.Integrate(q, v, out)
	if s.explicit != nil {
		s.explicit.Solve(out)
	}
}

// EvaluateAt recomputes values and errors at q, leaving Jacobians untouched.
func (s *Solver) EvaluateAt(q []float64) {
	s.computeValue(q, false)
	s.computeError()
}

// StackCount returns the number of priority levels.
func (s *Solver) StackCount() int { return len(s.stacks) }

// ReducedJacobian returns the reduced Jacobian of stack i from the last
// evaluation, nil when it has no row or no unknown.
func (s *Solver) ReducedJacobian(i int) *mat.Dense { return s.stacks[i].reducedJ }

// ActiveError returns the error of stack i with saturated rows zeroed.
func (s *Solver) ActiveError(i int) []float64 { return s.stacks[i].activeErr }

// ReducedStep returns the last descent direction over the unknowns.
func (s *Solver) ReducedStep() []float64 { return s.dqSmall }

// LastStep returns a copy of the last velocity-space step as applied by the
// line search.
func (s *Solver) LastStep() []float64 { return append([]float64(nil), s.dq...) }

// Errors returns a copy of the errors of stack i from the last evaluation.
func (s *Solver) Errors(i int) []float64 {
	return append([]float64(nil), s.stacks[i].err...)
}

func (s *Solver) checkSizes(q []float64) {
	if len(q) != s.nq {
		panic(fmt.Sprintf("solver: configuration has size %d, want %d", len(q), s.nq))
	}
}

func (s *Solver) checkFinite(q []float64) {
	if i, ok := isFinite(q); !ok {
		panic(fmt.Errorf("%w: entry %d is %v", ErrNonFiniteConfiguration, i, q[i]))
	}
}
