// SPDX-License-Identifier: MIT

package linesearch_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvlik/linesearch"
)

// quadratic is a one-stack solver for e(x) = x - target with J = I.
type quadratic struct {
	target    []float64
	err       []float64
	step      []float64
	jacobian  *mat.Dense
	threshold float64
	frozen    bool // Integrate leaves the point unchanged
	evals     int
}

func newQuadratic(target []float64) *quadratic {
	n := len(target)
	q := &quadratic{
		target:    target,
		err:       make([]float64, n),
		step:      make([]float64, n),
		jacobian:  mat.NewDense(n, n, nil),
		threshold: 1e-8,
	}
	for i := 0; i < n; i++ {
		q.jacobian.Set(i, i, 1)
	}
	return q
}

func (q *quadratic) Integrate(x, v, out []float64) {
	for i := range x {
		if q.frozen {
			out[i] = x[i]
			continue
		}
		out[i] = x[i] + v[i]
	}
}

func (q *quadratic) ResidualError() float64 {
	s := 0.0
	for _, e := range q.err {
		s += e * e
	}
	return s
}

func (q *quadratic) SquaredErrorThreshold() float64 { return q.threshold }

func (q *quadratic) EvaluateAt(x []float64) {
	q.evals++
	for i := range x {
		q.err[i] = x[i] - q.target[i]
	}
}

func (q *quadratic) StackCount() int { return 1 }
func (q *quadratic) ReducedJacobian(int) *mat.Dense { return q.jacobian }
func (q *quadratic) ActiveError(int) []float64 { return q.err }
func (q *quadratic) ReducedStep() []float64 { return q.step }

// newtonStep evaluates at x and returns scale times the Newton increment.
func (q *quadratic) newtonStep(x []float64, scale float64) []float64 {
	q.EvaluateAt(x)
	q.evals = 0
	dq := make([]float64, len(x))
	for i := range dq {
		dq[i] = -scale * q.err[i]
	}
	copy(q.step, dq)
	return dq
}

func TestConstant(t *testing.T) {
	s := newQuadratic([]float64{1, 2})
	x := []float64{0, 0}
	dq := s.newtonStep(x, 1)
	assert.True(t, linesearch.Constant{}.Step(s, x, dq))
	assert.Equal(t, []float64{1, 2}, x)
}

func TestBacktracking_AcceptsFullNewtonStep(t *testing.T) {
	s := newQuadratic([]float64{1, -2, 0.5})
	x := []float64{0, 0, 0}
	dq := s.newtonStep(x, 1)

	b := linesearch.NewBacktracking()
	require.True(t, b.Step(s, x, dq))
	assert.InDeltaSlice(t, []float64{1, -2, 0.5}, x, 1e-15)
	assert.Equal(t, 1, s.evals)
}

func TestBacktracking_ShrinksOvershootingStep(t *testing.T) {
	s := newQuadratic([]float64{1, 1})
	x := []float64{0, 0}
	dq := s.newtonStep(x, 3) // three times too long

	b := linesearch.NewBacktracking()
	require.True(t, b.Step(s, x, dq))
	// α = 1 and α = 0.7 overshoot; α = 0.49 is accepted
	assert.InDelta(t, 0.49*3, x[0], 1e-12)
	assert.InDelta(t, 0.49*3, dq[1], 1e-12)
	assert.Equal(t, 3, s.evals)
}

func TestBacktracking_AscentDirectionFails(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := newQuadratic([]float64{1, 1})
	x := []float64{0, 0}
	dq := s.newtonStep(x, -1)

	b := linesearch.NewBacktracking(linesearch.WithLogger(zap.New(core)))
	assert.False(t, b.Step(s, x, dq))
	for _, v := range x {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	}
	assert.InDeltaSlice(t, []float64{-0.2, -0.2}, x, 1e-15)
	assert.Zero(t, s.evals)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "line search: not a descent direction", entry.Message)
	assert.InDelta(t, 2.0, entry.ContextMap()["slope"], 1e-15)
}

func TestBacktracking_NoAdmissibleLength(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := newQuadratic([]float64{1, 1})
	s.frozen = true
	x := []float64{0, 0}
	dq := s.newtonStep(x, 1)

	b := linesearch.NewBacktracking(linesearch.WithLogger(zap.New(core)))
	assert.False(t, b.Step(s, x, dq))
	// α = 1, 0.7, 0.49, 0.343, 0.2401 were tried
	assert.Equal(t, 5, s.evals)
	assert.Equal(t, 1, logs.FilterMessage("line search: no admissible step length").Len())
}

func TestBacktracking_OptionsValidate(t *testing.T) {
	assert.Panics(t, func() { linesearch.WithShrinkRatio(1) })
	assert.Panics(t, func() { linesearch.WithSufficientDecrease(0) })
	assert.Panics(t, func() { linesearch.WithSmallAlpha(-0.1) })
	assert.NotPanics(t, func() { linesearch.WithLogger(nil) })
}

func TestFixedSequence(t *testing.T) {
	s := newQuadratic([]float64{10})
	f := linesearch.NewFixedSequence()
	x := []float64{0}

	var applied []float64
	for k := 0; k < 3; k++ {
		dq := []float64{1}
		require.True(t, f.Step(s, x, dq))
		applied = append(applied, dq[0])
	}
	assert.InDeltaSlice(t, []float64{0.2, 0.35, 0.47}, applied, 1e-12)
	assert.InDelta(t, 1.02, x[0], 1e-12)

	f.Reset()
	assert.Equal(t, linesearch.DefaultInitialAlpha, f.Alpha())

	g := linesearch.NewFixedSequence(linesearch.WithInitialAlpha(1), linesearch.WithDecay(0))
	dq := []float64{1}
	g.Step(s, x, dq)
	assert.Equal(t, 1.0, dq[0])
	assert.Equal(t, linesearch.DefaultAlphaMax, g.Alpha())

	assert.Panics(t, func() { linesearch.WithDecay(1) })
	assert.Panics(t, func() { linesearch.WithAlphaMax(0) })
}

func TestErrorNormBased(t *testing.T) {
	e := linesearch.NewErrorNormBased()
	c, k, a, b := e.Coefficients()
	assert.InDelta(t, 0.6, c, 1e-15)
	assert.InDelta(t, 0.4, k, 1e-15)
	assert.Greater(t, a, 0.0)
	assert.InDelta(t, -1e6*a, b, 1e-12)

	assert.InDelta(t, 0.98, e.Alpha(1), 1e-12)
	assert.InDelta(t, 0.6, e.Alpha(linesearch.DefaultHalfResidual), 1e-15)
	assert.InDelta(t, 0.2, e.Alpha(1e9), 1e-9)

	// the solver residual drives the factor
	s := newQuadratic([]float64{0})
	x := []float64{1e-4}
	dq := s.newtonStep(x, 1)
	require.True(t, e.Step(s, x, dq))
	assert.InDelta(t, -0.98e-4, dq[0], 1e-16)

	f := linesearch.NewErrorNormBased(linesearch.WithCoefficients(0, 0))
	assert.InDelta(t, 0.6, f.Alpha(123), 1e-15)

	assert.Panics(t, func() { linesearch.NewErrorNormBased(linesearch.WithDelta(0.9)) })
	assert.Panics(t, func() { linesearch.WithHalfResidual(1) })
}

func TestParse(t *testing.T) {
	for _, k := range []linesearch.Kind{linesearch.KindConstant, linesearch.KindBacktracking,
		linesearch.KindFixedSequence, linesearch.KindErrorNormBased} {
		got, err := linesearch.Parse(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := linesearch.Parse("wolfe")
	require.ErrorIs(t, err, linesearch.ErrUnknownPolicy)
}
