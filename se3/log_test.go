// SPDX-License-Identifier: MIT

// Package se3_test checks the SO(3) log/exp maps and their Jacobian.
package se3_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/lvlik/se3"
)

// randomAxis draws a unit vector from a deterministic source.
func randomAxis(r *rand.Rand) r3.Vec {
	for {
		v := r3.Vec{X: r.NormFloat64(), Y: r.NormFloat64(), Z: r.NormFloat64()}
		if n := r3.Norm(v); n > 1e-3 {
			return r3.Scale(1/n, v)
		}
	}
}

func requireMat3InDelta(t *testing.T, want, got se3.Mat3, delta float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			require.InDeltaf(t, want[i][j], got[i][j], delta, "entry (%d,%d)", i, j)
		}
	}
}

func requireVecInDelta(t *testing.T, want, got r3.Vec, delta float64) {
	t.Helper()
	require.InDelta(t, want.X, got.X, delta)
	require.InDelta(t, want.Y, got.Y, delta)
	require.InDelta(t, want.Z, got.Z, delta)
}

func TestLog_IdentityIsZero(t *testing.T) {
	v, theta := se3.Log(se3.Identity())
	assert.Equal(t, 0.0, theta)
	assert.Equal(t, r3.Vec{}, v)

	// Jlog at θ=0 must be the identity exactly.
	assert.Equal(t, se3.Identity(), se3.Jlog(theta, v))
}

func TestAngle_ClampsTrace(t *testing.T) {
	// Slightly non-orthonormal inputs push the trace out of [-1, 3].
	over := se3.Identity().Scale(1 + 1e-12)
	assert.Equal(t, 0.0, se3.Angle(over))

	under := se3.Mat3{{-1 - 1e-9, 0, 0}, {0, -1, 0}, {0, 0, 1 - 1e-9}}
	assert.Equal(t, math.Pi, se3.Angle(under))
}

func TestLog_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		axis := randomAxis(rng)
		theta := rng.Float64() * (math.Pi - 0.05)
		R := se3.Exp(r3.Scale(theta, axis))

		v, gotTheta := se3.Log(R)
		require.InDelta(t, theta, gotTheta, 1e-9)
		requireMat3InDelta(t, R, se3.Exp(v), 1e-9)
	}
}

func TestLog_RoundTripNearPi(t *testing.T) {
	// The diagonal branch only keeps about half of the digits.
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		axis := randomAxis(rng)
		theta := math.Pi - rng.Float64()*se3.DefaultNearPiThreshold*0.99
		R := se3.Exp(r3.Scale(theta, axis))

		v, _ := se3.Log(R)
		requireMat3InDelta(t, R, se3.Exp(v), 1e-6)
	}
}

func TestLog_ContinuousAcrossNearPiBoundary(t *testing.T) {
	axis := r3.Scale(1/math.Sqrt(14), r3.Vec{X: 1, Y: 2, Z: 3})
	boundary := math.Pi - se3.DefaultNearPiThreshold

	below, thBelow := se3.Log(se3.Exp(r3.Scale(boundary-1e-9, axis)))
	above, thAbove := se3.Log(se3.Exp(r3.Scale(boundary+1e-9, axis)))

	require.Less(t, thBelow, boundary)
	require.GreaterOrEqual(t, thAbove, boundary)
	requireVecInDelta(t, below, above, 1e-6)
}

func TestLogWithThreshold_BranchesAgree(t *testing.T) {
	// Away from π both formulas are valid; they must agree.
	axis := r3.Scale(1/math.Sqrt(3), r3.Vec{X: 1, Y: -1, Z: 1})
	R := se3.Exp(r3.Scale(2.5, axis))

	generic, _ := se3.LogWithThreshold(R, 1e-2)
	diagonal, _ := se3.LogWithThreshold(R, 1.0)
	requireVecInDelta(t, generic, diagonal, 1e-7)
}

func TestJlog_MatchesFiniteDifferences(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	const h = 1e-6
	for i := 0; i < 20; i++ {
		theta := 0.1 + rng.Float64()*2.5
		R := se3.Exp(r3.Scale(theta, randomAxis(rng)))
		omega := randomAxis(rng)

		v, th := se3.Log(R)
		J := se3.Jlog(th, v)
		analytic := J.MulVec(omega)

		// Left perturbation: R(t) = exp(t ω) R.
		plus, _ := se3.Log(se3.Exp(r3.Scale(h, omega)).Mul(R))
		minus, _ := se3.Log(se3.Exp(r3.Scale(-h, omega)).Mul(R))
		numeric := r3.Scale(1/(2*h), r3.Sub(plus, minus))

		requireVecInDelta(t, numeric, analytic, 1e-5)
	}
}

func TestJlog_SmallAngleIsIdentity(t *testing.T) {
	v := r3.Vec{X: 1e-8}
	assert.Equal(t, se3.Identity(), se3.Jlog(r3.Norm(v), v))
}
