// SPDX-License-Identifier: MIT

package se3

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// DefaultNearPiThreshold is the distance to π below which Log switches from
	// the antisymmetric formula to the diagonal one. 1e-6 proved too small:
	// the antisymmetric part vanishes like sin θ near π.
	DefaultNearPiThreshold = 1e-2

	// DefaultSmallAngle is the angle below which Jlog is the identity and the
	// θ / sin θ factor of Log is replaced by its limit 1.
	DefaultSmallAngle = 1e-6
)

// Angle returns the rotation angle θ ∈ [0, π] of r. The trace is clamped to
// [-1, 3] so that round-off never reaches acos outside its domain.
func Angle(r Mat3) float64 {
	tr := r.Trace()
	switch {
	case tr > 3:
		return 0
	case tr < -1:
		return math.Pi
	default:
		return math.Acos((tr - 1) / 2)
	}
}

// Log returns the rotation vector of r (axis scaled by angle) and the angle.
// It uses DefaultNearPiThreshold.
func Log(r Mat3) (r3.Vec, float64) {
	return LogWithThreshold(r, DefaultNearPiThreshold)
}

// LogWithThreshold is Log with an explicit near-π switching distance.
func LogWithThreshold(r Mat3, nearPi float64) (r3.Vec, float64) {
	theta := Angle(r)
	if theta < math.Pi-nearPi {
		t := 0.5
		if theta > DefaultSmallAngle {
			t = theta / math.Sin(theta) / 2
		}
		return r3.Vec{
			X: t * (r[2][1] - r[1][2]),
			Y: t * (r[0][2] - r[2][0]),
			Z: t * (r[1][0] - r[0][1]),
		}, theta
	}

	cphi := math.Cos(theta - math.Pi)
	beta := theta * theta / (1 + cphi)
	tmp0 := (r[0][0] + cphi) * beta
	tmp1 := (r[1][1] + cphi) * beta
	tmp2 := (r[2][2] + cphi) * beta
	return r3.Vec{
		X: signOf(r[2][1] > r[1][2]) * sqrtPos(tmp0),
		Y: signOf(r[0][2] > r[2][0]) * sqrtPos(tmp1),
		Z: signOf(r[1][0] > r[0][1]) * sqrtPos(tmp2),
	}, theta
}

// Jlog returns the Jacobian of the logarithm at a rotation of angle theta and
// rotation vector v. See the package documentation for the formula.
func Jlog(theta float64, v r3.Vec) Mat3 {
	if theta < DefaultSmallAngle {
		return Identity()
	}
	st, ct := math.Sincos(theta)
	stOver1mct := st / (1 - ct)

	diag := theta * stOver1mct / 2
	j := Identity().Scale(diag)
	j = j.Add(Skew(v).Scale(-0.5))

	alpha := 1/(theta*theta) - stOver1mct/(2*theta)
	return j.Add(Outer(v, v).Scale(alpha))
}

func signOf(positive bool) float64 {
	if positive {
		return 1
	}
	return -1
}

func sqrtPos(x float64) float64 {
	if x > 0 {
		return math.Sqrt(x)
	}
	return 0
}
