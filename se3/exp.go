// SPDX-License-Identifier: MIT

package se3

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Exp returns the rotation matrix of the rotation vector v (Rodrigues).
func Exp(v r3.Vec) Mat3 {
	theta := r3.Norm(v)
	k := Skew(v)
	if theta < DefaultSmallAngle {
		// second order is exact enough here and avoids 0/0
		return Identity().Add(k).Add(k.Mul(k).Scale(0.5))
	}
	st, ct := math.Sincos(theta)
	return Identity().
		Add(k.Scale(st / theta)).
		Add(k.Mul(k).Scale((1 - ct) / (theta * theta)))
}
