// SPDX-License-Identifier: MIT

package se3

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mat3 is a dense 3×3 matrix stored row-major. It is used for rotations and
// for the 3×3 operators (skew, Jlog) that act on them.
type Mat3 [3][3]float64

// Transform is a rigid placement: a rotation R followed by a translation T.
// Applied to a point p it yields R·p + T.
type Transform struct {
	R Mat3   // rotation part, expected orthonormal with det = +1
	T r3.Vec // translation part
}

// Identity returns the 3×3 identity matrix.
func Identity() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// IdentityTransform returns the neutral placement.
func IdentityTransform() Transform {
	return Transform{R: Identity()}
}

// NewTransform builds a placement from a rotation and a translation.
func NewTransform(r Mat3, t r3.Vec) Transform {
	return Transform{R: r, T: t}
}

// Translation builds a pure translation.
func Translation(t r3.Vec) Transform {
	return Transform{R: Identity(), T: t}
}

// Rotation builds a pure rotation.
func Rotation(r Mat3) Transform {
	return Transform{R: r}
}

// Dense copies m into a freshly allocated gonum matrix.
func (m Mat3) Dense() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		m[0][0], m[0][1], m[0][2],
		m[1][0], m[1][1], m[1][2],
		m[2][0], m[2][1], m[2][2],
	})
}
