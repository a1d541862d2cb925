// SPDX-License-Identifier: MIT

package se3

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mul returns m·b.
func (m Mat3) Mul(b Mat3) Mat3 {
	var out Mat3
	var i, j, k int
	for i = 0; i < 3; i++ {
		for j = 0; j < 3; j++ {
			for k = 0; k < 3; k++ {
				out[i][j] += m[i][k] * b[k][j]
			}
		}
	}
	return out
}

// T returns the transpose of m.
func (m Mat3) T() Mat3 {
	return Mat3{
		{m[0][0], m[1][0], m[2][0]},
		{m[0][1], m[1][1], m[2][1]},
		{m[0][2], m[1][2], m[2][2]},
	}
}

// Add returns m+b.
func (m Mat3) Add(b Mat3) Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][j] + b[i][j]
		}
	}
	return out
}

// Scale returns f·m.
func (m Mat3) Scale(f float64) Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = f * m[i][j]
		}
	}
	return out
}

// MulVec returns m·v.
func (m Mat3) MulVec(v r3.Vec) r3.Vec {
	return r3.Vec{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Trace returns the sum of the diagonal entries.
func (m Mat3) Trace() float64 {
	return m[0][0] + m[1][1] + m[2][2]
}

// Col returns column j as a vector.
func (m Mat3) Col(j int) r3.Vec {
	return r3.Vec{X: m[0][j], Y: m[1][j], Z: m[2][j]}
}

// setCol overwrites column j.
func (m *Mat3) setCol(j int, v r3.Vec) {
	m[0][j], m[1][j], m[2][j] = v.X, v.Y, v.Z
}

// ColCross returns the matrix whose j-th column is m_j × v, i.e. -[v]×·m.
// It is the lever-arm operator of a point rigidly attached at v.
func (m Mat3) ColCross(v r3.Vec) Mat3 {
	var out Mat3
	for j := 0; j < 3; j++ {
		out.setCol(j, r3.Cross(m.Col(j), v))
	}
	return out
}

// IsIdentity reports whether m is exactly the identity. Exact comparison
// keeps the fast paths that rely on it bit-identical to the generic path.
func (m Mat3) IsIdentity() bool {
	return m == Identity()
}

// IsFinite reports whether no entry is NaN or ±Inf.
func (m Mat3) IsFinite() bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.IsNaN(m[i][j]) || math.IsInf(m[i][j], 0) {
				return false
			}
		}
	}
	return true
}

// Skew returns the cross-product matrix [v]× such that [v]×·p = v × p.
func Skew(v r3.Vec) Mat3 {
	return Mat3{
		{0, -v.Z, v.Y},
		{v.Z, 0, -v.X},
		{-v.Y, v.X, 0},
	}
}

// Outer returns a·bᵀ.
func Outer(a, b r3.Vec) Mat3 {
	return Mat3{
		{a.X * b.X, a.X * b.Y, a.X * b.Z},
		{a.Y * b.X, a.Y * b.Y, a.Y * b.Z},
		{a.Z * b.X, a.Z * b.Y, a.Z * b.Z},
	}
}

// MulInto stores m·src into dst. src must have three rows; an empty dst is
// sized to 3×c, a non-empty one must already be 3×c. dst must not alias src.
func (m Mat3) MulInto(dst *mat.Dense, src mat.Matrix) {
	_, c := src.Dims()
	if dst.IsEmpty() {
		dst.ReuseAs(3, c)
	} else if r, cc := dst.Dims(); r != 3 || cc != c {
		panic(mat.ErrShape)
	}
	var i, j, k int
	var s float64
	for i = 0; i < 3; i++ {
		for j = 0; j < c; j++ {
			s = 0
			for k = 0; k < 3; k++ {
				s += m[i][k] * src.At(k, j)
			}
			dst.Set(i, j, s)
		}
	}
}

// RotX returns the rotation of angle a around the x axis.
func RotX(a float64) Mat3 {
	s, c := math.Sincos(a)
	return Mat3{{1, 0, 0}, {0, c, -s}, {0, s, c}}
}

// RotY returns the rotation of angle a around the y axis.
func RotY(a float64) Mat3 {
	s, c := math.Sincos(a)
	return Mat3{{c, 0, s}, {0, 1, 0}, {-s, 0, c}}
}

// RotZ returns the rotation of angle a around the z axis.
func RotZ(a float64) Mat3 {
	s, c := math.Sincos(a)
	return Mat3{{c, -s, 0}, {s, c, 0}, {0, 0, 1}}
}

// FromRPY returns Rz(yaw)·Ry(pitch)·Rx(roll).
func FromRPY(roll, pitch, yaw float64) Mat3 {
	return RotZ(yaw).Mul(RotY(pitch)).Mul(RotX(roll))
}
