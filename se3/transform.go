// SPDX-License-Identifier: MIT

package se3

import "gonum.org/v1/gonum/spatial/r3"

// Compose returns a·b, the placement obtained by applying b first.
func (a Transform) Compose(b Transform) Transform {
	return Transform{
		R: a.R.Mul(b.R),
		T: r3.Add(a.R.MulVec(b.T), a.T),
	}
}

// Inverse returns a⁻¹.
func (a Transform) Inverse() Transform {
	rt := a.R.T()
	return Transform{R: rt, T: r3.Scale(-1, rt.MulVec(a.T))}
}

// Act maps a point expressed in the frame of a to the parent frame.
func (a Transform) Act(p r3.Vec) r3.Vec {
	return r3.Add(a.R.MulVec(p), a.T)
}

// ActInv maps a point expressed in the parent frame into the frame of a.
func (a Transform) ActInv(p r3.Vec) r3.Vec {
	return a.R.T().MulVec(r3.Sub(p, a.T))
}

// ActInvTransform returns a⁻¹·b without forming the inverse explicitly.
func (a Transform) ActInvTransform(b Transform) Transform {
	rt := a.R.T()
	return Transform{
		R: rt.Mul(b.R),
		T: rt.MulVec(r3.Sub(b.T, a.T)),
	}
}

// IsIdentity reports whether a is exactly the neutral placement.
func (a Transform) IsIdentity() bool {
	return a.R.IsIdentity() && a.T == r3.Vec{}
}
