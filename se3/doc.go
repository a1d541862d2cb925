// SPDX-License-Identifier: MIT

// Package se3 provides the small amount of rigid-body algebra needed by the
// pose constraints: fixed-size 3×3 rotation matrices, rigid placements and the
// SO(3) exponential / logarithm maps together with the Jacobian of the log.
//
// Overview:
//
//   - Mat3 is a value type ([3][3]float64); every operation returns a new value.
//   - Transform is a rigid placement (R, T) acting on points as R·p + T.
//   - Vectors are gonum's r3.Vec so callers can mix freely with gonum/spatial.
//
// Logarithm:
//
//	θ = acos((tr(R) - 1) / 2), clamped so that 0 ≤ θ ≤ π
//
//   - θ < π - nearPi: antisymmetric formula  r = θ / (2 sin θ) · vee(R - Rᵀ)
//   - otherwise:      diagonal formula       |r_i| = sqrt((R_ii + cos(θ-π)) · θ² / (1 + cos(θ-π)))
//     with the sign of r_i read from the antisymmetric part.
//
// The near-π branch loses half of the significant digits (square root) but
// never divides by sin θ ≈ 0. DefaultNearPiThreshold (1e-2) is an empirical
// choice; LogWithThreshold lets callers move the switching point.
//
// Jlog:
//
// Jlog(θ, r) maps an angular velocity ω (left perturbation, Ṙ = [ω]×R) to the
// time derivative of Log(R):
//
//	Jlog = θ sin θ / (2(1 - cos θ)) · I  -  [r]× / 2  +  (1/θ² - sin θ / (2θ(1 - cos θ))) · r rᵀ
//
// and is the identity below DefaultSmallAngle.
//
// Nothing in this package panics or returns errors for orthonormal input.
package se3
