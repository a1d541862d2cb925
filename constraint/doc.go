// SPDX-License-Identifier: MIT

// Package constraint defines differentiable error functions over a device
// configuration and implements the generic rigid-transformation constraint.
//
// Function:
//
// A Function maps a configuration q (length InputSize) to a value of length
// OutputSize and provides its Jacobian with respect to the velocity
// coordinates (OutputSize × InputDerivativeSize). The solver stacks Functions
// by priority and compares each output row to a right-hand side according to
// a ComparisonType.
//
// GenericTransformation:
//
// GenericTransformation measures the placement of frame 2 (rigidly attached
// to joint 2) in frame 1 (rigidly attached to joint 1, or to the world when
// joint 1 is nil):
//
//	M = F1⁻¹ · J1⁻¹ · J2 · F2
//
//   - position rows:    the translation of M
//   - orientation rows: Log(rotation of M), see package se3
//
// The Kind selects which rows exist; a Mask then keeps a subset of them.
// The relative bit only matters when joint 1 is set: a relative kind built
// without joint 1 is evaluated against the world, and an absolute kind
// ignores joint 1.
//
// Jacobian:
//
// Joint Jacobians are read in the joint frame (see package kinematics).
// With c2 = R2·t(F2) and P = c2 + t2 - t1:
//
//	position    (absolute): R(F1)ᵀ · ( R2·Jv2 + (R2 Jw2) × c2 )
//	position    (relative): R(F1)ᵀ R1ᵀ · ( R2·Jv2 - R1·Jv1 - (R1 Jw1) × P + (R2 Jw2) × c2 )
//	orientation (absolute): Jlog · R(F1)ᵀ · R2·Jw2
//	orientation (relative): Jlog · R(F1)ᵀ R1ᵀ · ( R2·Jw2 - R1·Jw1 )
//
// Columns past NumberDof - ExtraConfigDimension are always zero.
//
// Caching:
//
// Each instance keeps the last configuration it evaluated, the full
// (unmasked) value and, on demand, the full Jacobian. A different
// configuration, or Invalidate, forces a refresh. Values at the cached
// configuration never call the device. The first Jacobian after a refresh
// sets the device back to the cached configuration once, since another
// function may have moved it; later Jacobians at that configuration reuse
// the cached matrix.
//
// Fast paths:
//
// When R(F1) is the identity, or t(F1) or t(F2) is zero, the corresponding
// products and subtractions are skipped. The skipped operations are exact
// (multiplication by the identity, addition of zero) so the result is
// bit-identical to the generic path.
//
// Instances own their scratch buffers and are not safe for concurrent use.
package constraint
