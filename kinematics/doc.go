// SPDX-License-Identifier: MIT

// Package kinematics declares what the pose constraints and the solver need
// from a mechanism, and ships a reference implementation of it.
//
// Interfaces:
//
//   - Device:     sizes of the configuration and velocity spaces, and
//     SetConfiguration, which refreshes every joint pose and Jacobian.
//   - Joint:      current world placement and 6×nv velocity Jacobian.
//   - Integrator: q ⊕ v on the configuration manifold.
//
// Jacobian convention:
//
// Joint Jacobians are expressed in the joint's own frame. The top three rows
// map velocities to the linear velocity of the joint origin, the bottom three
// to its angular velocity:
//
//	[ Rᵀ ṗ ]   [ Jv ]
//	[ Rᵀ ω ] = [ Jw ] · v
//
// where R, p are the joint's world rotation and origin and ω is its world
// angular velocity.
//
// Chain:
//
// Chain is a kinematic tree (each joint names a parent, -1 for the world) of
// revolute, prismatic and continuous joints. Continuous joints are unbounded
// rotations stored as (cos θ, sin θ): two configuration entries, one velocity
// entry. Optional extra configuration dimensions are appended at the end of
// both spaces and affect no joint.
//
// A Chain is not safe for concurrent use.
package kinematics
