// SPDX-License-Identifier: MIT

package kinematics

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/lvlik/se3"
)

// Joint exposes the state of one joint at the device's current configuration.
type Joint interface {
	// Name identifies the joint inside its device.
	Name() string

	// Transform returns the joint placement in the world frame.
	Transform() se3.Transform

	// Jacobian returns the 6×NumberDof() velocity Jacobian in the joint frame,
	// linear rows first. The matrix is owned by the device and must not be
	// modified.
	Jacobian() *mat.Dense
}

// Device is the mechanism the constraints are attached to.
type Device interface {
	// ConfigSize is the length of a configuration vector.
	ConfigSize() int

	// NumberDof is the length of a velocity (tangent) vector.
	NumberDof() int

	// ExtraConfigDimension is the number of trailing velocity coordinates that
	// move no joint.
	ExtraConfigDimension() int

	// SetConfiguration makes q current and refreshes all joint poses and
	// Jacobians. It is a no-op when q equals the current configuration.
	SetConfiguration(q []float64)
}

// Integrator implements out = q ⊕ v. out may alias q.
type Integrator interface {
	Integrate(q, v, out []float64)
}

// JointKind selects the motion a joint produces.
type JointKind int

const (
	// Revolute rotates around Axis; one configuration and one velocity entry.
	Revolute JointKind = iota

	// Prismatic translates along Axis; one configuration and one velocity entry.
	Prismatic

	// Continuous rotates around Axis without bounds, stored as (cos θ, sin θ).
	Continuous
)

// String returns the lower-case name used in problem files.
func (k JointKind) String() string {
	switch k {
	case Revolute:
		return "revolute"
	case Prismatic:
		return "prismatic"
	case Continuous:
		return "continuous"
	default:
		return "unknown"
	}
}

// ParseJointKind maps a name produced by String back to a JointKind.
func ParseJointKind(s string) (JointKind, error) {
	switch s {
	case "revolute":
		return Revolute, nil
	case "prismatic":
		return Prismatic, nil
	case "continuous":
		return Continuous, nil
	default:
		return 0, ErrUnknownJointKind
	}
}

// configSize returns the number of configuration entries of the kind.
func (k JointKind) configSize() int {
	if k == Continuous {
		return 2
	}
	return 1
}

// JointSpec describes one joint of a Chain.
type JointSpec struct {
	Name      string        // unique inside the chain
	Kind      JointKind     // motion type
	Parent    int           // index of the parent joint, -1 for the world
	Placement se3.Transform // joint frame in the parent frame at zero motion
	Axis      r3.Vec        // motion axis in the joint frame, normalized on construction
}
