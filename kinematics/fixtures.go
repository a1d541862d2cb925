// SPDX-License-Identifier: MIT

package kinematics

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/lvlik/se3"
)

// SampleArmSpecs returns a small arm used by examples and benchmarks:
//
//	waist (revolute z) → shoulder (revolute y) → elbow (revolute y)
//	  → wrist (continuous x) → slide (prismatic z, tilted)
//
// with a finger (revolute z) branching off the elbow.
func SampleArmSpecs() []JointSpec {
	return []JointSpec{
		{Name: "waist", Kind: Revolute, Parent: -1,
			Placement: se3.Translation(r3.Vec{Z: 0.1}), Axis: r3.Vec{Z: 1}},
		{Name: "shoulder", Kind: Revolute, Parent: 0,
			Placement: se3.Translation(r3.Vec{Z: 0.4}), Axis: r3.Vec{Y: 1}},
		{Name: "elbow", Kind: Revolute, Parent: 1,
			Placement: se3.Translation(r3.Vec{X: 0.35}), Axis: r3.Vec{Y: 1}},
		{Name: "wrist", Kind: Continuous, Parent: 2,
			Placement: se3.NewTransform(se3.FromRPY(0, 0.2, 0), r3.Vec{X: 0.3}), Axis: r3.Vec{X: 1}},
		{Name: "slide", Kind: Prismatic, Parent: 3,
			Placement: se3.NewTransform(se3.RotX(0.3), r3.Vec{X: 0.05, Z: 0.02}), Axis: r3.Vec{Z: 1}},
		{Name: "finger", Kind: Revolute, Parent: 2,
			Placement: se3.Translation(r3.Vec{X: 0.1, Y: 0.05}), Axis: r3.Vec{Z: 1}},
	}
}

// SampleArm builds the chain described by SampleArmSpecs.
func SampleArm(opts ...Option) *Chain {
	c, err := NewChain(SampleArmSpecs(), opts...)
	if err != nil {
		panic(err)
	}
	return c
}
