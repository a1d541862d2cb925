// SPDX-License-Identifier: MIT

package kinematics

import "errors"

var (
	// ErrEmptyChain is returned when a chain is built without joints.
	ErrEmptyChain = errors.New("kinematics: chain has no joint")

	// ErrBadParent is returned when a joint's parent is not an earlier joint or -1.
	ErrBadParent = errors.New("kinematics: parent must be -1 or an earlier joint")

	// ErrZeroAxis is returned when a joint axis has zero length.
	ErrZeroAxis = errors.New("kinematics: joint axis is zero")

	// ErrDuplicateName is returned when two joints share a name.
	ErrDuplicateName = errors.New("kinematics: duplicate joint name")

	// ErrUnknownJoint is returned by lookups on a name the chain does not have.
	ErrUnknownJoint = errors.New("kinematics: unknown joint")

	// ErrUnknownJointKind is returned by ParseJointKind.
	ErrUnknownJointKind = errors.New("kinematics: unknown joint kind")

	// ErrNegativeExtraSpace signals a negative extra configuration dimension.
	// WithExtraConfigSpace panics with it.
	ErrNegativeExtraSpace = errors.New("kinematics: extra config dimension must be non-negative")
)
