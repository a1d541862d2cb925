// SPDX-License-Identifier: MIT

package constraint

import "errors"

var (
	// ErrNilDevice is returned when a constraint is built without a device.
	ErrNilDevice = errors.New("constraint: device is nil")

	// ErrNilJoint2 is returned when the mandatory second joint is missing.
	ErrNilJoint2 = errors.New("constraint: joint2 is nil")

	// ErrInvalidKind is returned for a Kind with neither position nor
	// orientation, or with unknown bits.
	ErrInvalidKind = errors.New("constraint: invalid kind")

	// ErrMaskSize is returned when a mask length differs from the number of
	// rows selected by the Kind.
	ErrMaskSize = errors.New("constraint: mask length does not match output size")

	// ErrUnknownComparison is returned by ParseComparisonType.
	ErrUnknownComparison = errors.New("constraint: unknown comparison type")
)
