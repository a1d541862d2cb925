// SPDX-License-Identifier: MIT

package explicit

import "errors"

var (
	// ErrOutputConflict is returned when two functions write the same coordinate.
	ErrOutputConflict = errors.New("explicit: output already determined by another function")

	// ErrInputIsOutput is returned when a function reads a coordinate that some
	// function writes.
	ErrInputIsOutput = errors.New("explicit: input is an output of the system")

	// ErrDimension is returned when index sets and matrices disagree in size.
	ErrDimension = errors.New("explicit: dimension mismatch")
)
