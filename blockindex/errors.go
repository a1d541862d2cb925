// SPDX-License-Identifier: MIT

package blockindex

import "errors"

var (
	// ErrNegativeIndex is returned when an index below zero is supplied.
	ErrNegativeIndex = errors.New("blockindex: negative index")

	// ErrOutOfRange is returned when an index is not below the declared size.
	ErrOutOfRange = errors.New("blockindex: index out of range")
)
