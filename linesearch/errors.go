// SPDX-License-Identifier: MIT

package linesearch

import "errors"

var (
	// ErrInvalidParameter signals a policy constant outside its domain.
	// Option constructors panic with it.
	ErrInvalidParameter = errors.New("linesearch: parameter out of range")

	// ErrUnknownPolicy is returned by Parse.
	ErrUnknownPolicy = errors.New("linesearch: unknown policy")
)
