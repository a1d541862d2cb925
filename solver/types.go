// SPDX-License-Identifier: MIT

package solver

import "fmt"

// Status is the outcome of Solve.
type Status int

const (
	// Success: the residual is at or below the threshold.
	Success Status = iota

	// MaxIterationReached: the iteration cap was hit first.
	MaxIterationReached

	// ErrorIncreased: three iterations in a row without strict decrease.
	ErrorIncreased

	// Infeasible: the residual is above threshold and nothing is free.
	Infeasible
)

var statusNames = [...]string{"SUCCESS", "MAX_ITERATION_REACHED", "ERROR_INCREASED", "INFEASIBLE"}

// String returns the upper-case name of s.
func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}
