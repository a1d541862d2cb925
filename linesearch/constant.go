// SPDX-License-Identifier: MIT

package linesearch

// Constant applies the full increment.
type Constant struct{}

// Step implements Policy.
func (Constant) Step(s Solver, arg, dq []float64) bool {
	s.Integrate(arg, dq, arg)
	return true
}

func (Constant) String() string { return KindConstant.String() }
