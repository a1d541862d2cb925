// SPDX-License-Identifier: MIT

package solver

import "gonum.org/v1/gonum/mat"

// DescentWorkspace returns the active Jacobian buffer of stack i.
func (s *Solver) DescentWorkspace(i int) *mat.Dense { return s.stacks[i].ja }
