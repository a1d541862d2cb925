// SPDX-License-Identifier: MIT

// Package solver implements a hierarchical iterative solver: a damped
// Gauss-Newton method that drives prioritized error functions to zero.
//
// Stacks:
//
// Functions are added with a priority; functions of equal priority form a
// stack. Lower priority numbers are solved first and lower stacks are
// corrected only inside the null space of all higher ones:
//
//	level 0:  dq₀ = J₀⁺ (-e₀),                 P₀ = null(J₀)
//	level i:  dqᵢ = dqᵢ₋₁ + Pᵢ₋₁ (Jᵢ Pᵢ₋₁)⁺ (-eᵢ - Jᵢ dqᵢ₋₁),  Pᵢ = Pᵢ₋₁ null(Jᵢ Pᵢ₋₁)
//
// Pseudo-inverses and null spaces come from full SVDs (gonum mat.SVD),
// truncated at RankThreshold relative to the largest singular value.
//
// Rows and errors:
//
// Each output row has a ComparisonType and a right-hand side:
//
//   - Equality:    e = value - rhs
//   - EqualToZero: e = value
//   - Superior:    e = value - rhs while value < rhs, 0 otherwise
//   - Inferior:    e = value - rhs while value > rhs, 0 otherwise
//
// Before each step, saturated rows are dropped from the direction: satisfied
// inequalities and rows whose reduced Jacobian has a norm at or below
// SaturationThreshold.
//
// The residual is Σ‖eᵢ‖² over the stacks, except the last one when
// LastIsOptional is set; that stack still shapes the step.
//
// Reduction and explicit functions:
//
// Unknowns are the free velocity coordinates (all of them unless
// SetFreeVariables says otherwise) minus the outputs of the explicit system.
// With Je the Jacobian of the explicit outputs over the reduction, every
// stack Jacobian is folded as
//
//	Jred = J[:, reduction] + J[:, outputs] · Je
//
// and the outputs of a step are Je·dqSmall. Explicit outputs are re-solved
// after every integration.
//
// Loop:
//
//	evaluate; if residual > threshold and reduction is empty: INFEASIBLE
//	while residual > threshold and stall > 0 and iteration < max:
//	    saturation, descent direction, line search, evaluate
//	    stall--, reset to 3 on strict decrease
//	residual ≤ threshold: SUCCESS; stall == 0: ERROR_INCREASED; else MAX_ITERATION_REACHED
//
// A failed line search only limits progress; the stall counter and the
// iteration cap decide the outcome. A non-finite configuration on entry or
// exit panics with ErrNonFiniteConfiguration.
//
// A Solver owns all its scratch and is not safe for concurrent use.
package solver
