// SPDX-License-Identifier: MIT

// Package linesearch provides the step policies of the iterative solver.
//
// A Policy receives the solver, the current configuration arg and the raw
// Newton increment dq. It scales dq, integrates it into arg and reports
// whether the step is admissible. arg is always moved, even on failure.
//
// Policies:
//
//   - Constant:       full step, always admissible.
//   - Backtracking:   Armijo rule on the squared residual. The local slope is
//     computed from the reduced stack Jacobians and the active errors; an
//     ascent direction, or no admissible length above SmallAlpha, applies
//     the step scaled by SmallAlpha and reports failure.
//   - FixedSequence:  α_{k+1} = αMax - K (αMax - α_k), starting at α₀.
//   - ErrorNormBased: α = C - K tanh(a r + b) with r the residual divided by
//     the convergence threshold; small residuals take nearly full steps.
//
// Defaults:
//
//	Backtracking:   c = 1e-3, τ = 0.7, SmallAlpha = 0.2
//	FixedSequence:  α₀ = 0.2, αMax = 0.95, K = 0.8
//	ErrorNormBased: αMin = 0.2 (C = 0.6, K = 0.4), δ = 0.02, r½ = 1e6
//
// ErrorNormBased derives a and b so that α(1) = 1 - δ and α(r½) = C.
//
// Stateful policies (Backtracking scratch, FixedSequence α) must not be
// shared between goroutines.
package linesearch
