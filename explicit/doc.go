// SPDX-License-Identifier: MIT

// Package explicit registers explicit relations between configuration
// coordinates, out = f(in), so that the solver can eliminate the outputs
// from its unknowns.
//
// A Function names four index sets: the configuration and velocity indices
// of its inputs and of its outputs. A System collects Functions and keeps
// them consistent:
//
//   - no coordinate is the output of two functions (ErrOutputConflict);
//   - no output is used as an input, by any function (ErrInputIsOutput).
//
// The second rule makes the evaluation order irrelevant: Solve can run the
// functions in registration order and the Jacobian of the outputs with
// respect to the free coordinates is the direct concatenation of the
// function Jacobians.
//
// Affine is the reference Function: out = A·in + b over Euclidean coordinates.
package explicit
