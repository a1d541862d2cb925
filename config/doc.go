// SPDX-License-Identifier: MIT

// Package config loads solver and line-search tuning.
//
// Sources, lowest precedence first:
//
//  1. Defaults (solver and linesearch Default* constants)
//  2. YAML document passed to Load
//  3. IKSOLVE_* environment variables
//
// Environment names map onto keys by section:
//
//	IKSOLVE_SOLVER_MAX_ITERATIONS     -> solver.max_iterations
//	IKSOLVE_LINE_SEARCH_POLICY        -> line_search.policy
//	IKSOLVE_LINE_SEARCH_SHRINK_RATIO  -> line_search.shrink_ratio
//
// A YAML document looks like:
//
//	solver:
//	  error_threshold: 1e-4
//	  max_iterations: 40
//	  last_is_optional: true
//	line_search:
//	  policy: backtracking
//	  shrink_ratio: 0.5
//
// Load validates every value against the domain its option constructor
// accepts, so Tuning.SolverOptions and Tuning.LineSearch never panic on a
// loaded Tuning.
package config
