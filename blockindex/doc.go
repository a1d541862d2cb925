// SPDX-License-Identifier: MIT

// Package blockindex provides sorted, duplicate-free sets of coordinate
// indices and the row/column views built on them.
//
// The solver works on several subsets of the configuration-velocity
// coordinates: the free (reduced) variables, the outputs of explicit
// functions, their inputs. Indices is the common currency between them:
//
//   - Gather / Scatter move entries between a full vector and a compact one.
//   - Cols / Rows extract the corresponding columns or rows of a gonum matrix.
//   - Complement / Difference / Union combine sets.
//
// All views copy; nothing here aliases the caller's storage.
package blockindex
