// SPDX-License-Identifier: MIT

package explicit

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvlik/blockindex"
)

// Function is an explicit relation out = f(in).
type Function interface {
	// InputConf and InputDerivative index the inputs in configuration and
	// velocity vectors.
	InputConf() blockindex.Indices
	InputDerivative() blockindex.Indices

	// OutputConf and OutputDerivative index the outputs.
	OutputConf() blockindex.Indices
	OutputDerivative() blockindex.Indices

	// Value computes the output configuration entries from the gathered
	// input configuration entries.
	Value(in, out []float64)

	// Jacobian stores ∂out/∂in, |OutputDerivative| × |InputDerivative|, into J.
	// It is not called when the function has no input.
	Jacobian(in []float64, J *mat.Dense)
}
