// SPDX-License-Identifier: MIT

package constraint

// Computations returns how many times the value was actually recomputed.
func (g *GenericTransformation) Computations() int { return g.computations }

// DisableFastPaths forces the generic code path and drops the cache.
func (g *GenericTransformation) DisableFastPaths() {
	g.r1IsIdentity, g.t1IsZero, g.t2IsZero = false, false, false
	g.dirty = true
}
