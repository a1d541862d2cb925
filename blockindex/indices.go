// SPDX-License-Identifier: MIT

package blockindex

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Indices is a sorted set of non-negative coordinate indices.
// The zero value is the empty set.
type Indices []int

// New builds a set from arbitrary indices; duplicates are merged.
func New(idx ...int) (Indices, error) {
	out := make(Indices, 0, len(idx))
	for _, i := range idx {
		if i < 0 {
			return nil, fmt.Errorf("%w: %d", ErrNegativeIndex, i)
		}
		out = append(out, i)
	}
	sort.Ints(out)
	return out.dedup(), nil
}

// Range returns {start, ..., start+n-1}.
func Range(start, n int) Indices {
	out := make(Indices, n)
	for k := range out {
		out[k] = start + k
	}
	return out
}

func (s Indices) dedup() Indices {
	if len(s) < 2 {
		return s
	}
	w := 1
	for r := 1; r < len(s); r++ {
		if s[r] != s[w-1] {
			s[w] = s[r]
			w++
		}
	}
	return s[:w]
}

// Len returns the number of indices.
func (s Indices) Len() int { return len(s) }

// Contains reports whether i belongs to s.
func (s Indices) Contains(i int) bool {
	return s.Position(i) >= 0
}

// Position returns the rank of i inside s, or -1 when absent.
func (s Indices) Position(i int) int {
	k := sort.SearchInts(s, i)
	if k < len(s) && s[k] == i {
		return k
	}
	return -1
}

// CheckRange verifies that every index is below n.
func (s Indices) CheckRange(n int) error {
	if len(s) > 0 && s[len(s)-1] >= n {
		return fmt.Errorf("%w: %d >= %d", ErrOutOfRange, s[len(s)-1], n)
	}
	return nil
}

// Complement returns {0..n-1} \ s.
func (s Indices) Complement(n int) Indices {
	return Range(0, n).Difference(s)
}

// Difference returns s \ o.
func (s Indices) Difference(o Indices) Indices {
	out := make(Indices, 0, len(s))
	for _, i := range s {
		if !o.Contains(i) {
			out = append(out, i)
		}
	}
	return out
}

// Intersect returns s ∩ o.
func (s Indices) Intersect(o Indices) Indices {
	out := make(Indices, 0, len(s))
	for _, i := range s {
		if o.Contains(i) {
			out = append(out, i)
		}
	}
	return out
}

// Union returns s ∪ o.
func (s Indices) Union(o Indices) Indices {
	out := make(Indices, 0, len(s)+len(o))
	out = append(out, s...)
	out = append(out, o...)
	sort.Ints(out)
	return out.dedup()
}

// Overlaps reports whether s and o share an index.
func (s Indices) Overlaps(o Indices) bool {
	for _, i := range s {
		if o.Contains(i) {
			return true
		}
	}
	return false
}

// Gather copies src[s[k]] into dst[k]. dst must have len(s) entries.
func (s Indices) Gather(dst, src []float64) {
	for k, i := range s {
		dst[k] = src[i]
	}
}

// Scatter copies src[k] into dst[s[k]]; other entries of dst are untouched.
func (s Indices) Scatter(dst, src []float64) {
	for k, i := range s {
		dst[i] = src[k]
	}
}

// Cols returns the columns of m selected by s as a new r×len(s) matrix, or
// nil when either dimension would be zero.
func (s Indices) Cols(m mat.Matrix) *mat.Dense {
	r, _ := m.Dims()
	if r == 0 || len(s) == 0 {
		return nil
	}
	out := mat.NewDense(r, len(s), nil)
	s.ColsInto(out, m)
	return out
}

// ColsInto copies the columns of m selected by s into dst, which must be
// r×len(s).
func (s Indices) ColsInto(dst *mat.Dense, m mat.Matrix) {
	r, _ := m.Dims()
	if dr, dc := dst.Dims(); dr != r || dc != len(s) {
		panic(fmt.Sprintf("blockindex: destination is %d×%d, want %d×%d", dr, dc, r, len(s)))
	}
	for k, j := range s {
		for i := 0; i < r; i++ {
			dst.Set(i, k, m.At(i, j))
		}
	}
}

// Rows returns the rows of m selected by s as a new len(s)×c matrix, or nil
// when either dimension would be zero.
func (s Indices) Rows(m mat.Matrix) *mat.Dense {
	_, c := m.Dims()
	if c == 0 || len(s) == 0 {
		return nil
	}
	out := mat.NewDense(len(s), c, nil)
	for k, i := range s {
		for j := 0; j < c; j++ {
			out.Set(k, j, m.At(i, j))
		}
	}
	return out
}

// ScatterCols adds the columns of src into the columns of dst selected by s:
// dst[:, s[k]] += src[:, k].
func (s Indices) ScatterCols(dst *mat.Dense, src mat.Matrix) {
	r, _ := src.Dims()
	for k, j := range s {
		for i := 0; i < r; i++ {
			dst.Set(i, j, dst.At(i, j)+src.At(i, k))
		}
	}
}
