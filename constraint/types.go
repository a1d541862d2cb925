// SPDX-License-Identifier: MIT

package constraint

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Function is a differentiable map from configurations to error values.
type Function interface {
	// Name identifies the function in logs and problem files.
	Name() string

	// InputSize is the configuration size.
	InputSize() int

	// InputDerivativeSize is the velocity size, i.e. the number of Jacobian columns.
	InputDerivativeSize() int

	// OutputSize is the length of the value and the number of Jacobian rows.
	OutputSize() int

	// Value stores f(q) into out. Panics when len(out) != OutputSize().
	Value(q, out []float64)

	// Jacobian stores ∂f/∂v at q into J, which must be
	// OutputSize() × InputDerivativeSize().
	Jacobian(q []float64, J *mat.Dense)
}

// ComparisonType says how one output row is compared to its right-hand side.
type ComparisonType int

const (
	// Equality drives value - rhs to zero.
	Equality ComparisonType = iota

	// EqualToZero drives the value to zero and ignores the right-hand side.
	EqualToZero

	// Superior requires value ≥ rhs.
	Superior

	// Inferior requires value ≤ rhs.
	Inferior
)

var comparisonNames = [...]string{"equality", "equal_to_zero", "superior", "inferior"}

// String returns the snake_case name used in problem files.
func (c ComparisonType) String() string {
	if c < 0 || int(c) >= len(comparisonNames) {
		return fmt.Sprintf("ComparisonType(%d)", int(c))
	}
	return comparisonNames[c]
}

// IsInequality reports whether c is Superior or Inferior.
func (c ComparisonType) IsInequality() bool {
	return c == Superior || c == Inferior
}

// ParseComparisonType maps a name produced by String back to its value.
func ParseComparisonType(s string) (ComparisonType, error) {
	for i, n := range comparisonNames {
		if n == s {
			return ComparisonType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownComparison, s)
}

// Kind selects the variant of a GenericTransformation.
type Kind uint8

// Kind bits.
const (
	RelativeBit Kind = 1 << iota
	PositionBit
	OrientationBit
)

// The six valid kinds.
const (
	AbsolutePosition       = PositionBit
	AbsoluteOrientation    = OrientationBit
	AbsoluteTransformation = PositionBit | OrientationBit
	RelativePosition       = RelativeBit | PositionBit
	RelativeOrientation    = RelativeBit | OrientationBit
	RelativeTransformation = RelativeBit | PositionBit | OrientationBit
)

var kindNames = map[Kind]string{
	AbsolutePosition:       "absolute_position",
	AbsoluteOrientation:    "absolute_orientation",
	AbsoluteTransformation: "absolute_transformation",
	RelativePosition:       "relative_position",
	RelativeOrientation:    "relative_orientation",
	RelativeTransformation: "relative_transformation",
}

// Valid reports whether k is one of the six named kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// IsRelative reports whether the relative bit is set.
func (k Kind) IsRelative() bool { return k&RelativeBit != 0 }

// HasPosition reports whether k produces position rows.
func (k Kind) HasPosition() bool { return k&PositionBit != 0 }

// HasOrientation reports whether k produces orientation rows.
func (k Kind) HasOrientation() bool { return k&OrientationBit != 0 }

// ValueSize is the number of rows before masking: 3 or 6.
func (k Kind) ValueSize() int {
	n := 0
	if k.HasPosition() {
		n += 3
	}
	if k.HasOrientation() {
		n += 3
	}
	return n
}

// String returns the snake_case name used in problem files.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind maps a name produced by String back to its Kind.
func ParseKind(s string) (Kind, error) {
	for k, n := range kindNames {
		if n == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidKind, s)
}

// Mask selects output rows; true keeps the row.
type Mask []bool

// FullMask returns an all-true mask of size n.
func FullMask(n int) Mask {
	m := make(Mask, n)
	for i := range m {
		m[i] = true
	}
	return m
}

// Count returns the number of kept rows.
func (m Mask) Count() int {
	n := 0
	for _, b := range m {
		if b {
			n++
		}
	}
	return n
}

// IsFull reports whether every row is kept.
func (m Mask) IsFull() bool {
	return m.Count() == len(m)
}

// String renders the mask as a row of 0/1, e.g. "110".
func (m Mask) String() string {
	var b strings.Builder
	for _, v := range m {
		if v {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}
