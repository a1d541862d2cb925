// SPDX-License-Identifier: MIT

package kinematics

// DefaultExtraConfigDimension is the number of extra coordinates of a Chain
// unless WithExtraConfigSpace says otherwise.
const DefaultExtraConfigDimension = 0

// Options configures a Chain.
type Options struct {
	ExtraConfigDimension int // trailing coordinates moving no joint
}

// Option is a functional option for NewChain.
type Option func(*Options)

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{ExtraConfigDimension: DefaultExtraConfigDimension}
}

// WithExtraConfigSpace appends n Euclidean coordinates to both the
// configuration and the velocity space. Panics if n < 0.
func WithExtraConfigSpace(n int) Option {
	if n < 0 {
		panic(ErrNegativeExtraSpace.Error())
	}
	return func(o *Options) {
		o.ExtraConfigDimension = n
	}
}
