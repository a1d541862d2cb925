// SPDX-License-Identifier: MIT

package constraint

import (
	"math"

	"github.com/katalvlaran/lvlik/kinematics"
	"github.com/katalvlaran/lvlik/se3"
)

// Options configures a GenericTransformation.
//
// Fields:
//   - Joint1, Joint2: joints the frames are attached to; Joint1 nil means the world.
//   - Frame1, Frame2: frame placements in their joint (F1, F2).
//   - Mask: rows kept; nil keeps all of them.
//   - NearPiThreshold: switching distance of the SO(3) logarithm.
type Options struct {
	Joint1          kinematics.Joint
	Joint2          kinematics.Joint
	Frame1          se3.Transform
	Frame2          se3.Transform
	Mask            Mask
	NearPiThreshold float64
}

// Option is a functional option for New.
type Option func(*Options)

// DefaultOptions returns identity frames, no joints and a full mask.
func DefaultOptions() Options {
	return Options{
		Frame1:          se3.IdentityTransform(),
		Frame2:          se3.IdentityTransform(),
		NearPiThreshold: se3.DefaultNearPiThreshold,
	}
}

// WithJoint1 attaches frame 1 to j. nil means the world frame.
func WithJoint1(j kinematics.Joint) Option {
	return func(o *Options) { o.Joint1 = j }
}

// WithJoint2 attaches frame 2 to j. Mandatory.
func WithJoint2(j kinematics.Joint) Option {
	return func(o *Options) { o.Joint2 = j }
}

// WithFrame1InJoint1 sets the placement F1 of frame 1 in joint 1.
func WithFrame1InJoint1(f se3.Transform) Option {
	return func(o *Options) { o.Frame1 = f }
}

// WithFrame2InJoint2 sets the placement F2 of frame 2 in joint 2.
func WithFrame2InJoint2(f se3.Transform) Option {
	return func(o *Options) { o.Frame2 = f }
}

// WithReference makes ref the target placement of joint 2 in joint 1:
// F1 = ref and F2 = identity.
func WithReference(ref se3.Transform) Option {
	return func(o *Options) {
		o.Frame1 = ref
		o.Frame2 = se3.IdentityTransform()
	}
}

// WithMask keeps only the rows whose mask entry is true. The mask is copied.
func WithMask(m Mask) Option {
	c := append(Mask(nil), m...)
	return func(o *Options) { o.Mask = c }
}

// WithNearPiThreshold overrides se3.DefaultNearPiThreshold.
// Panics unless 0 < eps < π.
func WithNearPiThreshold(eps float64) Option {
	if !(eps > 0 && eps < math.Pi) {
		panic("constraint: near-π threshold must be in (0, π)")
	}
	return func(o *Options) { o.NearPiThreshold = eps }
}
