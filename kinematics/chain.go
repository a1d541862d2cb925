// SPDX-License-Identifier: MIT

package kinematics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/lvlik/se3"
)

// chainJoint is one joint of a Chain together with its cached state.
type chainJoint struct {
	spec      JointSpec
	iq, iv    int   // offsets in configuration and velocity vectors
	ancestors []int // joint indices from the root down to this joint
	world     se3.Transform
	jacobian  *mat.Dense // 6×nv, joint frame
}

func (j *chainJoint) Name() string             { return j.spec.Name }
func (j *chainJoint) Transform() se3.Transform { return j.world }
func (j *chainJoint) Jacobian() *mat.Dense     { return j.jacobian }

// Chain is a kinematic tree implementing Device and Integrator.
type Chain struct {
	joints      []*chainJoint
	byName      map[string]int
	nq, nv      int
	extra       int
	q           []float64 // current configuration
	valid       bool      // q has been applied at least once
	evaluations int       // number of forward-kinematics refreshes
}

var (
	_ Device     = (*Chain)(nil)
	_ Integrator = (*Chain)(nil)
)

// NewChain validates the joint specifications and builds the tree.
//
// Errors: ErrEmptyChain, ErrBadParent, ErrZeroAxis, ErrDuplicateName.
func NewChain(specs []JointSpec, opts ...Option) (*Chain, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if len(specs) == 0 {
		return nil, ErrEmptyChain
	}

	c := &Chain{
		joints: make([]*chainJoint, 0, len(specs)),
		byName: make(map[string]int, len(specs)),
		extra:  cfg.ExtraConfigDimension,
	}
	for i, s := range specs {
		if s.Parent < -1 || s.Parent >= i {
			return nil, fmt.Errorf("%w: joint %q has parent %d", ErrBadParent, s.Name, s.Parent)
		}
		n := r3.Norm(s.Axis)
		if n == 0 {
			return nil, fmt.Errorf("%w: joint %q", ErrZeroAxis, s.Name)
		}
		if _, dup := c.byName[s.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, s.Name)
		}
		s.Axis = r3.Scale(1/n, s.Axis)

		j := &chainJoint{spec: s, iq: c.nq, iv: c.nv}
		if s.Parent >= 0 {
			j.ancestors = append(j.ancestors, c.joints[s.Parent].ancestors...)
		}
		j.ancestors = append(j.ancestors, i)

		c.joints = append(c.joints, j)
		c.byName[s.Name] = i
		c.nq += s.Kind.configSize()
		c.nv++
	}
	c.nq += c.extra
	c.nv += c.extra

	for _, j := range c.joints {
		j.jacobian = mat.NewDense(6, c.nv, nil)
	}
	c.q = make([]float64, c.nq)
	return c, nil
}

// ConfigSize implements Device.
func (c *Chain) ConfigSize() int { return c.nq }

// NumberDof implements Device.
func (c *Chain) NumberDof() int { return c.nv }

// ExtraConfigDimension implements Device.
func (c *Chain) ExtraConfigDimension() int { return c.extra }

// NumJoints returns the number of joints.
func (c *Chain) NumJoints() int { return len(c.joints) }

// Joint returns joint i. Panics when i is out of range.
func (c *Chain) Joint(i int) Joint { return c.joints[i] }

// JointByName looks a joint up by name.
func (c *Chain) JointByName(name string) (Joint, error) {
	i, ok := c.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownJoint, name)
	}
	return c.joints[i], nil
}

// Evaluations returns how many times forward kinematics actually ran.
func (c *Chain) Evaluations() int { return c.evaluations }

// Neutral returns the configuration with every joint at zero motion.
func (c *Chain) Neutral() []float64 {
	q := make([]float64, c.nq)
	for _, j := range c.joints {
		if j.spec.Kind == Continuous {
			q[j.iq] = 1
		}
	}
	return q
}

// Configuration returns a copy of the current configuration.
func (c *Chain) Configuration() []float64 {
	return append([]float64(nil), c.q...)
}

// SetConfiguration implements Device. Panics when len(q) != ConfigSize().
func (c *Chain) SetConfiguration(q []float64) {
	if len(q) != c.nq {
		panic(fmt.Sprintf("kinematics: configuration has size %d, want %d", len(q), c.nq))
	}
	if c.valid && equal(c.q, q) {
		return
	}
	copy(c.q, q)
	c.valid = true
	c.evaluations++
	c.forwardKinematics()
	c.jacobians()
}

func (c *Chain) forwardKinematics() {
	for _, j := range c.joints {
		parent := se3.IdentityTransform()
		if j.spec.Parent >= 0 {
			parent = c.joints[j.spec.Parent].world
		}
		j.world = parent.Compose(j.spec.Placement).Compose(c.motion(j))
	}
}

// motion returns the placement produced by the joint's own coordinate.
func (c *Chain) motion(j *chainJoint) se3.Transform {
	switch j.spec.Kind {
	case Prismatic:
		return se3.Translation(r3.Scale(c.q[j.iq], j.spec.Axis))
	case Continuous:
		theta := math.Atan2(c.q[j.iq+1], c.q[j.iq])
		return se3.Rotation(se3.Exp(r3.Scale(theta, j.spec.Axis)))
	default:
		return se3.Rotation(se3.Exp(r3.Scale(c.q[j.iq], j.spec.Axis)))
	}
}

func (c *Chain) jacobians() {
	for _, j := range c.joints {
		j.jacobian.Zero()
		rt := j.world.R.T()
		for _, a := range j.ancestors {
			aj := c.joints[a]
			w := aj.world.R.MulVec(aj.spec.Axis)
			var lin, ang r3.Vec
			if aj.spec.Kind == Prismatic {
				lin = w
			} else {
				lin = r3.Cross(w, r3.Sub(j.world.T, aj.world.T))
				ang = w
			}
			lin, ang = rt.MulVec(lin), rt.MulVec(ang)
			col := aj.iv
			j.jacobian.Set(0, col, lin.X)
			j.jacobian.Set(1, col, lin.Y)
			j.jacobian.Set(2, col, lin.Z)
			j.jacobian.Set(3, col, ang.X)
			j.jacobian.Set(4, col, ang.Y)
			j.jacobian.Set(5, col, ang.Z)
		}
	}
}

// Integrate implements Integrator. out may alias q.
func (c *Chain) Integrate(q, v, out []float64) {
	for _, j := range c.joints {
		if j.spec.Kind == Continuous {
			theta := math.Atan2(q[j.iq+1], q[j.iq]) + v[j.iv]
			s, co := math.Sincos(theta)
			out[j.iq], out[j.iq+1] = co, s
			continue
		}
		out[j.iq] = q[j.iq] + v[j.iv]
	}
	iq, iv := c.nq-c.extra, c.nv-c.extra
	for k := 0; k < c.extra; k++ {
		out[iq+k] = q[iq+k] + v[iv+k]
	}
}

// Difference stores in out the velocity v such that q0 ⊕ v = q1.
func (c *Chain) Difference(q1, q0, out []float64) {
	for _, j := range c.joints {
		if j.spec.Kind == Continuous {
			d := math.Atan2(q1[j.iq+1], q1[j.iq]) - math.Atan2(q0[j.iq+1], q0[j.iq])
			out[j.iv] = math.Remainder(d, 2*math.Pi)
			continue
		}
		out[j.iv] = q1[j.iq] - q0[j.iq]
	}
	iq, iv := c.nq-c.extra, c.nv-c.extra
	for k := 0; k < c.extra; k++ {
		out[iv+k] = q1[iq+k] - q0[iq+k]
	}
}

func equal(a, b []float64) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
