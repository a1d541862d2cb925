// SPDX-License-Identifier: MIT

package constraint

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/lvlik/kinematics"
	"github.com/katalvlaran/lvlik/se3"
)

// GenericTransformation is the position and/or orientation error of frame 2
// in frame 1. See the package documentation for the formulas.
type GenericTransformation struct {
	name   string
	device kinematics.Device
	kind   Kind
	joint1 kinematics.Joint // nil: world frame
	joint2 kinematics.Joint
	frame1 se3.Transform
	frame2 se3.Transform
	mask   Mask
	nearPi float64

	nq, nv     int
	cols       int // Jacobian columns moved by joints: nv - extra dimension
	outputSize int

	r1IsIdentity bool
	t1IsZero     bool
	t2IsZero     bool

	dirty         bool
	last          []float64
	value         [6]float64 // unmasked, position rows first
	logR          r3.Vec
	theta         float64
	full          *mat.Dense // unmasked Jacobian, ValueSize × cols
	jacobianValid bool
	computations  int

	tmp, aux *mat.Dense // 3 × cols scratch
}

var _ Function = (*GenericTransformation)(nil)

// New builds a generic transformation constraint on device.
//
// Errors: ErrNilDevice, ErrInvalidKind, ErrNilJoint2, ErrMaskSize.
func New(name string, device kinematics.Device, kind Kind, opts ...Option) (*GenericTransformation, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if device == nil {
		return nil, ErrNilDevice
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKind, uint8(kind))
	}
	if cfg.Joint2 == nil {
		return nil, fmt.Errorf("%w: %q", ErrNilJoint2, name)
	}
	mask := cfg.Mask
	if mask == nil {
		mask = FullMask(kind.ValueSize())
	}
	if len(mask) != kind.ValueSize() {
		return nil, fmt.Errorf("%w: %q has %d entries, want %d", ErrMaskSize, name, len(mask), kind.ValueSize())
	}

	g := &GenericTransformation{
		name:       name,
		device:     device,
		kind:       kind,
		joint2:     cfg.Joint2,
		frame1:     cfg.Frame1,
		frame2:     cfg.Frame2,
		mask:       mask,
		nearPi:     cfg.NearPiThreshold,
		nq:         device.ConfigSize(),
		nv:         device.NumberDof(),
		outputSize: mask.Count(),
		dirty:      true,
	}
	if kind.IsRelative() {
		g.joint1 = cfg.Joint1
	}
	g.cols = g.nv - device.ExtraConfigDimension()
	g.last = make([]float64, g.nq)
	if g.cols > 0 {
		g.full = mat.NewDense(kind.ValueSize(), g.cols, nil)
		g.tmp = mat.NewDense(3, g.cols, nil)
		g.aux = mat.NewDense(3, g.cols, nil)
	}
	g.r1IsIdentity = g.frame1.R.IsIdentity()
	g.t1IsZero = g.frame1.T == r3.Vec{}
	g.t2IsZero = g.frame2.T == r3.Vec{}
	return g, nil
}

// Name implements Function.
func (g *GenericTransformation) Name() string { return g.name }

// InputSize implements Function.
func (g *GenericTransformation) InputSize() int { return g.nq }

// InputDerivativeSize implements Function.
func (g *GenericTransformation) InputDerivativeSize() int { return g.nv }

// OutputSize implements Function.
func (g *GenericTransformation) OutputSize() int { return g.outputSize }

// Kind returns the variant the constraint was built with.
func (g *GenericTransformation) Kind() Kind { return g.kind }

// Mask returns a copy of the row mask.
func (g *GenericTransformation) Mask() Mask { return append(Mask(nil), g.mask...) }

// Joint1 returns the joint of frame 1, nil for the world.
func (g *GenericTransformation) Joint1() kinematics.Joint { return g.joint1 }

// Joint2 returns the joint of frame 2.
func (g *GenericTransformation) Joint2() kinematics.Joint { return g.joint2 }

// Frame1InJoint1 returns F1.
func (g *GenericTransformation) Frame1InJoint1() se3.Transform { return g.frame1 }

// Frame2InJoint2 returns F2.
func (g *GenericTransformation) Frame2InJoint2() se3.Transform { return g.frame2 }

// Invalidate drops the cache; the next evaluation refreshes the device.
func (g *GenericTransformation) Invalidate() { g.dirty = true }

// Value implements Function.
func (g *GenericTransformation) Value(q, out []float64) {
	if len(out) != g.outputSize {
		panic(fmt.Sprintf("constraint: %s: value buffer has size %d, want %d", g.name, len(out), g.outputSize))
	}
	g.computeError(q)
	k := 0
	for i, keep := range g.mask {
		if keep {
			out[k] = g.value[i]
			k++
		}
	}
}

// Jacobian implements Function.
func (g *GenericTransformation) Jacobian(q []float64, J *mat.Dense) {
	g.computeError(q)
	if g.outputSize == 0 {
		return
	}
	if r, c := J.Dims(); r != g.outputSize || c != g.nv {
		panic(fmt.Sprintf("constraint: %s: jacobian is %d×%d, want %d×%d", g.name, r, c, g.outputSize, g.nv))
	}
	if !g.jacobianValid {
		// another function may have moved the device since computeError
		g.device.SetConfiguration(g.last)
		g.fullJacobian()
		g.jacobianValid = true
	}

	k := 0
	for i, keep := range g.mask {
		if !keep {
			continue
		}
		for j := 0; j < g.cols; j++ {
			J.Set(k, j, g.full.At(i, j))
		}
		for j := g.cols; j < g.nv; j++ {
			J.Set(k, j, 0)
		}
		k++
	}
}

func (g *GenericTransformation) computeError(q []float64) {
	if len(q) != g.nq {
		panic(fmt.Sprintf("constraint: %s: configuration has size %d, want %d", g.name, len(q), g.nq))
	}
	if !g.dirty && floats.Equal(g.last, q) {
		return
	}
	g.device.SetConfiguration(q)
	if g.kind.HasOrientation() {
		g.transformError()
	} else {
		g.positionError()
	}
	copy(g.last, q)
	g.dirty = false
	g.jacobianValid = false
	g.computations++
}

// positionError computes R(F1)ᵀ (J1⁻¹ J2 t(F2) - t(F1)) without building M.
func (g *GenericTransformation) positionError() {
	p := g.joint2.Transform().Act(g.frame2.T)
	if g.joint1 != nil {
		p = g.joint1.Transform().ActInv(p)
	}
	if !g.t1IsZero {
		p = r3.Sub(p, g.frame1.T)
	}
	if !g.r1IsIdentity {
		p = g.frame1.R.T().MulVec(p)
	}
	g.value[0], g.value[1], g.value[2] = p.X, p.Y, p.Z
}

func (g *GenericTransformation) transformError() {
	m := g.joint2.Transform().Compose(g.frame2)
	if g.joint1 != nil {
		m = g.joint1.Transform().ActInvTransform(m)
	}
	m = g.frame1.ActInvTransform(m)

	off := 0
	if g.kind.HasPosition() {
		g.value[0], g.value[1], g.value[2] = m.T.X, m.T.Y, m.T.Z
		off = 3
	}
	g.logR, g.theta = se3.LogWithThreshold(m.R, g.nearPi)
	g.value[off], g.value[off+1], g.value[off+2] = g.logR.X, g.logR.Y, g.logR.Z
}

func (g *GenericTransformation) fullJacobian() {
	if g.cols == 0 {
		return
	}
	t2 := g.joint2.Transform()
	jv2, jw2 := g.blocks(g.joint2)
	var c2 r3.Vec
	if !g.t2IsZero {
		c2 = t2.R.MulVec(g.frame2.T)
	}
	var t1 se3.Transform
	var jv1, jw1 mat.Matrix
	if g.joint1 != nil {
		t1 = g.joint1.Transform()
		jv1, jw1 = g.blocks(g.joint1)
	}
	r1t := g.frame1.R.T()

	row := 0
	if g.kind.HasPosition() {
		if g.joint1 == nil {
			t2.R.MulInto(g.tmp, jv2)
			if !g.t2IsZero {
				g.addMul(g.tmp, t2.R.ColCross(c2), jw2)
			}
		} else {
			lever := r3.Sub(r3.Add(c2, t2.T), t1.T)
			t1.R.ColCross(lever).MulInto(g.tmp, jw1)
			g.tmp.Scale(-1, g.tmp)
			g.addMul(g.tmp, t2.R, jv2)
			g.subMul(g.tmp, t1.R, jv1)
			if !g.t2IsZero {
				g.addMul(g.tmp, t2.R.ColCross(c2), jw2)
			}
			t1.R.T().MulInto(g.aux, g.tmp)
			g.tmp, g.aux = g.aux, g.tmp
		}
		dst := g.rows(0)
		if g.r1IsIdentity {
			dst.Copy(g.tmp)
		} else {
			r1t.MulInto(dst, g.tmp)
		}
		row = 3
	}

	if g.kind.HasOrientation() {
		jlog := se3.Jlog(g.theta, g.logR)
		if !g.r1IsIdentity {
			jlog = jlog.Mul(r1t)
		}
		dst := g.rows(row)
		if g.joint1 == nil {
			jlog.Mul(t2.R).MulInto(dst, jw2)
		} else {
			t2.R.MulInto(g.tmp, jw2)
			g.subMul(g.tmp, t1.R, jw1)
			jlog.Mul(t1.R.T()).MulInto(dst, g.tmp)
		}
	}
}

// blocks returns the linear and angular rows of a joint Jacobian, restricted
// to the columns moved by joints.
func (g *GenericTransformation) blocks(j kinematics.Joint) (lin, ang mat.Matrix) {
	J := j.Jacobian()
	return J.Slice(0, 3, 0, g.cols), J.Slice(3, 6, 0, g.cols)
}

// rows returns a 3-row view of the full Jacobian starting at row i.
func (g *GenericTransformation) rows(i int) *mat.Dense {
	return g.full.Slice(i, i+3, 0, g.cols).(*mat.Dense)
}

// addMul sets dst += m·src. dst must not be g.aux.
func (g *GenericTransformation) addMul(dst *mat.Dense, m se3.Mat3, src mat.Matrix) {
	m.MulInto(g.aux, src)
	dst.Add(dst, g.aux)
}

// subMul sets dst -= m·src. dst must not be g.aux.
func (g *GenericTransformation) subMul(dst *mat.Dense, m se3.Mat3, src mat.Matrix) {
	m.MulInto(g.aux, src)
	dst.Sub(dst, g.aux)
}
