// SPDX-License-Identifier: MIT

package kinematics_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/lvlik/kinematics"
	"github.com/katalvlaran/lvlik/se3"
)

func randomConfiguration(c *kinematics.Chain, rng *rand.Rand) []float64 {
	v := make([]float64, c.NumberDof())
	for i := range v {
		v[i] = rng.Float64()*2 - 1
	}
	q := c.Neutral()
	c.Integrate(q, v, q)
	return q
}

func TestNewChain_Validation(t *testing.T) {
	_, err := kinematics.NewChain(nil)
	require.ErrorIs(t, err, kinematics.ErrEmptyChain)

	_, err = kinematics.NewChain([]kinematics.JointSpec{
		{Name: "a", Parent: 0, Axis: r3.Vec{Z: 1}},
	})
	require.ErrorIs(t, err, kinematics.ErrBadParent)

	_, err = kinematics.NewChain([]kinematics.JointSpec{
		{Name: "a", Parent: -1},
	})
	require.ErrorIs(t, err, kinematics.ErrZeroAxis)

	_, err = kinematics.NewChain([]kinematics.JointSpec{
		{Name: "a", Parent: -1, Axis: r3.Vec{Z: 1}},
		{Name: "a", Parent: 0, Axis: r3.Vec{Z: 1}},
	})
	require.ErrorIs(t, err, kinematics.ErrDuplicateName)

	assert.Panics(t, func() { kinematics.WithExtraConfigSpace(-1) })
}

func TestChain_Sizes(t *testing.T) {
	c := kinematics.SampleArm(kinematics.WithExtraConfigSpace(2))
	// six joints, one of them continuous, plus two extra coordinates
	assert.Equal(t, 6+1+2, c.ConfigSize())
	assert.Equal(t, 6+2, c.NumberDof())
	assert.Equal(t, 2, c.ExtraConfigDimension())
	assert.Equal(t, 6, c.NumJoints())

	_, err := c.JointByName("nope")
	require.ErrorIs(t, err, kinematics.ErrUnknownJoint)
}

func TestChain_PlanarForwardKinematics(t *testing.T) {
	c, err := kinematics.NewChain([]kinematics.JointSpec{
		{Name: "j0", Kind: kinematics.Revolute, Parent: -1, Placement: se3.IdentityTransform(), Axis: r3.Vec{Z: 1}},
		{Name: "j1", Kind: kinematics.Revolute, Parent: 0, Placement: se3.Translation(r3.Vec{X: 1}), Axis: r3.Vec{Z: 1}},
	})
	require.NoError(t, err)

	c.SetConfiguration([]float64{math.Pi / 2, 0})
	p := c.Joint(1).Transform().T
	assert.InDelta(t, 0, p.X, 1e-12)
	assert.InDelta(t, 1, p.Y, 1e-12)

	// Turning j0 moves the j1 origin along -x in the world. The j1 frame is
	// rotated by π/2, so that velocity reads (0, 1, 0) in the joint frame.
	J := c.Joint(1).Jacobian()
	assert.InDelta(t, 0, J.At(0, 0), 1e-12)
	assert.InDelta(t, 1, J.At(1, 0), 1e-12)
	assert.InDelta(t, 1, J.At(5, 0), 1e-12)
	assert.InDelta(t, 1, J.At(5, 1), 1e-12)
	assert.InDelta(t, 0, J.At(0, 1), 1e-12)
}

func TestChain_SetConfigurationCaches(t *testing.T) {
	c := kinematics.SampleArm()
	q := c.Neutral()
	c.SetConfiguration(q)
	c.SetConfiguration(append([]float64(nil), q...))
	assert.Equal(t, 1, c.Evaluations())

	q[0] = 0.1
	c.SetConfiguration(q)
	assert.Equal(t, 2, c.Evaluations())
	assert.Equal(t, q, c.Configuration())

	assert.Panics(t, func() { c.SetConfiguration(q[:2]) })
}

func TestChain_IntegrateDifference(t *testing.T) {
	c := kinematics.SampleArm(kinematics.WithExtraConfigSpace(1))
	rng := rand.New(rand.NewSource(1))
	q0 := randomConfiguration(c, rng)

	v := []float64{0.1, -0.2, 0.3, 3.5, 0.05, -0.4, 0.7}
	q1 := make([]float64, c.ConfigSize())
	c.Integrate(q0, v, q1)

	// continuous joint stays on the unit circle
	assert.InDelta(t, 1, q1[3]*q1[3]+q1[4]*q1[4], 1e-12)

	back := make([]float64, c.NumberDof())
	c.Difference(q1, q0, back)
	for i := range v {
		want := v[i]
		if i == 3 {
			want = math.Remainder(v[i], 2*math.Pi)
		}
		assert.InDelta(t, want, back[i], 1e-12, "coordinate %d", i)
	}

	// aliasing out and q is allowed
	alias := append([]float64(nil), q0...)
	c.Integrate(alias, v, alias)
	assert.InDeltaSlice(t, q1, alias, 1e-15)
}

func TestChain_JacobianMatchesFiniteDifferences(t *testing.T) {
	c := kinematics.SampleArm(kinematics.WithExtraConfigSpace(1))
	rng := rand.New(rand.NewSource(11))
	const h = 1e-6

	for trial := 0; trial < 5; trial++ {
		q := randomConfiguration(c, rng)
		c.SetConfiguration(q)
		base := make([]se3.Transform, c.NumJoints())
		jac := make([][]float64, c.NumJoints())
		for k := 0; k < c.NumJoints(); k++ {
			base[k] = c.Joint(k).Transform()
			J := c.Joint(k).Jacobian()
			r, cc := J.Dims()
			jac[k] = make([]float64, 0, r*cc)
			for i := 0; i < r; i++ {
				for j := 0; j < cc; j++ {
					jac[k] = append(jac[k], J.At(i, j))
				}
			}
		}

		nv := c.NumberDof()
		for col := 0; col < nv; col++ {
			v := make([]float64, nv)
			qp := make([]float64, len(q))
			qm := make([]float64, len(q))
			v[col] = h
			c.Integrate(q, v, qp)
			v[col] = -h
			c.Integrate(q, v, qm)

			c.SetConfiguration(qp)
			plus := make([]se3.Transform, c.NumJoints())
			for k := range plus {
				plus[k] = c.Joint(k).Transform()
			}
			c.SetConfiguration(qm)
			for k := 0; k < c.NumJoints(); k++ {
				minus := c.Joint(k).Transform()
				rt := base[k].R.T()
				lin := rt.MulVec(r3.Scale(1/(2*h), r3.Sub(plus[k].T, minus.T)))
				w, _ := se3.Log(plus[k].R.Mul(minus.R.T()))
				ang := rt.MulVec(r3.Scale(1/(2*h), w))

				got := func(row int) float64 { return jac[k][row*nv+col] }
				require.InDelta(t, lin.X, got(0), 1e-6, "joint %d col %d", k, col)
				require.InDelta(t, lin.Y, got(1), 1e-6, "joint %d col %d", k, col)
				require.InDelta(t, lin.Z, got(2), 1e-6, "joint %d col %d", k, col)
				require.InDelta(t, ang.X, got(3), 1e-6, "joint %d col %d", k, col)
				require.InDelta(t, ang.Y, got(4), 1e-6, "joint %d col %d", k, col)
				require.InDelta(t, ang.Z, got(5), 1e-6, "joint %d col %d", k, col)
			}
		}
	}
}

func TestParseJointKind(t *testing.T) {
	for _, k := range []kinematics.JointKind{kinematics.Revolute, kinematics.Prismatic, kinematics.Continuous} {
		got, err := kinematics.ParseJointKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := kinematics.ParseJointKind("ball")
	require.ErrorIs(t, err, kinematics.ErrUnknownJointKind)
}
