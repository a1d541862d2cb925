// SPDX-License-Identifier: MIT

package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/lvlik/kinematics"
	"github.com/katalvlaran/lvlik/se3"
)

func sampleConfiguration(c *kinematics.Chain) []float64 {
	q := c.Neutral()
	c.Integrate(q, []float64{0.3, -0.4, 0.8, 1.1, 0.05, -0.6}, q)
	return q
}

func TestFastPathsAreBitIdentical(t *testing.T) {
	c := kinematics.SampleArm()
	q := sampleConfiguration(c)
	slide, _ := c.JointByName("slide")
	finger, _ := c.JointByName("finger")

	// identity F1 and zero translations turn every fast path on
	frames := map[string][]Option{
		"identity":    nil,
		"rotated F2":  {WithFrame2InJoint2(se3.Rotation(se3.RotY(0.7)))},
		"translated1": {WithFrame1InJoint1(se3.Translation(r3.Vec{X: 0.2}))},
	}
	kinds := []Kind{AbsolutePosition, AbsoluteOrientation, AbsoluteTransformation,
		RelativePosition, RelativeOrientation, RelativeTransformation}

	for name, extra := range frames {
		for _, kind := range kinds {
			opts := append([]Option{WithJoint1(finger), WithJoint2(slide)}, extra...)
			fast, err := New("fast", c, kind, opts...)
			require.NoError(t, err)
			slow, err := New("slow", c, kind, opts...)
			require.NoError(t, err)
			slow.DisableFastPaths()

			n := fast.OutputSize()
			fv, sv := make([]float64, n), make([]float64, n)
			fast.Value(q, fv)
			slow.Value(q, sv)
			assert.Equal(t, sv, fv, "%s/%s value", name, kind)

			fJ := mat.NewDense(n, c.NumberDof(), nil)
			sJ := mat.NewDense(n, c.NumberDof(), nil)
			fast.Jacobian(q, fJ)
			slow.Jacobian(q, sJ)
			assert.Equal(t, sJ.RawMatrix().Data, fJ.RawMatrix().Data, "%s/%s jacobian", name, kind)
		}
	}
}

func TestCacheSkipsRecomputation(t *testing.T) {
	c := kinematics.SampleArm()
	q := sampleConfiguration(c)
	slide, _ := c.JointByName("slide")
	g, err := New("g", c, AbsoluteTransformation, WithJoint2(slide))
	require.NoError(t, err)

	out := make([]float64, 6)
	J := mat.NewDense(6, c.NumberDof(), nil)
	g.Value(q, out)
	g.Value(append([]float64(nil), q...), out)
	g.Jacobian(q, J)
	assert.Equal(t, 1, g.Computations())
	assert.True(t, g.jacobianValid)

	before := c.Evaluations()
	g.Jacobian(q, J)
	assert.Equal(t, before, c.Evaluations(), "cached evaluation must not touch the device")

	q2 := append([]float64(nil), q...)
	q2[0] += 1e-9
	g.Value(q2, out)
	assert.Equal(t, 2, g.Computations())
	assert.False(t, g.jacobianValid)

	g.Invalidate()
	g.Value(q2, out)
	assert.Equal(t, 3, g.Computations())
}

func TestCacheRestoresDeviceOnceForJacobian(t *testing.T) {
	c := kinematics.SampleArm()
	q := sampleConfiguration(c)
	slide, _ := c.JointByName("slide")
	g, err := New("g", c, AbsolutePosition, WithJoint2(slide))
	require.NoError(t, err)

	out := make([]float64, 3)
	J := mat.NewDense(3, c.NumberDof(), nil)
	g.Value(q, out)
	c.SetConfiguration(c.Neutral())

	before := c.Evaluations()
	g.Value(q, out)
	assert.Equal(t, before, c.Evaluations())

	g.Jacobian(q, J)
	assert.Equal(t, before+1, c.Evaluations())
	g.Jacobian(q, J)
	assert.Equal(t, before+1, c.Evaluations())
	assert.Equal(t, 1, g.Computations())
}
