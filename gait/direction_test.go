package gait

import (
	"math"
	"testing"

	"github.com/adammck/grfm/math3d"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDirectionRejectsEmptyWindow(t *testing.T) {
	_, err := NewDirection(0)
	assert.Error(t, err)
}

func TestDirectionAlignsHeading(t *testing.T) {
	type eg struct {
		yaw float64 // pelvis heading, radians about +Y
	}

	examples := []eg{
		{0},
		{-0.3},
		{-1.2},
	}

	for i, x := range examples {
		d, err := NewDirection(5)
		require.NoError(t, err)

		pelvis := math3d.MakeRotation(math3d.AxisY, x.yaw)
		var r math3d.Matrix33
		for n := 0; n < 3; n++ {
			r = d.Update(pelvis)
		}

		act := r.MulVec(pelvis.Column(0))
		assert.InDelta(t, 1, act.X, 1e-9, "example %d", i+1)
		assert.InDelta(t, 0, act.Y, 1e-9, "example %d", i+1)
		assert.InDelta(t, 0, act.Z, 1e-9, "example %d", i+1)
	}
}

// The yaw is recovered without its sign, so a heading towards -Z is rotated
// the wrong way: it ends up twice its yaw away from +X.
func TestDirectionFoldsNegativeZHeadings(t *testing.T) {
	type eg struct {
		yaw float64
	}

	for i, x := range []eg{{0.3}, {1.2}} {
		d, err := NewDirection(5)
		require.NoError(t, err)

		pelvis := math3d.MakeRotation(math3d.AxisY, x.yaw)
		act := d.Update(pelvis).MulVec(pelvis.Column(0))

		assert.InDelta(t, math.Cos(2*x.yaw), act.X, 1e-9, "example %d", i+1)
		assert.InDelta(t, 0, act.Y, 1e-9, "example %d", i+1)
		assert.InDelta(t, -math.Sin(2*x.yaw), act.Z, 1e-9, "example %d", i+1)
	}
}

func TestDirectionIgnoresPitch(t *testing.T) {
	d, err := NewDirection(3)
	require.NoError(t, err)

	// Leaning forward doesn't change the heading.
	r := d.Update(math3d.MakeRotation(math3d.AxisZ, 0.4))
	assert.Equal(t, math3d.IdentityMatrix33, r)
}

func TestDirectionWarmUpAndWindow(t *testing.T) {
	d, err := NewDirection(2)
	require.NoError(t, err)
	assert.Equal(t, 0, d.Len())

	d.Update(math3d.IdentityMatrix33)
	assert.Equal(t, 1, d.Len())
	assert.InDelta(t, 1, d.Heading().X, 1e-12)

	// Averaged over the two samples seen so far.
	d.Update(math3d.MakeRotation(math3d.AxisY, -1.5707963267948966))
	assert.Equal(t, 2, d.Len())
	assert.InDelta(t, 0.5, d.Heading().X, 1e-9)
	assert.InDelta(t, 0.5, d.Heading().Z, 1e-9)

	// The first sample falls out of the window.
	d.Update(math3d.MakeRotation(math3d.AxisY, -1.5707963267948966))
	assert.Equal(t, 2, d.Len())
	assert.InDelta(t, 0, d.Heading().X, 1e-9)
	assert.InDelta(t, 1, d.Heading().Z, 1e-9)
}
