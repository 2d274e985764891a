package gait

import (
	"fmt"
	"math"

	"github.com/adammck/grfm/math3d"
)

// Direction keeps a moving average of the subject's heading, and derives the
// rotation from the ground frame into a frame whose X axis points along the
// average walking direction.
type Direction struct {
	headings *ring
}

func NewDirection(window int) (*Direction, error) {
	if window < 1 {
		return nil, fmt.Errorf("direction window must be at least one sample, got %d", window)
	}

	return &Direction{
		headings: newRing(window),
	}, nil
}

// Update appends the anterior axis of the pelvis (the X axis of its body
// frame, expressed in the ground) and returns the rotation for the updated
// average.
func (d *Direction) Update(pelvis math3d.Matrix33) math3d.Matrix33 {
	d.headings.push(pelvis.Column(0))
	return d.Rotation()
}

// Heading returns the average heading projected onto the ground plane. Before
// the window has filled, the average covers only the samples seen so far.
func (d *Direction) Heading() math3d.Vector3 {
	return d.headings.mean().ProjectOnPlane(math3d.ZeroVector3, math3d.UnitY)
}

// Rotation returns the rotation about the vertical axis which expresses
// ground-frame vectors in the gait frame.
func (d *Direction) Rotation() math3d.Matrix33 {
	g := d.Heading()

	// |g||x|sin(q) and |g||x|cos(q)
	cross := g.Cross(math3d.UnitX)
	dot := g.Dot(math3d.UnitX)
	q := math.Atan(cross.Magnitude() / dot)

	// A vertical (or empty) heading has no direction on the ground.
	if math.IsNaN(q) {
		q = 0
	}

	return math3d.MakeRotation(math3d.AxisY, q)
}

// Len returns the number of headings currently averaged.
func (d *Direction) Len() int {
	return d.headings.len()
}
