package grfm

import (
	"fmt"

	"github.com/adammck/grfm/gait"
	"github.com/adammck/grfm/math3d"
)

// foot locates the heel and toe reference points of one foot.
type foot struct {
	body int
	heel math3d.Vector3
	toe  math3d.Vector3
}

func (e *Engine) heel(f foot) math3d.Vector3 {
	return e.model.StationLocation(f.body, f.heel)
}

func (e *Engine) toe(f foot) math3d.Vector3 {
	return e.model.StationLocation(f.body, f.toe)
}

// rollover returns the center of pressure of a stance foot, t seconds after
// the other foot left the ground. It moves along the straight line from heel
// to toe.
func (e *Engine) rollover(f foot, t, tss float64) math3d.Vector3 {
	heel := e.heel(f)
	d := e.toe(f).Subtract(heel)
	return heel.Add(d.MultiplyByScalar(gait.CoPProgress(t, tss)))
}

// reactionPoints returns the center of pressure of each foot, in the ground.
// sinceToeOff is the time since the last toe-off. The point of a foot in the
// air is the zero vector.
func (e *Engine) reactionPoints(phase gait.Phase, leading gait.Leg, sinceToeOff, tss float64) (right, left math3d.Vector3, err error) {
	switch phase {
	case gait.DoubleSupport:
		switch leading {
		case gait.RightLeg:
			return e.toe(e.right), e.heel(e.left), nil

		case gait.LeftLeg:
			return e.heel(e.right), e.toe(e.left), nil

		default:
			return math3d.ZeroVector3, math3d.ZeroVector3, fmt.Errorf("%w: %v", ErrInvalidLeadingLeg, leading)
		}

	case gait.LeftSwing:
		return e.rollover(e.right, sinceToeOff, tss), math3d.ZeroVector3, nil

	case gait.RightSwing:
		return math3d.ZeroVector3, e.rollover(e.left, sinceToeOff, tss), nil

	// Invalid, or not yet known to the detector.
	default:
		return math3d.ZeroVector3, math3d.ZeroVector3, nil
	}
}
