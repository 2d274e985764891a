package grfm

import (
	"errors"
	"fmt"

	"github.com/adammck/grfm/gait"
	"github.com/adammck/grfm/math3d"
)

var ErrInvalidLeadingLeg = errors.New("invalid leading leg during double support")

// Transition is the share of the heel-strike reaction still carried by the
// trailing leg, t seconds after heel-strike, given the previous double-support
// duration tds. Results must be in [0,1].
type Transition func(t, tds float64) float64

// splitReaction divides a total reaction (force or moment, in the gait frame)
// between the legs. During double support the trailing leg keeps a decaying
// share of the reaction it carried at heel-strike, per axis, and the leading
// leg takes the remainder. weights are the transition values for each axis.
func splitReaction(phase gait.Phase, leading gait.Leg, total, atHeelStrike, weights math3d.Vector3) (right, left math3d.Vector3, err error) {
	switch phase {
	case gait.DoubleSupport:
		trailing := atHeelStrike.MultiplyElements(weights)
		lead := total.Subtract(trailing)

		switch leading {
		case gait.RightLeg:
			return lead, trailing, nil

		case gait.LeftLeg:
			return trailing, lead, nil

		default:
			return math3d.ZeroVector3, math3d.ZeroVector3, fmt.Errorf("%w: %v", ErrInvalidLeadingLeg, leading)
		}

	// The left foot is in the air, so the right carries everything.
	case gait.LeftSwing:
		return total, math3d.ZeroVector3, nil

	case gait.RightSwing:
		return math3d.ZeroVector3, total, nil

	// Invalid, or not yet known to the detector. Both legs are unloaded.
	default:
		return math3d.ZeroVector3, math3d.ZeroVector3, nil
	}
}

// weights evaluates the anterior, vertical and lateral transitions at t.
func (e *Engine) weights(t, tds float64) math3d.Vector3 {
	return math3d.Vector3{
		X: e.transitions[0](t, tds),
		Y: e.transitions[1](t, tds),
		Z: e.transitions[2](t, tds),
	}
}
