package grfm

import (
	"math"

	"github.com/adammck/grfm/gait"
	"github.com/adammck/grfm/math3d"
)

// State is everything the engine remembers between samples. It belongs to the
// caller, who passes it to every Solve of one stream in time order. Streams
// must not share a State.
type State struct {
	direction *gait.Direction

	// Total reaction (in the gait frame) at the most recent heel-strike, and
	// the time of that heel-strike. heelStrike is NaN until the first latch.
	forceAtHeelStrike  math3d.Vector3
	momentAtHeelStrike math3d.Vector3
	heelStrike         float64

	// Most recently completed double- and single-support durations.
	tds float64
	tss float64
}

// NewState returns an empty state averaging the heading over window samples.
func NewState(window int) (*State, error) {
	d, err := gait.NewDirection(window)
	if err != nil {
		return nil, err
	}

	return &State{
		direction:  d,
		heelStrike: math.NaN(),
	}, nil
}

// latch records the reaction as the heel-strike anchor if heelStrike is a new
// event. It returns true if the anchor changed.
func (s *State) latch(heelStrike float64, force, moment math3d.Vector3) bool {
	if math.IsNaN(heelStrike) || heelStrike == s.heelStrike {
		return false
	}

	s.heelStrike = heelStrike
	s.forceAtHeelStrike = force
	s.momentAtHeelStrike = moment
	return true
}

// Anchor returns the force and moment latched at the last heel-strike.
func (s *State) Anchor() (force, moment math3d.Vector3) {
	return s.forceAtHeelStrike, s.momentAtHeelStrike
}

// HeelStrike returns the time of the heel-strike the anchor was latched at.
func (s *State) HeelStrike() float64 {
	return s.heelStrike
}

func (s *State) DoubleSupportDuration() float64 {
	return s.tds
}

func (s *State) SingleSupportDuration() float64 {
	return s.tss
}

// Heading returns the current average walking direction on the ground plane.
func (s *State) Heading() math3d.Vector3 {
	return s.direction.Heading()
}
