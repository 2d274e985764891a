package gait

import (
	"math"

	"github.com/adammck/grfm/math3d"
)

// ReactionTransition returns the share of the heel-strike reaction which is
// still carried by the trailing leg, t seconds into a double-support period
// expected to last tds seconds. It is 1 at heel-strike and decays smoothly
// towards 0 (Ren et al., doi:10.1016/j.jbiomech.2008.06.001).
//
// Without a previous double-support period to scale by, the transition is a
// step: everything stays on the trailing leg at heel-strike and moves to the
// leading leg immediately after.
func ReactionTransition(t, tds float64) float64 {
	if tds <= 0 {
		if t <= 0 {
			return 1
		}
		return 0
	}

	return unit(math.Exp(-math.Pow(2*t/tds, 3)))
}

// CoPProgress returns how far (from 0 at the heel to 1 at the toe) the center
// of pressure of the stance foot has rolled, t seconds after the opposite
// foot's toe-off, for a single-support period expected to last tss seconds.
// See doi:10.1016/j.jbiomech.2013.09.012.
//
// The curve is not monotonic past tss, so it is only bounded, not ordered.
func CoPProgress(t, tss float64) float64 {
	if tss <= 0 {
		return 0
	}

	w := 2 * math.Pi / tss
	wt := w * t
	return unit(-2 / (3 * math.Pi) * (math.Sin(wt) - math.Sin(2*wt)/8 - 0.75*wt))
}

// unit clips x into [0,1]. Noisy durations can push the curves out of range,
// or (with non-finite inputs) to NaN, which is treated as no progress.
func unit(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}

	return math3d.Clip(x, 0, 1)
}
