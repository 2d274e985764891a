package grfm

import (
	"fmt"

	"github.com/adammck/grfm/math3d"
)

// LegReaction is the ground reaction on one foot. Force and Torque are in the
// gait frame; Point (the center of pressure) is in the ground.
type LegReaction struct {
	Force  math3d.Vector3
	Torque math3d.Vector3
	Point  math3d.Vector3
}

type Output struct {
	T     float64
	Right LegReaction
	Left  LegReaction

	// Violation is set when the detector broke its contract for this sample
	// (double support without a leading leg). Both legs are then zero.
	Violation error
}

func (o Output) String() string {
	return fmt.Sprintf("&Output{t=%.4f R{f=%s p=%s} L{f=%s p=%s}}", o.T, o.Right.Force, o.Right.Point, o.Left.Force, o.Left.Point)
}

// Columns returns the labels of Values, named like external loads files: for
// each leg, the force, then the point it acts at, then the torque.
func Columns() []string {
	var cols []string
	for _, prefix := range []string{"r_", "l_"} {
		for _, c := range []string{
			"ground_force_vx", "ground_force_vy", "ground_force_vz",
			"ground_force_px", "ground_force_py", "ground_force_pz",
			"ground_torque_x", "ground_torque_y", "ground_torque_z",
		} {
			cols = append(cols, prefix+c)
		}
	}

	return cols
}

// Values flattens the output (without the time) in the order of Columns.
func (o Output) Values() []float64 {
	vals := make([]float64, 0, 18)
	for _, leg := range []LegReaction{o.Right, o.Left} {
		for _, v := range []math3d.Vector3{leg.Force, leg.Point, leg.Torque} {
			a := v.Array()
			vals = append(vals, a[:]...)
		}
	}

	return vals
}

// MakeOutput is the inverse of Values.
func MakeOutput(t float64, vals []float64) (Output, error) {
	if len(vals) != 18 {
		return Output{}, fmt.Errorf("expected 18 values, got %d", len(vals))
	}

	v := func(i int) math3d.Vector3 {
		return math3d.Vector3{X: vals[i], Y: vals[i+1], Z: vals[i+2]}
	}

	return Output{
		T:     t,
		Right: LegReaction{Force: v(0), Point: v(3), Torque: v(6)},
		Left:  LegReaction{Force: v(9), Point: v(12), Torque: v(15)},
	}, nil
}
