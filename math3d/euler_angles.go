package math3d

import (
	"fmt"
	"math"
)

// EulerAngles is a body-fixed X-Y-Z rotation sequence, in radians.
type EulerAngles struct {
	X float64
	Y float64
	Z float64
}

type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Matrix returns the rotation from the rotated (body) frame to the parent
// frame, Rx*Ry*Rz.
func (ea EulerAngles) Matrix() Matrix33 {
	return MultiplyMatrices(
		MultiplyMatrices(MakeRotation(AxisX, ea.X), MakeRotation(AxisY, ea.Y)),
		MakeRotation(AxisZ, ea.Z))
}

func (ea EulerAngles) String() string {
	return fmt.Sprintf("&Euler{x=%+.2f° y=%+.2f° z=%+.2f°}", Deg(ea.X), Deg(ea.Y), Deg(ea.Z))
}

func Deg(rads float64) float64 {
	return rads / (math.Pi / 180)
}
