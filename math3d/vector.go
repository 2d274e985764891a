package math3d

import (
	"fmt"
	"math"
)

type Vector3 struct {
	X float64
	Y float64
	Z float64
}

var (
	ZeroVector3 = Vector3{}

	// The canonical axes. Y is up, and X points forwards along the walking
	// direction once reactions have been rotated into the gait frame.
	UnitX = Vector3{1, 0, 0}
	UnitY = Vector3{0, 1, 0}
	UnitZ = Vector3{0, 0, 1}
)

func (v Vector3) String() string {
	return fmt.Sprintf("&Vec3{x=%0.4f y=%0.4f z=%0.4f}", v.X, v.Y, v.Z)
}

// Component returns the i'th element (0=X, 1=Y, 2=Z).
func (v Vector3) Component(i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	default:
		panic(fmt.Sprintf("invalid vector component: %d", i))
	}
}

// Array returns the vector as a fixed-size array, in XYZ order.
func (v Vector3) Array() [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// Add adds two vectors, and returns the result.
func (v Vector3) Add(vv Vector3) Vector3 {
	return Vector3{
		(v.X + vv.X),
		(v.Y + vv.Y),
		(v.Z + vv.Z),
	}
}

// Subtract returns this vector minus the other.
func (v Vector3) Subtract(vv Vector3) Vector3 {
	return Vector3{
		(v.X - vv.X),
		(v.Y - vv.Y),
		(v.Z - vv.Z),
	}
}

// MultiplyByScalar returns a new vector with each element multiplied by s.
func (v Vector3) MultiplyByScalar(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// MultiplyElements returns the element-wise product of two vectors.
func (v Vector3) MultiplyElements(vv Vector3) Vector3 {
	return Vector3{v.X * vv.X, v.Y * vv.Y, v.Z * vv.Z}
}

func (v Vector3) Dot(vv Vector3) float64 {
	return (v.X * vv.X) + (v.Y * vv.Y) + (v.Z * vv.Z)
}

func (v Vector3) Cross(vv Vector3) Vector3 {
	return Vector3{
		(v.Y * vv.Z) - (v.Z * vv.Y),
		(v.Z * vv.X) - (v.X * vv.Z),
		(v.X * vv.Y) - (v.Y * vv.X),
	}
}

// Magnitude returns the length of the vector.
func (v Vector3) Magnitude() float64 {
	return math.Sqrt(v.Dot(v))
}

// Unit returns a vector of length one pointing in the same direction, or the
// zero vector if this vector has no length.
func (v Vector3) Unit() Vector3 {
	m := v.Magnitude()
	if m == 0 {
		return ZeroVector3
	}

	return v.MultiplyByScalar(1 / m)
}

// Distance calculates and returns the distance between this vector and another,
// as a float64.
func (v Vector3) Distance(vv Vector3) float64 {
	return v.Subtract(vv).Magnitude()
}

// ProjectOnPlane returns the projection of this vector onto the plane through
// point which is perpendicular to normal.
func (v Vector3) ProjectOnPlane(point Vector3, normal Vector3) Vector3 {
	n := normal.Unit()
	return v.Subtract(n.MultiplyByScalar(v.Subtract(point).Dot(n)))
}
