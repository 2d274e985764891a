package math3d

import (
	"fmt"
	"math"
)

// Matrix33 is a 3x3 matrix, used for rotations and inertia tensors. Vectors are
// treated as columns, so MulVec computes M*v.
type Matrix33 struct {
	m11 float64
	m12 float64
	m13 float64
	m21 float64
	m22 float64
	m23 float64
	m31 float64
	m32 float64
	m33 float64
}

var (
	IdentityMatrix33 = Matrix33{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
)

// MakeDiagonal returns a matrix with the given vector on the diagonal. Handy
// for principal inertias.
func MakeDiagonal(v Vector3) Matrix33 {
	return Matrix33{
		v.X, 0, 0,
		0, v.Y, 0,
		0, 0, v.Z,
	}
}

// MakeInertia returns a symmetric inertia tensor from its moments and
// products.
func MakeInertia(xx, yy, zz, xy, xz, yz float64) Matrix33 {
	return Matrix33{
		xx, xy, xz,
		xy, yy, yz,
		xz, yz, zz,
	}
}

// MakeRotation returns the matrix for a right-handed rotation of angle radians
// about the given axis.
func MakeRotation(axis Axis, angle float64) Matrix33 {
	c := math.Cos(angle)
	s := math.Sin(angle)

	switch axis {
	case AxisX:
		return Matrix33{
			1, 0, 0,
			0, c, -s,
			0, s, c,
		}

	case AxisY:
		return Matrix33{
			c, 0, s,
			0, 1, 0,
			-s, 0, c,
		}

	case AxisZ:
		return Matrix33{
			c, -s, 0,
			s, c, 0,
			0, 0, 1,
		}

	default:
		panic("invalid axis")
	}
}

func (m Matrix33) String() string {
	return fmt.Sprintf(
		"&M33{%+.4f %+.4f %+.4f | %+.4f %+.4f %+.4f | %+.4f %+.4f %+.4f}",
		m.m11, m.m12, m.m13,
		m.m21, m.m22, m.m23,
		m.m31, m.m32, m.m33)
}

// Column returns the i'th column. For a rotation from a body frame to the
// ground, column 0 is the body's X axis expressed in the ground.
func (m Matrix33) Column(i int) Vector3 {
	switch i {
	case 0:
		return Vector3{m.m11, m.m21, m.m31}
	case 1:
		return Vector3{m.m12, m.m22, m.m32}
	case 2:
		return Vector3{m.m13, m.m23, m.m33}
	default:
		panic(fmt.Sprintf("invalid matrix column: %d", i))
	}
}

// MulVec returns M*v.
func (m Matrix33) MulVec(v Vector3) Vector3 {
	return Vector3{
		(m.m11 * v.X) + (m.m12 * v.Y) + (m.m13 * v.Z),
		(m.m21 * v.X) + (m.m22 * v.Y) + (m.m23 * v.Z),
		(m.m31 * v.X) + (m.m32 * v.Y) + (m.m33 * v.Z),
	}
}

// Transpose returns the transpose, which is also the inverse of a rotation.
func (m Matrix33) Transpose() Matrix33 {
	return Matrix33{
		m.m11, m.m21, m.m31,
		m.m12, m.m22, m.m32,
		m.m13, m.m23, m.m33,
	}
}

// MultiplyMatrices multiplies two 3x3 matrices together (a*b).
func MultiplyMatrices(a Matrix33, b Matrix33) Matrix33 {
	return Matrix33{
		(a.m11 * b.m11) + (a.m12 * b.m21) + (a.m13 * b.m31),
		(a.m11 * b.m12) + (a.m12 * b.m22) + (a.m13 * b.m32),
		(a.m11 * b.m13) + (a.m12 * b.m23) + (a.m13 * b.m33),
		(a.m21 * b.m11) + (a.m22 * b.m21) + (a.m23 * b.m31),
		(a.m21 * b.m12) + (a.m22 * b.m22) + (a.m23 * b.m32),
		(a.m21 * b.m13) + (a.m22 * b.m23) + (a.m23 * b.m33),
		(a.m31 * b.m11) + (a.m32 * b.m21) + (a.m33 * b.m31),
		(a.m31 * b.m12) + (a.m32 * b.m22) + (a.m33 * b.m32),
		(a.m31 * b.m13) + (a.m32 * b.m23) + (a.m33 * b.m33),
	}
}

// Similarity returns R*m*R^T, i.e. re-expresses a tensor given in a body
// frame in the frame that R rotates into.
func (m Matrix33) Similarity(r Matrix33) Matrix33 {
	return MultiplyMatrices(MultiplyMatrices(r, m), r.Transpose())
}
