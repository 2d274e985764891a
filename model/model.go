// Package model describes the rigid-body model the reaction estimator queries
// each sample. Implementations own their state and are updated in place; they
// are not safe for concurrent use.
package model

import (
	"errors"
	"fmt"

	"github.com/adammck/grfm/math3d"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrUnknownBody = errors.New("unknown body")
	ErrDimension   = errors.New("dimension mismatch")
)

// SpatialVec pairs an angular and a linear quantity (velocity, acceleration or
// force/moment), both expressed in the ground frame.
type SpatialVec struct {
	Angular math3d.Vector3
	Linear  math3d.Vector3
}

func (s SpatialVec) String() string {
	return fmt.Sprintf("&Spatial{ang=%s lin=%s}", s.Angular, s.Linear)
}

// Transform locates a body frame in the ground: p_ground = R*p_body + P.
type Transform struct {
	R math3d.Matrix33
	P math3d.Vector3
}

// Apply maps a point in the body frame into the ground.
func (t Transform) Apply(p math3d.Vector3) math3d.Vector3 {
	return t.R.MulVec(p).Add(t.P)
}

type Body struct {
	Name string
	Mass float64
}

type Model interface {

	// SetState copies the generalized coordinates, speeds and accelerations
	// into the model.
	SetState(q, qDot, qDDot mat.Vector) error

	// RealizeDynamics computes everything which depends on the state set by
	// SetState: transforms, inertias and applied forces.
	RealizeDynamics() error

	NumBodies() int
	Body(i int) Body
	BodyIndex(name string) (int, error)

	// Inertia returns the inertia of body i about its center of mass,
	// expressed in the ground.
	Inertia(i int) math3d.Matrix33

	// MultiplyBySystemJacobian maps a vector in the space of generalized
	// speeds to one spatial vector per body.
	MultiplyBySystemJacobian(u mat.Vector) []SpatialVec

	// BodyAccelerations returns the spatial acceleration of each body which
	// results from the generalized accelerations uDot.
	BodyAccelerations(uDot mat.Vector) []SpatialVec

	// MobilityForces and BodyForces return the applied generalized and
	// per-body forces at the dynamics stage.
	MobilityForces() *mat.VecDense
	BodyForces() []SpatialVec

	// ResidualForces solves inverse dynamics, ignoring constraints: the
	// generalized forces which, added to those applied, would produce uDot.
	ResidualForces(mobilityForces mat.Vector, bodyForces []SpatialVec, uDot mat.Vector) (*mat.VecDense, error)

	BodyTransform(i int) Transform
	StationLocation(i int, station math3d.Vector3) math3d.Vector3
	Gravity() math3d.Vector3
}
