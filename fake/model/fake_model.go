// Package model provides a scriptable model.Model for tests. Generalized
// vectors are read in blocks of six per body (angular, then linear), so the
// system Jacobian is the identity.
package model

import (
	"fmt"

	"github.com/adammck/grfm/math3d"
	"github.com/adammck/grfm/model"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

var logger = logrus.WithFields(logrus.Fields{
	"pkg": "fake/model",
})

type FakeModel struct {
	Bodies     []model.Body
	Transforms []model.Transform
	Inertias   []math3d.Matrix33
	G          math3d.Vector3

	// Returned by ResidualForces, if set. Otherwise the residual is uDot.
	Residual *mat.VecDense

	// Returned by SetState, if set.
	SetStateErr error

	// Number of SetState calls.
	Updates int
}

var _ model.Model = (*FakeModel)(nil)

// New returns a fake with a body per name, each of the given mass, at the
// origin with identity orientation and no inertia.
func New(mass float64, names ...string) *FakeModel {
	m := &FakeModel{}
	for _, n := range names {
		m.Bodies = append(m.Bodies, model.Body{Name: n, Mass: mass})
		m.Transforms = append(m.Transforms, model.Transform{R: math3d.IdentityMatrix33})
		m.Inertias = append(m.Inertias, math3d.Matrix33{})
	}

	return m
}

func (m *FakeModel) SetState(q, qDot, qDDot mat.Vector) error {
	logger.Debugf("set state: %d coordinates", q.Len())
	m.Updates += 1
	return m.SetStateErr
}

func (m *FakeModel) RealizeDynamics() error {
	return nil
}

func (m *FakeModel) NumBodies() int {
	return len(m.Bodies)
}

func (m *FakeModel) Body(i int) model.Body {
	return m.Bodies[i]
}

func (m *FakeModel) BodyIndex(name string) (int, error) {
	for i, b := range m.Bodies {
		if b.Name == name {
			return i, nil
		}
	}

	return 0, fmt.Errorf("%q: %w", name, model.ErrUnknownBody)
}

func (m *FakeModel) Inertia(i int) math3d.Matrix33 {
	return m.Inertias[i]
}

func (m *FakeModel) MultiplyBySystemJacobian(u mat.Vector) []model.SpatialVec {
	out := make([]model.SpatialVec, len(m.Bodies))
	for i := range out {
		o := i * 6
		out[i] = model.SpatialVec{
			Angular: math3d.Vector3{X: u.AtVec(o), Y: u.AtVec(o + 1), Z: u.AtVec(o + 2)},
			Linear:  math3d.Vector3{X: u.AtVec(o + 3), Y: u.AtVec(o + 4), Z: u.AtVec(o + 5)},
		}
	}

	return out
}

func (m *FakeModel) BodyAccelerations(uDot mat.Vector) []model.SpatialVec {
	return m.MultiplyBySystemJacobian(uDot)
}

func (m *FakeModel) MobilityForces() *mat.VecDense {
	return mat.NewVecDense(len(m.Bodies)*6, nil)
}

func (m *FakeModel) BodyForces() []model.SpatialVec {
	return make([]model.SpatialVec, len(m.Bodies))
}

func (m *FakeModel) ResidualForces(mobilityForces mat.Vector, bodyForces []model.SpatialVec, uDot mat.Vector) (*mat.VecDense, error) {
	if m.Residual != nil {
		return m.Residual, nil
	}

	return mat.VecDenseCopyOf(uDot), nil
}

func (m *FakeModel) BodyTransform(i int) model.Transform {
	return m.Transforms[i]
}

func (m *FakeModel) StationLocation(i int, station math3d.Vector3) math3d.Vector3 {
	return m.Transforms[i].Apply(station)
}

func (m *FakeModel) Gravity() math3d.Vector3 {
	return m.G
}
