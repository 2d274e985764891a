// Package segments implements model.Model for a set of free rigid segments.
//
// Every segment has six generalized coordinates: body-fixed X-Y-Z Euler angles,
// followed by the position of its center of mass in the ground. The matching
// generalized speeds (and accelerations) are the angular and linear velocity
// (and acceleration) of the center of mass, expressed in the ground, so the
// system Jacobian is the identity, one 6x6 block per segment.
//
// The motion of every segment is prescribed by the measured kinematics, so the
// root segment (usually the pelvis) is the only one whose mobilizer has to
// carry the residual of the whole set. Its residual is therefore the sum over
// all segments, with moments taken about the root's center of mass.
package segments

import (
	"fmt"

	"github.com/adammck/grfm/math3d"
	"github.com/adammck/grfm/model"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

const (
	DofsPerSegment = 6
)

var (
	StandardGravity = math3d.Vector3{X: 0, Y: -9.80665, Z: 0}
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "segments",
})

type Segment struct {
	Name string
	Mass float64

	// Inertia about the center of mass, in the segment's own frame.
	Inertia math3d.Matrix33
}

type Model struct {
	segments []Segment
	index    map[string]int
	root     int
	gravity  math3d.Vector3

	q     *mat.VecDense
	qDot  *mat.VecDense
	qDDot *mat.VecDense

	// Computed by RealizeDynamics.
	realized   bool
	transforms []model.Transform
	inertias   []math3d.Matrix33
}

var _ model.Model = (*Model)(nil)

// New returns a model of the given segments. The root segment is the one whose
// mobilizer carries the residual of the whole model.
func New(segments []Segment, root string, gravity math3d.Vector3) (*Model, error) {
	if len(segments) == 0 {
		return nil, fmt.Errorf("model has no segments")
	}

	index := make(map[string]int, len(segments))
	for i, s := range segments {
		if _, ok := index[s.Name]; ok {
			return nil, fmt.Errorf("duplicate segment name: %q", s.Name)
		}
		if s.Mass <= 0 {
			return nil, fmt.Errorf("segment %q has non-positive mass: %v", s.Name, s.Mass)
		}
		index[s.Name] = i
	}

	r, ok := index[root]
	if !ok {
		return nil, fmt.Errorf("root segment %q: %w", root, model.ErrUnknownBody)
	}

	log.Debugf("created model with %d segments, root=%s", len(segments), root)

	return &Model{
		segments:   segments,
		index:      index,
		root:       r,
		gravity:    gravity,
		transforms: make([]model.Transform, len(segments)),
		inertias:   make([]math3d.Matrix33, len(segments)),
	}, nil
}

// NumCoordinates returns the length of q, qDot and qDDot.
func (m *Model) NumCoordinates() int {
	return len(m.segments) * DofsPerSegment
}

func (m *Model) SetState(q, qDot, qDDot mat.Vector) error {
	n := m.NumCoordinates()
	for _, v := range []mat.Vector{q, qDot, qDDot} {
		if v == nil || v.Len() != n {
			return fmt.Errorf("expected %d coordinates: %w", n, model.ErrDimension)
		}
	}

	m.q = mat.VecDenseCopyOf(q)
	m.qDot = mat.VecDenseCopyOf(qDot)
	m.qDDot = mat.VecDenseCopyOf(qDDot)
	m.realized = false
	return nil
}

func (m *Model) RealizeDynamics() error {
	if m.q == nil {
		return fmt.Errorf("realize before state was set")
	}

	for i, s := range m.segments {
		o := i * DofsPerSegment
		ea := math3d.EulerAngles{
			X: m.q.AtVec(o + 0),
			Y: m.q.AtVec(o + 1),
			Z: m.q.AtVec(o + 2),
		}

		r := ea.Matrix()
		m.transforms[i] = model.Transform{
			R: r,
			P: math3d.Vector3{X: m.q.AtVec(o + 3), Y: m.q.AtVec(o + 4), Z: m.q.AtVec(o + 5)},
		}
		m.inertias[i] = s.Inertia.Similarity(r)
	}

	m.realized = true
	return nil
}

func (m *Model) NumBodies() int {
	return len(m.segments)
}

func (m *Model) Body(i int) model.Body {
	s := m.segments[i]
	return model.Body{Name: s.Name, Mass: s.Mass}
}

func (m *Model) BodyIndex(name string) (int, error) {
	i, ok := m.index[name]
	if !ok {
		return 0, fmt.Errorf("%q: %w", name, model.ErrUnknownBody)
	}

	return i, nil
}

func (m *Model) Inertia(i int) math3d.Matrix33 {
	return m.inertias[i]
}

func (m *Model) MultiplyBySystemJacobian(u mat.Vector) []model.SpatialVec {
	out := make([]model.SpatialVec, len(m.segments))
	for i := range out {
		out[i] = spatialAt(u, i)
	}

	return out
}

// BodyAccelerations is the same mapping as the Jacobian, since the speeds are
// already ground-frame spatial velocities and the Jacobian is constant.
func (m *Model) BodyAccelerations(uDot mat.Vector) []model.SpatialVec {
	return m.MultiplyBySystemJacobian(uDot)
}

// MobilityForces is always zero; the model has no actuators.
func (m *Model) MobilityForces() *mat.VecDense {
	return mat.NewVecDense(m.NumCoordinates(), nil)
}

// BodyForces returns the weight of each segment, applied at its center of
// mass.
func (m *Model) BodyForces() []model.SpatialVec {
	out := make([]model.SpatialVec, len(m.segments))
	for i, s := range m.segments {
		out[i] = model.SpatialVec{Linear: m.gravity.MultiplyByScalar(s.Mass)}
	}

	return out
}

func (m *Model) ResidualForces(mobilityForces mat.Vector, bodyForces []model.SpatialVec, uDot mat.Vector) (*mat.VecDense, error) {
	if !m.realized {
		return nil, fmt.Errorf("residual requested before dynamics were realized")
	}

	n := m.NumCoordinates()
	if mobilityForces.Len() != n || uDot.Len() != n || len(bodyForces) != len(m.segments) {
		return nil, fmt.Errorf("residual inputs: %w", model.ErrDimension)
	}

	residuals := make([]model.SpatialVec, len(m.segments))
	for i, s := range m.segments {
		w := spatialAt(m.qDot, i).Angular
		acc := spatialAt(uDot, i)
		f := spatialAt(mobilityForces, i)
		inertia := m.inertias[i]

		residuals[i] = model.SpatialVec{
			Angular: inertia.MulVec(acc.Angular).
				Add(w.Cross(inertia.MulVec(w))).
				Subtract(bodyForces[i].Angular).
				Subtract(f.Angular),
			Linear: acc.Linear.MultiplyByScalar(s.Mass).
				Subtract(bodyForces[i].Linear).
				Subtract(f.Linear),
		}
	}

	// Everything hangs off the root, so it carries the total.
	origin := m.transforms[m.root].P
	total := model.SpatialVec{}
	for i, r := range residuals {
		arm := m.transforms[i].P.Subtract(origin)
		total.Angular = total.Angular.Add(r.Angular).Add(arm.Cross(r.Linear))
		total.Linear = total.Linear.Add(r.Linear)
	}
	residuals[m.root] = total

	tau := mat.NewVecDense(n, nil)
	for i, r := range residuals {
		setSpatial(tau, i, r)
	}

	return tau, nil
}

func (m *Model) BodyTransform(i int) model.Transform {
	return m.transforms[i]
}

func (m *Model) StationLocation(i int, station math3d.Vector3) math3d.Vector3 {
	return m.transforms[i].Apply(station)
}

func (m *Model) Gravity() math3d.Vector3 {
	return m.gravity
}

// spatialAt reads the block for segment i out of a generalized vector.
func spatialAt(v mat.Vector, i int) model.SpatialVec {
	o := i * DofsPerSegment
	return model.SpatialVec{
		Angular: math3d.Vector3{X: v.AtVec(o + 0), Y: v.AtVec(o + 1), Z: v.AtVec(o + 2)},
		Linear:  math3d.Vector3{X: v.AtVec(o + 3), Y: v.AtVec(o + 4), Z: v.AtVec(o + 5)},
	}
}

func setSpatial(v *mat.VecDense, i int, s model.SpatialVec) {
	o := i * DofsPerSegment
	for k := 0; k < 3; k++ {
		v.SetVec(o+k, s.Angular.Component(k))
		v.SetVec(o+3+k, s.Linear.Component(k))
	}
}
