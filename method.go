package grfm

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/adammck/grfm/math3d"
	"gonum.org/v1/gonum/mat"
)

// Method selects how the total reaction on the body is estimated.
type Method int

const (
	// NewtonEuler sums m*(a-g) and I*alpha + w x (I*w) over every body.
	NewtonEuler Method = iota + 1

	// InverseDynamics solves the residual generalized forces of the model and
	// reads the spatial force at the pelvis.
	InverseDynamics
)

var ErrUnknownMethod = errors.New("unknown reaction estimation method")

var methodNames = map[string]Method{
	"newtoneuler":      NewtonEuler,
	"newton-euler":     NewtonEuler,
	"newton_euler":     NewtonEuler,
	"ne":               NewtonEuler,
	"inversedynamics":  InverseDynamics,
	"inverse-dynamics": InverseDynamics,
	"inverse_dynamics": InverseDynamics,
	"id":               InverseDynamics,
}

// SelectMethod parses a (case-insensitive) method name. There is no default:
// an unrecognized name is an error.
func SelectMethod(name string) (Method, error) {
	m, ok := methodNames[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("%w: %q (want one of newton-euler, ne, inverse-dynamics, id)", ErrUnknownMethod, name)
	}

	return m, nil
}

// MethodAliases returns every name SelectMethod accepts for m, sorted.
func MethodAliases(m Method) []string {
	var names []string
	for n, mm := range methodNames {
		if mm == m {
			names = append(names, n)
		}
	}

	sort.Strings(names)
	return names
}

func (m Method) String() string {
	switch m {
	case NewtonEuler:
		return "newton-euler"
	case InverseDynamics:
		return "inverse-dynamics"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// totalReaction returns the force and moment which the ground must exert on
// the body, in the ground frame. The model must already be realized.
func (e *Engine) totalReaction(in Input) (force, moment math3d.Vector3, err error) {
	switch e.method {
	case InverseDynamics:
		return e.inverseDynamicsReaction(in.QDDot)

	case NewtonEuler:
		return e.newtonEulerReaction(in.QDot, in.QDDot)

	default:
		return force, moment, fmt.Errorf("%w: %v", ErrUnknownMethod, e.method)
	}
}

func (e *Engine) inverseDynamicsReaction(qDDot mat.Vector) (math3d.Vector3, math3d.Vector3, error) {
	mobility := e.model.MobilityForces()
	body := e.model.BodyForces()

	tau, err := e.model.ResidualForces(mobility, body, qDDot)
	if err != nil {
		return math3d.ZeroVector3, math3d.ZeroVector3, fmt.Errorf("inverse dynamics: %w", err)
	}

	// Spatial forces on each body, relative to the ground.
	spatial := e.model.MultiplyBySystemJacobian(tau)
	return spatial[e.pelvis].Linear, spatial[e.pelvis].Angular, nil
}

func (e *Engine) newtonEulerReaction(qDot, qDDot mat.Vector) (math3d.Vector3, math3d.Vector3, error) {
	velocities := e.model.MultiplyBySystemJacobian(qDot)
	accelerations := e.model.BodyAccelerations(qDDot)
	g := e.model.Gravity()

	force := math3d.ZeroVector3
	moment := math3d.ZeroVector3
	for i := 0; i < e.model.NumBodies(); i++ {
		mass := e.model.Body(i).Mass
		inertia := e.model.Inertia(i)
		w := velocities[i].Angular

		force = force.Add(accelerations[i].Linear.Subtract(g).MultiplyByScalar(mass))
		moment = moment.
			Add(inertia.MulVec(accelerations[i].Angular)).
			Add(w.Cross(inertia.MulVec(w)))
	}

	return force, moment, nil
}
