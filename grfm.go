// Package grfm predicts the ground reaction forces, moments and centers of
// pressure under each foot of a walking subject, from kinematics and a gait
// phase signal alone.
//
// The total reaction on the body comes from rigid-body dynamics. It is
// expressed in a frame aligned with the average walking direction, then shared
// between the legs: all of it goes to the stance leg during single support,
// and during double support the trailing leg keeps a smoothly decaying share
// of what it carried at heel-strike.
package grfm

import (
	"fmt"
	"time"

	"github.com/adammck/grfm/gait"
	"github.com/adammck/grfm/math3d"
	"github.com/adammck/grfm/model"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

const (
	DefaultDirectionWindowSize = 10
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "grfm",
})

// Parameters are fixed for the lifetime of an engine.
type Parameters struct {
	PelvisBodyName string

	// The bodies the heel and toe stations of each foot are attached to, and
	// their locations in those bodies' frames.
	RightStationBodyName     string
	LeftStationBodyName      string
	RightHeelStationLocation math3d.Vector3
	RightToeStationLocation  math3d.Vector3
	LeftHeelStationLocation  math3d.Vector3
	LeftToeStationLocation   math3d.Vector3

	// Number of samples the walking direction is averaged over.
	DirectionWindowSize int

	// Name of the total reaction method; see SelectMethod.
	Method string
}

// Input is one kinematic sample. The vectors are not modified.
type Input struct {
	T     float64
	Q     mat.Vector
	QDot  mat.Vector
	QDDot mat.Vector
}

// Engine is not safe for concurrent use. The model and detector are owned by
// the engine's caller, who updates the detector before each Solve; nothing
// else may touch them while a Solve is running.
type Engine struct {
	model    model.Model
	detector gait.Detector
	params   Parameters
	method   Method

	pelvis int
	right  foot
	left   foot

	// Anterior, vertical and lateral transitions.
	transitions [3]Transition

	metrics *Metrics
	log     *logrus.Entry
}

type Option func(*Engine)

// WithMetrics records engine metrics.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithLogger replaces the package logger, e.g. to add fields identifying the
// stream.
func WithLogger(l *logrus.Entry) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// WithTransitions replaces the per-axis (anterior, vertical, lateral)
// double-support transitions. All three default to gait.ReactionTransition.
func WithTransitions(anterior, vertical, lateral Transition) Option {
	return func(e *Engine) {
		e.transitions = [3]Transition{anterior, vertical, lateral}
	}
}

// New validates the parameters against the model and returns an engine. An
// unknown method name or body name is a configuration error.
func New(m model.Model, d gait.Detector, p Parameters, opts ...Option) (*Engine, error) {
	method, err := SelectMethod(p.Method)
	if err != nil {
		return nil, err
	}

	if p.DirectionWindowSize < 1 {
		return nil, fmt.Errorf("direction window size must be positive, got %d", p.DirectionWindowSize)
	}

	pelvis, err := m.BodyIndex(p.PelvisBodyName)
	if err != nil {
		return nil, fmt.Errorf("pelvis body: %w", err)
	}

	rightBody, err := m.BodyIndex(p.RightStationBodyName)
	if err != nil {
		return nil, fmt.Errorf("right station body: %w", err)
	}

	leftBody, err := m.BodyIndex(p.LeftStationBodyName)
	if err != nil {
		return nil, fmt.Errorf("left station body: %w", err)
	}

	e := &Engine{
		model:    m,
		detector: d,
		params:   p,
		method:   method,
		pelvis:   pelvis,
		right:    foot{body: rightBody, heel: p.RightHeelStationLocation, toe: p.RightToeStationLocation},
		left:     foot{body: leftBody, heel: p.LeftHeelStationLocation, toe: p.LeftToeStationLocation},
		transitions: [3]Transition{
			gait.ReactionTransition,
			gait.ReactionTransition,
			gait.ReactionTransition,
		},
		log: log,
	}

	for _, opt := range opts {
		opt(e)
	}

	// The center of pressure rolls from heel to toe, so it can't move on a
	// foot without length.
	for name, f := range map[string]foot{"right": e.right, "left": e.left} {
		if f.heel.Distance(f.toe) == 0 {
			e.log.Warnf("%s heel and toe stations coincide; center of pressure will not roll over", name)
		}
	}

	e.log.Infof("method=%s pelvis=%s window=%d", method, p.PelvisBodyName, p.DirectionWindowSize)
	return e, nil
}

// NewState returns an empty state sized for this engine.
func (e *Engine) NewState() *State {
	s, err := NewState(e.params.DirectionWindowSize)
	if err != nil {
		// The window size was validated by New.
		panic(err)
	}

	return s
}

func (e *Engine) Method() Method {
	return e.method
}

// Solve predicts the reactions for one sample. Samples must be solved in time
// order, each with the detector already updated for it. Until the detector is
// ready the output is zero. Errors are only returned when the model rejects
// the sample; detector contract violations are reported in Output.Violation
// and the stream carries on.
func (e *Engine) Solve(st *State, in Input) (Output, error) {
	out := Output{T: in.T}

	if !e.detector.Ready() {
		e.metrics.sample(notReadyLabel)
		return out, nil
	}

	start := time.Now()

	if err := e.model.SetState(in.Q, in.QDot, in.QDDot); err != nil {
		return out, fmt.Errorf("update model state at t=%v: %w", in.T, err)
	}

	if err := e.model.RealizeDynamics(); err != nil {
		return out, fmt.Errorf("realize dynamics at t=%v: %w", in.T, err)
	}

	r := st.direction.Update(e.model.BodyTransform(e.pelvis).R)

	force, moment, err := e.totalReaction(in)
	if err != nil {
		return out, fmt.Errorf("total reaction at t=%v: %w", in.T, err)
	}

	// Express in the walking direction frame.
	force = r.MulVec(force)
	moment = r.MulVec(moment)

	phase := e.detector.Phase()
	leading := e.detector.LeadingLeg()
	heelStrike := e.detector.HeelStrikeTime()
	sinceHeelStrike := in.T - heelStrike

	if st.latch(heelStrike, force, moment) {
		e.metrics.anchor()
		e.log.Debugf("t=%.4f latched heel-strike reaction f=%s m=%s", in.T, force, moment)
	}

	st.tds = e.detector.DoubleSupportDuration()
	st.tss = e.detector.SingleSupportDuration()

	w := e.weights(sinceHeelStrike, st.tds)

	rightForce, leftForce, splitErr := splitReaction(phase, leading, force, st.forceAtHeelStrike, w)
	rightMoment, leftMoment, _ := splitReaction(phase, leading, moment, st.momentAtHeelStrike, w)
	rightPoint, leftPoint, _ := e.reactionPoints(phase, leading, in.T-e.detector.ToeOffTime(), st.tss)

	// The split and the points fail together, so only report once.
	if splitErr != nil {
		e.metrics.violation()
		e.log.WithFields(logrus.Fields{
			"t":       in.T,
			"phase":   phase,
			"leading": leading,
		}).Warn(splitErr)

		out.Violation = splitErr
		e.metrics.solved(phase, start)
		return out, nil
	}

	out.Right = LegReaction{Force: rightForce, Torque: rightMoment, Point: rightPoint}
	out.Left = LegReaction{Force: leftForce, Torque: leftMoment, Point: leftPoint}

	e.metrics.solved(phase, start)
	return out, nil
}
