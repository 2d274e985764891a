package gait

// Detector is the gait phase detector which the reaction estimator follows.
// Times are in the same clock as the kinematic samples. Implementations are
// updated by their owner between samples; the estimator only reads them.
type Detector interface {
	Ready() bool
	Phase() Phase
	LeadingLeg() Leg

	// Timestamps of the most recent heel-strike and toe-off events.
	HeelStrikeTime() float64
	ToeOffTime() float64

	// Durations of the most recently completed double- and single-support
	// periods.
	DoubleSupportDuration() float64
	SingleSupportDuration() float64
}

// Signals is one sample of everything a Detector reports.
type Signals struct {
	Ready                 bool
	Phase                 Phase
	LeadingLeg            Leg
	HeelStrikeTime        float64
	ToeOffTime            float64
	DoubleSupportDuration float64
	SingleSupportDuration float64
}

// Recorded is a Detector which replays previously recorded signals. Call
// Update with the signals for a sample before solving it.
type Recorded struct {
	current Signals
}

var _ Detector = (*Recorded)(nil)

func NewRecorded() *Recorded {
	return &Recorded{}
}

func (r *Recorded) Update(s Signals) {
	r.current = s
}

func (r *Recorded) Signals() Signals {
	return r.current
}

func (r *Recorded) Ready() bool                    { return r.current.Ready }
func (r *Recorded) Phase() Phase                   { return r.current.Phase }
func (r *Recorded) LeadingLeg() Leg                { return r.current.LeadingLeg }
func (r *Recorded) HeelStrikeTime() float64        { return r.current.HeelStrikeTime }
func (r *Recorded) ToeOffTime() float64            { return r.current.ToeOffTime }
func (r *Recorded) DoubleSupportDuration() float64 { return r.current.DoubleSupportDuration }
func (r *Recorded) SingleSupportDuration() float64 { return r.current.SingleSupportDuration }
