package gait

import (
	"fmt"
	"strings"
)

// Phase is the support phase of the gait cycle, as reported by a detector.
type Phase int

const (
	InvalidPhase Phase = iota
	DoubleSupport
	LeftSwing
	RightSwing
)

// Leg identifies a leg. The detector uses it to report which leg is leading,
// i.e. which one struck the ground most recently.
type Leg int

const (
	InvalidLeg Leg = iota
	RightLeg
	LeftLeg
)

func (p Phase) String() string {
	switch p {
	case DoubleSupport:
		return "double_support"
	case LeftSwing:
		return "left_swing"
	case RightSwing:
		return "right_swing"
	case InvalidPhase:
		return "invalid"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// ParsePhase is the inverse of Phase.String. It also accepts the numeric form
// written by some detectors (0=invalid, 1=double support, 2=left swing, 3=right
// swing).
func ParsePhase(s string) (Phase, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "double_support", "ds", "1":
		return DoubleSupport, nil
	case "left_swing", "ls", "2":
		return LeftSwing, nil
	case "right_swing", "rs", "3":
		return RightSwing, nil
	case "invalid", "", "0":
		return InvalidPhase, nil
	default:
		return InvalidPhase, fmt.Errorf("unknown gait phase: %q", s)
	}
}

func (l Leg) String() string {
	switch l {
	case RightLeg:
		return "right"
	case LeftLeg:
		return "left"
	case InvalidLeg:
		return "invalid"
	default:
		return fmt.Sprintf("Leg(%d)", int(l))
	}
}

// Other returns the opposite leg. The invalid leg has no opposite.
func (l Leg) Other() Leg {
	switch l {
	case RightLeg:
		return LeftLeg
	case LeftLeg:
		return RightLeg
	default:
		return InvalidLeg
	}
}

func ParseLeg(s string) (Leg, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "right", "r", "1":
		return RightLeg, nil
	case "left", "l", "2":
		return LeftLeg, nil
	case "invalid", "", "0":
		return InvalidLeg, nil
	default:
		return InvalidLeg, fmt.Errorf("unknown leg: %q", s)
	}
}
