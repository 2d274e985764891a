package trial

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/adammck/grfm"
	fakemodel "github.com/adammck/grfm/fake/model"
	"github.com/adammck/grfm/gait"
	"github.com/adammck/grfm/math3d"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// header returns a trial header for n coordinates.
func header(n int) string {
	cols := append([]string{}, signalColumns...)
	for _, prefix := range []string{"q", "qdot", "qddot"} {
		for i := 0; i < n; i++ {
			cols = append(cols, fmt.Sprintf("%s%d", prefix, i))
		}
	}

	return strings.Join(cols, ",") + "\n"
}

// row returns a trial row for a single free body accelerating upwards by ay.
func row(t float64, ready bool, phase, leading string, ay float64) string {
	vals := []string{
		fmt.Sprint(t), fmt.Sprint(ready), phase, leading,
		"0.5", "0.6", "0.1", "0.4",
	}
	for i := 0; i < 12; i++ {
		vals = append(vals, "0")
	}
	for i := 0; i < 6; i++ {
		if i == 4 {
			vals = append(vals, fmt.Sprint(ay))
		} else {
			vals = append(vals, "0")
		}
	}

	return strings.Join(vals, ",") + "\n"
}

func TestReadAll(t *testing.T) {
	data := header(6) +
		"# comment\n" +
		row(0.01, false, "invalid", "invalid", 0) +
		row(0.02, true, "left_swing", "right", 9.5) +
		row(0.03, true, "1", "l", 9.5)

	samples, err := ReadAll(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, samples, 3)

	s := samples[1]
	assert.Equal(t, 0.02, s.Input.T)
	assert.Equal(t, gait.Signals{
		Ready:                 true,
		Phase:                 gait.LeftSwing,
		LeadingLeg:            gait.RightLeg,
		HeelStrikeTime:        0.5,
		ToeOffTime:            0.6,
		DoubleSupportDuration: 0.1,
		SingleSupportDuration: 0.4,
	}, s.Signals)
	assert.Equal(t, 6, s.Input.Q.Len())
	assert.Equal(t, 9.5, s.Input.QDDot.AtVec(4))

	assert.Equal(t, gait.DoubleSupport, samples[2].Signals.Phase)
	assert.Equal(t, gait.LeftLeg, samples[2].Signals.LeadingLeg)
}

func TestReaderRejectsBadFiles(t *testing.T) {
	type eg struct {
		name string
		data string
		msg  string
	}

	for _, tt := range []eg{
		{"empty", "", "read header"},
		{"wrong column", strings.Replace(header(6), "tds", "tdx", 1), "tdx"},
		{"uneven coordinates", strings.TrimSuffix(header(6), "\n") + ",extra\n", "equal numbers"},
		{"bad phase", header(6) + row(0.01, true, "flight", "right", 0), "flight"},
		{"bad number", header(6) + strings.Replace(row(0.01, true, "ds", "right", 0), "0.5", "x", 1), "line 2"},
		{"nan", header(6) + strings.Replace(row(0.01, true, "ds", "right", 0), "0.5", "NaN", 1), "not finite"},
	} {
		_, err := ReadAll(strings.NewReader(tt.data))
		if assert.Error(t, err, tt.name) {
			assert.Contains(t, err.Error(), tt.msg, tt.name)
		}
	}
}

func TestWriterRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	require.NoError(t, err)

	exp := grfm.Output{
		T:     1.25,
		Right: grfm.LegReaction{Force: math3d.Vector3{X: 1, Y: 650.5, Z: -2}, Point: math3d.Vector3{X: 0.3, Z: 0.1}},
		Left:  grfm.LegReaction{Torque: math3d.Vector3{Y: 0.125}},
	}
	require.NoError(t, w.Write(exp))
	require.NoError(t, w.Flush())

	assert.True(t, strings.HasPrefix(buf.String(), "time,r_ground_force_vx,"))

	outs, err := ReadOutputs(&buf)
	require.NoError(t, err)
	require.Len(t, outs, 1)
	assert.Equal(t, exp, outs[0])
}

func TestReplay(t *testing.T) {
	data := header(6) +
		row(0.01, false, "invalid", "invalid", 0) +
		row(0.02, true, "left_swing", "right", 9.5) +
		row(0.03, true, "ds", "invalid", 9.5) +
		row(0.04, true, "right_swing", "left", 9.0)

	samples, err := ReadAll(strings.NewReader(data))
	require.NoError(t, err)

	m := fakemodel.New(2, "pelvis")
	d := gait.NewRecorded()
	e, err := grfm.New(m, d, grfm.Parameters{
		PelvisBodyName:       "pelvis",
		RightStationBodyName: "pelvis",
		LeftStationBodyName:  "pelvis",
		DirectionWindowSize:  1,
		Method:               "ne",
	})
	require.NoError(t, err)

	var outs []grfm.Output
	sum, err := Replay(context.Background(), e, d, samples, func(o grfm.Output) error {
		outs = append(outs, o)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, Summary{Samples: 4, NotReady: 1, Violations: 1}, sum)
	require.Len(t, outs, 4)
	assert.Equal(t, grfm.Output{T: 0.01}, outs[0])
	assert.InDelta(t, 19.0, outs[1].Right.Force.Y, 1e-9)
	assert.InDelta(t, 18.0, outs[3].Left.Force.Y, 1e-9)
	assert.Equal(t, math3d.ZeroVector3, outs[3].Right.Force)
}

func TestReplayStops(t *testing.T) {
	samples, err := ReadAll(strings.NewReader(header(6) + row(0.01, true, "ds", "right", 0)))
	require.NoError(t, err)

	m := fakemodel.New(1, "pelvis")
	d := gait.NewRecorded()
	e, err := grfm.New(m, d, grfm.Parameters{
		PelvisBodyName:       "pelvis",
		RightStationBodyName: "pelvis",
		LeftStationBodyName:  "pelvis",
		DirectionWindowSize:  1,
		Method:               "id",
	})
	require.NoError(t, err)

	boom := errors.New("disk full")
	_, err = Replay(context.Background(), e, d, samples, func(grfm.Output) error { return boom })
	assert.Equal(t, boom, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sum, err := Replay(ctx, e, d, samples, func(grfm.Output) error { return nil })
	assert.Equal(t, context.Canceled, err)
	assert.Equal(t, 0, sum.Samples)
}
