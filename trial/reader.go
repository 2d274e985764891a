// Package trial reads recorded walking trials (kinematics and the detector
// signals for each sample) and writes the predicted reactions, one row per
// sample.
package trial

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/adammck/grfm"
	"github.com/adammck/grfm/gait"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "trial",
})

// The leading columns of a trial file. They are followed by the generalized
// coordinates, speeds and accelerations, in equal numbers.
var signalColumns = []string{
	"t", "ready", "phase", "leading_leg", "heel_strike", "toe_off", "tds", "tss",
}

// Sample is one row of a trial.
type Sample struct {
	Signals gait.Signals
	Input   grfm.Input
}

type Reader struct {
	r      *csv.Reader
	coords int
	line   int
}

// NewReader reads the header of a trial file.
func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	if len(header) < len(signalColumns) {
		return nil, fmt.Errorf("header has %d columns, want at least %d", len(header), len(signalColumns))
	}

	for i, c := range signalColumns {
		if !strings.EqualFold(strings.TrimSpace(header[i]), c) {
			return nil, fmt.Errorf("header column %d is %q, want %q", i, header[i], c)
		}
	}

	n := len(header) - len(signalColumns)
	if n == 0 || n%3 != 0 {
		return nil, fmt.Errorf("expected q, qdot and qddot columns in equal numbers, got %d columns", n)
	}

	cr.FieldsPerRecord = len(header)

	return &Reader{
		r:      cr,
		coords: n / 3,
		line:   1,
	}, nil
}

// NumCoordinates returns the number of generalized coordinates per sample.
func (r *Reader) NumCoordinates() int {
	return r.coords
}

// Read returns the next sample, or io.EOF after the last one.
func (r *Reader) Read() (Sample, error) {
	rec, err := r.r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Sample{}, io.EOF
		}
		return Sample{}, err
	}

	r.line++
	s, err := r.parse(rec)
	if err != nil {
		return Sample{}, fmt.Errorf("line %d: %w", r.line, err)
	}

	return s, nil
}

func (r *Reader) parse(rec []string) (Sample, error) {
	nums := make([]float64, len(rec))
	for i, f := range rec {
		// Flags and enums are parsed below.
		if i >= 1 && i <= 3 {
			continue
		}

		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return Sample{}, fmt.Errorf("column %d: %w", i, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Sample{}, fmt.Errorf("column %d is not finite: %q", i, f)
		}
		nums[i] = v
	}

	ready, err := strconv.ParseBool(strings.TrimSpace(rec[1]))
	if err != nil {
		return Sample{}, fmt.Errorf("ready: %w", err)
	}

	phase, err := gait.ParsePhase(rec[2])
	if err != nil {
		return Sample{}, err
	}

	leading, err := gait.ParseLeg(rec[3])
	if err != nil {
		return Sample{}, err
	}

	o := len(signalColumns)
	n := r.coords

	return Sample{
		Signals: gait.Signals{
			Ready:                 ready,
			Phase:                 phase,
			LeadingLeg:            leading,
			HeelStrikeTime:        nums[4],
			ToeOffTime:            nums[5],
			DoubleSupportDuration: nums[6],
			SingleSupportDuration: nums[7],
		},
		Input: grfm.Input{
			T:     nums[0],
			Q:     mat.NewVecDense(n, nums[o:o+n]),
			QDot:  mat.NewVecDense(n, nums[o+n:o+2*n]),
			QDDot: mat.NewVecDense(n, nums[o+2*n:o+3*n]),
		},
	}, nil
}

// ReadAll reads every sample of a trial.
func ReadAll(r io.Reader) ([]Sample, error) {
	tr, err := NewReader(r)
	if err != nil {
		return nil, err
	}

	var samples []Sample
	for {
		s, err := tr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}

	log.Debugf("read %d samples of %d coordinates", len(samples), tr.coords)
	return samples, nil
}
