package trial

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/adammck/grfm"
)

const timeColumn = "time"

// Writer writes predicted reactions, one row per sample, with a header naming
// the columns.
type Writer struct {
	w *csv.Writer
}

func NewWriter(w io.Writer) (*Writer, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{timeColumn}, grfm.Columns()...)); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	return &Writer{w: cw}, nil
}

func (w *Writer) Write(o grfm.Output) error {
	vals := o.Values()
	row := make([]string, 0, len(vals)+1)
	row = append(row, format(o.T))
	for _, v := range vals {
		row = append(row, format(v))
	}

	if err := w.w.Write(row); err != nil {
		return fmt.Errorf("write row: %w", err)
	}

	return nil
}

// Flush writes any buffered rows.
func (w *Writer) Flush() error {
	w.w.Flush()
	return w.w.Error()
}

func format(v float64) string {
	return strconv.FormatFloat(v, 'g', 15, 64)
}

// ReadOutputs reads back a file written by Writer.
func ReadOutputs(r io.Reader) ([]grfm.Output, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := append([]string{timeColumn}, grfm.Columns()...)
	if len(header) != len(cols) {
		return nil, fmt.Errorf("header has %d columns, want %d", len(header), len(cols))
	}
	for i := range cols {
		if header[i] != cols[i] {
			return nil, fmt.Errorf("header column %d is %q, want %q", i, header[i], cols[i])
		}
	}

	var outs []grfm.Output
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		vals := make([]float64, len(rec))
		for i, f := range rec {
			vals[i], err = strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %d: %w", line, i, err)
			}
		}

		o, err := grfm.MakeOutput(vals[0], vals[1:])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		outs = append(outs, o)
	}

	return outs, nil
}
