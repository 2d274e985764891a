package main

import (
	"fmt"
	"image/color"
	"os"

	"github.com/adammck/grfm"
	"github.com/adammck/grfm/trial"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var (
	plotOut  string
	plotAxis string

	plotCmd = &cobra.Command{
		Use:   "plot [result.csv]",
		Short: "Plot the predicted vertical force and center of pressure of each leg",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlot,
	}
)

var (
	rightColor = color.RGBA{R: 200, G: 40, B: 40, A: 255}
	leftColor  = color.RGBA{R: 40, G: 70, B: 200, A: 255}
)

func init() {
	plotCmd.Flags().StringVarP(&plotOut, "out", "o", "grfm.png", "PNG file to write")
	plotCmd.Flags().StringVar(&plotAxis, "cop-axis", "x", "center of pressure axis to plot (x, y, z)")
}

func runPlot(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	outs, err := trial.ReadOutputs(f)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	axis, err := axisIndex(plotAxis)
	if err != nil {
		return err
	}

	force, err := legPlot(outs, "Vertical ground reaction force", "force (N)", func(l grfm.LegReaction) float64 {
		return l.Force.Y
	})
	if err != nil {
		return err
	}

	cop, err := legPlot(outs, "Center of pressure", fmt.Sprintf("%s (m)", plotAxis), func(l grfm.LegReaction) float64 {
		return l.Point.Component(axis)
	})
	if err != nil {
		return err
	}

	if err := savePlots(plotOut, force, cop); err != nil {
		return err
	}

	log.Infof("wrote %s (%d samples)", plotOut, len(outs))
	return nil
}

func axisIndex(s string) (int, error) {
	switch s {
	case "x":
		return 0, nil
	case "y":
		return 1, nil
	case "z":
		return 2, nil
	default:
		return 0, fmt.Errorf("unknown axis: %q", s)
	}
}

// legPlot plots one value of each leg's reaction over time.
func legPlot(outs []grfm.Output, title, ylabel string, value func(grfm.LegReaction) float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())

	for _, leg := range []struct {
		name  string
		color color.Color
		get   func(grfm.Output) grfm.LegReaction
	}{
		{"right", rightColor, func(o grfm.Output) grfm.LegReaction { return o.Right }},
		{"left", leftColor, func(o grfm.Output) grfm.LegReaction { return o.Left }},
	} {
		pts := make(plotter.XYs, len(outs))
		for i, o := range outs {
			pts[i].X = o.T
			pts[i].Y = value(leg.get(o))
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("cannot create line plot: %w", err)
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = leg.color

		p.Add(line)
		p.Legend.Add(leg.name, line)
	}

	return p, nil
}

// savePlots stacks the plots vertically in one PNG.
func savePlots(path string, plots ...*plot.Plot) error {
	rows := make([][]*plot.Plot, len(plots))
	for i, p := range plots {
		rows[i] = []*plot.Plot{p}
	}

	w := 8 * vg.Inch
	h := vg.Length(len(plots)) * 3 * vg.Inch

	img := vgimg.New(w, h)
	dc := draw.New(img)
	tiles := draw.Tiles{Rows: len(plots), Cols: 1, PadY: vg.Points(8)}

	canvases := plot.Align(rows, tiles, dc)
	for i, p := range plots {
		p.Draw(canvases[i][0])
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create png: %w", err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("cannot write png: %w", err)
	}

	return f.Close()
}
