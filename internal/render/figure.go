// Package render produces publication figures from recorded trajectories
// using gonum/plot. Output format follows the file extension (.png, .svg,
// .pdf).
package render

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const (
	figWidth  = 8 * vg.Inch
	figHeight = 5 * vg.Inch
)

// SaveTrajectory plots every state component against time on one figure.
// labels provides the legend entry per component.
func SaveTrajectory(times []float64, states [][]float64, labels []string, title, path string) error {
	if len(times) == 0 || len(times) != len(states) {
		return fmt.Errorf("trajectory has %d times and %d states", len(times), len(states))
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "t [s]"
	p.Y.Label.Text = "state"
	p.Add(plotter.NewGrid())

	dim := len(states[0])
	for col := 0; col < dim; col++ {
		pts := make(plotter.XYs, len(times))
		for i := range times {
			pts[i].X = times[i]
			pts[i].Y = states[i][col]
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(col)
		p.Add(line)

		label := fmt.Sprintf("x%d", col)
		if col < len(labels) {
			label = labels[col]
		}
		p.Legend.Add(label, line)
	}
	p.Legend.Top = true

	return p.Save(figWidth, figHeight, path)
}

// SavePhase plots states[xi] against states[yi].
func SavePhase(states [][]float64, xi, yi int, xLabel, yLabel, title, path string) error {
	if len(states) == 0 {
		return fmt.Errorf("empty trajectory")
	}
	if xi >= len(states[0]) || yi >= len(states[0]) {
		return fmt.Errorf("phase indices (%d, %d) out of range for %d states", xi, yi, len(states[0]))
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(states))
	for i, s := range states {
		pts[i].X = s[xi]
		pts[i].Y = s[yi]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Color = plotutil.Color(0)
	p.Add(line)

	return p.Save(figHeight, figHeight, path)
}
