package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
)

// StateLabels names the state components of each model for plot captions
// and CSV-free inspection. Unknown models fall back to x0, x1, ...
func StateLabels(model string, dim int) []string {
	switch model {
	case "double_integrator":
		return []string{"position", "velocity"}
	case "tora":
		return []string{"theta", "omega"}
	case "coupled_tora":
		return []string{"theta1", "theta2", "omega1", "omega2"}
	}
	labels := make([]string, dim)
	for i := range labels {
		labels[i] = fmt.Sprintf("x%d", i)
	}
	return labels
}

// PlotStates renders one asciigraph chart per state column.
func PlotStates(states [][]float64, model string, width, height int) string {
	if len(states) == 0 {
		return ""
	}

	dim := len(states[0])
	labels := StateLabels(model, dim)
	var b strings.Builder

	for col := 0; col < dim; col++ {
		series := make([]float64, len(states))
		for i, s := range states {
			series[i] = s[col]
		}
		caption := fmt.Sprintf("x%d", col)
		if col < len(labels) {
			caption = labels[col]
		}
		chart := asciigraph.Plot(series,
			asciigraph.Height(height),
			asciigraph.Width(width),
			asciigraph.Caption(caption),
		)
		b.WriteString(chart)
		b.WriteString("\n\n")
	}

	return b.String()
}

// PhasePlot draws states[xi] against states[yi] on a braille canvas.
// Consecutive samples are connected so sparse trajectories stay readable.
func PhasePlot(states [][]float64, xi, yi, width, height int) string {
	if len(states) == 0 {
		return ""
	}
	if xi >= len(states[0]) || yi >= len(states[0]) {
		return ""
	}

	minX, maxX := states[0][xi], states[0][xi]
	minY, maxY := states[0][yi], states[0][yi]
	for _, s := range states {
		minX = minf(minX, s[xi])
		maxX = maxf(maxX, s[xi])
		minY = minf(minY, s[yi])
		maxY = maxf(maxY, s[yi])
	}
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}

	canvas := NewCanvas(width, height)
	dotsW := float64(width*2 - 1)
	dotsH := float64(height*4 - 1)

	prevX, prevY := -1, -1
	for _, s := range states {
		px := int((s[xi] - minX) / rangeX * dotsW)
		py := int(dotsH - (s[yi]-minY)/rangeY*dotsH)
		if prevX >= 0 {
			canvas.DrawLine(prevX, prevY, px, py)
		} else {
			canvas.Set(px, py)
		}
		prevX, prevY = px, py
	}

	return canvas.String()
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
