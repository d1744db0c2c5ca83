// Package export writes trajectories as standalone SVG documents, useful
// when a run should end up in a notebook or web page without pulling in a
// plotting toolchain.
package export

import (
	"fmt"
	"os"
	"strings"
)

const svgBackground = "#0a0a0a"

// TrajectorySVG renders one state component against time as a polyline.
func TrajectorySVG(times, values []float64, width, height int, stroke string) string {
	if len(times) < 2 || len(times) != len(values) {
		return ""
	}

	points := make([][2]float64, len(times))
	for i := range times {
		points[i] = [2]float64{times[i], values[i]}
	}
	return polylineSVG(points, width, height, stroke)
}

// PhaseSVG renders states[xi] against states[yi] as a polyline.
func PhaseSVG(states [][]float64, xi, yi, width, height int, stroke string) string {
	if len(states) < 2 {
		return ""
	}
	if xi >= len(states[0]) || yi >= len(states[0]) {
		return ""
	}

	points := make([][2]float64, len(states))
	for i, s := range states {
		points[i] = [2]float64{s[xi], s[yi]}
	}
	return polylineSVG(points, width, height, stroke)
}

// WriteFile renders svg content to path.
func WriteFile(path, svg string) error {
	if svg == "" {
		return fmt.Errorf("empty svg document")
	}
	return os.WriteFile(path, []byte(svg), 0644)
}

func polylineSVG(points [][2]float64, width, height int, stroke string) string {
	minX, maxX := points[0][0], points[0][0]
	minY, maxY := points[0][1], points[0][1]
	for _, p := range points {
		if p[0] < minX {
			minX = p[0]
		}
		if p[0] > maxX {
			maxX = p[0]
		}
		if p[1] < minY {
			minY = p[1]
		}
		if p[1] > maxY {
			maxY = p[1]
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	// 10% margin so the curve doesn't touch the frame.
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, svgBackground, stroke))

	for i, p := range points {
		x := (p[0] - minX) / rangeX * float64(width)
		y := float64(height) - (p[1]-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString("\"/>\n</svg>")
	return sb.String()
}
