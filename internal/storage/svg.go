package storage

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/isinglab/internal/sim"
)

// MagnetizationSVG renders the per-site |m| vs temperature curve as an SVG
// polyline. Samples sharing a temperature are averaged into one point.
func MagnetizationSVG(samples []sim.Sample, sites int, width, height int, strokeColor string) string {
	points := curvePoints(samples, sites)
	if len(points) < 2 {
		return ""
	}

	// Find bounds
	minX, maxX := points[0].x, points[0].x
	for _, p := range points {
		if p.x < minX {
			minX = p.x
		}
		if p.x > maxX {
			maxX = p.x
		}
	}

	rangeX := maxX - minX
	if rangeX == 0 {
		rangeX = 1
	}
	minX -= rangeX * 0.05
	maxX += rangeX * 0.05
	rangeX = maxX - minX

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	// The y-axis is the fixed order-parameter range [0, 1].
	for i, p := range points {
		x := (p.x - minX) / rangeX * float64(width)
		y := float64(height) - p.y*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

type curvePoint struct {
	x, y float64
}

func curvePoints(samples []sim.Sample, sites int) []curvePoint {
	sums := make(map[float64]float64)
	counts := make(map[float64]int)
	for _, s := range samples {
		m := s.Magnetization / float64(sites)
		if m < 0 {
			m = -m
		}
		sums[s.Temperature] += m
		counts[s.Temperature]++
	}

	points := make([]curvePoint, 0, len(sums))
	for temp, sum := range sums {
		points = append(points, curvePoint{x: temp, y: sum / float64(counts[temp])})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].x < points[j].x })
	return points
}
