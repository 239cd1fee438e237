package forecast

import (
	"math"
	"time"
)

// FitLine fits an ordinary least squares line through the points.
// It returns false for fewer than two points or when every point shares one timestamp.
func FitLine(points []Point) (Line, bool) {
	n := float64(len(points))
	if len(points) < 2 {
		return Line{}, false
	}

	// x is measured from the first point so the squares stay well inside float64 precision
	origin := points[0].Time
	var sumX, sumY, sumXY, sumXX float64
	for _, p := range points {
		x := float64(p.Time.Sub(origin).Milliseconds())
		sumX += x
		sumY += p.Value
		sumXY += x * p.Value
		sumXX += x * x
	}

	denominator := n*sumXX - sumX*sumX
	if denominator == 0 {
		return Line{}, false
	}

	slope := (n*sumXY - sumX*sumY) / denominator
	intercept := (sumY - slope*sumX) / n

	return Line{Origin: origin, Slope: slope, Intercept: intercept}, true
}

// Project evaluates the line at steps after the last observation, clamping negatives to zero
func Project(line Line, last time.Time, step time.Duration, periods int) []Point {
	projected := make([]Point, 0, periods)
	for i := 1; i <= periods; i++ {
		t := last.Add(time.Duration(i) * step)
		projected = append(projected, Point{Time: t, Value: math.Max(0, line.At(t))})
	}
	return projected
}
