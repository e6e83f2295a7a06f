package track

import (
	"math"
	"testing"

	"github.com/RadekDuba/starlink/internal/transform"
)

func pointsFromLons(lons []float64) []transform.GeodeticPoint {
	points := make([]transform.GeodeticPoint, len(lons))
	for i, lon := range lons {
		points[i] = transform.GeodeticPoint{LonDeg: lon, LatDeg: float64(i), AltM: 550000 + float64(i)}
	}
	return points
}

func TestUnwrapLongitudesCrossings(t *testing.T) {
	input := []float64{170, -170, 170, -170}
	points := pointsFromLons(input)

	UnwrapLongitudes(points)

	for i := 1; i < len(points); i++ {
		diff := math.Abs(points[i].LonDeg - points[i-1].LonDeg)
		if diff > 180 {
			t.Errorf("jump of %.1f° between points %d and %d", diff, i-1, i)
		}
	}

	// Unwrapping may leave values outside [-180, 180], but modulo 360 each
	// output must equal its input.
	for i := range points {
		in := math.Mod(math.Mod(input[i], 360)+360, 360)
		out := math.Mod(math.Mod(points[i].LonDeg, 360)+360, 360)
		if math.Abs(in-out) > 1e-9 {
			t.Errorf("point %d: %.6f mod 360 != input %.6f mod 360", i, points[i].LonDeg, input[i])
		}
	}

	// Eastward track: adjusted longitudes keep climbing instead of wrapping.
	want := []float64{170, 190, 170, 190}
	for i := range points {
		if math.Abs(points[i].LonDeg-want[i]) > 1e-9 {
			t.Errorf("point %d: lon = %.1f, want %.1f", i, points[i].LonDeg, want[i])
		}
	}
}

func TestUnwrapLongitudesWestward(t *testing.T) {
	points := pointsFromLons([]float64{-175, 175, 165})

	UnwrapLongitudes(points)

	want := []float64{-175, -185, -195}
	for i := range points {
		if math.Abs(points[i].LonDeg-want[i]) > 1e-9 {
			t.Errorf("point %d: lon = %.1f, want %.1f", i, points[i].LonDeg, want[i])
		}
	}
}

func TestUnwrapLongitudesNoCrossing(t *testing.T) {
	input := []float64{-10, 0, 10, 20}
	points := pointsFromLons(input)

	UnwrapLongitudes(points)

	for i := range points {
		if points[i].LonDeg != input[i] {
			t.Errorf("point %d changed without a crossing: %.1f != %.1f", i, points[i].LonDeg, input[i])
		}
	}
}

func TestUnwrapLongitudesEdgeCases(t *testing.T) {
	var empty []transform.GeodeticPoint
	UnwrapLongitudes(empty)
	if len(empty) != 0 {
		t.Error("empty input should stay empty")
	}

	single := pointsFromLons([]float64{170})
	UnwrapLongitudes(single)
	if single[0].LonDeg != 170 {
		t.Errorf("single point changed: %.1f", single[0].LonDeg)
	}
}

func TestUnwrapLongitudesLeavesOtherCoords(t *testing.T) {
	points := pointsFromLons([]float64{170, -170})
	UnwrapLongitudes(points)

	for i, pt := range points {
		if pt.LatDeg != float64(i) || pt.AltM != 550000+float64(i) {
			t.Errorf("point %d: latitude/altitude modified: %+v", i, pt)
		}
	}
}
