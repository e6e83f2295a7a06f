// Package transform provides the coordinate frame transformations that turn
// SGP4 output into geographic coordinates.
//
// SGP4 reports positions in TEME (True Equator Mean Equinox), a quasi-inertial
// frame that shares Earth's spin axis but does not rotate with Earth. Plotting
// a ground track therefore needs two stages: a GMST rotation into the
// Earth-fixed (ECEF) frame, then an ellipsoidal conversion to geodetic
// latitude/longitude/altitude. Skipping the rotation would pin every track to
// the momentary orientation of the Greenwich meridian.
//
// Method: simplified Vallado-style rotation using GMST only (TEME → PEF ≈
// ECEF), ignoring polar motion and the equation of the equinoxes. The ~50 m
// error is irrelevant at visualization scale.
//
// Reference: Vallado, "Fundamentals of Astrodynamics and Applications", Ch. 3.
package transform

import (
	"math"
	"time"
)

// j2000 is the Julian Date of the J2000.0 epoch (January 1, 2000, 12:00:00 TT).
const j2000 = 2451545.0

// JulianDate converts a time.Time (UTC) to Julian Date.
// Uses the standard astronomical algorithm valid for dates after March 1, 4801 BC.
func JulianDate(t time.Time) float64 {
	y := float64(t.Year())
	m := float64(t.Month())
	d := float64(t.Day())
	h := float64(t.Hour())
	min := float64(t.Minute())
	s := float64(t.Second()) + float64(t.Nanosecond())/1e9

	// Jan/Feb count as months 13/14 of the previous year.
	if m <= 2 {
		y -= 1
		m += 12
	}

	A := math.Floor(y / 100)
	B := 2 - A + math.Floor(A/4)

	jd := math.Floor(365.25*(y+4716)) + math.Floor(30.6001*(m+1)) + d + B - 1524.5
	jd += (h + min/60.0 + s/3600.0) / 24.0

	return jd
}

// GMSTFromJulian calculates Greenwich Mean Sidereal Time in radians from a
// Julian Date split into whole and fractional parts (the split SGP4 interfaces
// conventionally use; pass fr=0 for an unsplit value).
//
// Uses the IAU-82 model (Vallado Eq 3-47):
//
//	θ_GMST = 67310.54841 + (876600h + 8640184.812866)*T + 0.093104*T² - 6.2e-6*T³
//
// where T is Julian centuries of UT1 from J2000.0 and the result is in
// seconds of time.
func GMSTFromJulian(jd, fr float64) float64 {
	tUT1 := (jd + fr - j2000) / 36525.0

	// 876600h = 876600 * 3600 = 3155760000 seconds.
	gmstSec := 67310.54841 +
		(3155760000.0+8640184.812866)*tUT1 +
		0.093104*tUT1*tUT1 -
		6.2e-6*tUT1*tUT1*tUT1

	gmstSec = math.Mod(gmstSec, 86400.0)
	if gmstSec < 0 {
		gmstSec += 86400.0
	}
	return gmstSec / 86400.0 * 2.0 * math.Pi
}

// GMST calculates Greenwich Mean Sidereal Time in radians for a UTC time.
func GMST(t time.Time) float64 {
	return GMSTFromJulian(JulianDate(t.UTC()), 0)
}
