package transform

import (
	"math"
	"time"
)

// PositionTEME is a satellite position in the TEME frame, in kilometers
// (SGP4's native output units).
type PositionTEME struct {
	X, Y, Z float64
}

// PositionECEF is a satellite position in the Earth-fixed frame, in meters.
type PositionECEF struct {
	X, Y, Z float64
}

// TEMEToECEF rotates a TEME position into the Earth-fixed frame at the given
// UTC time.
func TEMEToECEF(teme PositionTEME, t time.Time) PositionECEF {
	return TEMEToECEFWithGMST(teme, GMST(t))
}

// TEMEToECEFWithGMST rotates TEME to ECEF using a precomputed GMST angle
// (radians): r_ECEF = R3(θ) * r_TEME, where R3 is a rotation about the polar
// axis. The Z component is unchanged. Output is in meters.
func TEMEToECEFWithGMST(teme PositionTEME, gmst float64) PositionECEF {
	cosG := math.Cos(gmst)
	sinG := math.Sin(gmst)

	return PositionECEF{
		X: (teme.X*cosG + teme.Y*sinG) * 1000.0,
		Y: (-teme.X*sinG + teme.Y*cosG) * 1000.0,
		Z: teme.Z * 1000.0,
	}
}
