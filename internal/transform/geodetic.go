package transform

import "math"

// WGS-84 ellipsoid parameters.
const (
	wgs84A   = 6378137.0      // semi-major axis (meters)
	wgs84B   = 6356752.3142   // semi-minor axis (meters)
	wgs84E2  = (wgs84A*wgs84A - wgs84B*wgs84B) / (wgs84A * wgs84A) // first eccentricity squared
	wgs84EP2 = (wgs84A*wgs84A - wgs84B*wgs84B) / (wgs84B * wgs84B) // second eccentricity squared
)

// GeodeticPoint is a position on the WGS-84 ellipsoid in GeoJSON axis order:
// longitude and latitude in degrees, altitude in meters.
type GeodeticPoint struct {
	LonDeg, LatDeg, AltM float64
}

// InRange reports whether the point's latitude and longitude fall within
// valid geographic bounds. NaN coordinates fail the check.
func (g GeodeticPoint) InRange() bool {
	return g.LatDeg >= -90 && g.LatDeg <= 90 && g.LonDeg >= -180 && g.LonDeg <= 180
}

// ECEFToGeodetic converts an Earth-fixed position (meters) to geodetic
// coordinates using Bowring's closed-form approximation. No iteration is
// needed; the single auxiliary-angle step is accurate to well under a meter
// for LEO altitudes.
func ECEFToGeodetic(pos PositionECEF) GeodeticPoint {
	p := math.Hypot(pos.X, pos.Y)

	// On the polar axis both longitude and the auxiliary angle degenerate.
	if p == 0 {
		return GeodeticPoint{
			LonDeg: 0,
			LatDeg: math.Copysign(90, pos.Z),
			AltM:   math.Abs(pos.Z) - wgs84B,
		}
	}

	theta := math.Atan2(pos.Z*wgs84A, p*wgs84B)
	sinT := math.Sin(theta)
	cosT := math.Cos(theta)

	lat := math.Atan2(
		pos.Z+wgs84EP2*wgs84B*sinT*sinT*sinT,
		p-wgs84E2*wgs84A*cosT*cosT*cosT,
	)
	lon := math.Atan2(pos.Y, pos.X)

	sinLat := math.Sin(lat)
	cosLat := math.Cos(lat)
	N := wgs84A / math.Sqrt(1-wgs84E2*sinLat*sinLat)

	var alt float64
	if math.Abs(cosLat) > 1e-10 {
		alt = p/cosLat - N
	} else {
		alt = math.Abs(pos.Z)/math.Abs(sinLat) - N*(1-wgs84E2)
	}

	return GeodeticPoint{
		LonDeg: normalizeLon(lon * 180.0 / math.Pi),
		LatDeg: lat * 180.0 / math.Pi,
		AltM:   alt,
	}
}

// normalizeLon maps a longitude in degrees into [-180, 180).
func normalizeLon(lon float64) float64 {
	lon = math.Mod(lon+180.0, 360.0)
	if lon < 0 {
		lon += 360.0
	}
	return lon - 180.0
}
