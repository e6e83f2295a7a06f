package track

import "github.com/RadekDuba/starlink/internal/transform"

// UnwrapLongitudes removes artificial ±180° longitude jumps from an ordered
// point sequence, in place. A running offset in whole turns is carried along
// the track: whenever the adjusted longitude would jump by more than 180°
// relative to the previous point, the offset shifts by 360° until it doesn't.
//
// Adjusted longitudes are deliberately not re-normalized into [-180, 180];
// re-wrapping would reintroduce the seams the unwrap exists to remove. The
// output is a geometrically continuous line whose values modulo 360 still
// match the input. Latitude and altitude are untouched.
func UnwrapLongitudes(points []transform.GeodeticPoint) {
	var offset, prev float64
	for i := range points {
		adjusted := points[i].LonDeg + offset
		if i > 0 {
			for adjusted-prev > 180 {
				offset -= 360
				adjusted = points[i].LonDeg + offset
			}
			for adjusted-prev < -180 {
				offset += 360
				adjusted = points[i].LonDeg + offset
			}
		}
		points[i].LonDeg = adjusted
		prev = adjusted
	}
}
