// Package astro provides sidereal time arithmetic and celestial coordinate
// transformations for astrocartography line computation.
package astro

import (
	"math"
	"time"
)

// J2000 is the Julian Day of the J2000.0 epoch (2000-01-01 12:00 TT).
const J2000 = 2451545.0

// JulianDay returns the Julian Day for a UTC instant.
func JulianDay(t time.Time) float64 {
	t = t.UTC()

	y := float64(t.Year())
	m := float64(t.Month())
	d := float64(t.Day())

	dayFrac := (float64(t.Hour()) +
		float64(t.Minute())/60 +
		float64(t.Second())/3600 +
		float64(t.Nanosecond())/3600e9) / 24.0

	// January and February count as months 13/14 of the previous year
	if m <= 2 {
		y--
		m += 12
	}

	// Gregorian calendar correction
	a := math.Floor(y / 100)
	b := 2 - a + math.Floor(a/4)

	return math.Floor(365.25*(y+4716)) +
		math.Floor(30.6001*(m+1)) +
		d + dayFrac + b - 1524.5
}

// GMST returns Greenwich Mean Sidereal Time in degrees for a Julian Day,
// wrapped to [0, 360). Uses the IAU 1982 polynomial in Julian centuries
// since J2000.0. NaN input propagates as NaN output.
func GMST(jd float64) float64 {
	T := (jd - J2000) / 36525.0

	gmst := 280.46061837 +
		360.98564736629*(jd-J2000) +
		0.000387933*T*T -
		T*T*T/38710000.0

	return Wrap360(gmst)
}

// LST returns Local Sidereal Time in degrees for a GMST value and an
// east-positive geographic longitude, wrapped to [0, 360).
func LST(gmstDeg, lonDeg float64) float64 {
	return Wrap360(gmstDeg + lonDeg)
}

// HourAngle returns the hour angle of a body in degrees, normalized
// to (-180, 180]. Negative values are east of the meridian (rising side).
func HourAngle(lstDeg, raDeg float64) float64 {
	return WrapPM180(lstDeg - raDeg)
}

// Wrap360 normalizes an angle in degrees to [0, 360).
func Wrap360(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	if d == 360 {
		d = 0
	}
	return d
}

// WrapPM180 normalizes an angle in degrees to (-180, 180].
func WrapPM180(deg float64) float64 {
	d := Wrap360(deg)
	if d > 180 {
		d -= 360
	}
	return d
}

// degToRad converts degrees to radians.
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// radToDeg converts radians to degrees.
func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
