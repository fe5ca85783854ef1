package astro

import "math"

// EclipticToEquatorial converts ecliptic longitude/latitude to right
// ascension/declination by a spherical rotation through the obliquity.
// All arguments and results are in degrees; RA is wrapped to [0, 360).
func EclipticToEquatorial(eclLonDeg, eclLatDeg, oblDeg float64) (raDeg, decDeg float64) {
	lon := degToRad(eclLonDeg)
	lat := degToRad(eclLatDeg)
	obl := degToRad(oblDeg)

	sinDec := math.Sin(lat)*math.Cos(obl) + math.Cos(lat)*math.Sin(obl)*math.Sin(lon)
	dec := math.Asin(clamp(sinDec, -1, 1))

	y := math.Sin(lon)*math.Cos(obl) - math.Tan(lat)*math.Sin(obl)
	x := math.Cos(lon)
	ra := math.Atan2(y, x)

	return Wrap360(radToDeg(ra)), radToDeg(dec)
}

// EquatorialToEcliptic is the inverse rotation: RA/Dec to ecliptic
// longitude/latitude, all in degrees.
func EquatorialToEcliptic(raDeg, decDeg, oblDeg float64) (eclLonDeg, eclLatDeg float64) {
	ra := degToRad(raDeg)
	dec := degToRad(decDeg)
	obl := degToRad(oblDeg)

	sinLat := math.Sin(dec)*math.Cos(obl) - math.Cos(dec)*math.Sin(obl)*math.Sin(ra)
	lat := math.Asin(clamp(sinLat, -1, 1))

	y := math.Sin(ra)*math.Cos(obl) + math.Tan(dec)*math.Sin(obl)
	x := math.Cos(ra)
	lon := math.Atan2(y, x)

	return Wrap360(radToDeg(lon)), radToDeg(lat)
}

// AscendantLongitude returns the ecliptic longitude of the local Ascendant
// in degrees for a geographic latitude, local sidereal time and obliquity.
// The atan2 form is stable at Θ = 90° where the naive quotient divides by
// zero. Result is wrapped to [0, 360).
func AscendantLongitude(latDeg, lstDeg, oblDeg float64) float64 {
	phi := degToRad(latDeg)
	theta := degToRad(lstDeg)
	obl := degToRad(oblDeg)

	y := math.Sin(theta)*math.Cos(obl) + math.Tan(phi)*math.Sin(obl)
	x := math.Cos(theta)

	return Wrap360(radToDeg(math.Atan2(y, x)))
}

// Altitude returns the altitude in degrees of a body with declination decDeg
// observed from latitude latDeg at hour angle haDeg.
func Altitude(latDeg, decDeg, haDeg float64) float64 {
	phi := degToRad(latDeg)
	dec := degToRad(decDeg)
	ha := degToRad(haDeg)

	sinAlt := math.Sin(phi)*math.Sin(dec) + math.Cos(phi)*math.Cos(dec)*math.Cos(ha)
	return radToDeg(math.Asin(clamp(sinAlt, -1, 1)))
}

// clamp bounds v to [lo, hi], absorbing floating point overshoot before
// inverse trig calls.
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
