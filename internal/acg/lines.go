package acg

import (
	"math"

	"github.com/litescript/ls-astrocarto/internal/astro"
)

// LineConfig controls sampling density for line generation.
type LineConfig struct {
	// MeridianLatSteps is the number of samples per meridian line, pole to
	// pole. 721 gives a 0.25-degree latitude step.
	MeridianLatSteps int

	// HorizonLonSteps is the number of longitude samples across [-180, 180]
	// for the AC/DC sweep. 1441 gives a 0.25-degree longitude step.
	HorizonLonSteps int
}

// DefaultLineConfig returns the sampling densities used in production.
func DefaultLineConfig() LineConfig {
	return LineConfig{
		MeridianLatSteps: 721,
		HorizonLonSteps:  1441,
	}
}

const (
	// maxMeridianLat keeps meridian endpoints just short of the poles, where
	// the projection degenerates.
	maxMeridianLat = 89.9

	// minSinDec clamps the sin(dec) denominator of the horizon equation away
	// from zero for bodies on the celestial equator.
	minSinDec = 1e-9
)

// MeridianLine renders the full north-south meridian on which a body with
// the given right ascension culminates (offsetDeg 0, the MC line),
// anti-culminates (offsetDeg 180, the IC line), or holds a meridian aspect
// (offsetDeg equal to the aspect). The condition is latitude independent,
// so no per-point validation is needed.
func MeridianLine(raDeg, gmstDeg, offsetDeg float64, cfg LineConfig) []Point {
	lon := lonTo180(astro.Wrap360(raDeg + offsetDeg - gmstDeg))

	n := cfg.MeridianLatSteps
	if n < 2 {
		n = 2
	}

	pts := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		lat := -maxMeridianLat + 2*maxMeridianLat*float64(i)/float64(n-1)
		pts = append(pts, Point{Lon: lon, Lat: lat})
	}
	return pts
}

// HorizonLine sweeps longitude across [-180, 180] and solves the
// altitude-zero condition tan(lat) = -cos(dec)*cos(H)/sin(dec) for the
// requested side of a body's horizon curve: AC where the body is rising
// (H < 0), DC where it is setting (H > 0).
//
// Samples whose solved latitude is non-finite or outside [-90, 90] are
// discarded, never clamped into range; clamping would fabricate false
// segments along the poles. If the requested side yields no samples at all,
// ErrNoHorizonCrossing is returned and the caller records a diagnostic.
func HorizonLine(b Body, gmstDeg float64, angle AngleType, cfg LineConfig) ([]Point, error) {
	if angle != AngleAC && angle != AngleDC {
		return nil, ErrUnsupportedAngle
	}

	n := cfg.HorizonLonSteps
	if n < 2 {
		n = 2
	}

	dec := degToRad(b.DecDeg)
	cosDec := math.Cos(dec)
	sinDec := math.Sin(dec)
	if math.Abs(sinDec) < minSinDec {
		if math.Signbit(sinDec) {
			sinDec = -minSinDec
		} else {
			sinDec = minSinDec
		}
	}

	pts := make([]Point, 0, n/2)
	for i := 0; i < n; i++ {
		lon := -180 + 360*float64(i)/float64(n-1)
		ha := astro.HourAngle(astro.LST(gmstDeg, lon), b.RADeg)

		if angle == AngleAC && ha >= 0 {
			continue
		}
		if angle == AngleDC && ha <= 0 {
			continue
		}

		lat := radToDeg(math.Atan(-cosDec * math.Cos(degToRad(ha)) / sinDec))
		if math.IsNaN(lat) || math.IsInf(lat, 0) || math.Abs(lat) > 90 {
			continue
		}

		pts = append(pts, Point{Lon: lonTo180(astro.Wrap360(lon)), Lat: lat})
	}

	if len(pts) == 0 {
		return nil, ErrNoHorizonCrossing
	}
	return pts, nil
}

// lonTo180 maps a [0, 360) longitude into the output domain [-180, 180).
func lonTo180(lonDeg float64) float64 {
	if lonDeg >= 180 {
		return lonDeg - 360
	}
	return lonDeg
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180 }

func radToDeg(rad float64) float64 { return rad * 180 / math.Pi }
