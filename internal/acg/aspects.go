package acg

import (
	"math"

	"github.com/litescript/ls-astrocarto/internal/astro"
)

// AspectConfig controls the grid scan behind AC aspect lines. The latitude
// step bounds which crossings can be bracketed at all, and the tolerance
// bounds how precisely each bracketed crossing is refined: a coarser step is
// faster but can miss closely spaced roots near the polar turning points of
// the Ascendant, while a tolerance much finer than the longitude step buys
// nothing visually. Tune the two together.
type AspectConfig struct {
	LonStepDeg    float64 // longitude grid step across [-180, 180)
	LatStepDeg    float64 // latitude bracketing step
	LatMaxDeg     float64 // scan limit toward the poles
	ToleranceDeg  float64 // bisection tolerance per bracketed root
	MaxIterations int     // bisection iteration bound
}

// DefaultAspectConfig returns the production scan resolution.
func DefaultAspectConfig() AspectConfig {
	return AspectConfig{
		LonStepDeg:    0.5,
		LatStepDeg:    1.0,
		LatMaxDeg:     89.5,
		ToleranceDeg:  1e-4,
		MaxIterations: 40,
	}
}

// AspectRootFinder locates the latitudes at which a body's ecliptic
// longitude holds a given aspect to the local Ascendant, for one fixed
// longitude. Implementations may use any root-finding strategy; callers
// only see latitudes.
type AspectRootFinder interface {
	Roots(bodyEclLonDeg, aspectDeg, lonDeg, gmstDeg, oblDeg float64) []float64
}

// MCAspectLine renders the meridian on which the body holds the given
// aspect to the local Midheaven. Closed form: the locus sits at
// wrap(ra + aspect - gmst), exactly like the MC line shifted by the aspect.
func MCAspectLine(b Body, aspectDeg, gmstDeg float64, cfg LineConfig) []Point {
	return MeridianLine(b.RADeg, gmstDeg, aspectDeg, cfg)
}

// ACAspectLine traces the locus where the body's ecliptic longitude holds
// the given aspect to the local Ascendant. There is no closed form; the
// finder resolves the latitude roots column by column.
func ACAspectLine(b Body, aspectDeg, gmstDeg, oblDeg float64, finder AspectRootFinder, lonStepDeg float64) []Point {
	if lonStepDeg <= 0 {
		lonStepDeg = DefaultAspectConfig().LonStepDeg
	}

	var pts []Point
	for lon := -180.0; lon < 180.0; lon += lonStepDeg {
		for _, lat := range finder.Roots(b.EclLonDeg, aspectDeg, lon, gmstDeg, oblDeg) {
			pts = append(pts, Point{Lon: lon, Lat: lat})
		}
	}
	return pts
}

// bisectionFinder brackets sign changes of the aspect offset along the
// latitude axis and refines each bracket by bisection. Brackets that
// straddle the ±180° wrap of the offset function are skipped; the apparent
// sign change there is the discontinuity, not a root.
type bisectionFinder struct {
	cfg AspectConfig
}

// NewBisectionFinder returns the per-longitude bisection strategy.
func NewBisectionFinder(cfg AspectConfig) AspectRootFinder {
	if cfg.LatStepDeg <= 0 || cfg.LatMaxDeg <= 0 || cfg.MaxIterations <= 0 {
		cfg = DefaultAspectConfig()
	}
	return &bisectionFinder{cfg: cfg}
}

func (s *bisectionFinder) Roots(bodyEclLonDeg, aspectDeg, lonDeg, gmstDeg, oblDeg float64) []float64 {
	lst := astro.LST(gmstDeg, lonDeg)
	f := func(lat float64) float64 {
		return astro.WrapPM180(bodyEclLonDeg - astro.AscendantLongitude(lat, lst, oblDeg) - aspectDeg)
	}

	var roots []float64
	prevLat := -s.cfg.LatMaxDeg
	prevF := f(prevLat)

	for lat := prevLat + s.cfg.LatStepDeg; lat <= s.cfg.LatMaxDeg+1e-9; lat += s.cfg.LatStepDeg {
		curF := f(lat)
		if math.Abs(curF-prevF) < 180 && prevF*curF <= 0 && !(prevF == 0 && curF == 0) {
			roots = append(roots, bisect(f, prevLat, lat, s.cfg.ToleranceDeg, s.cfg.MaxIterations))
		}
		prevLat, prevF = lat, curF
	}
	return roots
}
