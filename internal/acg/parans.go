package acg

import (
	"math"

	"github.com/litescript/ls-astrocarto/internal/astro"
)

// ParanConfig controls the latitude scan for horizon-horizon paran pairs
// and the residual bound accepted from the closed form.
type ParanConfig struct {
	LatStepDeg    float64 // scan step for bracketing horizon-horizon roots
	LatMaxDeg     float64 // scan limit toward the poles
	ToleranceDeg  float64 // bisection tolerance
	MaxIterations int     // bisection iteration bound
}

// DefaultParanConfig returns the production scan resolution.
func DefaultParanConfig() ParanConfig {
	return ParanConfig{
		LatStepDeg:    0.1,
		LatMaxDeg:     89.9,
		ToleranceDeg:  1e-3,
		MaxIterations: 40,
	}
}

// closedFormResidualMaxDeg is the simultaneity residual accepted from the
// meridian-horizon closed form. Roots worse than this are dropped rather
// than reported with a misleading latitude.
const closedFormResidualMaxDeg = 0.03

// eventHourAngle returns the hour angle in degrees at which a body with the
// given declination stands at the event, for an observer latitude, plus
// whether the event can occur there at all. Horizon events require
// |tan(lat)*tan(dec)| <= 1; outside that domain the body is circumpolar or
// never up, and no crossing exists.
func eventHourAngle(ev ParanEvent, latDeg, decDeg float64) (float64, bool) {
	switch ev {
	case EventCulminate:
		return 0, true
	case EventAnticulminate:
		return 180, true
	}

	x := -math.Tan(degToRad(latDeg)) * math.Tan(degToRad(decDeg))
	if math.IsNaN(x) || math.Abs(x) > 1 {
		return 0, false
	}

	h := radToDeg(math.Acos(x))
	if ev == EventRise {
		return -h, true
	}
	return h, true
}

func isMeridianEvent(ev ParanEvent) bool {
	return ev == EventCulminate || ev == EventAnticulminate
}

// paranResidual evaluates the simultaneity equation at a latitude: the
// wrapped difference between the local sidereal times at which each body
// stands at its event. A paran root drives this to zero.
func paranResidual(a Body, evA ParanEvent, b Body, evB ParanEvent, latDeg float64) (float64, bool) {
	ha, okA := eventHourAngle(evA, latDeg, a.DecDeg)
	hb, okB := eventHourAngle(evB, latDeg, b.DecDeg)
	if !okA || !okB {
		return 0, false
	}
	return astro.WrapPM180(a.RADeg + ha - b.RADeg - hb), true
}

// FindParans returns every latitude in the scanned range at which bodyA
// stands at eventA while bodyB simultaneously stands at eventB. A pair may
// yield zero, one, or multiple roots; all are returned.
//
// Meridian-meridian pairs are degenerate: they admit solutions only when the
// right ascension difference is exactly 0 or ±180° and carry no latitude
// information, so they are suppressed rather than reported as roots.
func FindParans(a Body, evA ParanEvent, b Body, evB ParanEvent, cfg ParanConfig) []ParanResult {
	if cfg.LatStepDeg <= 0 || cfg.LatMaxDeg <= 0 || cfg.MaxIterations <= 0 {
		cfg = DefaultParanConfig()
	}

	switch {
	case isMeridianEvent(evA) && isMeridianEvent(evB):
		return nil
	case isMeridianEvent(evA):
		return meridianHorizonParan(a, evA, b, evB, cfg, false)
	case isMeridianEvent(evB):
		return meridianHorizonParan(b, evB, a, evA, cfg, true)
	default:
		return horizonHorizonParans(a, evA, b, evB, cfg)
	}
}

// meridianHorizonParan solves the meridian-horizon case in closed form. The
// meridian event pins the sidereal time, which fixes the horizon body's
// required hour angle; folding it through the arccos relation yields the
// latitude directly, with no iteration. The residual of the simultaneity
// equation is then re-evaluated with the requested event's hour-angle sign:
// a culmination paired with a rise has no solution when the geometry only
// admits the set, and such roots are dropped, not fabricated.
//
// swapped restores the caller's body order in the result.
func meridianHorizonParan(m Body, evM ParanEvent, h Body, evH ParanEvent, cfg ParanConfig, swapped bool) []ParanResult {
	hm := 0.0
	if evM == EventAnticulminate {
		hm = 180
	}
	lst := astro.Wrap360(m.RADeg + hm)

	dec := degToRad(h.DecDeg)
	h0 := math.Abs(astro.WrapPM180(lst - h.RADeg))

	lat := radToDeg(math.Atan2(-math.Cos(degToRad(h0))*math.Cos(dec), math.Sin(dec)))
	// fold the atan2 image back into the latitude domain
	if lat > 90 {
		lat -= 180
	} else if lat < -90 {
		lat += 180
	}
	if math.IsNaN(lat) || math.Abs(lat) > cfg.LatMaxDeg {
		return nil
	}

	residual, ok := paranResidual(m, evM, h, evH, lat)
	if !ok || math.Abs(residual) > closedFormResidualMaxDeg {
		return nil
	}

	res := ParanResult{
		BodyA:        m.ID,
		EventA:       evM,
		BodyB:        h.ID,
		EventB:       evH,
		LatitudeDeg:  lat,
		LSTDeg:       lst,
		Method:       MethodClosedForm,
		PrecisionDeg: math.Abs(residual),
	}
	if swapped {
		res.BodyA, res.BodyB = res.BodyB, res.BodyA
		res.EventA, res.EventB = res.EventB, res.EventA
	}
	return []ParanResult{res}
}

// horizonHorizonParans scans latitude in fixed steps, brackets sign changes
// of the simultaneity residual, and refines each bracket by bisection. The
// arccos domain is validated at every evaluation; intervals where either
// body violates it are skipped entirely, since no crossing is possible
// there. Brackets straddling the ±180° wrap of the residual are likewise
// skipped as discontinuities.
func horizonHorizonParans(a Body, evA ParanEvent, b Body, evB ParanEvent, cfg ParanConfig) []ParanResult {
	var out []ParanResult

	prevLat := -cfg.LatMaxDeg
	prevF, prevOK := paranResidual(a, evA, b, evB, prevLat)

	for lat := prevLat + cfg.LatStepDeg; lat <= cfg.LatMaxDeg+1e-9; lat += cfg.LatStepDeg {
		curF, curOK := paranResidual(a, evA, b, evB, lat)

		if prevOK && curOK &&
			math.Abs(curF-prevF) < 180 &&
			prevF*curF <= 0 && !(prevF == 0 && curF == 0) {

			if root, residual, ok := bisectParan(a, evA, b, evB, prevLat, lat, prevF, cfg); ok {
				ha, _ := eventHourAngle(evA, root, a.DecDeg)
				out = append(out, ParanResult{
					BodyA:        a.ID,
					EventA:       evA,
					BodyB:        b.ID,
					EventB:       evB,
					LatitudeDeg:  root,
					LSTDeg:       astro.Wrap360(a.RADeg + ha),
					Method:       MethodNumeric,
					PrecisionDeg: math.Abs(residual),
				})
			}
		}
		prevLat, prevF, prevOK = lat, curF, curOK
	}
	return out
}

// bisectParan refines one bracketed root of the simultaneity residual,
// re-checking the arccos domain at every midpoint. Bisection is used rather
// than Newton's method precisely because the residual is undefined outside
// the domain; an unguarded step could walk out of it.
func bisectParan(a Body, evA ParanEvent, b Body, evB ParanEvent, lo, hi, flo float64, cfg ParanConfig) (root, residual float64, ok bool) {
	for i := 0; i < cfg.MaxIterations && hi-lo > cfg.ToleranceDeg; i++ {
		mid := (lo + hi) / 2
		fm, valid := paranResidual(a, evA, b, evB, mid)
		if !valid {
			return 0, 0, false
		}
		if fm == 0 {
			lo, hi = mid, mid
			break
		}
		if (flo < 0) == (fm < 0) {
			lo, flo = mid, fm
		} else {
			hi = mid
		}
	}

	root = (lo + hi) / 2
	residual, valid := paranResidual(a, evA, b, evB, root)
	if !valid {
		return 0, 0, false
	}
	return root, residual, true
}
