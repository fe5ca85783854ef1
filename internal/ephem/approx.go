package ephem

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/litescript/ls-astrocarto/internal/acg"
	"github.com/litescript/ls-astrocarto/internal/astro"
)

// Approx implements Provider with built-in low-precision models: a
// NOAA/Meeus-style solar position (arcminute-level accuracy) and the bright
// fixed-star catalog at their J2000 positions. It exists so the CLI can run
// without an external ephemeris; anything beyond the Sun and fixed stars
// needs a real provider.
type Approx struct{}

// Name implements Provider.
func (Approx) Name() string { return "approx" }

// Obliquity implements Provider with the IAU mean-obliquity polynomial.
func (Approx) Obliquity(jd float64) float64 {
	T := (jd - astro.J2000) / 36525.0
	return 23.4392911 - 0.0130041667*T - 1.63889e-7*T*T + 5.03611e-7*T*T*T
}

// Bodies implements Provider.
func (p Approx) Bodies(_ context.Context, jd float64, ids []string) ([]acg.Body, error) {
	obl := p.Obliquity(jd)

	out := make([]acg.Body, 0, len(ids))
	for _, id := range ids {
		switch {
		case strings.EqualFold(id, "sun"):
			lon := sunEclipticLongitude(jd)
			ra, dec := astro.EclipticToEquatorial(lon, 0, obl)
			out = append(out, acg.Body{
				ID:        id,
				Kind:      acg.BodyPlanet,
				RADeg:     ra,
				DecDeg:    dec,
				EclLonDeg: lon,
				EclLatDeg: 0,
			})

		default:
			star, ok := astro.LookupStar(id)
			if !ok {
				return nil, fmt.Errorf("ephem: unknown body %q", id)
			}
			lon, lat := astro.EquatorialToEcliptic(star.RAdeg, star.DecDeg, obl)
			out = append(out, acg.Body{
				ID:        id,
				Kind:      acg.BodyFixedStar,
				RADeg:     star.RAdeg,
				DecDeg:    star.DecDeg,
				EclLonDeg: lon,
				EclLatDeg: lat,
			})
		}
	}
	return out, nil
}

// sunEclipticLongitude returns the Sun's approximate geocentric ecliptic
// longitude in degrees, from the mean longitude plus the equation of center.
func sunEclipticLongitude(jd float64) float64 {
	d := jd - astro.J2000

	g := 357.529 + 0.98560028*d // mean anomaly, degrees
	q := 280.459 + 0.98564736*d // mean longitude, degrees

	gRad := g * math.Pi / 180
	return astro.Wrap360(q + 1.915*math.Sin(gRad) + 0.020*math.Sin(2*gRad))
}
