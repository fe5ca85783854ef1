package acg

import (
	"math"
	"testing"

	"github.com/litescript/ls-astrocarto/internal/astro"
)

const testObl = 23.4392911

func TestMCAspectLine_ClosedForm(t *testing.T) {
	gmst := 123.456789
	b := testBody("sun", 201.2345, -5.6789)

	for _, aspect := range []float64{60, 90, 120, 240, 270, 300} {
		pts := MCAspectLine(b, aspect, gmst, DefaultLineConfig())
		want := lonTo180(astro.Wrap360(b.RADeg + aspect - gmst))
		if math.Abs(pts[0].Lon-want) > 1e-9 {
			t.Errorf("aspect %.0f: longitude = %.9f, want %.9f", aspect, pts[0].Lon, want)
		}
	}
}

func TestACAspectLine_RootResidual(t *testing.T) {
	// Each traced point must satisfy the aspect condition to within the
	// configured tolerance when the offset is recomputed from scratch.
	gmst := 47.11
	b := testBody("venus", 310.0, -12.5)
	cfg := DefaultAspectConfig()
	finder := NewBisectionFinder(cfg)

	for _, aspect := range []float64{60, 90, 120} {
		pts := ACAspectLine(b, aspect, gmst, testObl, finder, cfg.LonStepDeg)
		if len(pts) == 0 {
			t.Fatalf("aspect %.0f: no points traced", aspect)
		}

		for _, p := range pts {
			asc := astro.AscendantLongitude(p.Lat, astro.LST(gmst, p.Lon), testObl)
			offset := astro.WrapPM180(b.EclLonDeg - asc - aspect)
			if math.Abs(offset) > cfg.ToleranceDeg*2 {
				t.Fatalf("aspect %.0f point (%.4f, %.4f): offset = %.6f, want within %.6f",
					aspect, p.Lon, p.Lat, offset, cfg.ToleranceDeg*2)
			}
		}
	}
}

func TestACAspectLine_LatitudeDomain(t *testing.T) {
	cfg := DefaultAspectConfig()
	finder := NewBisectionFinder(cfg)
	b := testBody("moon", 88.8, 19.2)

	pts := ACAspectLine(b, 90, 200.0, testObl, finder, cfg.LonStepDeg)
	for _, p := range pts {
		if math.Abs(p.Lat) > cfg.LatMaxDeg {
			t.Fatalf("point (%.4f, %.4f) outside the scanned latitude range", p.Lon, p.Lat)
		}
	}
}

func TestBisectionFinder_SkipsWrapDiscontinuity(t *testing.T) {
	// The offset function wraps at ±180°; brackets across that jump must not
	// be mistaken for roots. Any root the finder does report has to check
	// out against the aspect condition.
	finder := NewBisectionFinder(DefaultAspectConfig())
	lst := astro.LST(10.0, 0)

	for _, aspect := range []float64{60, 120, 240, 300} {
		for _, lat := range finder.Roots(5.0, aspect, 0, 10.0, testObl) {
			asc := astro.AscendantLongitude(lat, lst, testObl)
			offset := astro.WrapPM180(5.0 - asc - aspect)
			if math.Abs(offset) > 1e-3 {
				t.Errorf("aspect %.0f: reported root %.4f has offset %.6f", aspect, lat, offset)
			}
		}
	}
}
