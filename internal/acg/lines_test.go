package acg

import (
	"errors"
	"math"
	"testing"

	"github.com/litescript/ls-astrocarto/internal/astro"
)

func testBody(id string, ra, dec float64) Body {
	lon, lat := astro.EquatorialToEcliptic(ra, dec, 23.4392911)
	return Body{
		ID:        id,
		Kind:      BodyPlanet,
		RADeg:     ra,
		DecDeg:    dec,
		EclLonDeg: lon,
		EclLatDeg: lat,
	}
}

func TestMeridianLine_MCExample(t *testing.T) {
	// RA=201.2345, GMST=123.456789 puts the MC meridian at 77.777711 east.
	pts := MeridianLine(201.2345, 123.456789, 0, DefaultLineConfig())
	if len(pts) != 721 {
		t.Fatalf("MeridianLine returned %d points, want 721", len(pts))
	}

	wantLon := 77.777711
	for _, p := range pts {
		if math.Abs(p.Lon-wantLon) > 1e-6 {
			t.Fatalf("MC longitude = %.6f, want %.6f", p.Lon, wantLon)
		}
	}

	if pts[0].Lat != -89.9 || pts[len(pts)-1].Lat != 89.9 {
		t.Errorf("meridian spans [%.2f, %.2f], want [-89.9, 89.9]", pts[0].Lat, pts[len(pts)-1].Lat)
	}
}

func TestMeridianLine_ICOppositeMC(t *testing.T) {
	for ra := 0.0; ra < 360; ra += 41.7 {
		mc := MeridianLine(ra, 123.456789, 0, DefaultLineConfig())
		ic := MeridianLine(ra, 123.456789, 180, DefaultLineConfig())

		diff := astro.Wrap360(ic[0].Lon - mc[0].Lon)
		if math.Abs(diff-180) > 1e-9 {
			t.Errorf("RA %.1f: IC-MC longitude difference = %.9f, want 180", ra, diff)
		}
	}
}

func TestMeridianLine_ICExample(t *testing.T) {
	// wrap(201.2345 + 180 - 123.456789) = 257.777711, which is -102.222289
	// in the output longitude domain.
	pts := MeridianLine(201.2345, 123.456789, 180, DefaultLineConfig())
	if math.Abs(pts[0].Lon-(-102.222289)) > 1e-6 {
		t.Errorf("IC longitude = %.6f, want -102.222289", pts[0].Lon)
	}
}

func TestHorizonLine_AltitudeResidual(t *testing.T) {
	// Every point on an AC/DC line must sit on the body's horizon: the
	// recomputed altitude has to vanish.
	gmst := 47.11
	b := testBody("mars", 123.4, 17.8)

	for _, angle := range []AngleType{AngleAC, AngleDC} {
		pts, err := HorizonLine(b, gmst, angle, DefaultLineConfig())
		if err != nil {
			t.Fatalf("HorizonLine(%s) error = %v", angle, err)
		}
		if len(pts) == 0 {
			t.Fatalf("HorizonLine(%s) returned no points", angle)
		}

		for _, p := range pts {
			ha := astro.HourAngle(astro.LST(gmst, p.Lon), b.RADeg)
			alt := astro.Altitude(p.Lat, b.DecDeg, ha)
			if math.Abs(alt) > 1e-6 {
				t.Fatalf("%s point (%.4f, %.4f): altitude = %.9f, want ~0", angle, p.Lon, p.Lat, alt)
			}
		}
	}
}

func TestHorizonLine_SideMasks(t *testing.T) {
	gmst := 222.2
	b := testBody("venus", 310.0, -12.5)

	ac, err := HorizonLine(b, gmst, AngleAC, DefaultLineConfig())
	if err != nil {
		t.Fatalf("AC error = %v", err)
	}
	for _, p := range ac {
		if ha := astro.HourAngle(astro.LST(gmst, p.Lon), b.RADeg); ha >= 0 {
			t.Fatalf("AC point at lon %.4f has hour angle %.4f, want < 0", p.Lon, ha)
		}
	}

	dc, err := HorizonLine(b, gmst, AngleDC, DefaultLineConfig())
	if err != nil {
		t.Fatalf("DC error = %v", err)
	}
	for _, p := range dc {
		if ha := astro.HourAngle(astro.LST(gmst, p.Lon), b.RADeg); ha <= 0 {
			t.Fatalf("DC point at lon %.4f has hour angle %.4f, want > 0", p.Lon, ha)
		}
	}
}

func TestHorizonLine_ZeroDeclination(t *testing.T) {
	// dec=0 drives sin(dec) to zero; the clamped denominator must keep every
	// latitude finite without a division error.
	b := testBody("equatorial", 200.0, 0)

	pts, err := HorizonLine(b, 100.0, AngleAC, DefaultLineConfig())
	if err != nil {
		t.Fatalf("HorizonLine error = %v", err)
	}
	for _, p := range pts {
		if math.IsNaN(p.Lat) || math.Abs(p.Lat) > 90 {
			t.Fatalf("point (%.4f, %.4f) escaped the latitude domain", p.Lon, p.Lat)
		}
	}
}

func TestHorizonLine_UnsupportedAngle(t *testing.T) {
	_, err := HorizonLine(testBody("x", 10, 10), 0, AngleMC, DefaultLineConfig())
	if !errors.Is(err, ErrUnsupportedAngle) {
		t.Errorf("HorizonLine(MC) error = %v, want ErrUnsupportedAngle", err)
	}
}

func TestHorizonLine_LongitudeDomain(t *testing.T) {
	b := testBody("jupiter", 55.5, 21.0)
	pts, err := HorizonLine(b, 300.0, AngleDC, DefaultLineConfig())
	if err != nil {
		t.Fatalf("HorizonLine error = %v", err)
	}
	for _, p := range pts {
		if p.Lon < -180 || p.Lon >= 180 {
			t.Fatalf("longitude %.6f outside [-180, 180)", p.Lon)
		}
	}
}
