package astro

import (
	"math"
	"testing"
)

const testObliquity = 23.4392911

func TestEclipticToEquatorial(t *testing.T) {
	tests := []struct {
		name     string
		lon, lat float64
		wantRA   float64
		wantDec  float64
	}{
		{
			name: "vernal equinox direction",
			lon:  0, lat: 0,
			wantRA: 0, wantDec: 0,
		},
		{
			name: "summer solstice direction",
			lon:  90, lat: 0,
			wantRA: 90, wantDec: testObliquity,
		},
		{
			name: "autumn equinox direction",
			lon:  180, lat: 0,
			wantRA: 180, wantDec: 0,
		},
		{
			name: "winter solstice direction",
			lon:  270, lat: 0,
			wantRA: 270, wantDec: -testObliquity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ra, dec := EclipticToEquatorial(tt.lon, tt.lat, testObliquity)
			if math.Abs(ra-tt.wantRA) > 1e-9 || math.Abs(dec-tt.wantDec) > 1e-9 {
				t.Errorf("EclipticToEquatorial(%.1f, %.1f) = (%.9f, %.9f), want (%.9f, %.9f)",
					tt.lon, tt.lat, ra, dec, tt.wantRA, tt.wantDec)
			}
		})
	}
}

func TestEclipticEquatorialRoundTrip(t *testing.T) {
	for lon := 5.0; lon < 360; lon += 47.3 {
		for _, lat := range []float64{-60, -10, 0, 10, 60} {
			ra, dec := EclipticToEquatorial(lon, lat, testObliquity)
			gotLon, gotLat := EquatorialToEcliptic(ra, dec, testObliquity)

			if math.Abs(WrapPM180(gotLon-lon)) > 1e-9 || math.Abs(gotLat-lat) > 1e-9 {
				t.Errorf("round trip (%.1f, %.1f) -> (%.9f, %.9f)", lon, lat, gotLon, gotLat)
			}
		}
	}
}

func TestAscendantLongitude(t *testing.T) {
	// At zero obliquity on the equator the Ascendant reduces to the local
	// sidereal time itself.
	for lst := 0.0; lst < 360; lst += 30 {
		got := AscendantLongitude(0, lst, 0)
		if math.Abs(WrapPM180(got-lst)) > 1e-9 {
			t.Errorf("AscendantLongitude(0, %.1f, 0) = %.9f, want %.9f", lst, got, lst)
		}
	}
}

func TestAscendantLongitude_StableAtQuadrature(t *testing.T) {
	// Θ = 90° makes cos(Θ) vanish; the atan2 form must stay finite.
	for _, lat := range []float64{-66, -30, 0, 30, 66} {
		got := AscendantLongitude(lat, 90, testObliquity)
		if math.IsNaN(got) || got < 0 || got >= 360 {
			t.Errorf("AscendantLongitude(%.1f, 90, eps) = %v, want finite in [0, 360)", lat, got)
		}
	}
}

func TestAscendantLongitude_Range(t *testing.T) {
	for lat := -85.0; lat <= 85; lat += 17 {
		for lst := 0.0; lst < 360; lst += 23 {
			got := AscendantLongitude(lat, lst, testObliquity)
			if got < 0 || got >= 360 {
				t.Fatalf("AscendantLongitude(%.1f, %.1f) = %.9f outside [0, 360)", lat, lst, got)
			}
		}
	}
}

func TestAltitude(t *testing.T) {
	tests := []struct {
		name               string
		lat, dec, ha, want float64
	}{
		{"zenith", 40, 40, 0, 90},
		{"pole star from pole", 90, 90, 120, 90},
		{"equator body on horizon", 0, 0, 90, 0},
		{"antimeridian opposite", 0, 0, 180, -90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Altitude(tt.lat, tt.dec, tt.ha)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Altitude(%.1f, %.1f, %.1f) = %.9f, want %.9f", tt.lat, tt.dec, tt.ha, got, tt.want)
			}
		})
	}
}

func TestLookupStar(t *testing.T) {
	s, ok := LookupStar("sirius")
	if !ok {
		t.Fatal("LookupStar(sirius) not found")
	}
	if math.Abs(s.RAdeg-101.287) > 1e-3 || math.Abs(s.DecDeg+16.716) > 1e-3 {
		t.Errorf("Sirius position = (%.3f, %.3f)", s.RAdeg, s.DecDeg)
	}

	if _, ok := LookupStar("no-such-star"); ok {
		t.Error("LookupStar(no-such-star) should not be found")
	}
}
