package acg

import (
	"math"
	"testing"
)

func TestFindParans_MeridianHorizonClosedForm(t *testing.T) {
	// A body culminating at dec=+19, RA=45 while a second body rises at
	// dec=-5, RA=200 admits exactly one latitude, found without iteration.
	a := testBody("a", 45, 19)
	b := testBody("b", 200, -5)

	results := FindParans(a, EventCulminate, b, EventRise, DefaultParanConfig())
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}

	r := results[0]
	if r.Method != MethodClosedForm {
		t.Errorf("method = %q, want %q", r.Method, MethodClosedForm)
	}
	if math.Abs(r.LatitudeDeg-(-84.4866)) > 0.01 {
		t.Errorf("latitude = %.4f, want ~-84.4866", r.LatitudeDeg)
	}
	if r.PrecisionDeg > 0.03 {
		t.Errorf("precision achieved = %.6f, want <= 0.03", r.PrecisionDeg)
	}

	// The domain constraint must hold at the solution for the horizon body.
	prod := math.Tan(degToRad(r.LatitudeDeg)) * math.Tan(degToRad(b.DecDeg))
	if math.Abs(prod) > 1 {
		t.Errorf("|tan(lat)*tan(dec)| = %.6f, want <= 1", math.Abs(prod))
	}

	// And the simultaneity equation must close to within the precision.
	residual, ok := paranResidual(a, EventCulminate, b, EventRise, r.LatitudeDeg)
	if !ok || math.Abs(residual) > r.PrecisionDeg+1e-9 {
		t.Errorf("residual = %.9f (ok=%v), want within %.9f", residual, ok, r.PrecisionDeg)
	}
}

func TestFindParans_MeridianHorizonWrongEventSign(t *testing.T) {
	// The same geometry paired with the setting event instead of the rising
	// one has no simultaneous solution; nothing may be fabricated.
	a := testBody("a", 45, 19)
	b := testBody("b", 200, -5)

	if results := FindParans(a, EventCulminate, b, EventSet, DefaultParanConfig()); len(results) != 0 {
		t.Errorf("got %d results for the mismatched event sign, want 0", len(results))
	}
}

func TestFindParans_SwappedOrderPreserved(t *testing.T) {
	// Horizon body first, meridian body second: the result must keep the
	// caller's ordering of bodies and events.
	a := testBody("a", 200, -5)
	b := testBody("b", 45, 19)

	results := FindParans(a, EventRise, b, EventCulminate, DefaultParanConfig())
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	r := results[0]
	if r.BodyA != "a" || r.EventA != EventRise || r.BodyB != "b" || r.EventB != EventCulminate {
		t.Errorf("ordering not preserved: %+v", r)
	}
}

func TestFindParans_HorizonHorizon(t *testing.T) {
	a := testBody("a", 45, 19)
	b := testBody("b", 200, -5)
	cfg := DefaultParanConfig()

	results := FindParans(a, EventRise, b, EventSet, cfg)
	if len(results) == 0 {
		t.Fatal("expected at least one horizon-horizon root")
	}

	for _, r := range results {
		if r.Method != MethodNumeric {
			t.Errorf("method = %q, want %q", r.Method, MethodNumeric)
		}
		if r.PrecisionDeg > cfg.ToleranceDeg*10 {
			t.Errorf("residual %.6f too large for tolerance %.6f", r.PrecisionDeg, cfg.ToleranceDeg)
		}

		// The domain constraint holds for both bodies at every root.
		for _, body := range []Body{a, b} {
			prod := math.Tan(degToRad(r.LatitudeDeg)) * math.Tan(degToRad(body.DecDeg))
			if math.Abs(prod) > 1 {
				t.Errorf("root %.4f: |tan(lat)*tan(dec)| = %.4f for %s", r.LatitudeDeg, math.Abs(prod), body.ID)
			}
		}

		if r.LSTDeg < 0 || r.LSTDeg >= 360 {
			t.Errorf("lst = %.6f outside [0, 360)", r.LSTDeg)
		}
	}
}

func TestFindParans_MeridianMeridianSuppressed(t *testing.T) {
	a := testBody("a", 100, 10)
	b := testBody("b", 100, -30) // identical RA: the degenerate case with "solutions" everywhere

	pairs := [][2]ParanEvent{
		{EventCulminate, EventCulminate},
		{EventAnticulminate, EventAnticulminate},
		{EventCulminate, EventAnticulminate},
	}
	for _, p := range pairs {
		if results := FindParans(a, p[0], b, p[1], DefaultParanConfig()); len(results) != 0 {
			t.Errorf("%s-%s: got %d results, want suppressed", p[0], p[1], len(results))
		}
	}
}

func TestFindParans_DomainViolatingIntervalsSkipped(t *testing.T) {
	// Two high-declination bodies confine the valid domain to a narrow band
	// around the equator; the scan must not report roots outside it.
	a := testBody("a", 10, 80)
	b := testBody("b", 100, 75)

	results := FindParans(a, EventRise, b, EventRise, DefaultParanConfig())
	for _, r := range results {
		for _, body := range []Body{a, b} {
			prod := math.Tan(degToRad(r.LatitudeDeg)) * math.Tan(degToRad(body.DecDeg))
			if math.Abs(prod) > 1 {
				t.Errorf("root %.4f violates the arccos domain for %s", r.LatitudeDeg, body.ID)
			}
		}
	}
}

func TestEventHourAngle(t *testing.T) {
	tests := []struct {
		name     string
		ev       ParanEvent
		lat, dec float64
		want     float64
		wantOK   bool
	}{
		{"culmination is meridian", EventCulminate, 50, 30, 0, true},
		{"anticulmination is antimeridian", EventAnticulminate, 50, 30, 180, true},
		{"equatorial body rises at -90", EventRise, 0, 0, -90, true},
		{"equatorial body sets at +90", EventSet, 0, 0, 90, true},
		{"circumpolar has no rise", EventRise, 80, 60, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := eventHourAngle(tt.ev, tt.lat, tt.dec)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("hour angle = %.9f, want %.9f", got, tt.want)
			}
		})
	}
}
