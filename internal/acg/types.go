// Package acg computes astrocartography loci: the angle lines (MC, IC, AC,
// DC), planet-to-angle aspect lines, and parans for a set of bodies frozen
// at a single instant. All functions are pure and safe for concurrent use.
package acg

import (
	"encoding/json"
	"fmt"
	"math"
)

// BodyKind tags the class of a celestial body.
type BodyKind string

const (
	BodyPlanet    BodyKind = "planet"
	BodyNode      BodyKind = "node"
	BodyLot       BodyKind = "lot"
	BodyFixedStar BodyKind = "fixed_star"
)

// Body is an immutable positional snapshot of a celestial body at the
// request's Julian Day. Coordinates come from the ephemeris provider;
// nothing here recomputes them.
type Body struct {
	ID        string   `json:"id"`
	Kind      BodyKind `json:"kind"`
	RADeg     float64  `json:"ra_deg"`
	DecDeg    float64  `json:"dec_deg"`
	EclLonDeg float64  `json:"ecl_lon_deg"`
	EclLatDeg float64  `json:"ecl_lat_deg"`
}

// Validate checks the snapshot for malformed coordinates.
func (b Body) Validate() error {
	if b.ID == "" {
		return &ValidationError{Field: "id", Reason: "must not be empty"}
	}
	switch b.Kind {
	case BodyPlanet, BodyNode, BodyLot, BodyFixedStar:
	default:
		return &ValidationError{Field: "kind", Reason: fmt.Sprintf("unknown body kind %q", b.Kind)}
	}
	for field, v := range map[string]float64{
		"ra_deg":      b.RADeg,
		"dec_deg":     b.DecDeg,
		"ecl_lon_deg": b.EclLonDeg,
		"ecl_lat_deg": b.EclLatDeg,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &ValidationError{Field: field, Reason: "must be finite"}
		}
	}
	if b.DecDeg < -90 || b.DecDeg > 90 {
		return &ValidationError{Field: "dec_deg", Reason: "must be in [-90, 90]"}
	}
	return nil
}

// AngleType identifies which local angle a line refers to.
type AngleType string

const (
	AngleMC     AngleType = "MC"
	AngleIC     AngleType = "IC"
	AngleAC     AngleType = "AC"
	AngleDC     AngleType = "DC"
	AngleAspect AngleType = "ANGLE_ASPECT"
)

// ParanEvent identifies the angular event a body holds in a paran.
type ParanEvent string

const (
	EventRise          ParanEvent = "rise"
	EventSet           ParanEvent = "set"
	EventCulminate     ParanEvent = "culminate"
	EventAnticulminate ParanEvent = "anticulminate"
)

// Solution methods reported on computed features.
const (
	MethodClosedForm = "closed_form"
	MethodNumeric    = "numeric"
)

// Point is a geographic coordinate. Longitude is kept in [-180, 180),
// latitude in [-90, 90].
type Point struct {
	Lon float64
	Lat float64
}

// MarshalJSON emits the GeoJSON-style [lon, lat] pair form.
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.Lon, p.Lat})
}

// UnmarshalJSON accepts the [lon, lat] pair form.
func (p *Point) UnmarshalJSON(data []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	p.Lon, p.Lat = pair[0], pair[1]
	return nil
}

// LineFeature is one renderable polyline of an astrocartography line.
// Coordinates never contain a jump exceeding the segmentation thresholds;
// longer lines are split into multiple features with distinct segment ids.
type LineFeature struct {
	BodyID       string    `json:"body_id"`
	Angle        AngleType `json:"angle_type"`
	AspectDeg    float64   `json:"aspect_deg,omitempty"`
	AspectTo     AngleType `json:"aspect_to,omitempty"`
	SegmentID    int       `json:"segment_id"`
	Method       string    `json:"method"`
	PrecisionDeg float64   `json:"precision_achieved_deg"`
	Coordinates  []Point   `json:"coordinates"`
}

// ParanResult is one latitude at which two bodies simultaneously stand at
// their respective angular events.
type ParanResult struct {
	BodyA        string     `json:"body_a"`
	EventA       ParanEvent `json:"event_a"`
	BodyB        string     `json:"body_b"`
	EventB       ParanEvent `json:"event_b"`
	LatitudeDeg  float64    `json:"latitude_deg"`
	LSTDeg       float64    `json:"lst_deg"`
	Method       string     `json:"method"`
	PrecisionDeg float64    `json:"precision_achieved_deg"`
}

// Request is a validated, immutable computation request.
type Request struct {
	Epoch              string       `json:"epoch"`
	JulianDay          float64      `json:"julian_day"`
	ObliquityDeg       float64      `json:"obliquity_deg"`
	Bodies             []Body       `json:"bodies"`
	LineTypes          []AngleType  `json:"line_types"`
	AspectDegrees      []float64    `json:"aspect_degrees,omitempty"`
	ParanEvents        []ParanEvent `json:"paran_events,omitempty"`
	PrecisionTargetDeg float64      `json:"precision_target_deg,omitempty"`
}

// Validate rejects a malformed request before any computation runs,
// reporting the first offending field.
func (r *Request) Validate() error {
	if r.Epoch == "" {
		return &ValidationError{Field: "epoch", Reason: "must not be empty"}
	}
	if math.IsNaN(r.JulianDay) || math.IsInf(r.JulianDay, 0) || r.JulianDay <= 0 {
		return &ValidationError{Field: "julian_day", Reason: "must be a positive finite value"}
	}
	if r.ObliquityDeg <= 0 || r.ObliquityDeg >= 90 || math.IsNaN(r.ObliquityDeg) {
		return &ValidationError{Field: "obliquity_deg", Reason: "must be in (0, 90)"}
	}
	if len(r.Bodies) == 0 {
		return &ValidationError{Field: "bodies", Reason: "must contain at least one body"}
	}
	seen := make(map[string]bool, len(r.Bodies))
	for i, b := range r.Bodies {
		if err := b.Validate(); err != nil {
			return &ValidationError{
				Field:  fmt.Sprintf("bodies[%d].%s", i, err.(*ValidationError).Field),
				Reason: err.(*ValidationError).Reason,
			}
		}
		if seen[b.ID] {
			return &ValidationError{Field: fmt.Sprintf("bodies[%d].id", i), Reason: "duplicate body id " + b.ID}
		}
		seen[b.ID] = true
	}
	for i, lt := range r.LineTypes {
		switch lt {
		case AngleMC, AngleIC, AngleAC, AngleDC, AngleAspect:
		default:
			return &ValidationError{Field: fmt.Sprintf("line_types[%d]", i), Reason: fmt.Sprintf("unknown line type %q", lt)}
		}
	}
	for i, a := range r.AspectDegrees {
		if math.IsNaN(a) || a <= 0 || a >= 360 {
			return &ValidationError{Field: fmt.Sprintf("aspect_degrees[%d]", i), Reason: "must be in (0, 360)"}
		}
	}
	for i, ev := range r.ParanEvents {
		switch ev {
		case EventRise, EventSet, EventCulminate, EventAnticulminate:
		default:
			return &ValidationError{Field: fmt.Sprintf("paran_events[%d]", i), Reason: fmt.Sprintf("unknown paran event %q", ev)}
		}
	}
	if r.PrecisionTargetDeg < 0 || math.IsNaN(r.PrecisionTargetDeg) {
		return &ValidationError{Field: "precision_target_deg", Reason: "must be >= 0"}
	}
	return nil
}
