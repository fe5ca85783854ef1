// Package geojson renders engine results as a GeoJSON FeatureCollection for
// use in mapping tools.
package geojson

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/litescript/ls-astrocarto/internal/acg"
	"github.com/litescript/ls-astrocarto/internal/engine"
)

// Geometry is a GeoJSON geometry object.
type Geometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

// Feature is a GeoJSON feature object.
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// FeatureCollection is the top-level GeoJSON document.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// FromResult converts a computed result into a FeatureCollection. Line
// features become LineStrings; each paran becomes a latitude-circle
// LineString spanning the full map width at its latitude. Coordinates are
// rounded to six decimal places, about 0.1 m, which is far below line
// precision and keeps output size down.
func FromResult(res *engine.Result) FeatureCollection {
	fc := FeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]Feature, 0, len(res.Features)+len(res.Parans)),
	}

	for _, f := range res.Features {
		coords := make([][2]float64, len(f.Coordinates))
		for i, p := range f.Coordinates {
			coords[i] = [2]float64{round6(p.Lon), round6(p.Lat)}
		}

		props := map[string]any{
			"body_id":                f.BodyID,
			"angle_type":             string(f.Angle),
			"segment_id":             f.SegmentID,
			"method":                 f.Method,
			"precision_achieved_deg": f.PrecisionDeg,
		}
		if f.Angle == acg.AngleAspect {
			props["aspect_deg"] = f.AspectDeg
			props["aspect_to"] = string(f.AspectTo)
		}

		fc.Features = append(fc.Features, Feature{
			Type:       "Feature",
			Geometry:   Geometry{Type: "LineString", Coordinates: coords},
			Properties: props,
		})
	}

	for _, p := range res.Parans {
		lat := round6(p.LatitudeDeg)
		fc.Features = append(fc.Features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "LineString",
				Coordinates: [][2]float64{{-180, lat}, {180, lat}},
			},
			Properties: map[string]any{
				"kind":                   "paran",
				"body_a":                 p.BodyA,
				"event_a":                string(p.EventA),
				"body_b":                 p.BodyB,
				"event_b":                string(p.EventB),
				"latitude_deg":           lat,
				"method":                 p.Method,
				"precision_achieved_deg": p.PrecisionDeg,
			},
		})
	}
	return fc
}

// Write encodes the result as indented GeoJSON.
func Write(w io.Writer, res *engine.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromResult(res)); err != nil {
		return fmt.Errorf("encode geojson: %w", err)
	}
	return nil
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
