package acg

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitSegments(t *testing.T) {
	tests := []struct {
		name string
		in   []Point
		want [][]Point
	}{
		{
			name: "empty",
			in:   nil,
			want: nil,
		},
		{
			name: "single point",
			in:   []Point{{Lon: 1, Lat: 2}},
			want: [][]Point{{{Lon: 1, Lat: 2}}},
		},
		{
			name: "continuous line stays whole",
			in:   []Point{{0, 0}, {1, 1}, {2, 2}, {3, 3}},
			want: [][]Point{{{0, 0}, {1, 1}, {2, 2}, {3, 3}}},
		},
		{
			name: "date line jump splits",
			in:   []Point{{178, 10}, {179.5, 10.5}, {-179.5, 11}, {-178, 11.5}},
			want: [][]Point{
				{{178, 10}, {179.5, 10.5}},
				{{-179.5, 11}, {-178, 11.5}},
			},
		},
		{
			name: "polar latitude jump splits",
			in:   []Point{{10, 70}, {10.5, 75}, {11, 88}, {11.5, 89}},
			want: [][]Point{
				{{10, 70}, {10.5, 75}},
				{{11, 88}, {11.5, 89}},
			},
		},
		{
			name: "multiple breaks",
			in:   []Point{{-179, 0}, {179, 0}, {178, 0}, {178.5, 50}},
			want: [][]Point{
				{{-179, 0}},
				{{179, 0}, {178, 0}},
				{{178.5, 50}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSegments(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SplitSegments() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplitSegments_NoViolatingNeighbors(t *testing.T) {
	// Run the segmenter over a real DC sweep and verify the invariant that
	// no segment retains a threshold-violating pair.
	b := testBody("saturn", 200.0, 0)
	pts, err := HorizonLine(b, 100.0, AngleDC, DefaultLineConfig())
	if err != nil {
		t.Fatalf("HorizonLine error = %v", err)
	}

	for _, seg := range SplitSegments(pts) {
		if len(seg) == 0 {
			t.Fatal("segmenter produced an empty segment")
		}
		for i := 1; i < len(seg); i++ {
			dLon := math.Abs(seg[i].Lon - seg[i-1].Lon)
			dLat := math.Abs(seg[i].Lat - seg[i-1].Lat)
			if dLon > MaxLonJumpDeg || dLat > MaxLatJumpDeg {
				t.Fatalf("segment keeps jump dLon=%.2f dLat=%.2f", dLon, dLat)
			}
		}
	}
}
