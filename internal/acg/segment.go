package acg

import "math"

// Segmentation thresholds. A longitude jump beyond MaxLonJumpDeg means the
// line crossed the date line; a latitude jump beyond MaxLatJumpDeg means the
// curve went unstable near a pole. Either way a renderer drawing a straight
// chord between the two points would paint a spurious line across the map.
const (
	MaxLonJumpDeg = 90.0
	MaxLatJumpDeg = 10.0
)

// SplitSegments breaks a coordinate sequence into separate polylines
// wherever consecutive points jump more than the segmentation thresholds.
// Pure transformation; the points themselves are never altered.
func SplitSegments(pts []Point) [][]Point {
	if len(pts) == 0 {
		return nil
	}

	var segs [][]Point
	cur := []Point{pts[0]}

	for _, p := range pts[1:] {
		last := cur[len(cur)-1]
		if math.Abs(p.Lon-last.Lon) > MaxLonJumpDeg || math.Abs(p.Lat-last.Lat) > MaxLatJumpDeg {
			segs = append(segs, cur)
			cur = []Point{p}
			continue
		}
		cur = append(cur, p)
	}
	return append(segs, cur)
}
