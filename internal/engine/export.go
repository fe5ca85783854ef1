package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/litescript/ls-astrocarto/internal/acg"
)

// WriteJSON writes the result as indented JSON.
func (r *Result) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteSummary writes a human-readable table of the result.
func (r *Result) WriteSummary(w io.Writer) {
	fmt.Fprintf(w, "Astrocartography @ %s (GMST %.4f)\n", r.Epoch, r.GMSTDeg)
	fmt.Fprintln(w, strings.Repeat("─", 78))

	if len(r.Features) == 0 && len(r.Parans) == 0 {
		fmt.Fprintln(w, "No lines computed")
	}

	if len(r.Features) > 0 {
		fmt.Fprintf(w, "%-12s %-12s %-10s %-8s %-12s %-6s\n",
			"Body", "Angle", "Aspect", "Seg", "Method", "Points")
		fmt.Fprintln(w, strings.Repeat("─", 78))
		for _, f := range r.Features {
			aspect := "-"
			if f.Angle == acg.AngleAspect {
				aspect = fmt.Sprintf("%.0f°→%s", f.AspectDeg, f.AspectTo)
			}
			fmt.Fprintf(w, "%-12s %-12s %-10s %-8d %-12s %-6d\n",
				truncateStr(f.BodyID, 12), f.Angle, aspect, f.SegmentID, f.Method, len(f.Coordinates))
		}
	}

	if len(r.Parans) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%-12s %-14s %-12s %-14s %-12s %-12s\n",
			"Body A", "Event A", "Body B", "Event B", "Latitude", "Method")
		fmt.Fprintln(w, strings.Repeat("─", 78))
		for _, p := range r.Parans {
			fmt.Fprintf(w, "%-12s %-14s %-12s %-14s %+11.4f° %-12s\n",
				truncateStr(p.BodyA, 12), p.EventA, truncateStr(p.BodyB, 12), p.EventB,
				p.LatitudeDeg, p.Method)
		}
	}

	for _, d := range r.Diagnostics {
		fmt.Fprintf(w, "\nnote: %s %s: %s\n", d.BodyID, d.Angle, d.Detail)
	}

	fmt.Fprintf(w, "\nTotal: %d line segments, %d parans", len(r.Features), len(r.Parans))
	if len(r.Skipped) > 0 {
		fmt.Fprintf(w, " (%d items skipped, partial result)", len(r.Skipped))
	}
	fmt.Fprintln(w)
}

func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
