package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/litescript/ls-astrocarto/internal/acg"
)

// RequestKey derives a deterministic cache key from a request's semantic
// content. Bodies, line types, aspects and events are sorted before hashing,
// so two requests that differ only in ordering share one key. Floats are
// formatted at nine decimal places; differences below that are noise from
// the caller, not distinct requests.
func RequestKey(req *acg.Request) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "epoch=%s|jd=%.9f|obl=%.9f|prec=%.9f\n",
		req.Epoch, req.JulianDay, req.ObliquityDeg, req.PrecisionTargetDeg)

	bodies := make([]string, 0, len(req.Bodies))
	for _, b := range req.Bodies {
		bodies = append(bodies, fmt.Sprintf("%s:%s:%.9f:%.9f:%.9f:%.9f",
			b.ID, b.Kind, b.RADeg, b.DecDeg, b.EclLonDeg, b.EclLatDeg))
	}
	sort.Strings(bodies)
	sb.WriteString(strings.Join(bodies, ";"))
	sb.WriteByte('\n')

	lines := make([]string, 0, len(req.LineTypes))
	for _, lt := range req.LineTypes {
		lines = append(lines, string(lt))
	}
	sort.Strings(lines)
	sb.WriteString(strings.Join(lines, ";"))
	sb.WriteByte('\n')

	aspects := make([]string, 0, len(req.AspectDegrees))
	for _, a := range req.AspectDegrees {
		aspects = append(aspects, fmt.Sprintf("%.9f", a))
	}
	sort.Strings(aspects)
	sb.WriteString(strings.Join(aspects, ";"))
	sb.WriteByte('\n')

	events := make([]string, 0, len(req.ParanEvents))
	for _, ev := range req.ParanEvents {
		events = append(events, string(ev))
	}
	sort.Strings(events)
	sb.WriteString(strings.Join(events, ";"))

	sum := sha256.Sum256([]byte(sb.String()))
	return "acg:" + hex.EncodeToString(sum[:])
}
