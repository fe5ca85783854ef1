package acg

import (
	"errors"
	"fmt"
)

// Errors scoped to a single body/line computation. Callers convert these to
// diagnostics; they never abort a whole batch.
var (
	// ErrNoHorizonCrossing means the requested AC/DC side produced no valid
	// samples. The sweep is never relaxed to mix both sides into one line.
	ErrNoHorizonCrossing = errors.New("no horizon crossing on requested side")

	// ErrUnsupportedAngle means a line generator was asked for an angle type
	// it does not produce.
	ErrUnsupportedAngle = errors.New("unsupported angle type")
)

// ValidationError reports a malformed request field. It is raised before any
// computation and names the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request field %s: %s", e.Field, e.Reason)
}

// Diagnostic records a computation failure scoped to one body/line-type or
// body pair. Absence of a solution is reported here, never papered over with
// a fabricated line.
type Diagnostic struct {
	BodyID    string    `json:"body_id"`
	BodyB     string    `json:"body_b,omitempty"`
	Angle     AngleType `json:"angle_type,omitempty"`
	AspectDeg float64   `json:"aspect_deg,omitempty"`
	Detail    string    `json:"detail"`
}
