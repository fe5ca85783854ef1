// Package ephem defines the ephemeris position provider consumed by the
// astrocartography engine, plus a low-precision built-in implementation.
package ephem

import (
	"context"

	"github.com/litescript/ls-astrocarto/internal/acg"
)

// Provider supplies positional snapshots for bodies at a Julian Day. The
// engine only consumes these values; it never computes ephemerides itself.
// Production deployments wrap a native ephemeris library behind this
// interface.
type Provider interface {
	// Name returns the provider name for display/logging.
	Name() string

	// Bodies returns one snapshot per requested identifier, in request
	// order. Unknown identifiers are an error naming the identifier.
	Bodies(ctx context.Context, jd float64, ids []string) ([]acg.Body, error)

	// Obliquity returns the true obliquity of the ecliptic in degrees.
	Obliquity(jd float64) float64
}
