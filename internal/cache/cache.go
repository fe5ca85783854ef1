// Package cache memoizes computed astrocartography results behind a
// pluggable storage backend.
package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrNotFound is returned by a Backend when a key is absent or expired.
var ErrNotFound = errors.New("cache: key not found")

// Backend is the pluggable storage interface. Implementations must be safe
// for concurrent use.
type Backend interface {
	// Get returns the payload for key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores payload under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error

	// Clear removes entries matching pattern. An empty pattern or "*" clears
	// everything; a trailing "*" matches by prefix.
	Clear(ctx context.Context, pattern string) error

	// Close releases backend resources.
	Close() error
}

// Stats reports cache effectiveness counters.
type Stats struct {
	Hits    uint64  `json:"hits"`
	Misses  uint64  `json:"misses"`
	Errors  uint64  `json:"errors"`
	HitRate float64 `json:"hit_rate"`
}

// ResultCache wraps a Backend with hit/miss accounting and per-key
// single-flight computation. Backend failures degrade to direct computation;
// they are logged and counted but never surfaced to the caller.
//
// A nil backend is valid and turns the cache into a pure pass-through that
// still collapses concurrent duplicate computations.
type ResultCache struct {
	backend Backend
	ttl     time.Duration
	log     *zap.Logger

	sf singleflight.Group

	hits   atomic.Uint64
	misses atomic.Uint64
	errs   atomic.Uint64
}

// New creates a ResultCache over backend. Entries expire after ttl.
func New(backend Backend, ttl time.Duration, log *zap.Logger) *ResultCache {
	if log == nil {
		log = zap.NewNop()
	}
	return &ResultCache{backend: backend, ttl: ttl, log: log}
}

// Get returns the cached payload for key, if present.
func (c *ResultCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c.backend == nil {
		c.misses.Add(1)
		return nil, false
	}

	payload, err := c.backend.Get(ctx, key)
	switch {
	case err == nil:
		c.hits.Add(1)
		return payload, true
	case errors.Is(err, ErrNotFound):
		c.misses.Add(1)
	default:
		c.errs.Add(1)
		c.log.Warn("cache get failed, computing directly",
			zap.String("key", key), zap.Error(err))
	}
	return nil, false
}

// GetOrCompute returns the cached payload for key, or invokes compute. Under
// concurrent load at most one compute runs per key; the other callers share
// its result. compute reports whether its payload may be stored — partial
// results (for example after a batch timeout) pass false and are returned
// without being cached.
func (c *ResultCache) GetOrCompute(ctx context.Context, key string, compute func() ([]byte, bool, error)) (payload []byte, hit bool, err error) {
	if payload, ok := c.Get(ctx, key); ok {
		return payload, true, nil
	}

	v, err, _ := c.sf.Do(key, func() (any, error) {
		payload, cacheable, err := compute()
		if err != nil {
			return nil, err
		}
		if cacheable {
			c.put(ctx, key, payload)
		}
		return payload, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.([]byte), false, nil
}

func (c *ResultCache) put(ctx context.Context, key string, payload []byte) {
	if c.backend == nil {
		return
	}
	if err := c.backend.Set(ctx, key, payload, c.ttl); err != nil {
		c.errs.Add(1)
		c.log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Clear removes entries matching pattern from the backend.
func (c *ResultCache) Clear(ctx context.Context, pattern string) error {
	if c.backend == nil {
		return nil
	}
	return c.backend.Clear(ctx, pattern)
}

// Stats returns a snapshot of the counters.
func (c *ResultCache) Stats() Stats {
	s := Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Errors: c.errs.Load(),
	}
	if total := s.Hits + s.Misses; total > 0 {
		s.HitRate = float64(s.Hits) / float64(total)
	}
	return s
}

// Close releases the backend.
func (c *ResultCache) Close() error {
	if c.backend == nil {
		return nil
	}
	return c.backend.Close()
}
