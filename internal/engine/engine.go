// Package engine fans astrocartography work across a bounded worker pool and
// memoizes whole-request results.
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/litescript/ls-astrocarto/internal/acg"
	"github.com/litescript/ls-astrocarto/internal/astro"
	"github.com/litescript/ls-astrocarto/internal/cache"
	"github.com/litescript/ls-astrocarto/internal/config"
)

// WorkItem is one independent unit of computation: a single body/line-type
// combination, one body/aspect combination, or one body-pair/event-pair
// paran. Items never depend on each other, so they parallelize freely.
type WorkItem struct {
	BodyID    string         `json:"body_id"`
	BodyB     string         `json:"body_b,omitempty"`
	Angle     acg.AngleType  `json:"angle_type,omitempty"`
	AspectDeg float64        `json:"aspect_deg,omitempty"`
	AspectTo  acg.AngleType  `json:"aspect_to,omitempty"`
	EventA    acg.ParanEvent `json:"event_a,omitempty"`
	EventB    acg.ParanEvent `json:"event_b,omitempty"`
}

func (w WorkItem) String() string {
	if w.EventA != "" {
		return fmt.Sprintf("paran %s/%s + %s/%s", w.BodyID, w.EventA, w.BodyB, w.EventB)
	}
	if w.Angle == acg.AngleAspect {
		return fmt.Sprintf("aspect %s %.1f to %s", w.BodyID, w.AspectDeg, w.AspectTo)
	}
	return fmt.Sprintf("line %s %s", w.BodyID, w.Angle)
}

// Result is the complete outcome of one request. When the batch deadline
// expires before all items finish, Features and Parans hold whatever
// completed and Skipped names the rest; partial results are never cached.
type Result struct {
	RequestID   string            `json:"request_id"`
	Epoch       string            `json:"epoch"`
	GMSTDeg     float64           `json:"gmst_deg"`
	Features    []acg.LineFeature `json:"features"`
	Parans      []acg.ParanResult `json:"parans,omitempty"`
	Diagnostics []acg.Diagnostic  `json:"diagnostics,omitempty"`
	Skipped     []WorkItem        `json:"skipped,omitempty"`
	CacheHit    bool              `json:"cache_hit"`
	ElapsedMS   int64             `json:"elapsed_ms"`
}

// Engine orchestrates line and paran computation for validated requests.
type Engine struct {
	cfg   config.Config
	cache *cache.ResultCache
	log   *zap.Logger
}

// New wires an Engine. A nil cache disables memoization; a nil logger is
// replaced with a no-op.
func New(cfg config.Config, rc *cache.ResultCache, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	if rc == nil {
		rc = cache.New(nil, 0, log)
	}
	return &Engine{cfg: cfg, cache: rc, log: log}
}

// Cache exposes the result cache for stats reporting and invalidation.
func (e *Engine) Cache() *cache.ResultCache { return e.cache }

// Compute runs one request, serving it from cache when an identical request
// was answered before. Identical means same cache key; see RequestKey.
func (e *Engine) Compute(ctx context.Context, req *acg.Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	key := RequestKey(req)

	payload, hit, err := e.cache.GetOrCompute(ctx, key, func() ([]byte, bool, error) {
		res, err := e.computeAll(ctx, req)
		if err != nil {
			return nil, false, err
		}
		data, err := json.Marshal(res)
		if err != nil {
			return nil, false, fmt.Errorf("encode result: %w", err)
		}
		// A timed-out batch is answerable but not reusable.
		return data, len(res.Skipped) == 0, nil
	})
	if err != nil {
		return nil, err
	}

	var res Result
	if err := json.Unmarshal(payload, &res); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	res.CacheHit = hit
	res.ElapsedMS = time.Since(start).Milliseconds()

	e.log.Debug("request computed",
		zap.String("request_id", res.RequestID),
		zap.Bool("cache_hit", hit),
		zap.Int("features", len(res.Features)),
		zap.Int("parans", len(res.Parans)),
		zap.Int("skipped", len(res.Skipped)))
	return &res, nil
}

// ComputeBatch answers several requests, computing each distinct cache key
// once. Results come back in request order; an error on any request aborts
// the batch.
func (e *Engine) ComputeBatch(ctx context.Context, reqs []*acg.Request) ([]*Result, error) {
	out := make([]*Result, len(reqs))

	byKey := make(map[string][]int, len(reqs))
	for i, req := range reqs {
		if err := req.Validate(); err != nil {
			return nil, fmt.Errorf("request %d: %w", i, err)
		}
		key := RequestKey(req)
		byKey[key] = append(byKey[key], i)
	}

	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		idxs := byKey[key]
		res, err := e.Compute(ctx, reqs[idxs[0]])
		if err != nil {
			return nil, err
		}
		out[idxs[0]] = res
		for _, i := range idxs[1:] {
			dup := *res
			dup.CacheHit = true
			out[i] = &dup
		}
	}
	return out, nil
}

// computeAll runs the full fan-out for a cache miss.
func (e *Engine) computeAll(ctx context.Context, req *acg.Request) (*Result, error) {
	gmst := astro.GMST(req.JulianDay)
	items := e.expand(req)

	res := &Result{
		RequestID: uuid.NewString(),
		Epoch:     req.Epoch,
		GMSTDeg:   gmst,
	}

	bodies := make(map[string]acg.Body, len(req.Bodies))
	for _, b := range req.Bodies {
		bodies[b.ID] = b
	}

	lineCfg := acg.LineConfig{
		MeridianLatSteps: e.cfg.MeridianLatSteps,
		HorizonLonSteps:  e.cfg.HorizonLonSteps,
	}
	aspectCfg := acg.AspectConfig{
		LonStepDeg:    e.cfg.AspectLonStepDeg,
		LatStepDeg:    e.cfg.AspectLatStepDeg,
		LatMaxDeg:     89.5,
		ToleranceDeg:  e.cfg.AspectToleranceDeg,
		MaxIterations: e.cfg.MaxIterations,
	}
	paranCfg := acg.ParanConfig{
		LatStepDeg:    e.cfg.ParanLatStepDeg,
		LatMaxDeg:     89.9,
		ToleranceDeg:  e.paranTolerance(req),
		MaxIterations: e.cfg.MaxIterations,
	}
	finder := acg.NewBisectionFinder(aspectCfg)

	type itemOut struct {
		item     WorkItem
		features []acg.LineFeature
		parans   []acg.ParanResult
		diag     *acg.Diagnostic
	}
	outs := make([]*itemOut, len(items))

	ctx, cancel := context.WithTimeout(ctx, time.Duration(e.cfg.RequestTimeout))
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)

	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			select {
			case <-gctx.Done():
				// Deadline or sibling failure; leave outs[i] nil so the item
				// is reported as skipped.
				return nil
			default:
			}

			o := &itemOut{item: item}
			switch {
			case item.EventA != "":
				a, b := bodies[item.BodyID], bodies[item.BodyB]
				o.parans = acg.FindParans(a, item.EventA, b, item.EventB, paranCfg)

			case item.Angle == acg.AngleAspect:
				o.features, o.diag = e.aspectFeatures(bodies[item.BodyID], item, gmst, req.ObliquityDeg, lineCfg, finder)

			default:
				o.features, o.diag = e.angleFeatures(bodies[item.BodyID], item.Angle, gmst, lineCfg)
			}
			outs[i] = o
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, o := range outs {
		if o == nil {
			res.Skipped = append(res.Skipped, items[i])
			continue
		}
		res.Features = append(res.Features, o.features...)
		res.Parans = append(res.Parans, o.parans...)
		if o.diag != nil {
			res.Diagnostics = append(res.Diagnostics, *o.diag)
		}
	}

	if len(res.Skipped) > 0 {
		e.log.Warn("batch deadline expired before all items completed",
			zap.Int("completed", len(items)-len(res.Skipped)),
			zap.Int("skipped", len(res.Skipped)))
	}
	return res, nil
}

// expand enumerates the independent work items of a request: one per
// body/line-type, one per body/aspect/target-angle, and one per ordered
// event pair over each unordered body pair.
func (e *Engine) expand(req *acg.Request) []WorkItem {
	var items []WorkItem

	for _, b := range req.Bodies {
		for _, lt := range req.LineTypes {
			if lt == acg.AngleAspect {
				for _, a := range req.AspectDegrees {
					items = append(items,
						WorkItem{BodyID: b.ID, Angle: acg.AngleAspect, AspectDeg: a, AspectTo: acg.AngleMC},
						WorkItem{BodyID: b.ID, Angle: acg.AngleAspect, AspectDeg: a, AspectTo: acg.AngleAC},
					)
				}
				continue
			}
			items = append(items, WorkItem{BodyID: b.ID, Angle: lt})
		}
	}

	if len(req.ParanEvents) > 0 {
		for i := 0; i < len(req.Bodies); i++ {
			for j := i + 1; j < len(req.Bodies); j++ {
				for _, evA := range req.ParanEvents {
					for _, evB := range req.ParanEvents {
						items = append(items, WorkItem{
							BodyID: req.Bodies[i].ID, EventA: evA,
							BodyB: req.Bodies[j].ID, EventB: evB,
						})
					}
				}
			}
		}
	}
	return items
}

// angleFeatures computes one body's MC, IC, AC or DC line and splits it into
// renderable segments.
func (e *Engine) angleFeatures(b acg.Body, angle acg.AngleType, gmst float64, cfg acg.LineConfig) ([]acg.LineFeature, *acg.Diagnostic) {
	var (
		pts       []acg.Point
		method    string
		precision float64
		err       error
	)

	switch angle {
	case acg.AngleMC:
		pts = acg.MeridianLine(b.RADeg, gmst, 0, cfg)
		method = acg.MethodClosedForm
	case acg.AngleIC:
		pts = acg.MeridianLine(b.RADeg, gmst, 180, cfg)
		method = acg.MethodClosedForm
	case acg.AngleAC, acg.AngleDC:
		pts, err = acg.HorizonLine(b, gmst, angle, cfg)
		method = acg.MethodNumeric
		precision = 360.0 / float64(cfg.HorizonLonSteps-1)
	default:
		err = acg.ErrUnsupportedAngle
	}

	if err != nil {
		return nil, &acg.Diagnostic{BodyID: b.ID, Angle: angle, Detail: err.Error()}
	}
	return e.toFeatures(b.ID, angle, 0, "", method, precision, pts), nil
}

// aspectFeatures computes one body/aspect line against the requested angle.
func (e *Engine) aspectFeatures(b acg.Body, item WorkItem, gmst, obl float64, lineCfg acg.LineConfig, finder acg.AspectRootFinder) ([]acg.LineFeature, *acg.Diagnostic) {
	var (
		pts       []acg.Point
		method    string
		precision float64
	)

	switch item.AspectTo {
	case acg.AngleMC:
		pts = acg.MCAspectLine(b, item.AspectDeg, gmst, lineCfg)
		method = acg.MethodClosedForm
	case acg.AngleAC:
		pts = acg.ACAspectLine(b, item.AspectDeg, gmst, obl, finder, e.cfg.AspectLonStepDeg)
		method = acg.MethodNumeric
		precision = e.cfg.AspectToleranceDeg
	default:
		return nil, &acg.Diagnostic{
			BodyID: b.ID, Angle: acg.AngleAspect, AspectDeg: item.AspectDeg,
			Detail: acg.ErrUnsupportedAngle.Error(),
		}
	}

	if len(pts) == 0 {
		return nil, &acg.Diagnostic{
			BodyID: b.ID, Angle: acg.AngleAspect, AspectDeg: item.AspectDeg,
			Detail: fmt.Sprintf("no %s aspect locus for %.1f degrees", item.AspectTo, item.AspectDeg),
		}
	}

	feats := e.toFeatures(b.ID, acg.AngleAspect, item.AspectDeg, item.AspectTo, method, precision, pts)
	return feats, nil
}

func (e *Engine) toFeatures(bodyID string, angle acg.AngleType, aspectDeg float64, aspectTo acg.AngleType, method string, precision float64, pts []acg.Point) []acg.LineFeature {
	segs := acg.SplitSegments(pts)
	feats := make([]acg.LineFeature, 0, len(segs))
	for i, seg := range segs {
		feats = append(feats, acg.LineFeature{
			BodyID:       bodyID,
			Angle:        angle,
			AspectDeg:    aspectDeg,
			AspectTo:     aspectTo,
			SegmentID:    i,
			Method:       method,
			PrecisionDeg: precision,
			Coordinates:  seg,
		})
	}
	return feats
}

// paranTolerance maps a request's precision target onto the paran bisection
// tolerance, clamped so a caller can neither disable refinement nor demand
// more than float geometry delivers.
func (e *Engine) paranTolerance(req *acg.Request) float64 {
	tol := e.cfg.ParanToleranceDeg
	if req.PrecisionTargetDeg > 0 {
		tol = req.PrecisionTargetDeg
	}
	if tol > 1e-3 {
		tol = 1e-3
	}
	if tol < 1e-8 {
		tol = 1e-8
	}
	return tol
}
