package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sketchbomb/runorder/pkg/cache"
	"github.com/sketchbomb/runorder/pkg/errors"
	"github.com/sketchbomb/runorder/pkg/order"
	"github.com/sketchbomb/runorder/pkg/render"
	"github.com/sketchbomb/runorder/pkg/show"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Solution is the solve-stage payload, also the cached representation.
type Solution struct {
	Order     []int  `json:"order"`
	Algorithm string `json:"algorithm"`
	Exact     bool   `json:"exact"`
}

// Execute runs the complete build → solve → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}
	result.Stats.SketchCount = len(opts.Sketches)

	// Stage 1: Build. Quadratic in the show size, so never worth caching.
	buildStart := time.Now()
	m, feas := order.BuildFeasibility(opts.Sketches)
	anchors := opts.EffectiveAnchors()
	result.Stats.BuildTime = time.Since(buildStart)

	r.Logger.Info("built feasibility",
		"sketches", len(opts.Sketches),
		"anchors", len(anchors),
		"duration", result.Stats.BuildTime)

	// Stage 2: Solve
	solveStart := time.Now()
	outcome, solveHit, err := r.SolveWithCacheInfo(ctx, m, feas, anchors, opts)
	if err != nil {
		return nil, err
	}
	result.Order = show.NewOrder(outcome.Order...)
	result.Algorithm = outcome.Algorithm
	result.Exact = outcome.Exact
	result.Overlaps = order.AdjacentOverlap(m, result.Order)
	result.Stats.SolveTime = time.Since(solveStart)
	result.CacheInfo.SolveHit = solveHit
	result.SolveHash = r.solveHash(opts, outcome)

	r.Logger.Info("solved running order",
		"algorithm", outcome.Algorithm,
		"overlaps", result.Overlaps,
		"cached", solveHit,
		"duration", result.Stats.SolveTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result.SolveHash, m, result.Order, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// SolveWithCacheInfo runs the solver with caching and returns cache hit info.
func (r *Runner) SolveWithCacheInfo(ctx context.Context, m order.Matrix, feas order.Feasibility, anchors show.Anchors, opts Options) (Solution, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForSolve(); err != nil {
		return Solution{}, false, err
	}

	cacheKey := r.Keyer.SolveKey(r.instanceHash(opts), cache.SolveKeyOpts{
		Algorithm: opts.Algorithm,
		MaxStates: opts.MaxStates,
		Limit:     opts.Limit,
	})

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached Solution
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
	}

	outcome, err := r.solve(m, feas, anchors, opts)
	if err != nil {
		return Solution{}, false, err
	}

	if data, err := json.Marshal(outcome); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLSolve)
	}

	return outcome, false, nil // Cache miss
}

// solve picks the algorithm and runs it.
func (r *Runner) solve(m order.Matrix, feas order.Feasibility, anchors show.Anchors, opts Options) (Solution, error) {
	n := feas.Len()
	desired := opts.Desired()

	exhaustive := opts.Algorithm == AlgorithmExhaustive ||
		(opts.Algorithm == AlgorithmAuto && n <= opts.Limit)

	if !exhaustive {
		// The exhaustive path validates anchors inside the search; the
		// greedy path needs the same check up front.
		if err := anchors.Validate(n); err != nil {
			return Solution{}, err
		}
	}

	if exhaustive {
		search := order.Search{
			MaxStates: opts.MaxStates,
			Deadline:  time.Now().Add(opts.Timeout),
		}
		best, err := runExhaustive(search, feas, anchors, desired)
		if err == nil {
			return Solution{Order: best.Seq(), Algorithm: AlgorithmExhaustive, Exact: true}, nil
		}
		if opts.Algorithm == AlgorithmExhaustive {
			return Solution{}, err
		}
		// Auto mode falls back to greedy when the show has no conflict-free
		// arrangement or the search ran out of budget. Anything else (bad
		// anchors) is a real error.
		if !errors.Is(err, errors.ErrCodeInfeasible) && !errors.Is(err, errors.ErrCodeResourceExhausted) {
			return Solution{}, err
		}
		opts.Logger.Warn("exhaustive search failed, falling back to greedy",
			"reason", errors.GetCode(err))
	}

	got := order.Optimize(m, anchoredIdentity(n, anchors), order.GreedyOptions{
		Desired:        desired,
		RespectAnchors: true,
		Anchors:        anchors,
	})
	return Solution{Order: got.Seq(), Algorithm: AlgorithmGreedy}, nil
}

// anchoredIdentity builds the greedy starting order: anchored sketches at
// their pinned positions, everything else filling the gaps in input order.
func anchoredIdentity(n int, anchors show.Anchors) show.Order {
	seq := make([]int, n)
	used := make([]bool, n)
	for i := range seq {
		seq[i] = -1
	}
	for pos, idx := range anchors {
		seq[pos] = idx
		used[idx] = true
	}
	next := 0
	for i := range seq {
		if seq[i] >= 0 {
			continue
		}
		for used[next] {
			next++
		}
		seq[i] = next
		used[next] = true
		next++
	}
	return show.NewOrder(seq...)
}

func runExhaustive(search order.Search, feas order.Feasibility, anchors show.Anchors, desired show.Order) (show.Order, error) {
	all, err := search.FindAll(feas, anchors)
	if err != nil {
		return show.Order{}, err
	}
	return order.SelectBest(all, desired)
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, solveHash string, m order.Matrix, o show.Order, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	opts.SetRenderDefaults()
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(solveHash, cache.ArtifactKeyOpts{Format: format})
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil // All artifacts from cache
		}
	}

	rendered, err := r.renderFormats(ctx, m, o, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(solveHash, cache.ArtifactKeyOpts{Format: format})
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
	}

	return rendered, false, nil // Cache miss
}

func (r *Runner) renderFormats(ctx context.Context, m order.Matrix, o show.Order, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	dot := "" // computed once, shared by dot/svg/png

	for _, format := range opts.Formats {
		switch format {
		case render.FormatText:
			artifacts[format] = []byte(render.RunSheet(opts.Sketches, o, m))
		case render.FormatMarkdown:
			artifacts[format] = []byte(render.RunSheetMarkdown(opts.Sketches, o, m))
		case render.FormatDOT, render.FormatSVG, render.FormatPNG:
			if dot == "" {
				dot = render.ConflictDOT(opts.Sketches, m)
			}
			switch format {
			case render.FormatDOT:
				artifacts[format] = []byte(dot)
			case render.FormatSVG:
				data, err := render.RenderSVG(ctx, dot)
				if err != nil {
					return nil, errors.Wrap(errors.ErrCodeInternal, err, "render svg")
				}
				artifacts[format] = data
			case render.FormatPNG:
				data, err := render.RenderPNG(ctx, dot)
				if err != nil {
					return nil, errors.Wrap(errors.ErrCodeInternal, err, "render png")
				}
				artifacts[format] = data
			}
		}
	}
	return artifacts, nil
}

// instanceHash fingerprints the inputs that determine a solve result.
func (r *Runner) instanceHash(opts Options) string {
	data, _ := json.Marshal(struct {
		Sketches  []show.Sketch `json:"sketches"`
		KeepOrder bool          `json:"keep_order"`
		Desired   []int         `json:"desired,omitempty"`
		Anchors   show.Anchors  `json:"anchors,omitempty"`
	}{opts.Sketches, opts.KeepOrder, opts.DesiredOrder, opts.Anchors})
	return cache.Hash(data)
}

// solveHash fingerprints a solve result for artifact cache keys.
func (r *Runner) solveHash(opts Options, outcome Solution) string {
	data, _ := json.Marshal(struct {
		Instance string       `json:"instance"`
		Outcome  Solution `json:"outcome"`
	}{r.instanceHash(opts), outcome})
	return cache.Hash(data)
}

// applyLogger propagates the runner's logger into options that don't carry
// their own.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
