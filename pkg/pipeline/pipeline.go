// Package pipeline provides the core optimization pipeline for runorder.
//
// This package implements the complete build → solve → render pipeline that
// can be used by CLI and API components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: Compute the overlap matrix and feasibility relation
//  2. Solve: Find a running order (exhaustive search or greedy improvement)
//  3. Render: Generate output in various formats (text, markdown, dot, svg, png)
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Sketches: sketches,
//	    Formats:  []string{"text"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	sheet := result.Artifacts["text"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sketchbomb/runorder/pkg/errors"
	"github.com/sketchbomb/runorder/pkg/render"
	"github.com/sketchbomb/runorder/pkg/show"
)

// Algorithm names accepted by Options.Algorithm.
const (
	// AlgorithmAuto runs the exhaustive search for small shows and falls
	// back to greedy improvement when the show is too large or the search
	// comes back empty-handed.
	AlgorithmAuto = "auto"

	// AlgorithmExhaustive enumerates every conflict-free order and picks
	// the one closest to the desired order. Fails on infeasible shows.
	AlgorithmExhaustive = "exhaustive"

	// AlgorithmGreedy improves the starting order by pairwise swaps. Never
	// fails, but the result may retain conflicts.
	AlgorithmGreedy = "greedy"
)

// ValidAlgorithms is the set of supported solver algorithms.
var ValidAlgorithms = map[string]bool{
	AlgorithmAuto:       true,
	AlgorithmExhaustive: true,
	AlgorithmGreedy:     true,
}

const (
	// DefaultExhaustiveLimit is the largest show size the auto algorithm
	// will attempt exhaustively. The candidate space grows factorially, so
	// this is intentionally conservative; explicit "exhaustive" requests
	// may go higher at their own risk via MaxStates.
	DefaultExhaustiveLimit = 12

	// DefaultMaxStates caps the number of partial orders the exhaustive
	// search may expand before giving up.
	DefaultMaxStates = 1_000_000

	// DefaultTimeout bounds one solve.
	DefaultTimeout = 30 * time.Second
)

// Options contains all configuration for the optimization pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Sketches is the show, in its current (desired) running order.
	Sketches []show.Sketch `json:"sketches"`

	// KeepOrder treats the input order as the desired order, steering the
	// solver toward arrangements close to it.
	KeepOrder bool `json:"keep_order,omitempty"`

	// DesiredOrder scores candidates against an explicit arrangement given
	// as sketch indices, one per position. Must be a full permutation of the
	// sketches. Takes precedence over KeepOrder.
	DesiredOrder []int `json:"desired,omitempty"`

	// Anchors pins sketches to positions explicitly. When nil, anchors are
	// derived from the sketches' Anchored flags instead (each anchored
	// sketch stays at its input position).
	Anchors show.Anchors `json:"anchors,omitempty"`

	// Solver options
	Algorithm string `json:"algorithm,omitempty"`
	Limit     int    `json:"limit,omitempty"` // exhaustive size limit for auto
	MaxStates int    `json:"max_states,omitempty"`

	// Timeout bounds one solve. Zero means DefaultTimeout.
	Timeout time.Duration `json:"timeout,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`

	// Refresh bypasses the solve cache.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Order is the chosen running order (indices into Options.Sketches).
	Order show.Order

	// Algorithm is the solver that actually produced the order. With
	// AlgorithmAuto this reports which branch ran.
	Algorithm string

	// Exact reports whether the order came from the exhaustive search and
	// is therefore conflict-free.
	Exact bool

	// Overlaps is the summed adjacent cast overlap of the chosen order.
	Overlaps int

	// SolveHash identifies the solve result, usable as a cache handle.
	SolveHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SketchCount int
	BuildTime   time.Duration
	SolveTime   time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SolveHit  bool // Whether the solve result came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForSolve(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForSolve checks required fields for solving.
func (o *Options) ValidateForSolve() error {
	if len(o.Sketches) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "at least one sketch is required")
	}
	if err := show.ValidateSketches(o.Sketches); err != nil {
		return err
	}
	if err := o.validateDesiredOrder(); err != nil {
		return err
	}

	if o.Algorithm == "" {
		o.Algorithm = AlgorithmAuto
	}
	if !ValidAlgorithms[o.Algorithm] {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid algorithm: %q (must be one of: auto, exhaustive, greedy)", o.Algorithm)
	}
	if o.Limit == 0 {
		o.Limit = DefaultExhaustiveLimit
	}
	if o.MaxStates == 0 {
		o.MaxStates = DefaultMaxStates
	}
	if o.Timeout == 0 {
		o.Timeout = DefaultTimeout
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{render.FormatText}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates render options.
func (o *Options) ValidateForRender() error {
	for _, f := range o.Formats {
		if !render.ValidFormat(f) {
			return errors.New(errors.ErrCodeInvalidFormat,
				"invalid format: %q (must be one of: text, markdown, dot, svg, png)", f)
		}
	}
	return nil
}

// validateDesiredOrder checks that DesiredOrder, when given, is a full
// permutation of the sketch indices.
func (o *Options) validateDesiredOrder() error {
	if len(o.DesiredOrder) == 0 {
		return nil
	}
	n := len(o.Sketches)
	if len(o.DesiredOrder) != n {
		return errors.New(errors.ErrCodeInvalidInput,
			"desired order must place every sketch exactly once (got %d of %d)", len(o.DesiredOrder), n)
	}
	seen := make([]bool, n)
	for _, idx := range o.DesiredOrder {
		if idx < 0 || idx >= n {
			return errors.New(errors.ErrCodeInvalidInput, "desired order index out of range: %d", idx)
		}
		if seen[idx] {
			return errors.New(errors.ErrCodeInvalidInput, "desired order repeats sketch %d", idx)
		}
		seen[idx] = true
	}
	return nil
}

// Desired returns the desired order used for scoring: the explicit
// DesiredOrder when given, the identity order when KeepOrder is set, empty
// otherwise.
func (o *Options) Desired() show.Order {
	if len(o.DesiredOrder) > 0 {
		return show.NewOrder(o.DesiredOrder...)
	}
	if o.KeepOrder {
		return show.Identity(len(o.Sketches))
	}
	return show.Order{}
}

// EffectiveAnchors returns the explicit anchors when given, otherwise the
// anchors derived from the sketches' Anchored flags.
func (o *Options) EffectiveAnchors() show.Anchors {
	if o.Anchors != nil {
		return o.Anchors
	}
	return show.AnchorsFromSketches(o.Sketches)
}
