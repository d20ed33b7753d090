package api

import (
	"encoding/json"
	"net/http"

	"github.com/sketchbomb/runorder/pkg/errors"
	"github.com/sketchbomb/runorder/pkg/pipeline"
	"github.com/sketchbomb/runorder/pkg/show"
)

// optimizeRequest is the /optimize request body. Sketches arrive in the
// troupe's preferred order; constraints pin sketches to fixed slots.
type optimizeRequest struct {
	Sketches    []sketchPayload     `json:"sketches"`
	Constraints *constraintsPayload `json:"constraints,omitempty"`
	Desired     []string            `json:"desired,omitempty"`
	Algorithm   string              `json:"algorithm,omitempty"`
	KeepOrder   bool                `json:"keep_order,omitempty"`
}

type sketchPayload struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Cast  []string `json:"cast"`
}

type constraintsPayload struct {
	Anchored   []anchorPayload     `json:"anchored,omitempty"`
	Precedence []precedencePayload `json:"precedence,omitempty"`
}

type anchorPayload struct {
	SketchID string `json:"sketch_id"`
	Position *int   `json:"position"`
}

type precedencePayload struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

// optimizeResponse mirrors the legacy response shape: ordered slots plus a
// cast-overlap metric.
type optimizeResponse struct {
	Success bool          `json:"success"`
	Error   string        `json:"error,omitempty"`
	Order   []orderedSlot `json:"order"`
	Metrics metrics       `json:"metrics"`
}

type orderedSlot struct {
	Position int    `json:"position"`
	SketchID string `json:"sketch_id"`
	Title    string `json:"title"`
}

type metrics struct {
	CastOverlaps int `json:"cast_overlaps"`
}

// parsedRequest is an optimizeRequest converted to solver inputs.
type parsedRequest struct {
	opts      pipeline.Options
	indexToID []string
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var req optimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	parsed, err := s.parseRequest(&req)
	if err != nil {
		writeErrorFor(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), parsed.opts)
	if err != nil {
		writeErrorFor(w, err)
		return
	}

	writeJSON(w, http.StatusOK, buildResponse(parsed, result))
}

// parseRequest validates the payload and converts it to pipeline options,
// mirroring the legacy request semantics: unique sketch IDs, known IDs in
// constraints, in-range positions, at most one sketch per position.
func (s *Server) parseRequest(req *optimizeRequest) (parsedRequest, error) {
	if len(req.Sketches) == 0 {
		return parsedRequest{}, errors.New(errors.ErrCodeInvalidInput, "at least one sketch is required")
	}

	idToIndex := make(map[string]int, len(req.Sketches))
	indexToID := make([]string, len(req.Sketches))
	sketches := make([]show.Sketch, len(req.Sketches))
	for i, p := range req.Sketches {
		if p.ID == "" {
			return parsedRequest{}, errors.New(errors.ErrCodeInvalidInput, "sketch %d is missing an id", i)
		}
		if _, dup := idToIndex[p.ID]; dup {
			return parsedRequest{}, errors.New(errors.ErrCodeInvalidInput, "duplicate sketch id: %s", p.ID)
		}
		sk, err := show.NewSketch(p.Title, show.NewCast(p.Cast...), false)
		if err != nil {
			return parsedRequest{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "sketch %s", p.ID)
		}
		idToIndex[p.ID] = i
		indexToID[i] = p.ID
		sketches[i] = sk
	}

	var anchors show.Anchors
	if req.Constraints != nil {
		if len(req.Constraints.Precedence) > 0 {
			if err := validatePrecedence(req.Constraints.Precedence, idToIndex); err != nil {
				return parsedRequest{}, err
			}
			return parsedRequest{}, errors.New(errors.ErrCodeUnsupported,
				"precedence constraints are not supported")
		}
		var err error
		anchors, err = parseAnchors(req.Constraints.Anchored, idToIndex, len(sketches))
		if err != nil {
			return parsedRequest{}, err
		}
	}

	desired, err := parseDesired(req.Desired, idToIndex, len(sketches))
	if err != nil {
		return parsedRequest{}, err
	}

	return parsedRequest{
		opts: pipeline.Options{
			Sketches:     sketches,
			KeepOrder:    req.KeepOrder,
			DesiredOrder: desired,
			Anchors:      anchors,
			Algorithm:    req.Algorithm,
			Limit:        s.solver.Limit,
			MaxStates:    s.solver.MaxStates,
			Timeout:      s.solver.Timeout.Std(),
			Logger:       s.logger,
		},
		indexToID: indexToID,
	}, nil
}

func parseAnchors(payload []anchorPayload, idToIndex map[string]int, n int) (show.Anchors, error) {
	if len(payload) == 0 {
		return nil, nil
	}
	anchors := make(show.Anchors, len(payload))
	for _, a := range payload {
		if a.SketchID == "" || a.Position == nil {
			return nil, errors.New(errors.ErrCodeInvalidAnchor, "anchored constraint missing required fields")
		}
		idx, ok := idToIndex[a.SketchID]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidAnchor, "unknown sketch id in anchor: %s", a.SketchID)
		}
		pos := *a.Position
		if pos < 0 || pos >= n {
			return nil, errors.New(errors.ErrCodeInvalidAnchor, "invalid position in anchor: %d", pos)
		}
		if _, taken := anchors[pos]; taken {
			return nil, errors.New(errors.ErrCodeInvalidAnchor, "multiple sketches anchored to position %d", pos)
		}
		anchors[pos] = idx
	}
	return anchors, nil
}

// parseDesired converts a desired ID sequence to sketch indices. When given,
// it must name every sketch exactly once.
func parseDesired(ids []string, idToIndex map[string]int, n int) ([]int, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if len(ids) != n {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"desired must list every sketch exactly once (got %d of %d)", len(ids), n)
	}
	seq := make([]int, n)
	seen := make([]bool, n)
	for i, id := range ids {
		idx, ok := idToIndex[id]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "unknown sketch id in desired: %s", id)
		}
		if seen[idx] {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate sketch id in desired: %s", id)
		}
		seen[idx] = true
		seq[i] = idx
	}
	return seq, nil
}

func validatePrecedence(payload []precedencePayload, idToIndex map[string]int) error {
	for _, p := range payload {
		if p.Before == "" || p.After == "" {
			return errors.New(errors.ErrCodeInvalidInput, "precedence constraint missing required fields")
		}
		if _, ok := idToIndex[p.Before]; !ok {
			return errors.New(errors.ErrCodeInvalidInput, "unknown sketch id in precedence: %s", p.Before)
		}
		if _, ok := idToIndex[p.After]; !ok {
			return errors.New(errors.ErrCodeInvalidInput, "unknown sketch id in precedence: %s", p.After)
		}
	}
	return nil
}

func buildResponse(parsed parsedRequest, result *pipeline.Result) optimizeResponse {
	slots := make([]orderedSlot, result.Order.Len())
	for pos := 0; pos < result.Order.Len(); pos++ {
		idx := result.Order.At(pos)
		slots[pos] = orderedSlot{
			Position: pos,
			SketchID: parsed.indexToID[idx],
			Title:    parsed.opts.Sketches[idx].Title,
		}
	}
	return optimizeResponse{
		Success: true,
		Order:   slots,
		Metrics: metrics{CastOverlaps: result.Overlaps},
	}
}
