package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sketchbomb/runorder/pkg/errors"
	"github.com/sketchbomb/runorder/pkg/pipeline"
	"github.com/sketchbomb/runorder/pkg/show"
	"github.com/sketchbomb/runorder/pkg/store"
)

// createShowRequest is the /shows request body. Unlike /optimize, stored
// sketches are addressed by position, so they carry no client-side IDs.
type createShowRequest struct {
	Name     string         `json:"name"`
	Sketches []storedSketch `json:"sketches"`
}

type storedSketch struct {
	Title    string   `json:"title"`
	Cast     []string `json:"cast"`
	Anchored bool     `json:"anchored,omitempty"`
}

// optimizeShowRequest tweaks a stored-show optimization. All fields are
// optional; an empty body runs with defaults.
type optimizeShowRequest struct {
	Algorithm string `json:"algorithm,omitempty"`
	KeepOrder bool   `json:"keep_order,omitempty"`
}

type optimizeShowResponse struct {
	Show      *store.Show `json:"show"`
	Algorithm string      `json:"algorithm"`
	Exact     bool        `json:"exact"`
	Metrics   metrics     `json:"metrics"`
}

func (s *Server) handleCreateShow(w http.ResponseWriter, r *http.Request) {
	var req createShowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusUnprocessableEntity, "show name is required")
		return
	}
	if len(req.Sketches) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "at least one sketch is required")
		return
	}

	sketches := make([]show.Sketch, len(req.Sketches))
	for i, p := range req.Sketches {
		sk, err := show.NewSketch(p.Title, show.NewCast(p.Cast...), p.Anchored)
		if err != nil {
			writeErrorFor(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "sketch %d", i))
			return
		}
		sketches[i] = sk
	}

	sh := store.NewShow(req.Name, sketches)
	if err := s.store.Put(r.Context(), sh); err != nil {
		writeErrorFor(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sh)
}

func (s *Server) handleListShows(w http.ResponseWriter, r *http.Request) {
	shows, err := s.store.List(r.Context())
	if err != nil {
		writeErrorFor(w, err)
		return
	}
	if shows == nil {
		shows = []*store.Show{}
	}
	writeJSON(w, http.StatusOK, shows)
}

func (s *Server) handleGetShow(w http.ResponseWriter, r *http.Request) {
	sh, ok := s.loadShow(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sh)
}

func (s *Server) handleDeleteShow(w http.ResponseWriter, r *http.Request) {
	id, ok := parseShowID(w, r)
	if !ok {
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		writeErrorFor(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleOptimizeShow runs the pipeline on a stored show and persists the
// resulting order.
func (s *Server) handleOptimizeShow(w http.ResponseWriter, r *http.Request) {
	sh, ok := s.loadShow(w, r)
	if !ok {
		return
	}

	var req optimizeShowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Sketches:  sh.Sketches,
		KeepOrder: req.KeepOrder,
		Algorithm: req.Algorithm,
		Limit:     s.solver.Limit,
		MaxStates: s.solver.MaxStates,
		Timeout:   s.solver.Timeout.Std(),
		Logger:    s.logger,
	})
	if err != nil {
		writeErrorFor(w, err)
		return
	}

	sh.Order = result.Order.Seq()
	sh.Touch()
	if err := s.store.Put(r.Context(), sh); err != nil {
		writeErrorFor(w, err)
		return
	}

	writeJSON(w, http.StatusOK, optimizeShowResponse{
		Show:      sh,
		Algorithm: result.Algorithm,
		Exact:     result.Exact,
		Metrics:   metrics{CastOverlaps: result.Overlaps},
	})
}

func (s *Server) loadShow(w http.ResponseWriter, r *http.Request) (*store.Show, bool) {
	id, ok := parseShowID(w, r)
	if !ok {
		return nil, false
	}
	sh, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeErrorFor(w, err)
		return nil, false
	}
	return sh, true
}

func parseShowID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid show id")
		return uuid.Nil, false
	}
	return id, true
}
