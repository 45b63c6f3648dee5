package server

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/strata/pkg/buildinfo"
	errs "github.com/matzehuels/strata/pkg/errors"
	"github.com/matzehuels/strata/pkg/graph"
	"github.com/matzehuels/strata/pkg/layout"
	"github.com/matzehuels/strata/pkg/pipeline"
	"github.com/matzehuels/strata/pkg/store"
)

// Response headers.
const (
	LayoutIDHeader = "X-Layout-ID"
	CacheHeader    = "X-Cache"
)

type healthBody struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthBody{Status: "ok", Build: buildinfo.Get()})
}

// handleLayout lays out the request body and stores the result.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts := s.cfg.Options
	opts.Formats = []string{pipeline.FormatJSON}
	if err := applyQuery(&opts, r.URL.Query()); err != nil {
		writeError(w, err)
		return
	}

	g, err := pipeline.ReadGraph(r.Body, requestFormat(r))
	if err != nil {
		if isTooLarge(err) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{
				Code:    string(errs.ErrCodeInvalidInput),
				Message: "request body too large",
			})
			return
		}
		writeError(w, err)
		return
	}

	laid, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), g, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := s.store.Save(r.Context(), &store.Record{Graph: laid, Config: opts.Layout})
	if err != nil {
		writeError(w, errs.Wrap(errs.ErrCodeInternal, err, "store layout"))
		return
	}

	w.Header().Set(LayoutIDHeader, id)
	w.Header().Set(CacheHeader, cacheStatus(hit))
	writeJSON(w, http.StatusCreated, laid)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	limit := DefaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, errs.New(errs.ErrCodeInvalidInput, "limit must be a positive integer"))
			return
		}
		limit = n
	}

	ids, err := s.store.List(r.Context(), limit)
	if err != nil {
		writeError(w, errs.Wrap(errs.ErrCodeInternal, err, "list layouts"))
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"ids": ids})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.record(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	rec, err := s.record(r)
	if err != nil {
		writeError(w, err)
		return
	}

	opts := s.cfg.Options
	opts.Formats = []string{pipeline.FormatSVG}
	q := r.URL.Query()
	if v := q.Get("padding"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, errs.New(errs.ErrCodeInvalidInput, "padding must be a non-negative integer"))
			return
		}
		opts.Padding = n
	}
	if v := q.Get("labels"); v != "" {
		show, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, errs.New(errs.ErrCodeInvalidInput, "labels must be a boolean"))
			return
		}
		opts.NoLabel = !show
	}

	artifacts, hit, err := s.runner.RenderWithCacheInfo(r.Context(), rec.Graph, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set(CacheHeader, cacheStatus(hit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[pipeline.FormatSVG])
}

// record loads the layout named by the {id} URL parameter.
func (s *Server) record(r *http.Request) (*store.Record, error) {
	id := chi.URLParam(r, "id")
	if !store.ValidID(id) {
		return nil, errs.New(errs.ErrCodeInvalidInput, "invalid layout id %q", id)
	}
	rec, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errs.Wrap(errs.ErrCodeNotFound, err, "layout %s not found", id)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "load layout %s", id)
	}
	return rec, nil
}

// =============================================================================
// Request Parsing
// =============================================================================

// intParam is an engine field settable from the query string. Values above
// max are refused: the engine's work grows with most of these fields, and a
// request must not be able to buy unbounded memory with a two-vertex body.
type intParam struct {
	field func(*layout.Config) *int
	max   int
}

// intParams maps query parameters to engine configuration fields.
var intParams = map[string]intParam{
	"max_layer_length":     {func(c *layout.Config) *int { return &c.MaxLayerLength }, 1 << 16},
	"min_layer_difference": {func(c *layout.Config) *int { return &c.MinLayerDifference }, 16},
	"dummy_width":          {func(c *layout.Config) *int { return &c.DummyWidth }, 1 << 10},
	"dummy_height":         {func(c *layout.Config) *int { return &c.DummyHeight }, 1 << 10},
	"x_offset":             {func(c *layout.Config) *int { return &c.XOffset }, 1 << 12},
	"layer_offset":         {func(c *layout.Config) *int { return &c.LayerOffset }, 1 << 12},
	"crossing_iterations":  {func(c *layout.Config) *int { return &c.CrossingIterations }, 64},
	"sweep_iterations":     {func(c *layout.Config) *int { return &c.SweepIterations }, 64},
	"vip_bonus":            {func(c *layout.Config) *int { return &c.VIPBonus }, 1 << 10},
}

// applyQuery overrides the engine configuration with query parameters.
// Integer parameters are bounded by intParams. Parameters other than the engine fields, "check", "refresh" and "format"
// are rejected.
func applyQuery(opts *pipeline.Options, q url.Values) error {
	for name, values := range q {
		v := values[len(values)-1]
		if p, ok := intParams[name]; ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return errs.New(errs.ErrCodeInvalidConfig, "%s must be an integer, got %q", name, v)
			}
			if n > p.max {
				return errs.New(errs.ErrCodeInvalidConfig, "%s must be at most %d, got %d", name, p.max, n)
			}
			*p.field(&opts.Layout) = n
			continue
		}
		switch name {
		case "combine":
			c, err := layout.ParseCombine(v)
			if err != nil {
				return err
			}
			opts.Layout.Combine = c
		case "check", "refresh":
			b, err := strconv.ParseBool(v)
			if err != nil {
				return errs.New(errs.ErrCodeInvalidConfig, "%s must be a boolean, got %q", name, v)
			}
			if name == "check" {
				opts.Check = b
			} else {
				opts.Refresh = b
			}
		case "format":
		default:
			return errs.New(errs.ErrCodeInvalidInput, "unknown query parameter %q", name)
		}
	}
	return opts.Layout.Validate()
}

// requestFormat picks the body format from ?format=, else Content-Type,
// else JSON.
func requestFormat(r *http.Request) string {
	if f := r.URL.Query().Get("format"); f != "" {
		return f
	}
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mt {
	case "application/yaml", "application/x-yaml", "text/yaml":
		return string(graph.FormatYAML)
	case "text/vnd.graphviz":
		return string(graph.FormatDOT)
	}
	return string(graph.FormatJSON)
}

// =============================================================================
// Responses
// =============================================================================

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	msg := errs.UserMessage(err)
	if code == errs.ErrCodeInternal {
		msg = "internal server error"
	}
	writeJSON(w, statusForCode(code), errorBody{Code: string(code), Message: msg})
}

// statusForCode maps error codes to HTTP status codes.
func statusForCode(code errs.Code) int {
	switch {
	case code == errs.ErrCodeNotFound || code == errs.ErrCodeFileNotFound:
		return http.StatusNotFound
	case code == errs.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	case code.Usage():
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
