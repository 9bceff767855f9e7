// Package server exposes the chart pipeline over HTTP.
//
// The API is a thin wrapper around [pipeline.Runner]: requests carry
// the same Options struct the CLI builds, with the tree inlined in the
// body. Layout responses return the serialized layout plus run
// metadata; render responses return the artifact bytes directly.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hwidmann/rootline/pkg/errors"
	"github.com/hwidmann/rootline/pkg/observability"
	"github.com/hwidmann/rootline/pkg/pipeline"
	"github.com/hwidmann/rootline/pkg/tree"
)

// Server handles HTTP requests for chart layout and rendering.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates a server around the given runner.
// If logger is nil, the runner's logger is used.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	return &Server{runner: runner, logger: logger}
}

// Handler returns the HTTP handler with all routes registered.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(hookMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)
	})
	return r
}

// LayoutResponse is the body returned by POST /v1/layout.
type LayoutResponse struct {
	Layout    tree.Layout        `json:"layout"`
	TreeHash  string             `json:"tree_hash,omitempty"`
	CacheInfo pipeline.CacheInfo `json:"cache_info"`
}

// ErrorResponse is the body returned on request failure.
type ErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}
	opts.Formats = []string{pipeline.FormatJSON}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, LayoutResponse{
		Layout:    result.Layout,
		TreeHash:  result.TreeHash,
		CacheInfo: result.CacheInfo,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}
	if len(opts.Formats) == 0 {
		opts.Formats = []string{pipeline.FormatSVG}
	}
	// One artifact per response.
	format := opts.Formats[0]
	opts.Formats = opts.Formats[:1]

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// decodeOptions parses the request body and enforces an inline tree.
// Server requests never read trees from the host filesystem.
func (s *Server) decodeOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, bool) {
	var opts pipeline.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse request body"))
		return opts, false
	}
	if opts.Tree == nil {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "request must include a tree"))
		return opts, false
	}
	opts.TreePath = ""
	opts.Logger = s.logger
	return opts, true
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	s.logger.Error("request failed", "code", code, "err", err)
	writeJSON(w, statusFor(code), ErrorResponse{
		Code:  string(code),
		Error: err.Error(),
	})
}

// statusFor maps structured error codes to HTTP status codes.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidRoot, errors.ErrCodeInvalidTree,
		errors.ErrCodeInvalidChartType, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidDate:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodePersonNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatSVG, pipeline.FormatDOTSVG:
		return "image/svg+xml"
	case pipeline.FormatJSON:
		return "application/json"
	case pipeline.FormatDOT:
		return "text/vnd.graphviz"
	default:
		return "application/octet-stream"
	}
}

// hookMiddleware reports request events to the registered HTTP hooks.
func hookMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
