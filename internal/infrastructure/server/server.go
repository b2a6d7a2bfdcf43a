// Package server exposes the studio data service over HTTP: the
// portfolio read API, the step-detail write endpoint, event streams,
// metrics, and the static mockup assets.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/felixgeelhaar/studio/internal/infrastructure/wiring"
	"github.com/felixgeelhaar/studio/pkg/domain"
	"github.com/felixgeelhaar/studio/pkg/domain/events"
)

const maxDetailBody = 1 << 20

// Server is the studio HTTP server.
type Server struct {
	addr     string
	services *wiring.AppServices
	log      zerolog.Logger
	metrics  *Metrics
	assets   *AssetHandler
	sse      *SSEHandler
	ws       *WSHandler
	server   *http.Server
}

// NewServer creates the server for a wired service workbench. Domain
// events reach the stream handlers through a dispatcher subscribed to
// the workspace publisher, so each stream is one named handler.
func NewServer(addr, assetsDir string, services *wiring.AppServices, log zerolog.Logger) *Server {
	s := &Server{
		addr:     addr,
		services: services,
		log:      log,
		metrics:  NewMetrics(),
		assets:   NewAssetHandler(assetsDir),
		sse:      NewSSEHandler(),
		ws:       NewWSHandler(log),
	}

	dispatcher := events.NewDispatcher()
	dispatcher.ContinueOnError = true
	dispatcher.RegisterWildcard("sse", s.sse.HandleEvent)
	dispatcher.RegisterWildcard("websocket", s.ws.HandleEvent)
	services.Workspace.Events.Subscribe(func(e *events.Event) error {
		return dispatcher.Dispatch(context.Background(), e)
	})

	return s
}

// Handler builds the route table. Exposed separately so tests can drive
// it through httptest without binding a port.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	s.route(mux, "GET /api/portfolio", http.HandlerFunc(s.handlePortfolio))
	s.route(mux, "GET /api/projects", http.HandlerFunc(s.handleProjects))
	s.route(mux, "GET /api/projects/{id}", http.HandlerFunc(s.handleProject))
	s.route(mux, "GET /api/loops", http.HandlerFunc(s.handleLoops))
	s.route(mux, "PUT /api/projects/{id}/modules/{mid}/steps/{sid}/detail", http.HandlerFunc(s.handlePutDetail))
	s.route(mux, "GET /api/events", s.sse)
	s.route(mux, "GET /ws", s.ws)
	mux.Handle("GET /metrics", s.metrics.Handler())
	s.route(mux, "GET /healthz", http.HandlerFunc(s.handleHealth))
	s.route(mux, "GET /", s.assets)

	return mux
}

func (s *Server) route(mux *http.ServeMux, pattern string, h http.Handler) {
	mux.Handle(pattern, instrument(s.log, s.metrics, pattern, h))
}

// Start runs the server until it fails or is shut down.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		// Streaming endpoints hold their connections open; no write
		// deadline on the server itself.
		ReadHeaderTimeout: 15 * time.Second,
	}
	s.log.Info().Str("addr", s.addr).Msg("studio server starting")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	p, err := s.services.Portfolio.GetPortfolio(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, p)
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.services.Portfolio.GetProjects(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, projects)
}

func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	p, err := s.services.Portfolio.GetProjectByID(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, p)
}

func (s *Server) handleLoops(w http.ResponseWriter, r *http.Request) {
	loops, err := s.services.Portfolio.GetLoopsAcrossPortfolio(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, loops)
}

// handlePutDetail is the write half of the data service contract: the
// raw payload is reconciled against the step's factory shape and the
// normalized result is returned.
func (s *Server) handlePutDetail(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxDetailBody))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	detail, err := s.services.Steps.PutRawDetail(
		r.Context(),
		r.PathValue("id"),
		r.PathValue("mid"),
		r.PathValue("sid"),
		body,
	)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, detail)
}

func (s *Server) respond(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("encode response")
	}
}

// respondError maps domain sentinels onto HTTP statuses. The body keeps
// the error text: the mockup surfaces it as a toast.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientInput):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidTransition):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		s.log.Error().Err(err).Msg("request failed")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
