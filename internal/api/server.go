// Package api exposes the JSON export API: a health endpoint and a
// rate-limited export endpoint. It renders no HTML; callers get a plain
// status/message pair with localized error messages.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/tourdrop/tourdrop/internal/export"
	"github.com/tourdrop/tourdrop/internal/fault"
)

// Version is reported by the health endpoint.
const Version = "0.3.0"

type Server struct {
	router   *chi.Mux
	addr     string
	exporter *export.Exporter
	logger   *slog.Logger
}

func NewServer(addr string, rateLimit int, rateWindow time.Duration, exporter *export.Exporter, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:   router,
		addr:     addr,
		exporter: exporter,
		logger:   logger,
	}

	router.Get("/health", s.health)
	router.Group(func(r chi.Router) {
		r.Use(httprate.Limit(
			rateLimit,
			rateWindow,
			httprate.WithKeyFuncs(httprate.KeyByIP),
		))
		r.Post("/api/export", s.exportHandler)
	})

	return s
}

func (s *Server) Start() error {
	s.logger.Info("API server starting", "addr", s.addr)
	return http.ListenAndServe(s.addr, s.router)
}

// Handler exposes the router for tests and for embedding in an http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": Version,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"status":  "error",
		"message": message,
	})
}

// writeExportError renders an export failure: typed faults become 422 with
// their localized message, anything else a generic 500.
func (s *Server) writeExportError(w http.ResponseWriter, err error, lang string) {
	if _, ok := fault.KindOf(err); ok {
		writeError(w, http.StatusUnprocessableEntity, fault.Message(err, lang))
		return
	}
	s.logger.Error("export failed with untyped error", "error", err)
	writeError(w, http.StatusInternalServerError, fault.Message(err, lang))
}
