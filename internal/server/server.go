// Package server exposes the working-memory store over a local HTTP API.
package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/salientworks/salient/internal/delegate"
	"github.com/salientworks/salient/internal/journal"
	"github.com/salientworks/salient/internal/memory"
	"github.com/salientworks/salient/internal/screen"
	"github.com/salientworks/salient/internal/usage"
)

// Server is the salient HTTP API server. All store access goes through
// mu — the store itself does no locking.
type Server struct {
	mu sync.Mutex

	mem       *memory.Store
	db        *journal.DB // optional
	delegator *delegate.Delegator
	tracker   *usage.Tracker
	analyzer  *screen.Analyzer

	router  chi.Router
	version string
	started time.Time
}

// Options carries the optional collaborators. Any field may be nil; the
// matching routes answer 503.
type Options struct {
	Journal   *journal.DB
	Delegator *delegate.Delegator
	Tracker   *usage.Tracker
	Analyzer  *screen.Analyzer
}

// New creates a Server over the given store.
func New(mem *memory.Store, version string, opts Options) *Server {
	s := &Server{
		mem:       mem,
		db:        opts.Journal,
		delegator: opts.Delegator,
		tracker:   opts.Tracker,
		analyzer:  opts.Analyzer,
		version:   version,
		started:   time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Post("/memories", s.handleRemember)
		r.Get("/memories", s.handleList)
		r.Delete("/memories", s.handleClear)
		r.Post("/memories/{id}/touch", s.handleTouch)
		r.Post("/memories/evict", s.handleEvict)
		r.Get("/context", s.handleContext)

		r.Post("/delegate", s.handleDelegate)
		r.Post("/screenshots", s.handleScreenshot)

		r.Post("/tools/events", s.handleToolEvent)
		r.Get("/tools/patterns", s.handleToolPatterns)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	used, capacity := s.mem.Len(), s.mem.Cap()
	s.mu.Unlock()

	resp := map[string]any{
		"status":   "ok",
		"version":  s.version,
		"uptime":   time.Since(s.started).Seconds(),
		"used":     used,
		"capacity": capacity,
	}
	if s.delegator != nil {
		resp["endpoint"] = s.delegator.Health()
	}
	if s.db != nil {
		dbOK := s.db.Ping() == nil
		resp["journal"] = dbOK
		resp["journal_path"] = s.db.Path
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
