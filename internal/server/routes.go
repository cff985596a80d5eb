package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/salientworks/salient/internal/delegate"
	"github.com/salientworks/salient/internal/memory"
	"github.com/salientworks/salient/internal/screen"
)

func (s *Server) handleRemember(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content  string   `json:"content"`
		Category string   `json:"category"`
		Priority int      `json:"priority"`
		Tags     []string `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if req.Content == "" {
		http.Error(w, `{"error":"content required"}`, http.StatusBadRequest)
		return
	}
	if req.Priority == 0 {
		req.Priority = 4
	}

	s.mu.Lock()
	e := s.mem.Insert(req.Content, memory.Category(req.Category), req.Priority, req.Tags)
	used, capacity := s.mem.Len(), s.mem.Cap()
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{
		"memory":   e,
		"used":     used,
		"capacity": capacity,
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	scored := s.mem.ListScored()
	used, capacity := s.mem.Len(), s.mem.Cap()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"memories": scored,
		"used":     used,
		"capacity": capacity,
	})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	n := s.mem.Clear()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"cleared": n})
}

func (s *Server) handleTouch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	e := s.mem.Access(id)
	s.mu.Unlock()

	if e == nil {
		http.Error(w, `{"error":"memory not found"}`, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"memory": e})
}

func (s *Server) handleEvict(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	e := s.mem.EvictOne()
	s.mu.Unlock()

	if e == nil {
		writeJSON(w, http.StatusOK, map[string]any{"evicted": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"evicted": e})
}

func (s *Server) handleContext(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	briefing := memory.Briefing(s.mem)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"context": briefing})
}

func (s *Server) handleDelegate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if req.Prompt == "" {
		http.Error(w, `{"error":"prompt required"}`, http.StatusBadRequest)
		return
	}
	if s.delegator == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "delegation not configured"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 120*time.Second)
	defer cancel()

	// The delegator records its result into the store itself; hold the
	// lock across the call so that insert is serialized with the API.
	s.mu.Lock()
	resp, err := s.delegator.Delegate(ctx, req.Prompt)
	s.mu.Unlock()

	if errors.Is(err, delegate.ErrEndpointDown) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"content":  resp.Content,
		"provider": resp.Provider,
	})
}

func (s *Server) handleScreenshot(w http.ResponseWriter, r *http.Request) {
	if s.analyzer == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "screenshots not configured"})
		return
	}

	var req struct {
		Path string `json:"path"`
	}
	// Body is optional: empty body means capture a fresh shot.
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 120*time.Second)
	defer cancel()

	// The analyzer records its insight into the store itself, so the lock
	// covers the whole round.
	s.mu.Lock()
	var (
		res *screen.Result
		err error
	)
	if req.Path != "" {
		res, err = s.analyzer.Analyze(ctx, req.Path)
	} else {
		res, err = s.analyzer.Run(ctx)
	}
	s.mu.Unlock()

	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleToolEvent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ToolName string `json:"tool_name"`
		Detail   string `json:"detail"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if req.ToolName == "" {
		http.Error(w, `{"error":"tool_name required"}`, http.StatusBadRequest)
		return
	}
	if s.tracker == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "usage tracking not configured"})
		return
	}

	s.mu.Lock()
	err := s.tracker.Record(req.ToolName, req.Detail)
	s.mu.Unlock()

	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

func (s *Server) handleToolPatterns(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "journal not configured"})
		return
	}

	sessionID := r.URL.Query().Get("session_id")
	counts, err := s.db.ToolCounts(sessionID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tools": counts})
}
