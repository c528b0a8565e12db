package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aretw0/pathrace/pkg/domain"
	"github.com/aretw0/pathrace/pkg/session"
	"github.com/go-chi/chi/v5"
)

// ListSessions handles GET /api/sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.sessions.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

// CreateSession handles POST /api/sessions.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	view, err := s.sessions.Create(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/sessions/"+view.ID)
	s.writeJSON(w, http.StatusCreated, view)
}

// GetSession handles GET /api/sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	view, err := s.sessions.Open(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

// ReplaceSession handles PUT /api/sessions/{id}.
func (s *Server) ReplaceSession(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	view, err := s.sessions.Replace(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

// DeleteSession handles DELETE /api/sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	// Deleting an unknown session is reported, even though the store
	// itself treats it as a no-op.
	if _, err := s.sessions.Store().Load(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.sessions.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.streams.Close(id)
	w.WriteHeader(http.StatusNoContent)
}

// ControlSession handles POST /api/sessions/{id}/{action}?value=n.
func (s *Server) ControlSession(w http.ResponseWriter, r *http.Request) {
	action, err := session.ParseAction(chi.URLParam(r, "action"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	value, ok, err := queryInt(r, "value")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if action.NeedsValue() && !ok {
		s.writeError(w, r, &domain.InvalidRequestError{Field: "value", Reason: fmt.Sprintf("required for %s", action)})
		return
	}

	view, err := s.sessions.Control(r.Context(), chi.URLParam(r, "id"), action, value)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

// SubscribeEvents handles GET /api/sessions/{id}/events (SSE). The first
// event is the current view; later ones follow every drawn frame.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	sessionID := chi.URLParam(r, "id")
	ch, cancel := s.streams.Subscribe(sessionID)
	defer cancel()

	view, err := s.sessions.Open(r.Context(), sessionID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	current, err := json.Marshal(view)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	s.logger.Info("SSE: Subscribing to Session Frames", "session_id", sessionID)

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	fmt.Fprintf(w, "event: frame\ndata: %s\n\n", current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE Client Disconnected", "session_id", sessionID)
			return
		case msg, ok := <-ch:
			if !ok {
				// The session was deleted.
				fmt.Fprintf(w, "event: deleted\ndata: {\"id\":%q}\n\n", sessionID)
				flusher.Flush()
				s.logger.Info("SSE: Session deleted, closing stream", "session_id", sessionID)
				return
			}
			fmt.Fprintf(w, "event: frame\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
