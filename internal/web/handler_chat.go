package web

import (
	"net/http"

	"github.com/Jason910315/gentle-gains/internal/domain"
)

// handleChat returns 200 whenever the request itself is valid: the agent
// degrades model failures to an apology turn rather than an error.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req domain.ChatRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SessionID == "" || req.Content == "" {
		s.writeError(w, http.StatusBadRequest, "session_id and content are required")
		return
	}

	reply := s.agent.Chat(r.Context(), req.SessionID, req.Content)
	s.writeJSON(w, http.StatusOK, reply)
}

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("session_id")
	if sessionID == "" {
		s.writeError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	msgs := s.agent.History(r.Context(), sessionID)
	if msgs == nil {
		// The UI iterates the body; an empty session is an empty array, not null.
		msgs = []domain.ChatMessage{}
	}
	s.writeJSON(w, http.StatusOK, msgs)
}
