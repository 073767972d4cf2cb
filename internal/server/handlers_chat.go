package server

import (
	"encoding/json"
	"net/http"

	"github.com/raphaelgruber/chatbox-go/internal/chat"
)

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Hello from Chatbox API!"})
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}

// handleChat accepts a message and returns the generated reply.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Message is required", http.StatusBadRequest)
		return
	}

	outcome, err := s.chat.Submit(r.Context(), req.Message)
	if outcome == nil {
		// Whitespace-only submissions never reach the responder.
		writeError(w, "Message is required", http.StatusBadRequest)
		return
	}
	if err != nil {
		s.logger.Error("chat reply generation failed", "error", err)
		writeError(w, "Error generating response", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "success",
		"response": outcome.Text,
	})
}

// handleChatHistory returns the session history.
func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	history := s.chat.History()
	if history == nil {
		history = []chat.Message{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"history": history,
	})
}

// handleChatClear discards the session history.
func (s *Server) handleChatClear(w http.ResponseWriter, r *http.Request) {
	s.chat.Clear()
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Chat history cleared",
	})
}
