package handler

import (
	"encoding/json"
	"net/http"

	"github.com/findr-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	ErrorCode int    `json:"error_code,omitempty"`
}

// AuthEnvelope wraps login responses. The client stores Bearer under its
// own key and sends it back on every request.
type AuthEnvelope struct {
	Bearer string       `json:"Bearer"`
	User   *domain.User `json:"user"`
}

// CountEnvelope wraps the unread-count badge.
type CountEnvelope struct {
	Count int `json:"count"`
}

// ImageEnvelope wraps an uploaded photo URL.
type ImageEnvelope struct {
	URL string `json:"url"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg, ErrorCode: status})
}
