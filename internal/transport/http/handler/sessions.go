package handler

import (
	"net/http"

	"github.com/findr-api/internal/application/session"
	"github.com/findr-api/internal/domain"
)

// SessionHandler handles mock login and the current-user lookup.
type SessionHandler struct {
	svc session.Service
}

func NewSessionHandler(svc session.Service) *SessionHandler {
	return &SessionHandler{svc: svc}
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := decodeValid(r, &req); err != nil {
		httpError(w, r, err)
		return
	}
	u, bearer, err := h.svc.Login(r.Context(), req.Role)
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthEnvelope{Bearer: bearer, User: u})
}

// Me serves GET /users/me.
func (h *SessionHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	u, err := h.svc.Current(r.Context(), userID)
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
