package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/findr-api/internal/application/moderation"
	"github.com/findr-api/internal/domain"
)

// ModerationHandler handles the staff-only endpoints. The router mounts it
// behind RequireRole(STAFF).
type ModerationHandler struct {
	svc moderation.Service
}

func NewModerationHandler(svc moderation.Service) *ModerationHandler {
	return &ModerationHandler{svc: svc}
}

func (h *ModerationHandler) ListUnverified(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListUnverified(r.Context())
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ModerationHandler) Verify(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.VerifyItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ModerationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RejectItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "item rejected"})
}

func (h *ModerationHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.ResolveItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ModerationHandler) ListPendingClaims(w http.ResponseWriter, r *http.Request) {
	claims, err := h.svc.ListPendingClaims(r.Context())
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, claims)
}

// ProcessClaim serves POST /moderation/claims/{id} with {"approved": bool}.
func (h *ModerationHandler) ProcessClaim(w http.ResponseWriter, r *http.Request) {
	var req domain.ProcessClaimRequest
	if err := decodeValid(r, &req); err != nil {
		httpError(w, r, err)
		return
	}
	c, err := h.svc.ProcessClaim(r.Context(), chi.URLParam(r, "id"), *req.Approved)
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}
