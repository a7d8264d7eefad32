package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/findr-api/internal/application/claim"
	"github.com/findr-api/internal/domain"
)

// ClaimHandler handles claimant-facing claim endpoints.
type ClaimHandler struct {
	svc claim.Service
}

func NewClaimHandler(svc claim.Service) *ClaimHandler { return &ClaimHandler{svc: svc} }

// Submit serves POST /items/{id}/claims.
func (h *ClaimHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req domain.SubmitClaimRequest
	if err := decodeValid(r, &req); err != nil {
		httpError(w, r, err)
		return
	}
	c, err := h.svc.Submit(r.Context(), chi.URLParam(r, "id"), userID, req)
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// ListMine serves GET /users/me/claims.
func (h *ClaimHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	claims, err := h.svc.ListByClaimant(r.Context(), userID)
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, claims)
}
