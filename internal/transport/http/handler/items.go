package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/findr-api/internal/application/catalog"
	"github.com/findr-api/internal/domain"
	"github.com/findr-api/internal/transport/http/middleware"
)

// ItemHandler handles catalog endpoints.
type ItemHandler struct {
	svc catalog.Service
}

func NewItemHandler(svc catalog.Service) *ItemHandler { return &ItemHandler{svc: svc} }

// List serves GET /items. Students only ever see verified items; staff may
// pass verified=false to browse the moderation backlog.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	filter, itemType, err := parseItemQuery(r)
	if err != nil {
		httpError(w, r, err)
		return
	}
	if claims.Role != domain.RoleStaff {
		verified := true
		filter.IsVerified = &verified
	}
	items, err := h.svc.List(r.Context(), filter)
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.FilterByType(items, itemType))
}

func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req domain.CreateItemRequest
	if err := decodeValid(r, &req); err != nil {
		httpError(w, r, err)
		return
	}
	item, err := h.svc.Create(r.Context(), userID, req)
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// ListMine serves GET /users/me/items.
func (h *ItemHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	items, err := h.svc.ListByReporter(r.Context(), userID)
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// parseItemQuery reads category, start_date, end_date, q, verified and type.
// type=ALL and an empty type both disable the type post-filter.
func parseItemQuery(r *http.Request) (domain.ItemFilter, domain.ItemType, error) {
	q := r.URL.Query()
	f := domain.ItemFilter{
		Category: q.Get("category"),
		Query:    strings.TrimSpace(q.Get("q")),
	}
	if v := q.Get("verified"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return f, "", fmt.Errorf("verified must be true or false: %w", domain.ErrBadRequest)
		}
		f.IsVerified = &b
	}
	for _, bound := range []struct {
		key string
		dst **time.Time
	}{{"start_date", &f.StartDate}, {"end_date", &f.EndDate}} {
		v := q.Get(bound.key)
		if v == "" {
			continue
		}
		day, err := domain.ParseDay(v)
		if err != nil {
			return f, "", fmt.Errorf("%s must be YYYY-MM-DD: %w", bound.key, domain.ErrBadRequest)
		}
		*bound.dst = &day
	}

	var t domain.ItemType
	switch strings.ToUpper(q.Get("type")) {
	case "", "ALL":
	case string(domain.ItemTypeLost):
		t = domain.ItemTypeLost
	case string(domain.ItemTypeFound):
		t = domain.ItemTypeFound
	default:
		return f, "", fmt.Errorf("type must be ALL, LOST or FOUND: %w", domain.ErrBadRequest)
	}
	return f, t, nil
}
