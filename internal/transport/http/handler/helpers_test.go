package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	jwtinfra "github.com/findr-api/internal/infrastructure/jwt"
	"github.com/findr-api/internal/transport/http/middleware"
)

// --- helpers ---

// newTestJWTProvider returns a provider backed by a fresh in-memory key pair.
func newTestJWTProvider(t *testing.T) *jwtinfra.Provider {
	t.Helper()
	p, err := jwtinfra.NewEphemeralProvider(time.Hour)
	require.NoError(t, err)
	return p
}

// bearerReq builds a request with a signed Bearer token for the given userID and role.
func bearerReq(t *testing.T, p *jwtinfra.Provider, method, target, userID, role string, body []byte) *http.Request {
	t.Helper()
	token, err := p.Sign(userID, role)
	require.NoError(t, err)
	var r *http.Request
	if body != nil {
		r = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	r.Header.Set("Authorization", "Bearer "+token)
	return r
}

// withChiID injects a chi URL param "id" into the request context.
func withChiID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// serveAuthed wraps the handler with middleware.Auth before serving.
func serveAuthed(p *jwtinfra.Provider, h http.Handler, w http.ResponseWriter, r *http.Request) {
	middleware.Auth(p)(h).ServeHTTP(w, r)
}
