package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/findr-api/internal/domain"
)

// --- mocks ---

type mockSessionSvc struct{ mock.Mock }

func (m *mockSessionSvc) Login(ctx context.Context, role string) (*domain.User, string, error) {
	args := m.Called(ctx, role)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.String(1), args.Error(2)
	}
	return nil, "", args.Error(2)
}

func (m *mockSessionSvc) Current(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

// --- tests ---

func TestLogin_HappyPath(t *testing.T) {
	svc := &mockSessionSvc{}
	svc.On("Login", mock.Anything, domain.RoleStaff).
		Return(&domain.User{UserID: "staff-1", Role: domain.RoleStaff}, "tok", nil)

	r := httptest.NewRequest(http.MethodPost, "/v1/sessions/login", bytes.NewBufferString(`{"role":"STAFF"}`))
	rr := httptest.NewRecorder()
	NewSessionHandler(svc).Login(rr, r)

	require.Equal(t, http.StatusOK, rr.Code)
	var env AuthEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	assert.Equal(t, "tok", env.Bearer)
	assert.Equal(t, "staff-1", env.User.UserID)
}

func TestLogin_UnknownRole(t *testing.T) {
	svc := &mockSessionSvc{}
	r := httptest.NewRequest(http.MethodPost, "/v1/sessions/login", bytes.NewBufferString(`{"role":"ADMIN"}`))
	rr := httptest.NewRecorder()
	NewSessionHandler(svc).Login(rr, r)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestMe_ReturnsCaller(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockSessionSvc{}
	svc.On("Current", mock.Anything, "user-1").Return(&domain.User{UserID: "user-1", Name: "Kent Jasper Sisi"}, nil)

	r := bearerReq(t, p, http.MethodGet, "/v1/users/me", "user-1", domain.RoleStudent, nil)
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(NewSessionHandler(svc).Me), rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Kent Jasper Sisi")
}

func TestMe_BadToken(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockSessionSvc{}
	r := httptest.NewRequest(http.MethodGet, "/v1/users/me", nil)
	r.Header.Set("Authorization", "Bearer nope")
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(NewSessionHandler(svc).Me), rr, r)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
