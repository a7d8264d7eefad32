package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

type stubPinger struct{ err error }

func (s stubPinger) HealthCheck() error { return s.err }

func TestHealthCheck(t *testing.T) {
	cases := []struct {
		name   string
		events Pinger
		action string
		want   int
	}{
		{"ping", nil, "ping", http.StatusOK},
		{"ready without broker", nil, "ready", http.StatusOK},
		{"ready broker up", stubPinger{}, "ready", http.StatusOK},
		{"ready broker down", stubPinger{err: errors.New("closed")}, "ready", http.StatusServiceUnavailable},
		{"unknown", nil, "dance", http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := chi.NewRouter()
			r.Get("/health-check/{action}", NewHealthHandler(tc.events).Ping)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health-check/"+tc.action, nil))
			assert.Equal(t, tc.want, rr.Code)
		})
	}
}
