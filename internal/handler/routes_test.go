package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"telesocial-proxy-go/internal/config"
	"telesocial-proxy-go/internal/metrics"
)

func TestRegisterRoutes_Wiring(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer upstream.Close()

	proxy := newTestHandler(t, upstream.URL)
	cfg := &config.Config{
		Upstream: config.UpstreamConfig{BaseURL: upstream.URL},
		Metrics:  config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	health := NewHealthHandler(cfg, "test")

	e := echo.New()
	RegisterRoutes(e, proxy, health, metrics.New(), cfg)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"GET /", http.MethodGet, "/", http.StatusOK},
		{"GET /healthz", http.MethodGet, "/healthz", http.StatusOK},
		{"GET /proxy/status", http.MethodGet, "/proxy/status", http.StatusOK},
		{"GET /api/proxy", http.MethodGet, "/api/proxy?url=https%3A%2F%2Fexample.com%2Fv", http.StatusOK},
		{"GET /api/proxy without url", http.MethodGet, "/api/proxy", http.StatusBadRequest},
		{"GET /metrics", http.MethodGet, "/metrics", http.StatusOK},
		{"POST /api/proxy not allowed", http.MethodPost, "/api/proxy", http.StatusMethodNotAllowed},
		{"GET /unknown returns 404", http.MethodGet, "/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRegisterRoutes_MetricsDisabled(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer upstream.Close()

	proxy := newTestHandler(t, upstream.URL)
	cfg := &config.Config{
		Upstream: config.UpstreamConfig{BaseURL: upstream.URL},
		Metrics:  config.MetricsConfig{Enabled: false, Path: "/metrics"},
	}
	health := NewHealthHandler(cfg, "test")

	e := echo.New()
	RegisterRoutes(e, proxy, health, metrics.New(), cfg)

	req := httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d when metrics are disabled", rec.Code, http.StatusNotFound)
	}
}
