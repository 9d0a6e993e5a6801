package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestHealth(t *testing.T) {
	t.Parallel()

	r := gin.New()
	r.Any("/healthz", Health)

	tests := []struct {
		method     string
		wantStatus int
		wantBody   bool
	}{
		{http.MethodGet, http.StatusOK, true},
		{http.MethodHead, http.StatusOK, false},
		{http.MethodOptions, http.StatusNoContent, false},
		{http.MethodPost, http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, "/healthz", nil))

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if got := w.Header().Get("Cache-Control"); got != "no-store" {
				t.Errorf("expected Cache-Control 'no-store', got %q", got)
			}
			if !tt.wantBody {
				if w.Body.Len() != 0 {
					t.Errorf("expected empty body, got %q", w.Body.String())
				}
				return
			}
			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if body["status"] != "ok" {
				t.Errorf("expected status 'ok', got %q", body["status"])
			}
		})
	}
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		checks     []Check
		wantStatus int
		wantChecks map[string]string
	}{
		{
			name:       "no checks",
			wantStatus: http.StatusOK,
			wantChecks: map[string]string{},
		},
		{
			name: "all healthy",
			checks: []Check{
				{Name: "sql", Ping: func(context.Context) error { return nil }},
				{Name: "redis", Ping: func(context.Context) error { return nil }},
			},
			wantStatus: http.StatusOK,
			wantChecks: map[string]string{"sql": "ok", "redis": "ok"},
		},
		{
			name: "one down",
			checks: []Check{
				{Name: "sql", Ping: func(context.Context) error { return nil }},
				{Name: "mongo", Ping: func(context.Context) error { return errors.New("connection refused") }},
			},
			wantStatus: http.StatusServiceUnavailable,
			wantChecks: map[string]string{"sql": "ok", "mongo": "down"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := gin.New()
			r.GET("/readyz", Readiness(tt.checks...))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			var body struct {
				Checks map[string]string `json:"checks"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if len(body.Checks) != len(tt.wantChecks) {
				t.Fatalf("expected %d checks, got %v", len(tt.wantChecks), body.Checks)
			}
			for k, v := range tt.wantChecks {
				if body.Checks[k] != v {
					t.Errorf("check %s: expected %q, got %q", k, v, body.Checks[k])
				}
			}
		})
	}
}

func TestReadiness_SlowCheckHitsTimeout(t *testing.T) {
	t.Parallel()

	// タイムアウトを超えるチェックはdown扱い
	slow := Check{Name: "mongo", Ping: func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(readinessTimeout + time.Second):
			return nil
		}
	}}
	r := gin.New()
	r.GET("/readyz", Readiness(slow))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status %d, got %d", http.StatusServiceUnavailable, w.Code)
	}
	if got := w.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("expected Cache-Control 'no-store', got %q", got)
	}
}
