package api_test

import (
	"errors"
	"net/http"
	"testing"
)

type healthBody struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Database      string  `json:"database"`
	SchemaVersion int     `json:"schema_version"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

type readyBody struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func TestLiveness(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		db           *mockChecker
		wantDatabase string
	}{
		{name: "no database", db: nil, wantDatabase: "not_configured"},
		{name: "connected", db: &mockChecker{}, wantDatabase: "connected"},
		{name: "disconnected", db: &mockChecker{pingErr: errors.New("refused")}, wantDatabase: "disconnected"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var router http.Handler
			if tc.db == nil {
				router = newTestRouter(t, &mockMovieRepo{}, nil, nil)
			} else {
				router = newTestRouter(t, &mockMovieRepo{}, tc.db, tc.db)
			}

			w := doRequest(router, "/api/v1/health")
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", w.Code)
			}

			body := decodeBody[healthBody](t, w)
			if body.Status != "ok" || body.Version != "test" || body.Database != tc.wantDatabase {
				t.Errorf("unexpected body: %+v", body)
			}

			if body.SchemaVersion < 1 {
				t.Errorf("schema_version = %d, want at least 1", body.SchemaVersion)
			}
		})
	}
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		checker    *mockChecker
		wantCode   int
		wantStatus string
		wantDB     string
		wantSchema string
	}{
		{name: "ready", checker: &mockChecker{ready: true}, wantCode: http.StatusOK, wantStatus: "ready", wantDB: "ok", wantSchema: "ok"},
		{name: "schema missing", checker: &mockChecker{ready: false}, wantCode: http.StatusServiceUnavailable, wantStatus: "not_ready", wantDB: "ok", wantSchema: "missing"},
		{name: "schema error", checker: &mockChecker{schemaErr: errors.New("permission denied")}, wantCode: http.StatusServiceUnavailable, wantStatus: "not_ready", wantDB: "ok", wantSchema: "error"},
		{name: "database down", checker: &mockChecker{pingErr: errors.New("refused"), ready: true}, wantCode: http.StatusServiceUnavailable, wantStatus: "not_ready", wantDB: "error", wantSchema: "unknown"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			w := doRequest(newTestRouter(t, &mockMovieRepo{}, tc.checker, tc.checker), "/api/v1/ready")
			if w.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, w.Code)
			}

			body := decodeBody[readyBody](t, w)
			if body.Status != tc.wantStatus || body.Checks["database"] != tc.wantDB || body.Checks["schema"] != tc.wantSchema {
				t.Errorf("unexpected body: %+v", body)
			}
		})
	}
}

func TestReadiness_NotConfigured(t *testing.T) {
	t.Parallel()

	w := doRequest(newTestRouter(t, &mockMovieRepo{}, nil, nil), "/api/v1/ready")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}
