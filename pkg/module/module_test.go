package module_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gapline/gapline/pkg/module"
)

func echoPathRouter() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Path", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})
}

func TestNewValidatesPrefix(t *testing.T) {
	tests := []struct {
		name      string
		prefix    string
		wantPanic bool
	}{
		{"valid prefix", "/api", false},
		{"empty prefix", "", true},
		{"missing leading slash", "api", true},
		{"multi-level prefix", "/api/v1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				recovered := recover() != nil
				if recovered != tt.wantPanic {
					t.Errorf("panic = %v, want %v", recovered, tt.wantPanic)
				}
			}()
			module.New(tt.prefix, echoPathRouter())
		})
	}
}

func TestPrefix(t *testing.T) {
	m := module.New("/api", echoPathRouter())
	if got := m.Prefix(); got != "/api" {
		t.Errorf("Prefix() = %q, want %q", got, "/api")
	}
}

func TestServeStripsPrefix(t *testing.T) {
	m := module.New("/api", echoPathRouter())

	tests := []struct {
		name     string
		path     string
		wantPath string
	}{
		{"nested path", "/api/processes/abc", "/processes/abc"},
		{"bare prefix", "/api", "/"},
		{"trailing slash", "/api/", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			m.Serve(rec, req)

			if got := rec.Header().Get("X-Path"); got != tt.wantPath {
				t.Errorf("inner path = %q, want %q", got, tt.wantPath)
			}
		})
	}
}

func TestServePreservesOriginalRequest(t *testing.T) {
	m := module.New("/api", echoPathRouter())

	req := httptest.NewRequest(http.MethodGet, "/api/processes", nil)
	rec := httptest.NewRecorder()
	m.Serve(rec, req)

	if req.URL.Path != "/api/processes" {
		t.Errorf("original request path mutated to %q", req.URL.Path)
	}
}

func TestUseAppliesMiddleware(t *testing.T) {
	m := module.New("/api", echoPathRouter())
	m.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Module", "gapline")
			next.ServeHTTP(w, r)
		})
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/processes", nil)
	m.Serve(rec, req)

	if got := rec.Header().Get("X-Module"); got != "gapline" {
		t.Errorf("middleware header = %q, want %q", got, "gapline")
	}
}
