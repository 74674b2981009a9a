package openapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gapline/gapline/pkg/openapi"
)

func TestNewSpec(t *testing.T) {
	spec := openapi.NewSpec("Gapline API", "0.1.0")
	spec.SetDescription("gap analysis")
	spec.AddServer("/api")

	data, err := openapi.MarshalJSON(spec)
	if err != nil {
		t.Fatalf("MarshalJSON error: %v", err)
	}

	var decoded struct {
		OpenAPI string `json:"openapi"`
		Info    struct {
			Title       string `json:"title"`
			Version     string `json:"version"`
			Description string `json:"description"`
		} `json:"info"`
		Servers []struct {
			URL string `json:"url"`
		} `json:"servers"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal spec: %v", err)
	}

	if decoded.Info.Title != "Gapline API" {
		t.Errorf("title = %q, want Gapline API", decoded.Info.Title)
	}
	if decoded.Info.Version != "0.1.0" {
		t.Errorf("version = %q, want 0.1.0", decoded.Info.Version)
	}
	if len(decoded.Servers) != 1 || decoded.Servers[0].URL != "/api" {
		t.Errorf("servers = %v, want [/api]", decoded.Servers)
	}
}

func TestNewComponents(t *testing.T) {
	c := openapi.NewComponents()

	if _, ok := c.Schemas["PageRequest"]; !ok {
		t.Error("components missing PageRequest schema")
	}
	for _, name := range []string{"BadRequest", "NotFound", "Conflict"} {
		if _, ok := c.Responses[name]; !ok {
			t.Errorf("components missing %s response", name)
		}
	}
}

func TestServeSpec(t *testing.T) {
	handler := openapi.ServeSpec([]byte(`{"openapi":"3.0.3"}`))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/openapi.json", nil)
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if rec.Body.String() != `{"openapi":"3.0.3"}` {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestConfigFinalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var cfg openapi.Config
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("Finalize error: %v", err)
		}
		if cfg.Title == "" || cfg.Description == "" {
			t.Errorf("defaults not applied: %+v", cfg)
		}
	})

	t.Run("env override", func(t *testing.T) {
		t.Setenv("TEST_OPENAPI_TITLE", "Custom API")

		var cfg openapi.Config
		env := &openapi.ConfigEnv{Title: "TEST_OPENAPI_TITLE"}
		if err := cfg.Finalize(env); err != nil {
			t.Fatalf("Finalize error: %v", err)
		}
		if cfg.Title != "Custom API" {
			t.Errorf("Title = %q, want Custom API", cfg.Title)
		}
	})
}
