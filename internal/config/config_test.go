package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gapline/gapline/internal/config"
)

// Load reads config.toml relative to the working directory, so every test
// runs from its own temp dir with the database env vars required by
// validation.
func setupEnv(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("GAPLINE_DB_NAME", "gapline")
	t.Setenv("GAPLINE_DB_USER", "gapline")
}

func writeConfig(t *testing.T, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(".", name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadDefaults(t *testing.T) {
	setupEnv(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.ShutdownTimeout != "30s" {
		t.Errorf("ShutdownTimeout = %q, want 30s", cfg.ShutdownTimeout)
	}
	if got := cfg.Server.Addr(); got != "0.0.0.0:8080" {
		t.Errorf("Server.Addr() = %q, want 0.0.0.0:8080", got)
	}
	if cfg.API.BasePath != "/api" {
		t.Errorf("API.BasePath = %q, want /api", cfg.API.BasePath)
	}
	if got := cfg.API.MaxUploadSizeBytes(); got != 16*1024*1024 {
		t.Errorf("MaxUploadSizeBytes = %d, want 16MB", got)
	}
	if got := cfg.Workflow.ExtractTimeoutDuration(); got != 60*time.Second {
		t.Errorf("ExtractTimeout = %v, want 60s", got)
	}
	if got := cfg.Workflow.AnalysisTimeoutDuration(); got != 60*time.Second {
		t.Errorf("AnalysisTimeout = %v, want 60s", got)
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("Database.Host = %q, want localhost", cfg.Database.Host)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	setupEnv(t)
	t.Setenv("GAPLINE_SERVER_PORT", "9090")
	t.Setenv("GAPLINE_API_BASE_PATH", "/v1")
	t.Setenv("GAPLINE_WORKFLOW_ANALYSIS_TIMEOUT", "3m")
	t.Setenv("GAPLINE_SHUTDOWN_TIMEOUT", "45s")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.API.BasePath != "/v1" {
		t.Errorf("API.BasePath = %q, want /v1", cfg.API.BasePath)
	}
	if got := cfg.Workflow.AnalysisTimeoutDuration(); got != 3*time.Minute {
		t.Errorf("AnalysisTimeout = %v, want 3m", got)
	}
	if got := cfg.ShutdownTimeoutDuration(); got != 45*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 45s", got)
	}
}

func TestLoadBaseFile(t *testing.T) {
	setupEnv(t)
	writeConfig(t, "config.toml", `
shutdown_timeout = "1m"

[server]
port = 3000

[api]
base_path = "/gapline"
max_upload_size = "32MB"

[workflow]
extract_timeout = "5m"
`)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.API.BasePath != "/gapline" {
		t.Errorf("API.BasePath = %q, want /gapline", cfg.API.BasePath)
	}
	if got := cfg.API.MaxUploadSizeBytes(); got != 32*1024*1024 {
		t.Errorf("MaxUploadSizeBytes = %d, want 32MB", got)
	}
	if got := cfg.Workflow.ExtractTimeoutDuration(); got != 5*time.Minute {
		t.Errorf("ExtractTimeout = %v, want 5m", got)
	}
	if cfg.ShutdownTimeout != "1m" {
		t.Errorf("ShutdownTimeout = %q, want 1m", cfg.ShutdownTimeout)
	}
}

func TestLoadOverlayFile(t *testing.T) {
	setupEnv(t)
	t.Setenv("GAPLINE_ENV", "test")
	writeConfig(t, "config.toml", `
[server]
port = 3000
host = "0.0.0.0"
`)
	writeConfig(t, "config.test.toml", `
[server]
port = 4000
`)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Server.Port != 4000 {
		t.Errorf("Server.Port = %d, want overlay 4000", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want base 0.0.0.0", cfg.Server.Host)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad shutdown timeout", map[string]string{"GAPLINE_SHUTDOWN_TIMEOUT": "eventually"}},
		{"bad analysis timeout", map[string]string{"GAPLINE_WORKFLOW_ANALYSIS_TIMEOUT": "soon"}},
		{"bad server read timeout", map[string]string{"GAPLINE_SERVER_READ_TIMEOUT": "whenever"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if _, err := config.Load(); err == nil {
				t.Error("Load expected error")
			}
		})
	}
}

func TestEnv(t *testing.T) {
	setupEnv(t)
	cfg := &config.Config{}

	if got := cfg.Env(); got != "local" {
		t.Errorf("Env() = %q, want local", got)
	}

	t.Setenv("GAPLINE_ENV", "prod")
	if got := cfg.Env(); got != "prod" {
		t.Errorf("Env() = %q, want prod", got)
	}
}
