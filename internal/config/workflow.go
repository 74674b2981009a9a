package config

import (
	"fmt"
	"os"
	"time"
)

const (
	EnvWorkflowAnalysisTimeout = "GAPLINE_WORKFLOW_ANALYSIS_TIMEOUT"
	EnvWorkflowExtractTimeout  = "GAPLINE_WORKFLOW_EXTRACT_TIMEOUT"
)

// WorkflowConfig bounds the model calls made by the extraction and
// analysis pipelines.
type WorkflowConfig struct {
	ExtractTimeout  string `toml:"extract_timeout"`
	AnalysisTimeout string `toml:"analysis_timeout"`
}

// ExtractTimeoutDuration returns ExtractTimeout as a time.Duration.
func (c *WorkflowConfig) ExtractTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ExtractTimeout)
	return d
}

// AnalysisTimeoutDuration returns AnalysisTimeout as a time.Duration.
func (c *WorkflowConfig) AnalysisTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.AnalysisTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *WorkflowConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *WorkflowConfig) Merge(overlay *WorkflowConfig) {
	if overlay.ExtractTimeout != "" {
		c.ExtractTimeout = overlay.ExtractTimeout
	}
	if overlay.AnalysisTimeout != "" {
		c.AnalysisTimeout = overlay.AnalysisTimeout
	}
}

func (c *WorkflowConfig) loadDefaults() {
	if c.ExtractTimeout == "" {
		c.ExtractTimeout = "60s"
	}
	if c.AnalysisTimeout == "" {
		c.AnalysisTimeout = "60s"
	}
}

func (c *WorkflowConfig) loadEnv() {
	if v := os.Getenv(EnvWorkflowExtractTimeout); v != "" {
		c.ExtractTimeout = v
	}
	if v := os.Getenv(EnvWorkflowAnalysisTimeout); v != "" {
		c.AnalysisTimeout = v
	}
}

func (c *WorkflowConfig) validate() error {
	if _, err := time.ParseDuration(c.ExtractTimeout); err != nil {
		return fmt.Errorf("invalid extract_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.AnalysisTimeout); err != nil {
		return fmt.Errorf("invalid analysis_timeout: %w", err)
	}
	return nil
}
