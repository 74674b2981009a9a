package api

import (
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/gapline/gapline/internal/config"
	"github.com/gapline/gapline/internal/infrastructure"
	"github.com/gapline/gapline/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Agent      gaconfig.AgentConfig
	Pagination pagination.Config
	Workflow   config.WorkflowConfig
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
		},
		Agent:      cfg.Agent,
		Pagination: cfg.API.Pagination,
		Workflow:   cfg.Workflow,
	}
}
