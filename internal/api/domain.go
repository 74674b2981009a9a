package api

import (
	"github.com/gapline/gapline/internal/analyses"
	"github.com/gapline/gapline/internal/processes"
	"github.com/gapline/gapline/internal/prompts"
	"github.com/gapline/gapline/internal/workflow"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Processes processes.System
	Analyses  analyses.System
	Prompts   prompts.System
}

// NewDomain creates all domain systems from the API runtime. Both pipeline
// domains share a single workflow runtime.
func NewDomain(runtime *Runtime) *Domain {
	promptsSystem := prompts.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	rt := &workflow.Runtime{
		Agent:           runtime.Agent,
		Prompts:         promptsSystem,
		Logger:          runtime.Logger.With("workflow", "gap"),
		ExtractTimeout:  runtime.Workflow.ExtractTimeoutDuration(),
		AnalysisTimeout: runtime.Workflow.AnalysisTimeoutDuration(),
	}

	processesSystem := processes.New(
		runtime.Database.Connection(),
		rt,
		runtime.Logger,
		runtime.Pagination,
	)

	analysesSystem := analyses.New(
		runtime.Database.Connection(),
		rt,
		processesSystem,
		runtime.Logger,
		runtime.Pagination,
	)

	return &Domain{
		Processes: processesSystem,
		Analyses:  analysesSystem,
		Prompts:   promptsSystem,
	}
}
