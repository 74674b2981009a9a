package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/gapline/gapline/internal/prompts"
)

// Completer abstracts the model call that graph nodes make. The production
// implementation wraps a go-agents chat agent; tests substitute a fake.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Runtime bundles the dependencies that workflow nodes require.
// It is constructed by higher-level composition code from Infrastructure
// and Domain systems.
type Runtime struct {
	Agent           gaconfig.AgentConfig
	Completer       Completer
	Prompts         prompts.System
	Logger          *slog.Logger
	ExtractTimeout  time.Duration
	AnalysisTimeout time.Duration
}

// ModelName reports the configured model, empty when unset.
func (rt *Runtime) ModelName() string {
	if rt.Agent.Model == nil {
		return ""
	}
	return rt.Agent.Model.Name
}

// ProviderName reports the configured provider, empty when unset.
func (rt *Runtime) ProviderName() string {
	if rt.Agent.Provider == nil {
		return ""
	}
	return rt.Agent.Provider.Name
}

func (rt *Runtime) completer() Completer {
	if rt.Completer != nil {
		return rt.Completer
	}
	return &agentCompleter{cfg: rt.Agent}
}

type agentCompleter struct {
	cfg gaconfig.AgentConfig
}

// Complete creates a fresh agent per call, mirroring the per-request agent
// lifecycle: agents are cheap to construct and hold no reusable state.
func (c *agentCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	a, err := agent.New(&c.cfg)
	if err != nil {
		return "", err
	}

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return "", err
	}

	return resp.Content(), nil
}

// complete issues a bounded model call. Deadline hits map to
// ErrAnalysisTimeout so callers can report 504 instead of a generic failure.
func (rt *Runtime) complete(ctx context.Context, prompt string, timeout time.Duration) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	content, err := rt.completer().Complete(ctx, prompt)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %w", ErrAnalysisTimeout, err)
		}
		return "", err
	}

	return content, nil
}
