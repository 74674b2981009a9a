package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/gapline/gapline/internal/prompts"
	"github.com/gapline/gapline/pkg/formatting"
)

// ExtractNode returns a state node that sends the document text to the
// model with the extract-stage prompt and parses the response into an
// unvalidated ProcessDraft.
func ExtractNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		text, err := stateValue[string](s.Get, KeyDocumentText)
		if err != nil {
			return s, fmt.Errorf("extract: %w", err)
		}

		prompt, err := ComposePrompt(ctx, rt.Prompts, prompts.StageExtract, "Document text:\n\n"+text)
		if err != nil {
			return s, fmt.Errorf("extract: %w", err)
		}

		content, err := rt.complete(ctx, prompt, rt.ExtractTimeout)
		if err != nil {
			return s, fmt.Errorf("extract: model call: %w", err)
		}

		draft, err := formatting.Parse[ProcessDraft](content)
		if err != nil {
			return s, fmt.Errorf("extract: %w: %w", ErrMalformedExtraction, err)
		}

		rt.Logger.InfoContext(
			ctx, "extract node complete",
			"process", draft.Name,
			"steps", len(draft.Steps),
		)

		s = s.Set(KeyDraft, draft)
		return s, nil
	})
}

// ValidateNode returns a state node that checks the extraction draft
// against the process invariants and stores the normalized snapshot.
func ValidateNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		draft, err := stateValue[ProcessDraft](s.Get, KeyDraft)
		if err != nil {
			return s, fmt.Errorf("validate: %w", err)
		}

		process, err := ValidateDraft(draft)
		if err != nil {
			return s, fmt.Errorf("validate: %w", err)
		}

		rt.Logger.InfoContext(
			ctx, "validate node complete",
			"process", process.Name,
			"steps", len(process.Steps),
		)

		s = s.Set(KeyProcess, *process)
		return s, nil
	})
}
