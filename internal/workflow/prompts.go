package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/gapline/gapline/internal/prompts"
)

// ComposePrompt builds a stage prompt by combining tunable instructions,
// the immutable output specification, and the payload for the stage: raw
// document text for extraction, serialized processes and alignment signals
// for analysis.
func ComposePrompt(
	ctx context.Context,
	ps prompts.System,
	stage prompts.Stage,
	payload string,
) (string, error) {
	instructions, err := ps.Instructions(ctx, stage)
	if err != nil {
		return "", fmt.Errorf("load instructions for %s: %w", stage, err)
	}

	spec, err := ps.Spec(ctx, stage)
	if err != nil {
		return "", fmt.Errorf("load spec for %s: %w", stage, err)
	}

	var sb strings.Builder
	sb.WriteString(instructions)
	sb.WriteString("\n\n")
	sb.WriteString(spec)

	if payload != "" {
		sb.WriteString("\n\n")
		sb.WriteString(payload)
	}

	return sb.String(), nil
}
