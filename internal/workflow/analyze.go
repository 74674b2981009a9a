package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/gapline/gapline/internal/prompts"
	"github.com/gapline/gapline/pkg/formatting"
)

// Canonical impact and effort ratings.
const (
	LevelLow    = "Low"
	LevelMedium = "Medium"
	LevelHigh   = "High"
)

// AlignNode returns a state node that computes deterministic comparison
// signals for the two processes before any model involvement.
func AlignNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		asIs, err := stateValue[ProcessInput](s.Get, KeyAsIs)
		if err != nil {
			return s, fmt.Errorf("align: %w", err)
		}

		toBe, err := stateValue[ProcessInput](s.Get, KeyToBe)
		if err != nil {
			return s, fmt.Errorf("align: %w", err)
		}

		signals := Compare(asIs, toBe)

		rt.Logger.InfoContext(
			ctx, "align node complete",
			"aligned", signals.AlignedSteps,
			"added", len(signals.AddedSteps),
			"removed", len(signals.RemovedSteps),
		)

		s = s.Set(KeySignals, signals)
		return s, nil
	})
}

// SynthesizeNode returns a state node that sends both processes and the
// alignment signals to the model and parses the gap analysis response.
func SynthesizeNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		asIs, err := stateValue[ProcessInput](s.Get, KeyAsIs)
		if err != nil {
			return s, fmt.Errorf("synthesize: %w", err)
		}

		toBe, err := stateValue[ProcessInput](s.Get, KeyToBe)
		if err != nil {
			return s, fmt.Errorf("synthesize: %w", err)
		}

		signals, err := stateValue[Signals](s.Get, KeySignals)
		if err != nil {
			return s, fmt.Errorf("synthesize: %w", err)
		}

		payload, err := analysisPayload(asIs, toBe, signals)
		if err != nil {
			return s, fmt.Errorf("synthesize: %w", err)
		}

		prompt, err := ComposePrompt(ctx, rt.Prompts, prompts.StageAnalyze, payload)
		if err != nil {
			return s, fmt.Errorf("synthesize: %w", err)
		}

		content, err := rt.complete(ctx, prompt, rt.AnalysisTimeout)
		if err != nil {
			return s, fmt.Errorf("synthesize: model call: %w", err)
		}

		parsed, err := formatting.Parse[analysisResponse](content)
		if err != nil {
			return s, fmt.Errorf("synthesize: %w: %w", ErrGenerationFailed, err)
		}

		rt.Logger.InfoContext(
			ctx, "synthesize node complete",
			"findings", len(parsed.Findings),
		)

		s = s.Set(KeyAnalysis, parsed)
		return s, nil
	})
}

// ReviewNode returns a state node that validates the synthesized findings,
// normalizes their ratings, and assembles the final AnalysisResult.
func ReviewNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		parsed, err := stateValue[analysisResponse](s.Get, KeyAnalysis)
		if err != nil {
			return s, fmt.Errorf("review: %w", err)
		}

		signals, err := stateValue[Signals](s.Get, KeySignals)
		if err != nil {
			return s, fmt.Errorf("review: %w", err)
		}

		if strings.TrimSpace(parsed.Summary) == "" {
			return s, fmt.Errorf("review: %w: empty summary", ErrGenerationFailed)
		}

		// Invalid findings are dropped, not fatal: the report is advisory,
		// so a partial result beats failing the whole comparison. Each drop
		// is logged and carried as a warning for the caller.
		findings := make([]FindingDraft, 0, len(parsed.Findings))
		var warnings []string
		for i, f := range parsed.Findings {
			if reason := findingDefect(f); reason != "" {
				warnings = append(warnings, fmt.Sprintf("finding %d dropped: %s", i+1, reason))
				rt.Logger.WarnContext(
					ctx, "finding dropped",
					"position", i+1,
					"reason", reason,
				)
				continue
			}

			f.FindingType = normalizeFindingType(f.FindingType)
			f.Impact = normalizeLevel(f.Impact)
			f.Effort = normalizeLevel(f.Effort)
			findings = append(findings, f)
		}

		if len(findings) == 0 {
			return s, fmt.Errorf("review: %w: no valid findings", ErrGenerationFailed)
		}

		result := AnalysisResult{
			Summary:     strings.TrimSpace(parsed.Summary),
			Findings:    findings,
			Warnings:    warnings,
			Signals:     signals,
			CompletedAt: time.Now(),
		}

		rt.Logger.InfoContext(
			ctx, "review node complete",
			"findings", len(result.Findings),
			"dropped", len(warnings),
		)

		s = s.Set(KeyAnalysis, result)
		return s, nil
	})
}

func analysisPayload(asIs, toBe ProcessInput, signals Signals) (string, error) {
	envelope := struct {
		AsIs    ProcessInput `json:"as_is_process"`
		ToBe    ProcessInput `json:"to_be_process"`
		Signals Signals      `json:"alignment_signals"`
	}{asIs, toBe, signals}

	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize comparison payload: %w", err)
	}

	return "Comparison input:\n\n" + string(data), nil
}

// findingDefect reports why a finding is unusable, or "" when it is valid.
// A finding needs both a description and a recommendation to be actionable.
func findingDefect(f FindingDraft) string {
	switch {
	case strings.TrimSpace(f.Description) == "":
		return "no description"
	case strings.TrimSpace(f.Recommendation) == "":
		return "no recommendation"
	default:
		return ""
	}
}

// normalizeFindingType lowercases and snake_cases the model's category
// label. The set is open; normalization only makes labels comparable.
func normalizeFindingType(t string) string {
	t = strings.TrimSpace(strings.ToLower(t))
	if t == "" {
		return "general"
	}
	return strings.ReplaceAll(strings.ReplaceAll(t, " ", "_"), "-", "_")
}

// normalizeLevel maps a free-form rating to Low, Medium, or High.
// Unrecognized values settle on Medium rather than failing the analysis.
func normalizeLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "low":
		return LevelLow
	case "high":
		return LevelHigh
	default:
		return LevelMedium
	}
}
