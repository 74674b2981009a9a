package workflow

import (
	"context"
	"fmt"
	"strings"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// ExtractProcess runs the extraction pipeline over raw document text.
// The graph is extract → validate; the result is a normalized process
// snapshot ready for persistence.
func ExtractProcess(ctx context.Context, rt *Runtime, text string) (*ProcessInput, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDocument
	}

	graph, err := buildExtractGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build extract graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeyDocumentText, text)

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		return nil, fmt.Errorf("execute extract graph: %w", err)
	}

	process, err := stateValue[ProcessInput](finalState.Get, KeyProcess)
	if err != nil {
		return nil, fmt.Errorf("extract result: %w", err)
	}

	return &process, nil
}

// AnalyzeGap runs the analysis pipeline over two validated process
// snapshots. The graph is align → synthesize → review; the result carries
// the model's findings alongside the deterministic alignment signals.
func AnalyzeGap(ctx context.Context, rt *Runtime, asIs, toBe *ProcessInput) (*AnalysisResult, error) {
	if asIs == nil || toBe == nil {
		return nil, ErrMissingProcess
	}
	if len(asIs.Steps) == 0 {
		return nil, fmt.Errorf("%w: as-is %q", ErrEmptyProcess, asIs.Name)
	}
	if len(toBe.Steps) == 0 {
		return nil, fmt.Errorf("%w: to-be %q", ErrEmptyProcess, toBe.Name)
	}

	graph, err := buildAnalyzeGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build analyze graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeyAsIs, *asIs)
	initialState = initialState.Set(KeyToBe, *toBe)

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		return nil, fmt.Errorf("execute analyze graph: %w", err)
	}

	result, err := stateValue[AnalysisResult](finalState.Get, KeyAnalysis)
	if err != nil {
		return nil, fmt.Errorf("analyze result: %w", err)
	}

	return &result, nil
}

func buildExtractGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("gapline-extract")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("extract", ExtractNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("validate", ValidateNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("extract", "validate", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("extract"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("validate"); err != nil {
		return nil, err
	}

	return graph, nil
}

func buildAnalyzeGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("gapline-analyze")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("align", AlignNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("synthesize", SynthesizeNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("review", ReviewNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("align", "synthesize", nil); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("synthesize", "review", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("align"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("review"); err != nil {
		return nil, err
	}

	return graph, nil
}
