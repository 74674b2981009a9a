// Package workflow implements the extraction and gap-analysis pipelines as
// state graphs. Extraction turns document text into a validated process
// snapshot; analysis compares two snapshots and synthesizes gap findings.
package workflow

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// State bag keys shared across graph nodes.
const (
	KeyDocumentText = "document_text"
	KeyDraft        = "draft"
	KeyProcess      = "process"
	KeyAsIs         = "as_is"
	KeyToBe         = "to_be"
	KeySignals      = "signals"
	KeyAnalysis     = "analysis"
)

// StepInput is a validated process step. It doubles as the wire shape
// handed to the model during analysis.
type StepInput struct {
	Number       int    `json:"number"`
	Description  string `json:"description"`
	ApproverRole string `json:"approver_role"`
	ApproverName string `json:"approver_name"`
	IsAutomated  bool   `json:"is_automated"`
}

// ProcessInput is a validated process snapshot: the output of the extract
// pipeline and the input to the analyze pipeline.
type ProcessInput struct {
	Name   string      `json:"name"`
	System string      `json:"system"`
	Steps  []StepInput `json:"steps"`
}

// StepNumber holds a step number decoded from untrusted model output.
// Models emit numbers as integers or as quoted strings; both are accepted
// here and judged during validation.
type StepNumber struct {
	Value int
	Raw   string
	Valid bool
}

// UnmarshalJSON accepts a JSON number or a numeric string. Anything else
// leaves the value marked invalid for validation to reject.
func (n *StepNumber) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	n.Raw = strings.Trim(raw, `"`)

	v, err := strconv.Atoi(n.Raw)
	if err != nil {
		n.Valid = false
		return nil
	}

	n.Value = v
	n.Valid = true
	return nil
}

// MarshalJSON emits the numeric value.
func (n StepNumber) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Value)
}

// StepDraft is an unvalidated step as parsed from a model response.
// IsAutomated is a pointer so validation can distinguish "the model said
// false" from "the model omitted the field".
type StepDraft struct {
	Number       StepNumber `json:"number"`
	Description  string     `json:"description"`
	ApproverRole string     `json:"approver_role"`
	ApproverName string     `json:"approver_name"`
	IsAutomated  *bool      `json:"is_automated,omitempty"`
}

// ProcessDraft is an unvalidated process as parsed from a model response.
type ProcessDraft struct {
	Name   string      `json:"name"`
	System string      `json:"system"`
	Steps  []StepDraft `json:"steps"`
}

// AutomationDelta records an automation change at an aligned step position.
type AutomationDelta struct {
	Position int       `json:"position"`
	AsIsStep StepInput `json:"as_is_step"`
	ToBeStep StepInput `json:"to_be_step"`
}

// Signals are the deterministic comparison results handed to the model
// alongside the two step lists. Positions are 1-based.
type Signals struct {
	AlignedSteps int               `json:"aligned_steps"`
	AddedSteps   []StepInput       `json:"added_steps"`
	RemovedSteps []StepInput       `json:"removed_steps"`
	Automated    []AutomationDelta `json:"automation_introduced"`
	Deautomated  []AutomationDelta `json:"automation_lost"`
}

// FindingDraft is a single gap finding as parsed from a model response.
// FindingType is an open set; Impact and Effort are normalized to
// Low/Medium/High during review.
type FindingDraft struct {
	FindingType    string `json:"finding_type"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation"`
	Impact         string `json:"impact"`
	Effort         string `json:"effort"`
}

// analysisResponse is the raw shape of the analyze stage's model output.
type analysisResponse struct {
	Summary  string         `json:"summary"`
	Findings []FindingDraft `json:"findings"`
}

// AnalysisResult is the output of the analyze pipeline. Warnings records
// findings the review step dropped for failing validation; the surviving
// findings are still returned.
type AnalysisResult struct {
	Summary     string         `json:"summary"`
	Findings    []FindingDraft `json:"findings"`
	Warnings    []string       `json:"warnings,omitempty"`
	Signals     Signals        `json:"signals"`
	CompletedAt time.Time      `json:"completed_at"`
}

func stateValue[T any](get func(string) (any, bool), key string) (T, error) {
	var zero T

	val, ok := get(key)
	if !ok {
		return zero, fmt.Errorf("missing %s in state", key)
	}

	typed, ok := val.(T)
	if !ok {
		return zero, fmt.Errorf("%s is not %T", key, zero)
	}

	return typed, nil
}
