package workflow_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/gapline/gapline/internal/workflow"
)

func boolPtr(b bool) *bool { return &b }

func stepNumber(t *testing.T, raw string) workflow.StepNumber {
	t.Helper()
	var n workflow.StepNumber
	if err := json.Unmarshal([]byte(raw), &n); err != nil {
		t.Fatalf("unmarshal step number %q: %v", raw, err)
	}
	return n
}

func validDraft(t *testing.T) workflow.ProcessDraft {
	t.Helper()
	return workflow.ProcessDraft{
		Name:   "Invoice Approval",
		System: "SAP",
		Steps: []workflow.StepDraft{
			{
				Number:       stepNumber(t, "1"),
				Description:  "Submit invoice",
				ApproverRole: "AP Clerk",
				ApproverName: "Jordan Reyes",
			},
			{
				Number:       stepNumber(t, "2"),
				Description:  "Manager review",
				ApproverRole: "Finance Manager",
				ApproverName: "Sam Okafor",
			},
		},
	}
}

func TestValidateDraft(t *testing.T) {
	input, err := workflow.ValidateDraft(validDraft(t))
	if err != nil {
		t.Fatalf("ValidateDraft error: %v", err)
	}

	if input.Name != "Invoice Approval" {
		t.Errorf("Name = %q, want Invoice Approval", input.Name)
	}
	if input.System != "SAP" {
		t.Errorf("System = %q, want SAP", input.System)
	}
	if len(input.Steps) != 2 {
		t.Fatalf("Steps length = %d, want 2", len(input.Steps))
	}
	if input.Steps[0].Number != 1 || input.Steps[1].Number != 2 {
		t.Errorf("step numbers = %d, %d, want 1, 2", input.Steps[0].Number, input.Steps[1].Number)
	}
}

func TestValidateDraftRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*workflow.ProcessDraft)
	}{
		{"missing name", func(d *workflow.ProcessDraft) { d.Name = "" }},
		{"whitespace name", func(d *workflow.ProcessDraft) { d.Name = "   " }},
		{"missing system", func(d *workflow.ProcessDraft) { d.System = "" }},
		{"no steps", func(d *workflow.ProcessDraft) { d.Steps = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft(t)
			tt.mutate(&draft)

			_, err := workflow.ValidateDraft(draft)
			if !errors.Is(err, workflow.ErrIncompleteExtraction) {
				t.Errorf("error = %v, want ErrIncompleteExtraction", err)
			}
		})
	}
}

func TestValidateDraftInvalidSteps(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*testing.T, *workflow.ProcessDraft)
	}{
		{
			name: "non-numeric step number",
			mutate: func(t *testing.T, d *workflow.ProcessDraft) {
				d.Steps[0].Number = stepNumber(t, `"first"`)
			},
		},
		{
			name: "zero step number",
			mutate: func(t *testing.T, d *workflow.ProcessDraft) {
				d.Steps[0].Number = stepNumber(t, "0")
			},
		},
		{
			name: "negative step number",
			mutate: func(t *testing.T, d *workflow.ProcessDraft) {
				d.Steps[0].Number = stepNumber(t, "-2")
			},
		},
		{
			name: "duplicate step number",
			mutate: func(t *testing.T, d *workflow.ProcessDraft) {
				d.Steps[1].Number = stepNumber(t, "1")
			},
		},
		{
			name: "empty description",
			mutate: func(t *testing.T, d *workflow.ProcessDraft) {
				d.Steps[1].Description = "  "
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft(t)
			tt.mutate(t, &draft)

			_, err := workflow.ValidateDraft(draft)
			if !errors.Is(err, workflow.ErrInvalidStep) {
				t.Errorf("error = %v, want ErrInvalidStep", err)
			}
		})
	}
}

func TestValidateDraftStringNumbersAccepted(t *testing.T) {
	draft := validDraft(t)
	draft.Steps[0].Number = stepNumber(t, `"1"`)
	draft.Steps[1].Number = stepNumber(t, `"2"`)

	input, err := workflow.ValidateDraft(draft)
	if err != nil {
		t.Fatalf("ValidateDraft error: %v", err)
	}
	if input.Steps[0].Number != 1 || input.Steps[1].Number != 2 {
		t.Errorf("step numbers = %d, %d, want 1, 2", input.Steps[0].Number, input.Steps[1].Number)
	}
}

func TestValidateDraftRenumbersGappedSequence(t *testing.T) {
	draft := validDraft(t)
	draft.Steps[0].Number = stepNumber(t, "10")
	draft.Steps[1].Number = stepNumber(t, "5")

	input, err := workflow.ValidateDraft(draft)
	if err != nil {
		t.Fatalf("ValidateDraft error: %v", err)
	}

	// Document order 10, 5 sorts to 5, 10 and collapses to 1, 2.
	if input.Steps[0].Description != "Manager review" {
		t.Errorf("first step = %q, want Manager review", input.Steps[0].Description)
	}
	if input.Steps[0].Number != 1 || input.Steps[1].Number != 2 {
		t.Errorf("step numbers = %d, %d, want 1, 2", input.Steps[0].Number, input.Steps[1].Number)
	}
}

func TestValidateDraftAutomationDerivation(t *testing.T) {
	tests := []struct {
		name         string
		approverName string
		isAutomated  *bool
		want         bool
	}{
		{"explicit true", "Jordan Reyes", boolPtr(true), true},
		{"explicit false overrides marker", "Automated", boolPtr(false), false},
		{"automated marker", "Automated", nil, true},
		{"system marker case-insensitive", "SYSTEM", nil, true},
		{"human approver", "Jordan Reyes", nil, false},
		{"no approver", "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft(t)
			draft.Steps[0].ApproverName = tt.approverName
			draft.Steps[0].IsAutomated = tt.isAutomated

			input, err := workflow.ValidateDraft(draft)
			if err != nil {
				t.Fatalf("ValidateDraft error: %v", err)
			}
			if input.Steps[0].IsAutomated != tt.want {
				t.Errorf("IsAutomated = %v, want %v", input.Steps[0].IsAutomated, tt.want)
			}
		})
	}
}

func TestValidateDraftTrimsFields(t *testing.T) {
	draft := validDraft(t)
	draft.Name = "  Invoice Approval  "
	draft.Steps[0].Description = "  Submit invoice  "
	draft.Steps[0].ApproverRole = " AP Clerk "

	input, err := workflow.ValidateDraft(draft)
	if err != nil {
		t.Fatalf("ValidateDraft error: %v", err)
	}
	if input.Name != "Invoice Approval" {
		t.Errorf("Name = %q, not trimmed", input.Name)
	}
	if input.Steps[0].Description != "Submit invoice" {
		t.Errorf("Description = %q, not trimmed", input.Steps[0].Description)
	}
	if input.Steps[0].ApproverRole != "AP Clerk" {
		t.Errorf("ApproverRole = %q, not trimmed", input.Steps[0].ApproverRole)
	}
}
