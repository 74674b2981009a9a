package workflow_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/gapline/gapline/internal/workflow"
)

func TestStepNumberUnmarshal(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValue int
		wantValid bool
	}{
		{"integer", "3", 3, true},
		{"numeric string", `"7"`, 7, true},
		{"negative integer", "-1", -1, true},
		{"word", `"three"`, 0, false},
		{"float", "2.5", 0, false},
		{"empty string", `""`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n workflow.StepNumber
			if err := json.Unmarshal([]byte(tt.input), &n); err != nil {
				t.Fatalf("unmarshal error: %v", err)
			}

			if n.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", n.Valid, tt.wantValid)
			}
			if tt.wantValid && n.Value != tt.wantValue {
				t.Errorf("Value = %d, want %d", n.Value, tt.wantValue)
			}
		})
	}
}

func TestStepNumberMarshal(t *testing.T) {
	n := workflow.StepNumber{Value: 4, Valid: true}

	data, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	if string(data) != "4" {
		t.Errorf("marshal = %s, want 4", data)
	}
}

func TestProcessInputRoundTrip(t *testing.T) {
	original := workflow.ProcessInput{
		Name:   "Invoice Approval",
		System: "SAP",
		Steps: []workflow.StepInput{
			{Number: 1, Description: "Submit invoice", ApproverRole: "AP Clerk", ApproverName: "Jordan Reyes"},
			{Number: 2, Description: "Match purchase order", ApproverRole: "System", IsAutomated: true},
			{Number: 3, Description: "Final approval", ApproverRole: "Finance Manager"},
		},
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}

	var decoded workflow.ProcessInput
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}

	if !reflect.DeepEqual(decoded, original) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", decoded, original)
	}
}

func TestProcessDraftUnmarshal(t *testing.T) {
	data := []byte(`{
  "name": "Invoice Approval",
  "system": "SAP",
  "steps": [
    {"number": 1, "description": "Submit invoice", "is_automated": true},
    {"number": "2", "description": "Manager review"}
  ]
}`)

	var draft workflow.ProcessDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}

	if len(draft.Steps) != 2 {
		t.Fatalf("Steps length = %d, want 2", len(draft.Steps))
	}
	if draft.Steps[0].IsAutomated == nil || !*draft.Steps[0].IsAutomated {
		t.Error("Steps[0].IsAutomated should be explicit true")
	}
	if draft.Steps[1].IsAutomated != nil {
		t.Error("Steps[1].IsAutomated should be nil when omitted")
	}
	if !draft.Steps[1].Number.Valid || draft.Steps[1].Number.Value != 2 {
		t.Errorf("Steps[1].Number = %+v, want valid 2", draft.Steps[1].Number)
	}
}
