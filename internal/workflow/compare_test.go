package workflow_test

import (
	"testing"

	"github.com/gapline/gapline/internal/workflow"
)

func process(name string, steps ...workflow.StepInput) workflow.ProcessInput {
	return workflow.ProcessInput{Name: name, System: "SAP", Steps: steps}
}

func step(number int, description string, automated bool) workflow.StepInput {
	return workflow.StepInput{
		Number:      number,
		Description: description,
		IsAutomated: automated,
	}
}

func TestCompareIdenticalProcesses(t *testing.T) {
	asIs := process("Invoice Approval",
		step(1, "Submit invoice", false),
		step(2, "Manager review", false),
	)

	signals := workflow.Compare(asIs, asIs)

	if signals.AlignedSteps != 2 {
		t.Errorf("AlignedSteps = %d, want 2", signals.AlignedSteps)
	}
	if len(signals.AddedSteps) != 0 || len(signals.RemovedSteps) != 0 {
		t.Errorf("added = %d, removed = %d, want 0, 0", len(signals.AddedSteps), len(signals.RemovedSteps))
	}
	if len(signals.Automated) != 0 || len(signals.Deautomated) != 0 {
		t.Errorf("automated = %d, deautomated = %d, want 0, 0", len(signals.Automated), len(signals.Deautomated))
	}
}

func TestCompareAddedSteps(t *testing.T) {
	asIs := process("Invoice Approval",
		step(1, "Submit invoice", false),
	)
	toBe := process("Invoice Approval v2",
		step(1, "Submit invoice", false),
		step(2, "Fraud screening", true),
		step(3, "Manager review", false),
	)

	signals := workflow.Compare(asIs, toBe)

	if signals.AlignedSteps != 1 {
		t.Errorf("AlignedSteps = %d, want 1", signals.AlignedSteps)
	}
	if len(signals.AddedSteps) != 2 {
		t.Fatalf("AddedSteps length = %d, want 2", len(signals.AddedSteps))
	}
	if signals.AddedSteps[0].Description != "Fraud screening" {
		t.Errorf("AddedSteps[0] = %q, want Fraud screening", signals.AddedSteps[0].Description)
	}
	if len(signals.RemovedSteps) != 0 {
		t.Errorf("RemovedSteps length = %d, want 0", len(signals.RemovedSteps))
	}
}

func TestCompareRemovedSteps(t *testing.T) {
	asIs := process("Invoice Approval",
		step(1, "Submit invoice", false),
		step(2, "Manager review", false),
		step(3, "Director sign-off", false),
	)
	toBe := process("Invoice Approval v2",
		step(1, "Submit invoice", false),
	)

	signals := workflow.Compare(asIs, toBe)

	if signals.AlignedSteps != 1 {
		t.Errorf("AlignedSteps = %d, want 1", signals.AlignedSteps)
	}
	if len(signals.RemovedSteps) != 2 {
		t.Fatalf("RemovedSteps length = %d, want 2", len(signals.RemovedSteps))
	}
	if signals.RemovedSteps[1].Description != "Director sign-off" {
		t.Errorf("RemovedSteps[1] = %q, want Director sign-off", signals.RemovedSteps[1].Description)
	}
}

func TestCompareAutomationDeltas(t *testing.T) {
	asIs := process("Invoice Approval",
		step(1, "Submit invoice", false),
		step(2, "Match purchase order", true),
		step(3, "Manager review", false),
	)
	toBe := process("Invoice Approval v2",
		step(1, "Submit invoice", true),
		step(2, "Match purchase order", false),
		step(3, "Manager review", false),
	)

	signals := workflow.Compare(asIs, toBe)

	if len(signals.Automated) != 1 {
		t.Fatalf("Automated length = %d, want 1", len(signals.Automated))
	}
	if signals.Automated[0].Position != 1 {
		t.Errorf("Automated[0].Position = %d, want 1", signals.Automated[0].Position)
	}

	if len(signals.Deautomated) != 1 {
		t.Fatalf("Deautomated length = %d, want 1", len(signals.Deautomated))
	}
	if signals.Deautomated[0].Position != 2 {
		t.Errorf("Deautomated[0].Position = %d, want 2", signals.Deautomated[0].Position)
	}
	if signals.Deautomated[0].AsIsStep.Description != "Match purchase order" {
		t.Errorf("Deautomated[0].AsIsStep = %q, want Match purchase order", signals.Deautomated[0].AsIsStep.Description)
	}
}

func TestCompareEmptySlicesNotNil(t *testing.T) {
	signals := workflow.Compare(process("a"), process("b"))

	if signals.AddedSteps == nil || signals.RemovedSteps == nil {
		t.Error("added/removed slices should be empty, not nil")
	}
	if signals.Automated == nil || signals.Deautomated == nil {
		t.Error("automation delta slices should be empty, not nil")
	}
}
