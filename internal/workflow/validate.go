package workflow

import (
	"fmt"
	"sort"
	"strings"
)

// Approver names that mark a step as automated when the model omits the
// is_automated field.
var automatedApprovers = []string{"automated", "system"}

// ValidateDraft checks an extraction draft against the process invariants
// and produces a normalized snapshot:
//   - name, system, and at least one step are required
//   - every step number must be a positive integer, unique within the draft
//   - every step needs a non-empty description
//   - steps are ordered by their document numbering, then renumbered 1..n
//     so gapped sequences collapse
//   - automation is derived from the approver name when the draft does not
//     state it
func ValidateDraft(draft ProcessDraft) (*ProcessInput, error) {
	if strings.TrimSpace(draft.Name) == "" {
		return nil, fmt.Errorf("%w: name", ErrIncompleteExtraction)
	}
	if strings.TrimSpace(draft.System) == "" {
		return nil, fmt.Errorf("%w: system", ErrIncompleteExtraction)
	}
	if len(draft.Steps) == 0 {
		return nil, fmt.Errorf("%w: steps", ErrIncompleteExtraction)
	}

	steps := make([]StepInput, 0, len(draft.Steps))
	seen := make(map[int]bool, len(draft.Steps))

	for i, sd := range draft.Steps {
		if !sd.Number.Valid {
			return nil, fmt.Errorf("%w: step %d number %q is not an integer", ErrInvalidStep, i+1, sd.Number.Raw)
		}
		if sd.Number.Value < 1 {
			return nil, fmt.Errorf("%w: step number %d is not positive", ErrInvalidStep, sd.Number.Value)
		}
		if seen[sd.Number.Value] {
			return nil, fmt.Errorf("%w: duplicate step number %d", ErrInvalidStep, sd.Number.Value)
		}
		seen[sd.Number.Value] = true

		if strings.TrimSpace(sd.Description) == "" {
			return nil, fmt.Errorf("%w: step %d has no description", ErrInvalidStep, sd.Number.Value)
		}

		steps = append(steps, StepInput{
			Number:       sd.Number.Value,
			Description:  strings.TrimSpace(sd.Description),
			ApproverRole: strings.TrimSpace(sd.ApproverRole),
			ApproverName: strings.TrimSpace(sd.ApproverName),
			IsAutomated:  deriveAutomation(sd),
		})
	}

	sort.SliceStable(steps, func(i, j int) bool {
		return steps[i].Number < steps[j].Number
	})

	for i := range steps {
		steps[i].Number = i + 1
	}

	return &ProcessInput{
		Name:   strings.TrimSpace(draft.Name),
		System: strings.TrimSpace(draft.System),
		Steps:  steps,
	}, nil
}

func deriveAutomation(sd StepDraft) bool {
	if sd.IsAutomated != nil {
		return *sd.IsAutomated
	}

	name := strings.ToLower(strings.TrimSpace(sd.ApproverName))
	for _, marker := range automatedApprovers {
		if name == marker {
			return true
		}
	}
	return false
}
