package prompts

const extractInstructions = `You are a business process analyst reading an approval workflow document.

Identify the workflow the document describes, including:
- The process name (the title or subject of the workflow)
- The business system the workflow runs in (e.g., SAP, Oracle EBS, Workday)
- Every approval step, in the order the document presents them

For each step, capture:
- The step number as given in the document
- A concise description of what happens at the step
- The role responsible for the step (e.g., "AP Clerk", "Finance Manager")
- The name of the approver when the document names one; use "Automated"
  or "System" when no human is involved
- Whether the step executes without human intervention

Preserve the document's own wording for descriptions where practical.
Do not invent steps that the document does not describe.`

const analyzeInstructions = `You are a business process consultant comparing a current-state (as-is)
approval workflow against its proposed target-state (to-be) redesign.

Both workflows are provided as structured step lists, together with
pre-computed alignment signals: which step positions align, which steps
were added or removed, and where automation was introduced or lost.

Produce gap findings that explain the differences and their business
consequences, including:
- Steps eliminated or consolidated, and the effort they save
- New automation, and the manual work it replaces
- Added controls or approvals, and the risk they mitigate
- Lost controls or automation regressions, and the risk they introduce
- Role or ownership changes across aligned steps

Ground every finding in specific steps from the two workflows. Rate the
business impact and the implementation effort of each finding.`

var instructions = map[Stage]string{
	StageExtract: extractInstructions,
	StageAnalyze: analyzeInstructions,
}

// Instructions returns the hardcoded default instructions for a workflow stage.
// Returns ErrInvalidStage if the stage is not recognized.
func Instructions(stage Stage) (string, error) {
	text, ok := instructions[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}
