package prompts

const extractSpec = `Respond with a JSON object matching this exact structure:

{
  "name": "<process name>",
  "system": "<business system>",
  "steps": [
    {
      "number": 1,
      "description": "<what happens at this step>",
      "approver_role": "<responsible role>",
      "approver_name": "<approver name, or Automated/System>",
      "is_automated": false
    }
  ]
}

Field constraints:
- name: The workflow's name as the document titles it. Required.
- system: The business system the workflow runs in. Required.
- steps: One entry per approval step, in document order. At least one
  entry is required.
- number: Positive integer step number. Use the document's numbering.
- description: Concise description of the step. Must not be empty.
- approver_role: The role responsible for the step. May be empty when
  the document names no role.
- approver_name: The named approver, or "Automated"/"System" for steps
  with no human approver.
- is_automated: true when the step executes without human intervention.
  Omit the field if the document does not make this clear.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Report only steps the document describes
- Do not renumber, merge, or reorder steps`

const analyzeSpec = `Respond with a JSON object matching this exact structure:

{
  "summary": "<overall assessment of the redesign>",
  "findings": [
    {
      "finding_type": "<category>",
      "description": "<what changed>",
      "recommendation": "<what to do about it>",
      "impact": "<Low|Medium|High>",
      "effort": "<Low|Medium|High>"
    }
  ]
}

Field constraints:
- summary: Two to four sentences assessing the redesign as a whole.
- findings: One entry per distinct gap. At least one entry is required.
- finding_type: A short category label such as "step_elimination",
  "automation_opportunity", "added_control", "control_gap", or
  "role_change". Use the closest fit; coin a label when none fits.
- description: What differs between the two workflows, citing step
  numbers from both.
- recommendation: The concrete action that addresses the finding.
- impact: Business impact of the finding, exactly Low, Medium, or High.
- effort: Implementation effort, exactly Low, Medium, or High.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Base findings on the provided step lists and alignment signals
- Do not restate the alignment signals without interpretation`

var specs = map[Stage]string{
	StageExtract: extractSpec,
	StageAnalyze: analyzeSpec,
}

// Spec returns the hardcoded specification for a workflow stage.
// Specifications define the expected output format and behavioral constraints.
// Returns ErrInvalidStage if the stage is not recognized.
func Spec(stage Stage) (string, error) {
	text, ok := specs[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}
