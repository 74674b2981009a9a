package processes

import (
	"fmt"
	"strings"

	"github.com/gapline/gapline/internal/workflow"
)

// Diagram renders a process as a Mermaid top-down flowchart. Each step
// becomes a node labeled with its description and approver, and consecutive
// steps are linked in order. Output is deterministic for a given process;
// a process with no steps has no diagram.
func Diagram(p *Process) (string, error) {
	if len(p.Steps) == 0 {
		return "", fmt.Errorf("%w: %q", workflow.ErrEmptyProcess, p.Name)
	}

	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, s := range p.Steps {
		label := sanitizeLabel(s.Description)
		if approver := diagramApprover(s); approver != "" {
			label = fmt.Sprintf("%s<br/>%s", label, sanitizeLabel(approver))
		}
		fmt.Fprintf(&sb, "    s%d[%s]\n", s.Number, label)
	}

	for i := 1; i < len(p.Steps); i++ {
		fmt.Fprintf(&sb, "    s%d --> s%d\n", p.Steps[i-1].Number, p.Steps[i].Number)
	}

	return sb.String(), nil
}

func diagramApprover(s Step) string {
	switch {
	case s.ApproverName != "" && s.ApproverRole != "":
		return fmt.Sprintf("%s (%s)", s.ApproverName, s.ApproverRole)
	case s.ApproverName != "":
		return s.ApproverName
	default:
		return s.ApproverRole
	}
}

// sanitizeLabel strips characters that break Mermaid node syntax.
func sanitizeLabel(text string) string {
	replacer := strings.NewReplacer(
		"[", "(",
		"]", ")",
		`"`, "'",
		"\n", " ",
	)
	return strings.TrimSpace(replacer.Replace(text))
}
