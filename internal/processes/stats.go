package processes

// Working days budgeted per approval step when estimating a timeline.
const daysPerStep = 2

// StepStats summarizes the shape of a process for reporting.
type StepStats struct {
	TotalSteps     int      `json:"total_steps"`
	ManualSteps    int      `json:"manual_steps"`
	AutomatedSteps int      `json:"automated_steps"`
	KeyRoles       []string `json:"key_roles"`
	EstimatedDays  int      `json:"estimated_days"`
}

// ComputeStats derives step statistics from a process's steps. Key roles
// are distinct non-empty approver roles in order of first appearance.
func ComputeStats(steps []Step) StepStats {
	stats := StepStats{
		TotalSteps:    len(steps),
		KeyRoles:      []string{},
		EstimatedDays: len(steps) * daysPerStep,
	}

	seen := make(map[string]bool)
	for _, s := range steps {
		if s.IsAutomated {
			stats.AutomatedSteps++
		} else {
			stats.ManualSteps++
		}

		if s.ApproverRole != "" && !seen[s.ApproverRole] {
			seen[s.ApproverRole] = true
			stats.KeyRoles = append(stats.KeyRoles, s.ApproverRole)
		}
	}

	return stats
}
